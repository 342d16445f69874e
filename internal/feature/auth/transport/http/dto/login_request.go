// Package dto defines the request and response bodies of the auth endpoints.
package dto

// LoginReq is the body of POST /api/login.
// Emptiness is checked by the usecase so the client gets its exact message.
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
