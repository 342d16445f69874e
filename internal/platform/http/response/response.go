// Package response writes the JSON envelope shared by every API endpoint:
// {"success": true, ...} on success and {"success": false, "error": "..."} on failure.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mealscan_backend/internal/shared/apperr"
)

// internalMessage is shown to clients for failures that are not an *apperr.Error.
const internalMessage = "internal server error"

// Success writes {"success": true} merged with fields.
func Success(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, fields gin.H) {
	Success(c, http.StatusOK, fields)
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, fields gin.H) {
	Success(c, http.StatusCreated, fields)
}

// Error aborts the request with a failure envelope.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

// Fail classifies err, records it on the context for the access log, and aborts
// with the matching status. Internal failures expose only their operation context,
// never the underlying cause.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		Error(c, http.StatusInternalServerError, internalMessage)
		return
	}
	msg := appErr.Message
	if msg == "" {
		msg = internalMessage
	}
	Error(c, apperr.HTTPStatus(appErr.Kind), msg)
}
