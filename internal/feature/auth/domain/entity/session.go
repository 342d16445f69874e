package entity

import "time"

// Session is the server-side state behind a session cookie.
// The token is opaque to clients; the user's role is captured at login so each
// request can be authorized without a user lookup.
type Session struct {
	ID        string    // opaque token (64-character hex string)
	UserID    uint      // owner of the session
	Role      Role      // role at login time
	CreatedAt time.Time // login time
	ExpiresAt time.Time // idle deadline, pushed forward on every authenticated request
}

// IsExpired reports whether the idle deadline has passed at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
