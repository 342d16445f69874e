package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"mealscan_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the shortest password accepted at registration and password change.
	minPasswordLength = 6
	// maxPasswordLength is the longest password bcrypt can hash, in bytes.
	maxPasswordLength = 72

	// tokenBytes is the entropy of a session token before hex encoding.
	tokenBytes = 32
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// UserRepository abstracts persistence of user accounts for the auth feature.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user has the id.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// EmailExists reports whether any user owns the email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdatePassword stores a new password hash for the user.
	UpdatePassword(ctx context.Context, id uint, hash string) error

	// UpdateRole changes the role of the user.
	UpdateRole(ctx context.Context, id uint, role entity.Role) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	VerifyDummy(password string) bool
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// authUsecase implements account and session business logic.
type authUsecase struct {
	users       UserRepository
	sessions    SessionRepository
	hasher      PasswordHasher
	idleTimeout time.Duration
	now         func() time.Time
	newToken    func() (string, error)
}

// Option customizes an authUsecase.
type Option func(*authUsecase)

// WithClock replaces the clock used for session deadlines.
func WithClock(now func() time.Time) Option {
	return func(u *authUsecase) { u.now = now }
}

// WithTokenGenerator replaces the session token source.
func WithTokenGenerator(gen func() (string, error)) Option {
	return func(u *authUsecase) { u.newToken = gen }
}

// NewAuthUsecase creates an authUsecase. Sessions expire after idleTimeout without activity.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, hasher PasswordHasher, idleTimeout time.Duration, opts ...Option) *authUsecase {
	u := &authUsecase{
		users:       users,
		sessions:    sessions,
		hasher:      hasher,
		idleTimeout: idleTimeout,
		now:         func() time.Time { return time.Now().UTC() },
		newToken:    newSessionToken,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// newSessionToken returns 32 random bytes as a 64-character hex string.
func newSessionToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// Register validates the input and creates a new account with a hashed password.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)

	switch {
	case email == "" || in.Password == "":
		return nil, ErrMissingCredentials
	case name == "":
		return nil, ErrNameRequired
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, ErrInvalidRole
	}

	exists, err := u.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{Email: email, Password: hashed, Name: name, Role: role}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user owning email if password verifies.
// A bcrypt comparison runs even when the email is unknown, so both failure paths cost the same.
func (u *authUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingCredentials
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		u.hasher.VerifyDummy(password)
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !u.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the user and opens a fresh session for them.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.Session, *entity.User, error) {
	user, err := u.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	token, err := u.newToken()
	if err != nil {
		return nil, nil, err
	}
	now := u.now()
	session := &entity.Session{
		ID:        token,
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(u.idleTimeout),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, user, nil
}

// Logout destroys the session. Unknown or empty tokens are ignored.
func (u *authUsecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := u.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ResolveSession returns the live session for token and extends its idle deadline.
// Expired sessions are removed and reported as ErrSessionExpired.
func (u *authUsecase) ResolveSession(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, err := u.sessions.FindByID(ctx, token)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if session.IsExpired(now) {
		_ = u.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	expiresAt := now.Add(u.idleTimeout)
	if err := u.sessions.Touch(ctx, token, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	session.ExpiresAt = expiresAt
	return session, nil
}

// Me returns the account behind a session.
func (u *authUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// ChangePassword replaces the user's password after verifying the current one.
// Every other session of the user is closed; keepSession stays valid.
func (u *authUsecase) ChangePassword(ctx context.Context, userID uint, keepSession, current, next string) error {
	if current == "" || next == "" {
		return ErrMissingCredentials
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.hasher.Verify(current, user.Password) {
		return ErrCurrentPasswordIncorrect
	}

	hashed, err := u.hasher.Hash(next)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}
	if err := u.sessions.DeleteByUserID(ctx, userID, keepSession); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

// ResetPassword sets a new password for the account without the old one and
// closes all of its sessions.
func (u *authUsecase) ResetPassword(ctx context.Context, email, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return err
	}
	return u.sessions.DeleteByUserID(ctx, user.ID, "")
}

// ChangeRole assigns a new role to the account. Existing sessions are closed
// because they carry the old role.
func (u *authUsecase) ChangeRole(ctx context.Context, email, role string) error {
	r, ok := entity.ParseRole(role)
	if !ok {
		return ErrInvalidRole
	}
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if err := u.users.UpdateRole(ctx, user.ID, r); err != nil {
		return err
	}
	return u.sessions.DeleteByUserID(ctx, user.ID, "")
}

// RevokeUserSessions closes every session of userID.
func (u *authUsecase) RevokeUserSessions(ctx context.Context, userID uint) error {
	return u.sessions.DeleteByUserID(ctx, userID, "")
}

// PurgeExpiredSessions deletes sessions whose idle deadline has passed.
func (u *authUsecase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx, u.now())
}
