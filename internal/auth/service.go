// Package auth implements the terminal's simulated sign-in. Any email with a
// long-enough password is accepted; what makes it an auth layer is everything
// around that check: issued JWT pairs, rotated refresh sessions, and the
// persisted user profile.
package auth

import (
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/esabling477/sura-trading/internal/store"
	apperrors "github.com/esabling477/sura-trading/pkg/errors"
	"github.com/esabling477/sura-trading/pkg/logger"
)

// User is a registered profile. No password is stored; the simulator accepts
// any credentials that pass validation.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Service implements login, registration, and token lifecycle.
type Service struct {
	store             *store.Store
	jwt               *JWTManager
	minPasswordLength int
}

func NewService(st *store.Store, jwt *JWTManager, minPasswordLength int) *Service {
	if minPasswordLength <= 0 {
		minPasswordLength = 6
	}
	return &Service{store: st, jwt: jwt, minPasswordLength: minPasswordLength}
}

// Login signs a user in. Any syntactically valid email with a password of at
// least the minimum length succeeds; a first login creates the profile, with
// the display name taken from the email's local part.
func (s *Service) Login(email, password string) (*User, *TokenPair, error) {
	email = normalizeEmail(email)
	if err := s.validateCredentials(email, password); err != nil {
		return nil, nil, err
	}

	user, err := s.findOrCreate(email, displayName(email))
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, nil, apperrors.ErrInternal.WithError(err)
	}

	logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user logged in")
	return user, pair, nil
}

// Register creates an account. It validates the same way login does, plus a
// required name and a matching confirmation, then signs the user in.
func (s *Service) Register(name, email, password, confirm string) (*User, *TokenPair, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, nil, apperrors.ErrValidation.WithDetails("name is required")
	}
	if err := s.validateCredentials(email, password); err != nil {
		return nil, nil, err
	}
	if password != confirm {
		return nil, nil, apperrors.ErrValidation.WithDetails("passwords do not match")
	}

	user, err := s.findOrCreate(email, name)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, nil, apperrors.ErrInternal.WithError(err)
	}

	logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user registered")
	return user, pair, nil
}

// ForgotPassword pretends to send a reset email. It always reports success
// for well-formed addresses so the endpoint does not leak which emails exist.
func (s *Service) ForgotPassword(email string) error {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.ErrValidation.WithDetails("invalid email address")
	}

	logger.Info().Str("email", email).Msg("password reset requested")
	return nil
}

// Refresh exchanges a valid refresh token for a new pair, rotating the
// session.
func (s *Service) Refresh(refreshToken string) (*TokenPair, error) {
	pair, err := s.jwt.RefreshTokens(refreshToken)
	if err != nil {
		return nil, apperrors.ErrSessionExpired.WithError(err)
	}
	return pair, nil
}

// Logout revokes the session behind a refresh token. An invalid token is not
// an error; the session it pointed at is gone either way.
func (s *Service) Logout(refreshToken string) error {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil
	}
	return s.jwt.RevokeSession(claims.SessionID)
}

// UserByID loads a stored profile.
func (s *Service) UserByID(userID string) (*User, error) {
	var user User
	found, err := s.store.Get(store.BucketUsers, userID, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrNotFound.WithDetails("no such user")
	}
	return &user, nil
}

func (s *Service) validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.ErrValidation.WithDetails("invalid email address")
	}
	if len(password) < s.minPasswordLength {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

// findOrCreate looks a user up by email, creating the profile on first
// sight. Users are stored twice: by ID for token lookups and by email for
// repeat logins.
func (s *Service) findOrCreate(email, name string) (*User, error) {
	var existing User
	found, err := s.store.Get(store.BucketUsers, emailKey(email), &existing)
	if err != nil {
		return nil, err
	}
	if found {
		return &existing, nil
	}

	user := User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL(email),
		CreatedAt: time.Now(),
	}

	if err := s.store.Put(store.BucketUsers, user.ID, user); err != nil {
		return nil, err
	}
	if err := s.store.Put(store.BucketUsers, emailKey(email), user); err != nil {
		return nil, err
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailKey(email string) string {
	return "email:" + email
}

// displayName derives a name from the email's local part.
func displayName(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// avatarURL builds a deterministic generated-avatar URL for an email.
func avatarURL(email string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(email)
}
