package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config holds JWT configuration
type Config struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Claims represents JWT token claims
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	SessionID string `json:"session_id,omitempty"` // Only in refresh tokens
	TokenType string `json:"token_type"`           // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenPair contains access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // Access token TTL in seconds
	SessionID    string `json:"-"`
}

// JWTManager mints and validates token pairs. Refresh tokens are bound to a
// stored session so they can be rotated and revoked.
type JWTManager struct {
	config   *Config
	sessions SessionStore
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *Config) *JWTManager {
	if cfg.AccessTokenTTL == 0 {
		cfg.AccessTokenTTL = 15 * time.Minute
	}
	if cfg.RefreshTokenTTL == 0 {
		cfg.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	return &JWTManager{config: cfg}
}

// WithSessionStore adds session tracking for rotation and revocation.
func (m *JWTManager) WithSessionStore(store SessionStore) *JWTManager {
	m.sessions = store
	return m
}

// GenerateTokenPair creates a new access/refresh token pair and records the
// backing session.
func (m *JWTManager) GenerateTokenPair(userID, email string) (*TokenPair, error) {
	sessionID := uuid.New().String()

	accessToken, err := m.generateAccessToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := m.generateRefreshToken(userID, email, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if m.sessions != nil {
		session := &Session{
			ID:        sessionID,
			UserID:    userID,
			TokenHash: HashToken(refreshToken),
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(m.config.RefreshTokenTTL),
		}
		if err := m.sessions.Create(session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(m.config.AccessTokenTTL.Seconds()),
		SessionID:    sessionID,
	}, nil
}

// RefreshTokens validates a refresh token, rotates its session, and issues a
// new pair. A token whose session was already rotated or revoked is
// rejected.
func (m *JWTManager) RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := m.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if m.sessions != nil {
		session, err := m.sessions.Validate(claims.SessionID, HashToken(refreshToken))
		if err != nil {
			return nil, fmt.Errorf("failed to validate session: %w", err)
		}
		if session == nil {
			return nil, fmt.Errorf("session not found or token already rotated")
		}

		newRefreshToken, err := m.generateRefreshToken(claims.UserID, claims.Email, claims.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate new refresh token: %w", err)
		}

		newExpiry := time.Now().Add(m.config.RefreshTokenTTL)
		if err := m.sessions.Rotate(claims.SessionID, HashToken(newRefreshToken), newExpiry); err != nil {
			return nil, fmt.Errorf("failed to rotate session: %w", err)
		}

		accessToken, err := m.generateAccessToken(claims.UserID, claims.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to generate access token: %w", err)
		}

		return &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresIn:    int(m.config.AccessTokenTTL.Seconds()),
			SessionID:    claims.SessionID,
		}, nil
	}

	return m.GenerateTokenPair(claims.UserID, claims.Email)
}

// RevokeSession invalidates a session (logout).
func (m *JWTManager) RevokeSession(sessionID string) error {
	if m.sessions == nil {
		return nil
	}
	return m.sessions.Revoke(sessionID)
}

// ValidateToken validates a token and returns its claims.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ValidateRefreshToken validates a refresh token specifically.
func (m *JWTManager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, fmt.Errorf("not a refresh token")
	}
	return claims, nil
}

// HashToken returns the hex SHA-256 of a token. Sessions store the hash, not
// the token itself.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (m *JWTManager) generateAccessToken(userID, email string) (string, error) {
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.config.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "sura",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.Secret))
}

func (m *JWTManager) generateRefreshToken(userID, email, sessionID string) (string, error) {
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		SessionID: sessionID,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique ID so a rotated token is never byte-identical
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.config.RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "sura",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.Secret))
}
