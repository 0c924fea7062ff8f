// Package auth guards the storefront's admin endpoints with a single
// bcrypt-checked password and short-lived JWT bearer tokens.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrDisabled is returned when no admin password hash is configured.
	ErrDisabled = errors.New("admin access is not configured")
	// ErrInvalidCredentials is returned for a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Config holds the auth section.
type Config struct {
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
}

// Token is the login response body.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"` // seconds
	ExpiresAt   time.Time `json:"expires_at"`
}

// Service checks the admin password and issues tokens.
type Service struct {
	hash   string
	tokens *TokenService
	logger *zap.Logger
}

// NewService builds the service. An empty JWTSecret gets an ephemeral random
// secret, so tokens do not survive a restart.
func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate JWT secret: %w", err)
		}
		logger.Info("using auto-generated JWT secret; set auth.jwt_secret to keep tokens valid across restarts")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	if cfg.AdminPasswordHash == "" {
		logger.Warn("auth.admin_password_hash not set; admin endpoints are disabled")
	}
	return &Service{
		hash:   cfg.AdminPasswordHash,
		tokens: NewTokenService(secret, ttl),
		logger: logger,
	}, nil
}

// Enabled reports whether an admin password is configured.
func (s *Service) Enabled() bool {
	return s.hash != ""
}

// Login exchanges the admin password for an access token.
func (s *Service) Login(password string) (Token, error) {
	if !s.Enabled() {
		return Token{}, ErrDisabled
	}
	if !CheckPassword(s.hash, password) {
		s.logger.Warn("admin login failed")
		return Token{}, ErrInvalidCredentials
	}

	signed, expires, err := s.tokens.Issue()
	if err != nil {
		return Token{}, err
	}
	s.logger.Info("admin login succeeded", zap.Time("expires_at", expires))
	return Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
		ExpiresAt:   expires,
	}, nil
}

// Authenticate validates a bearer token.
func (s *Service) Authenticate(token string) (*Claims, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	return s.tokens.Validate(token)
}
