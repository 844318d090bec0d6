package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"boxoffice/internal/config"
	"boxoffice/internal/domain"
)

// Claims represents the JWT claims of a dashboard session.
type Claims struct {
	jwt.RegisteredClaims
	SessionID uuid.UUID `json:"session_id"`
}

// SessionToken holds a signed session token and its expiry.
type SessionToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// AuthService defines the shared-password authentication contract. All
// staff share one access password; a successful login yields a short-lived
// session token.
type AuthService interface {
	Login(input LoginInput) (*SessionToken, error)
	Refresh(tokenString string) (*SessionToken, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	cfg config.AuthConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(cfg config.AuthConfig) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(input LoginInput) (*SessionToken, error) {
	if !s.passwordMatches(input.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.generateToken()
}

func (s *authService) Refresh(tokenString string) (*SessionToken, error) {
	if _, err := s.ValidateToken(tokenString); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return s.generateToken()
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithIssuer(s.cfg.Issuer))
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// passwordMatches compares against the bcrypt hash when configured, else
// falls back to a constant-time plaintext compare for development setups.
func (s *authService) passwordMatches(password string) bool {
	if s.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)) == nil
	}
	if s.cfg.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.Password), []byte(password)) == 1
}

func (s *authService) generateToken() (*SessionToken, error) {
	now := time.Now()
	expiry := now.Add(s.cfg.SessionExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
		SessionID: uuid.New(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("auth.generateToken: %w", err)
	}

	return &SessionToken{AccessToken: signed, ExpiresAt: expiry}, nil
}
