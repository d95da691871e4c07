package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/clicksy/clicksy-api/internal/config"
	"github.com/clicksy/clicksy-api/internal/server/middleware"
	"github.com/clicksy/clicksy-api/internal/types"
)

// tokenIssuer is set on every issued token and required on validation.
const tokenIssuer = "clicksy-api"

// Claims identifies the account behind a bearer token and the role its
// profile had when the token was issued.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// GetUserID implements middleware.Principal.
func (c *Claims) GetUserID() uuid.UUID { return c.UserID }

// GetRole implements middleware.Principal.
func (c *Claims) GetRole() string { return c.Role }

// JWTService signs and verifies HS256 session tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates a JWT service from cfg.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.ExpirationHours) * time.Hour,
		now:    time.Now,
	}
}

// GenerateToken issues a token for userID acting as role.
func (s *JWTService) GenerateToken(userID uuid.UUID, role string) (string, error) {
	if !types.ValidRole(role) {
		return "", fmt.Errorf("cannot issue token for unknown role %q", role)
	}

	now := s.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, issuer and expiry, and returns the claims.
// Tokens without a user ID or with an unknown role are rejected.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, fmt.Errorf("invalid token signature: %w", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("token expired: %w", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, fmt.Errorf("malformed token: %w", err)
	default:
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("token has no user ID")
	}
	if !types.ValidRole(claims.Role) {
		return nil, fmt.Errorf("token has unknown role %q", claims.Role)
	}
	return claims, nil
}

// AsTokenValidator adapts the service to middleware.TokenValidator.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return tokenValidatorFunc(func(tokenString string) (middleware.Principal, error) {
		claims, err := s.ValidateToken(tokenString)
		if err != nil {
			return nil, err
		}
		return claims, nil
	})
}

type tokenValidatorFunc func(string) (middleware.Principal, error)

func (f tokenValidatorFunc) ValidateToken(tokenString string) (middleware.Principal, error) {
	return f(tokenString)
}
