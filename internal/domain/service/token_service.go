package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type markers carried in the "type" claim so an access token can
// never be presented where a refresh token is expected, and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims carried by the issued JWTs.
// Access tokens carry the full identity (email, roles); refresh tokens
// carry only the subject id.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email,omitempty"`
	Roles  []string  `json:"roles,omitempty"`
	Type   string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating the
// access/refresh token pair. Each side of the pair uses its own signing
// secret and lifetime. Tokens are opaque strings to every other component.
type TokenService interface {
	// GenerateTokenPair signs a new access and refresh token for the user.
	// The two signatures have no ordering dependency between them.
	GenerateTokenPair(userID uuid.UUID, email string, roles []string) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken verifies signature, expiry and token type against
	// the access secret and returns the decoded claims.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken verifies signature, expiry and token type against
	// the refresh secret and returns the decoded claims.
	ValidateRefreshToken(tokenString string) (*Claims, error)
}
