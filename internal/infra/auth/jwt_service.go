package auth

import (
	"time"

	"shelfmark/config"
	domainService "shelfmark/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	accessTokenLifetime  = 15 * time.Minute
	refreshTokenLifetime = 7 * 24 * time.Hour
)

// jwtService implements service.TokenService using HS256 with separate
// secrets for the access and refresh sides of the pair.
type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

// NewJWTService creates a TokenService from the configured signing secrets.
// Both secrets must be non-empty; a missing secret aborts startup.
func NewJWTService(cfg *config.Config) (domainService.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("access token secret is not configured")
	}
	if cfg.SecretKey.Refresh == "" {
		return nil, errors.New("refresh token secret is not configured")
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		issuer:        cfg.Env.ServiceName,
	}, nil
}

// GenerateTokenPair signs the access and refresh tokens concurrently; the
// two signatures are independent.
func (s *jwtService) GenerateTokenPair(userID uuid.UUID, email string, roles []string) (string, string, error) {
	var accessToken, refreshToken string

	var group errgroup.Group
	group.Go(func() error {
		var err error
		accessToken, err = s.signToken(userID, email, roles, domainService.TokenTypeAccess, accessTokenLifetime, s.accessSecret)

		return err
	})
	group.Go(func() error {
		var err error
		refreshToken, err = s.signToken(userID, "", nil, domainService.TokenTypeRefresh, refreshTokenLifetime, s.refreshSecret)

		return err
	})

	if err := group.Wait(); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAccessToken verifies an access token and returns its claims.
func (s *jwtService) ValidateAccessToken(tokenString string) (*domainService.Claims, error) {
	return s.parseToken(tokenString, domainService.TokenTypeAccess, s.accessSecret)
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
func (s *jwtService) ValidateRefreshToken(tokenString string) (*domainService.Claims, error) {
	return s.parseToken(tokenString, domainService.TokenTypeRefresh, s.refreshSecret)
}

func (s *jwtService) signToken(
	userID uuid.UUID,
	email string,
	roles []string,
	tokenType string,
	lifetime time.Duration,
	secret []byte,
) (string, error) {
	now := time.Now()
	claims := &domainService.Claims{
		UserID: userID,
		Email:  email,
		Roles:  roles,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrapf(err, "sign %s token", tokenType)
	}

	return signed, nil
}

func (s *jwtService) parseToken(tokenString, wantType string, secret []byte) (*domainService.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domainService.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "jwt.ParseWithClaims")
	}

	claims, ok := token.Claims.(*domainService.Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	if claims.Type != wantType {
		return nil, errors.Errorf("token type mismatch: want %s, got %s", wantType, claims.Type)
	}

	return claims, nil
}
