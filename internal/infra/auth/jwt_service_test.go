package auth

import (
	"testing"

	"shelfmark/config"
	domainService "shelfmark/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) domainService.TokenService {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "shelfmark-test"
	cfg.SecretKey.Access = "access-test-secret"
	cfg.SecretKey.Refresh = "refresh-test-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestJWTService_EmptySecretRejected(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.SecretKey.Refresh = "refresh-test-secret"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)

	cfg = &config.Config{}
	cfg.SecretKey.Access = "access-test-secret"

	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidatePair(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	userID := uuid.New()

	access, refresh, err := svc.GenerateTokenPair(userID, "alice@example.com", []string{"user", "admin"})
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, "alice@example.com", accessClaims.Email)
	assert.Equal(t, []string{"user", "admin"}, accessClaims.Roles)
	assert.Equal(t, domainService.TokenTypeAccess, accessClaims.Type)

	refreshClaims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Empty(t, refreshClaims.Email)
	assert.Empty(t, refreshClaims.Roles)
	assert.Equal(t, domainService.TokenTypeRefresh, refreshClaims.Type)
}

func TestJWTService_TokenTypeMismatchRejected(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	access, refresh, err := svc.GenerateTokenPair(uuid.New(), "bob@example.com", []string{"user"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "some-other-secret"
	otherCfg.SecretKey.Refresh = "another-other-secret"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	access, refresh, err := other.GenerateTokenPair(uuid.New(), "carol@example.com", nil)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(access)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(refresh)
	assert.Error(t, err)
}

func TestJWTService_GarbageTokenRejected(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken("")
	assert.Error(t, err)
}
