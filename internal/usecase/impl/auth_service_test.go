package impl

import (
	"context"
	"testing"

	"shelfmark/internal/domain/entity"
	domainerrors "shelfmark/internal/domain/errors"
	"shelfmark/internal/domain/repository"
	mockRepo "shelfmark/internal/mocks/repository"
	mockService "shelfmark/internal/mocks/service"
	"shelfmark/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service   usecase.AuthUsecase
	txManager *mockRepo.MockTransactionManager
	userRepo  *mockRepo.MockUserRepository
	hasher    *mockService.MockPasswordHasher
	tokenSvc  *mockService.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenSvc := mockService.NewMockTokenService(t)

	service := NewAuthService(AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       newDiscardLogger(),
	})

	return authServiceFixtures{
		service:   service,
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
		tokenSvc:  tokenSvc,
	}
}

// expectTransaction wires the transaction manager to run the callback with a
// factory that hands back the shared user repo mock.
func (fx authServiceFixtures) expectTransaction(t *testing.T) {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().UserRepo().Return(fx.userRepo)

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func refreshHashMatcher(want string) any {
	return mock.MatchedBy(func(hash *string) bool {
		return hash != nil && *hash == want
	})
}

func TestAuthService_SignUp_PersistsHashBeforeReturningPair(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.hasher.EXPECT().Hash("s3cret-password").Return("hashed-password", nil)

	fx.expectTransaction(t)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		RunAndReturn(func(_ context.Context, user *entity.User) error {
			assert.Equal(t, "alice@example.com", user.Email)
			assert.Equal(t, "hashed-password", user.HashedPassword)
			assert.Equal(t, entity.Roles{entity.RoleUser}, user.Roles)
			user.ID = userID

			return nil
		})

	fx.tokenSvc.EXPECT().
		GenerateTokenPair(userID, "alice@example.com", []string{"user"}).
		Return("access-token", "refresh-token", nil)
	fx.hasher.EXPECT().Hash("refresh-token").Return("refresh-hash", nil)
	fx.userRepo.EXPECT().
		SetRefreshTokenHash(ctx, userID, refreshHashMatcher("refresh-hash")).
		Return(nil)

	output, err := fx.service.SignUp(ctx, usecase.SignUpInput{
		Email:     "alice@example.com",
		Password:  "s3cret-password",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
}

func TestAuthService_SignUp_EmailTaken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("s3cret-password").Return("hashed-password", nil)

	fx.expectTransaction(t)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrEmailTaken)

	_, err := fx.service.SignUp(ctx, usecase.SignUpInput{
		Email:    "taken@example.com",
		Password: "s3cret-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAuthService_SignIn_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	user := &entity.User{
		ID:             userID,
		Email:          "bob@example.com",
		HashedPassword: "stored-hash",
		Roles:          entity.Roles{entity.RoleUser, entity.RoleAdmin},
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "bob@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("right-password", "stored-hash").Return(true)
	fx.tokenSvc.EXPECT().
		GenerateTokenPair(userID, "bob@example.com", []string{"user", "admin"}).
		Return("access-token", "refresh-token", nil)
	fx.hasher.EXPECT().Hash("refresh-token").Return("refresh-hash", nil)
	fx.userRepo.EXPECT().
		SetRefreshTokenHash(ctx, userID, refreshHashMatcher("refresh-hash")).
		Return(nil)

	output, err := fx.service.SignIn(ctx, usecase.SignInInput{
		Email:    "bob@example.com",
		Password: "right-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
}

func TestAuthService_SignIn_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.SignIn(ctx, usecase.SignInInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:             uuid.New(),
		Email:          "bob@example.com",
		HashedPassword: "stored-hash",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "bob@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("wrong-password", "stored-hash").Return(false)

	_, err := fx.service.SignIn(ctx, usecase.SignInInput{
		Email:    "bob@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

// Wrong-password and unknown-email failures must be indistinguishable.
func TestAuthService_SignIn_FailureModesIndistinguishable(t *testing.T) {
	fxUnknown := createTestAuthService(t)
	ctx := context.Background()

	fxUnknown.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)
	_, errUnknown := fxUnknown.service.SignIn(ctx, usecase.SignInInput{
		Email: "ghost@example.com", Password: "pw",
	})

	fxWrong := createTestAuthService(t)
	fxWrong.userRepo.EXPECT().FindByEmail(ctx, "bob@example.com").Return(&entity.User{
		ID: uuid.New(), Email: "bob@example.com", HashedPassword: "h",
	}, nil)
	fxWrong.hasher.EXPECT().Check("pw", "h").Return(false)
	_, errWrong := fxWrong.service.SignIn(ctx, usecase.SignInInput{
		Email: "bob@example.com", Password: "pw",
	})

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuthService_Refresh_RotatesSession(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	user := &entity.User{
		ID:                 userID,
		Email:              "carol@example.com",
		HashedRefreshToken: strPtr("old-refresh-hash"),
		Roles:              entity.Roles{entity.RoleUser},
	}

	fx.tokenSvc.EXPECT().
		ValidateRefreshToken("old-refresh-token").
		Return(newRefreshClaims(userID), nil)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.hasher.EXPECT().Check("old-refresh-token", "old-refresh-hash").Return(true)
	fx.tokenSvc.EXPECT().
		GenerateTokenPair(userID, "carol@example.com", []string{"user"}).
		Return("new-access", "new-refresh", nil)
	fx.hasher.EXPECT().Hash("new-refresh").Return("new-refresh-hash", nil)
	fx.userRepo.EXPECT().
		SetRefreshTokenHash(ctx, userID, refreshHashMatcher("new-refresh-hash")).
		Return(nil)

	output, err := fx.service.Refresh(ctx, usecase.RefreshInput{
		UserID:       userID,
		RefreshToken: "old-refresh-token",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
	assert.Equal(t, "new-refresh", output.RefreshToken)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.tokenSvc.EXPECT().
		ValidateRefreshToken("garbage").
		Return(nil, errors.New("token is malformed"))

	_, err := fx.service.Refresh(ctx, usecase.RefreshInput{
		UserID:       uuid.New(),
		RefreshToken: "garbage",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Refresh_SubjectMismatch(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.tokenSvc.EXPECT().
		ValidateRefreshToken("stolen-token").
		Return(newRefreshClaims(uuid.New()), nil)

	_, err := fx.service.Refresh(ctx, usecase.RefreshInput{
		UserID:       uuid.New(),
		RefreshToken: "stolen-token",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Refresh_NoActiveSession(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenSvc.EXPECT().
		ValidateRefreshToken("refresh-token").
		Return(newRefreshClaims(userID), nil)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{
		ID:                 userID,
		HashedRefreshToken: nil,
	}, nil)

	_, err := fx.service.Refresh(ctx, usecase.RefreshInput{
		UserID:       userID,
		RefreshToken: "refresh-token",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

// A token that was rotated out no longer matches the stored hash.
func TestAuthService_Refresh_RotatedOutTokenRejected(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenSvc.EXPECT().
		ValidateRefreshToken("stale-token").
		Return(newRefreshClaims(userID), nil)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{
		ID:                 userID,
		HashedRefreshToken: strPtr("current-hash"),
	}, nil)
	fx.hasher.EXPECT().Check("stale-token", "current-hash").Return(false)

	_, err := fx.service.Refresh(ctx, usecase.RefreshInput{
		UserID:       userID,
		RefreshToken: "stale-token",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_SignOut_Idempotent(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().
		SetRefreshTokenHash(ctx, userID, (*string)(nil)).
		Return(nil).
		Twice()

	require.NoError(t, fx.service.SignOut(ctx, userID))
	require.NoError(t, fx.service.SignOut(ctx, userID))
}
