// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "shelfmark/internal/delivery/context"
	"shelfmark/internal/domain/entity"
	domainerrors "shelfmark/internal/domain/errors"
	"shelfmark/internal/domain/repository"
	"shelfmark/internal/domain/service"
	"shelfmark/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It owns the single-slot
// session model: at most one refresh token per user, stored server-side as a
// bcrypt hash on the user row.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp registers a new account and opens its first session.
func (srv *authService) SignUp(ctx context.Context, input usecase.SignUpInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Info("Starting sign up", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during sign up", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during sign up")
	}

	newUser := &entity.User{
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		HashedPassword: hashedPassword,
		Roles:          entity.Roles{entity.RoleUser},
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	pair, err := srv.issueSession(ctx, newUser)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Sign up completed", slog.Any("userID", newUser.ID))

	return pair, nil
}

// SignIn verifies credentials and replaces any existing session. Every
// failure mode reports the same invalid-credentials error so that account
// existence cannot be probed.
func (srv *authService) SignIn(ctx context.Context, input usecase.SignInInput) (*usecase.TokenPairOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.HashedPassword) {
		srv.log(ctx).Warn("Password mismatch during sign in", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	pair, err := srv.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Sign in completed", slog.Any("userID", user.ID))

	return pair, nil
}

// Refresh rotates the presented refresh token for a new pair. The old token
// is invalidated the moment the new pair's hash is written; presenting it
// again fails the bcrypt comparison.
func (srv *authService) Refresh(ctx context.Context, input usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil || claims.UserID != input.UserID {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if !user.HasActiveSession() {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !srv.hasher.Check(input.RefreshToken, *user.HashedRefreshToken) {
		srv.log(ctx).Warn("Refresh token mismatch", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	pair, err := srv.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Session rotated", slog.Any("userID", user.ID))

	return pair, nil
}

// SignOut clears the user's refresh token slot. Signing out with no active
// session is a successful no-op.
func (srv *authService) SignOut(ctx context.Context, userID uuid.UUID) error {
	if err := srv.userRepo.SetRefreshTokenHash(ctx, userID, nil); err != nil {
		srv.log(ctx).Error("Failed to clear refresh token slot", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to clear refresh token slot")
	}

	srv.log(ctx).Debug("Sign out completed", slog.Any("userID", userID))

	return nil
}

// issueSession signs a fresh pair and persists the refresh token's hash
// before the pair is returned, so no token reaches the client without its
// server-side counterpart in place. Two concurrent refreshes both succeed
// but only the last written hash stays valid.
func (srv *authService) issueSession(ctx context.Context, user *entity.User) (*usecase.TokenPairOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokenPair(user.ID, user.Email, user.Roles.ToStrings())
	if err != nil {
		srv.log(ctx).Error("Failed to generate token pair", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token pair")
	}

	refreshHash, err := srv.hasher.Hash(refreshToken)
	if err != nil {
		srv.log(ctx).Error("Failed to hash refresh token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash refresh token")
	}

	if err := srv.userRepo.SetRefreshTokenHash(ctx, user.ID, &refreshHash); err != nil {
		srv.log(ctx).Error("Failed to persist refresh token hash", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist refresh token hash")
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
