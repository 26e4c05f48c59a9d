// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"shelfmark/internal/domain/entity"
	domainerrors "shelfmark/internal/domain/errors"
	"shelfmark/internal/domain/repository"
	"shelfmark/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading their roles.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		First(&userM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address, preloading roles.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		First(&userM, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity together with its role assignments.
// Role rows are shared across users, so they are resolved with FirstOrCreate
// instead of being inserted per user.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	roleModels := make([]*model.RoleModel, 0, len(user.Roles))
	for _, role := range user.Roles {
		roleM := &model.RoleModel{Name: role.String()}
		if err := repo.db.WithContext(ctx).
			Where("name = ?", role.String()).
			FirstOrCreate(roleM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to resolve role")
		}
		roleModels = append(roleModels, roleM)
	}
	userM.Roles = roleModels

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("invalid foreign key reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user's profile columns. The email column and
// role assignments are not touched here; email is fixed at creation.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	updates := map[string]any{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(updates)
	if err := result.Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserUpdateFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SetRefreshTokenHash writes the single refresh token slot for a user.
// A nil hash clears the slot. Updating a missing user is a no-op so that
// repeated sign-outs stay idempotent.
func (repo *userRepository) SetRefreshTokenHash(ctx context.Context, userID uuid.UUID, hash *string) error {
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update("hashed_refresh_token", hash).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to set refresh token hash")
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	roles := make(entity.Roles, 0, len(data.Roles))
	for _, roleM := range data.Roles {
		roles = append(roles, entity.Role(roleM.Name))
	}

	return &entity.User{
		ID:                 data.ID,
		Email:              data.Email,
		FirstName:          data.FirstName,
		LastName:           data.LastName,
		HashedPassword:     data.HashedPassword,
		HashedRefreshToken: data.HashedRefreshToken,
		Roles:              roles,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                 data.ID,
		Email:              data.Email,
		FirstName:          data.FirstName,
		LastName:           data.LastName,
		HashedPassword:     data.HashedPassword,
		HashedRefreshToken: data.HashedRefreshToken,
	}
}
