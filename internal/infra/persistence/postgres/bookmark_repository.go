package postgres

import (
	"context"
	"strings"

	"shelfmark/internal/domain/entity"
	domainerrors "shelfmark/internal/domain/errors"
	"shelfmark/internal/domain/repository"
	"shelfmark/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookmarkRepository implements the domain.BookmarkRepository interface using GORM.
type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository is the constructor for bookmarkRepository.
func NewBookmarkRepository(db *gorm.DB) repository.BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Create persists a new bookmark.
func (repo *bookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	bookmarkM := fromBookmarkDomain(bookmark)

	if err := repo.db.WithContext(ctx).Create(bookmarkM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required bookmark information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create bookmark")
	}

	bookmark.ID = bookmarkM.ID
	bookmark.CreatedAt = bookmarkM.CreatedAt
	bookmark.UpdatedAt = bookmarkM.UpdatedAt

	return nil
}

// FindByID retrieves a single bookmark by its unique ID regardless of owner.
// Ownership decisions belong to the use case layer.
func (repo *bookmarkRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bookmark, error) {
	var bookmarkM model.BookmarkModel
	err := repo.db.WithContext(ctx).First(&bookmarkM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookmarkNotFound
		}

		return nil, errors.Wrap(err, "failed to find bookmark by id")
	}

	return toBookmarkDomain(&bookmarkM), nil
}

// FindByUserID lists a user's bookmarks with pagination, ordered by creation time.
func (repo *bookmarkRepository) FindByUserID(ctx context.Context, userID uuid.UUID, params repository.ListBookmarksParams) ([]*entity.Bookmark, error) {
	order := "created_at ASC"
	if strings.EqualFold(params.Order, "desc") {
		order = "created_at DESC"
	}

	offset := (params.Page - 1) * params.Limit

	var bookmarkModels []*model.BookmarkModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(order).
		Limit(params.Limit).
		Offset(offset).
		Find(&bookmarkModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookmarks")
	}

	bookmarks := make([]*entity.Bookmark, 0, len(bookmarkModels))
	for _, bookmarkM := range bookmarkModels {
		bookmarks = append(bookmarks, toBookmarkDomain(bookmarkM))
	}

	return bookmarks, nil
}

// Update modifies an existing bookmark's content columns.
func (repo *bookmarkRepository) Update(ctx context.Context, bookmark *entity.Bookmark) error {
	updates := map[string]any{
		"title":       bookmark.Title,
		"description": bookmark.Description,
		"link":        bookmark.Link,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.BookmarkModel{}).
		Where("id = ?", bookmark.ID).
		Updates(updates)
	if err := result.Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required bookmark information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update bookmark")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookmarkNotFound
	}

	return nil
}

// Delete removes a bookmark by ID.
func (repo *bookmarkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.BookmarkModel{}, "id = ?", id)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete bookmark")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookmarkNotFound
	}

	return nil
}

// toBookmarkDomain converts a GORM BookmarkModel to a domain Bookmark entity.
func toBookmarkDomain(data *model.BookmarkModel) *entity.Bookmark {
	if data == nil {
		return nil
	}

	return &entity.Bookmark{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Link:        data.Link,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromBookmarkDomain converts a domain Bookmark entity to a GORM BookmarkModel.
func fromBookmarkDomain(data *entity.Bookmark) *model.BookmarkModel {
	if data == nil {
		return nil
	}

	return &model.BookmarkModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Link:        data.Link,
	}
}
