// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"shelfmark/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookmarkNotFound is a domain-specific error returned when a bookmark is not found.
var ErrBookmarkNotFound = errors.New("bookmark not found")

// ListBookmarksParams controls pagination and ordering for bookmark listings.
// Zero values fall back to the repository defaults (first page, limit 10,
// ascending creation order).
type ListBookmarksParams struct {
	Page  int
	Limit int
	Order string // "asc" or "desc", applied to created_at
}

// BookmarkRepository defines the standard operations for bookmark persistence.
type BookmarkRepository interface {
	// Create persists a new bookmark entity to the storage.
	Create(ctx context.Context, bookmark *entity.Bookmark) error

	// FindByID retrieves a single bookmark by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bookmark, error)

	// FindByUserID retrieves a page of bookmarks owned by the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID, params ListBookmarksParams) ([]*entity.Bookmark, error)

	// Update modifies an existing bookmark entity in the storage.
	Update(ctx context.Context, bookmark *entity.Bookmark) error

	// Delete removes a bookmark by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
