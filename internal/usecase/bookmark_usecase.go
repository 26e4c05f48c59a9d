package usecase

import (
	"context"
	"time"

	"shelfmark/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateBookmarkInput defines the data required to create a bookmark.
type CreateBookmarkInput struct {
	Title       string
	Description string
	Link        string
}

// EditBookmarkInput defines the updatable bookmark fields. Nil pointers
// mean "leave unchanged".
type EditBookmarkInput struct {
	Title       *string
	Description *string
	Link        *string
}

// ListBookmarksInput defines pagination for listing a user's bookmarks.
type ListBookmarksInput struct {
	Page  int
	Limit int
	Order string
}

// --- Output DTOs ---

// BookmarkOutput returns a bookmark's public representation.
type BookmarkOutput struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookmarkUsecase defines the interface for bookmark operations. Every
// operation is scoped to the acting user; cross-user access is denied in
// this layer, never in the repositories.
type BookmarkUsecase interface {
	// CreateBookmark stores a new bookmark owned by the acting user.
	CreateBookmark(ctx context.Context, userID uuid.UUID, input CreateBookmarkInput) (*BookmarkOutput, error)

	// GetBookmark returns one of the acting user's bookmarks.
	GetBookmark(ctx context.Context, userID, bookmarkID uuid.UUID) (*BookmarkOutput, error)

	// ListBookmarks pages through the acting user's bookmarks.
	ListBookmarks(ctx context.Context, userID uuid.UUID, input ListBookmarksInput) ([]*BookmarkOutput, error)

	// EditBookmark applies a partial update to one of the acting user's bookmarks.
	EditBookmark(ctx context.Context, userID, bookmarkID uuid.UUID, input EditBookmarkInput) (*BookmarkOutput, error)

	// DeleteBookmark removes one of the acting user's bookmarks.
	DeleteBookmark(ctx context.Context, userID, bookmarkID uuid.UUID) error

	// ShareBookmarkQR renders the bookmark's link as a PNG QR code.
	ShareBookmarkQR(ctx context.Context, userID, bookmarkID uuid.UUID) ([]byte, error)
}

// NewBookmarkOutput maps a domain bookmark to its public representation.
func NewBookmarkOutput(bookmark *entity.Bookmark) *BookmarkOutput {
	return &BookmarkOutput{
		ID:          bookmark.ID,
		UserID:      bookmark.UserID,
		Title:       bookmark.Title,
		Description: bookmark.Description,
		Link:        bookmark.Link,
		CreatedAt:   bookmark.CreatedAt,
		UpdatedAt:   bookmark.UpdatedAt,
	}
}
