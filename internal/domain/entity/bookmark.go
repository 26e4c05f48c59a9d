// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is a per-user saved link. Ownership is enforced at the use case
// layer: only the owning user may read, edit or delete it.
type Bookmark struct {
	ID          uuid.UUID // The unique identifier for this bookmark.
	UserID      uuid.UUID // Links the bookmark to the User that owns it.
	Title       string    // Short display title.
	Description string    // Optional free-form description.
	Link        string    // The bookmarked URL.
	CreatedAt   time.Time // Timestamp of when this bookmark was created.
	UpdatedAt   time.Time // Timestamp of the last modification.
}
