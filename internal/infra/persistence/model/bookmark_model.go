package model

import (
	"time"

	"github.com/google/uuid"
)

// BookmarkModel mirrors the 'bookmarks' table. Every bookmark belongs to
// exactly one user; deleting the user cascades to their bookmarks.
type BookmarkModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Link        string    `gorm:"type:text;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (BookmarkModel) TableName() string {
	return "bookmarks"
}
