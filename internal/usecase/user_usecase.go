package usecase

import (
	"context"
	"time"

	"shelfmark/internal/domain/entity"

	"github.com/google/uuid"
)

// EditUserInput defines the updatable profile fields. Nil pointers mean
// "leave unchanged".
type EditUserInput struct {
	FirstName *string
	LastName  *string
}

// UserOutput returns a user's public profile. Credential material never
// leaves the use case layer.
type UserOutput struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserUsecase defines the interface for user profile operations.
type UserUsecase interface {
	// GetMe returns the authenticated user's own profile.
	GetMe(ctx context.Context, userID uuid.UUID) (*UserOutput, error)

	// EditUser applies a partial update to the user's profile.
	EditUser(ctx context.Context, userID uuid.UUID, input EditUserInput) (*UserOutput, error)
}

// NewUserOutput maps a domain user to its public representation.
func NewUserOutput(user *entity.User) *UserOutput {
	return &UserOutput{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     user.Roles.ToStrings(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
