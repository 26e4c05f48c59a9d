// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SignInInput defines the data required to log in.
type SignInInput struct {
	Email    string
	Password string
}

// RefreshInput defines the data required to rotate a session.
type RefreshInput struct {
	UserID       uuid.UUID
	RefreshToken string
}

// --- Output DTOs ---

// TokenPairOutput returns the freshly signed token pair.
type TokenPairOutput struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthUsecase defines the interface for authentication and session
// management operations. This is the contract the delivery layer depends on.
type AuthUsecase interface {
	// SignUp registers a new account and opens its first session.
	SignUp(ctx context.Context, input SignUpInput) (*TokenPairOutput, error)

	// SignIn verifies credentials and replaces any existing session.
	SignIn(ctx context.Context, input SignInInput) (*TokenPairOutput, error)

	// Refresh rotates the presented refresh token for a new pair.
	Refresh(ctx context.Context, input RefreshInput) (*TokenPairOutput, error)

	// SignOut clears the user's refresh token slot. Idempotent.
	SignOut(ctx context.Context, userID uuid.UUID) error
}
