// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// The email address doubles as the sign-in key.
type User struct {
	ID        uuid.UUID // The unique identifier for the user.
	Email     string    // The user's email address, unique across all accounts and fixed at creation.
	FirstName string    // Optional display first name, editable via profile edit.
	LastName  string    // Optional display last name, editable via profile edit.

	// HashedPassword is the one-way bcrypt hash of the account password.
	// It is never serialized outward.
	HashedPassword string

	// HashedRefreshToken is the bcrypt hash of the single currently valid
	// refresh token. Nil means the account has no active session. The
	// plaintext refresh token handed to the client is never stored.
	HashedRefreshToken *string

	Roles     Roles     // Role names attached through the user_roles join relation.
	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this account.
}

// HasActiveSession reports whether the account currently holds a refresh
// token slot, i.e. whether a session is live from the server's perspective.
func (u *User) HasActiveSession() bool {
	return u.HashedRefreshToken != nil
}
