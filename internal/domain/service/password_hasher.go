// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for one-way hashing and verification.
// It is used identically for account passwords and for refresh tokens at
// rest. This abstracts the underlying algorithm (e.g., bcrypt), keeping the
// domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext secret. Output differs
	// between calls for equal inputs.
	Hash(secret string) (string, error)

	// Check compares a plaintext secret with a hash to see if they match.
	// A malformed digest is a mismatch, never an error.
	Check(secret, hash string) bool
}
