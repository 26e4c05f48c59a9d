// Package auth provides infrastructure implementations of the domain's
// credential services: bcrypt hashing and JWT issuing/validation.
package auth

import (
	"shelfmark/config"
	domainService "shelfmark/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher implements service.PasswordHasher using the bcrypt algorithm.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the configured cost. A cost outside
// bcrypt's valid range falls back to the library default.
func NewBcryptHasher(cfg *config.Config) domainService.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted bcrypt hash from a plaintext secret.
func (h *bcryptHasher) Hash(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt.GenerateFromPassword")
	}

	return string(bytes), nil
}

// Check compares a plaintext secret with a bcrypt hash. Any failure,
// including a malformed digest, reads as a mismatch.
func (h *bcryptHasher) Check(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
