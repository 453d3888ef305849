package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayurveda/iam-service/internal/core/domain"
)

const defaultHashSlots = 8

// PasswordHasher abstracts credential hashing so services can be tested with
// a cheap fake.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// BcryptHasher hashes passwords with bcrypt. Hashing is deliberately slow,
// so concurrent invocations are bounded by a semaphore to keep a burst of
// logins from monopolising the server's workers.
type BcryptHasher struct {
	cost  int
	slots chan struct{}
}

// NewBcryptHasher creates a hasher with the given cost and concurrency bound.
// Out-of-range cost falls back to bcrypt.DefaultCost; maxConcurrent <= 0
// falls back to defaultHashSlots.
func NewBcryptHasher(cost, maxConcurrent int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = defaultHashSlots
	}
	return &BcryptHasher{
		cost:  cost,
		slots: make(chan struct{}, maxConcurrent),
	}
}

// Hash returns a salted one-way hash of password. Empty input is rejected.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
	}

	h.slots <- struct{}{}
	defer func() { <-h.slots }()

	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

// Verify reports whether password matches hash. bcrypt's comparison runs in
// time independent of where a mismatch occurs.
func (h *BcryptHasher) Verify(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}

	h.slots <- struct{}{}
	defer func() { <-h.slots }()

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
