package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a password does not match a hash.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// DefaultBcryptCost is used when a hasher is built with cost 0.
const DefaultBcryptCost = 12

// PasswordHasher hashes passwords with bcrypt after an HMAC-SHA256 pepper
// pre-hash. The pre-hash is base64 encoded, so it always fits inside
// bcrypt's 72 byte input limit and long passwords are not truncated.
type PasswordHasher struct {
	pepper []byte
	cost   int

	dummyOnce sync.Once
	dummy     []byte
}

// NewPasswordHasher returns a hasher keyed by pepper.
func NewPasswordHasher(pepper []byte, cost int) (*PasswordHasher, error) {
	if len(pepper) == 0 {
		return nil, errors.New("cryptox: empty pepper")
	}
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("cryptox: bcrypt cost %d out of range", cost)
	}
	return &PasswordHasher{pepper: append([]byte(nil), pepper...), cost: cost}, nil
}

func (h *PasswordHasher) prehash(password string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(password))
	sum := mac.Sum(nil)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum)
	return out
}

// Hash returns the bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(h.prehash(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares password against hash. A mismatch is reported as
// ErrPasswordMismatch; a malformed hash as a distinct error.
func (h *PasswordHasher) Verify(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), h.prehash(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("cryptox: verify password: %w", err)
	}
}

// VerifyDummy burns the same CPU as Verify against a throwaway hash. Call
// it when there is no account to check so the response time does not
// reveal whether the email exists.
func (h *PasswordHasher) VerifyDummy(password string) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("roster-dummy-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, h.prehash(password))
}
