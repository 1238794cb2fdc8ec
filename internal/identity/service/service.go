// Package service holds the identity use cases: invitations, registration,
// sessions and the account self-service flows around them. Services talk
// to the database only through store.Store and report failures with the
// domain error taxonomy.
package service

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// clock returns now in UTC, from f when set.
func clock(f func() time.Time) time.Time {
	if f == nil {
		return time.Now().UTC()
	}
	return f().UTC()
}

// notFoundAs replaces store.ErrNotFound with target.
func notFoundAs(err, target error) error {
	if errors.Is(err, store.ErrNotFound) {
		return target
	}
	return err
}

// invalid wraps a request validation failure so it carries both the
// taxonomy code and the per-field details.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrValidation, err)
}

var passwordRules = []validation.Rule{
	validation.Length(12, 0),
	validation.Match(regexp.MustCompile(`[a-z]`)),
	validation.Match(regexp.MustCompile(`[A-Z]`)),
	validation.Match(regexp.MustCompile(`[0-9]`)),
	validation.Match(regexp.MustCompile(`[^A-Za-z0-9]`)),
}

// CheckPassword applies the password policy: at least 12 characters with
// lower case, upper case, a digit and a symbol.
func CheckPassword(password string) error {
	if password == "" {
		return domain.MissingField("password")
	}
	if err := validation.Validate(password, passwordRules...); err != nil {
		return &domain.FieldError{Field: "password", Err: domain.ErrWeakPassword}
	}
	return nil
}
