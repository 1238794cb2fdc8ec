package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const DefaultMFAIssuer = "Roster"

var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// Enrollment is what an authenticator app needs to add the account.
type Enrollment struct {
	Secret string `json:"secret"`
	URL    string `json:"otpauth_url"`
}

// MFAService manages TOTP second factors. Seeds are stored sealed with
// Box and only opened to check a code.
type MFAService struct {
	Store  store.Store
	Box    *cryptox.SecretBox
	Issuer string
	Audit  Auditor
	Now    func() time.Time
}

// Enroll generates a fresh seed for the account. MFA stays off until
// Activate confirms a code from it; enrolling again replaces the seed.
func (s *MFAService) Enroll(ctx context.Context, accountID idx.ID) (Enrollment, error) {
	a, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return Enrollment{}, notFoundAs(err, domain.ErrUnauthenticated)
	}
	if a.MFAEnabled() {
		return Enrollment{}, domain.ErrMFAAlreadyEnabled
	}

	issuer := s.Issuer
	if issuer == "" {
		issuer = DefaultMFAIssuer
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: a.Email,
		Period:      totpOpts.Period,
		Digits:      totpOpts.Digits,
		Algorithm:   totpOpts.Algorithm,
	})
	if err != nil {
		return Enrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	sealed, err := s.Box.EncryptSecret([]byte(key.Secret()))
	if err != nil {
		return Enrollment{}, fmt.Errorf("failed to seal TOTP secret: %w", err)
	}
	if err := s.Store.Accounts().SetMFASecret(ctx, a.ID, sealed, clock(s.Now)); err != nil {
		return Enrollment{}, fmt.Errorf("failed to store MFA secret: %w", err)
	}

	return Enrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

// Activate turns MFA on once code proves the seed reached the user.
func (s *MFAService) Activate(ctx context.Context, accountID idx.ID, code string) error {
	a, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return notFoundAs(err, domain.ErrUnauthenticated)
	}
	if a.MFAEnabled() {
		return domain.ErrMFAAlreadyEnabled
	}
	if len(a.MFASecret) == 0 {
		return domain.ErrMFANotEnrolled
	}

	ok, err := s.check(a, code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidOTP
	}

	err = s.Store.Accounts().EnableMFA(ctx, a.ID, clock(s.Now))
	if errors.Is(err, store.ErrConflict) {
		return domain.ErrMFAAlreadyEnabled
	}
	if err != nil {
		return err
	}

	record(ctx, s.Audit, AuditEntry{
		Action:     domain.ActionMFAEnabled,
		TargetType: "account",
		TargetID:   a.ID.String(),
		ActorID:    a.ID,
	})
	return nil
}

// Disable turns MFA off and forgets the seed. A current code is required.
func (s *MFAService) Disable(ctx context.Context, accountID idx.ID, code string) error {
	a, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return notFoundAs(err, domain.ErrUnauthenticated)
	}
	if !a.MFAEnabled() {
		return domain.ErrMFANotEnrolled
	}

	ok, err := s.check(a, code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidOTP
	}

	if err := s.Store.Accounts().DisableMFA(ctx, a.ID, clock(s.Now)); err != nil {
		return err
	}

	record(ctx, s.Audit, AuditEntry{
		Action:     domain.ActionMFADisabled,
		TargetType: "account",
		TargetID:   a.ID.String(),
		ActorID:    a.ID,
	})
	return nil
}

// check reports whether code is valid for the account's seed right now.
func (s *MFAService) check(a domain.Account, code string) (bool, error) {
	if len(a.MFASecret) == 0 || code == "" {
		return false, nil
	}
	secret, err := s.Box.DecryptSecret(a.MFASecret)
	if err != nil {
		return false, fmt.Errorf("failed to open MFA secret: %w", err)
	}
	ok, err := totp.ValidateCustom(code, string(secret), clock(s.Now), totpOpts)
	if err != nil {
		// Malformed codes are just wrong codes.
		return false, nil
	}
	return ok, nil
}
