package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// TokenIssuer mints session tokens; *jwtx.Codec implements it.
type TokenIssuer interface {
	Issue(accountID, tenantID, role string) (string, time.Time, error)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTPCode  string `json:"otp_code"`
	TenantID idx.ID `json:"tenant_id"`
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Profile   domain.Profile
}

// SessionIssuer authenticates credentials and mints a tenant scoped token.
type SessionIssuer struct {
	Store    store.Store
	Hasher   *cryptox.PasswordHasher
	Tokens   TokenIssuer
	Selector TenantSelector // FirstJoined when nil
	MFA      *MFAService
	Audit    Auditor
}

// Login checks credentials and returns a session. Unknown emails, the
// password-less system identity and wrong passwords all fail with the same
// ErrBadCredentials after the same bcrypt work.
func (s *SessionIssuer) Login(ctx context.Context, c Credentials) (Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Lookup
	a, err := s.Store.Accounts().GetAccountByEmail(ctx, c.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Session{}, err
	}
	if err != nil || !a.CanLogin() {
		s.Hasher.VerifyDummy(c.Password)
		log.Info("login failed", slog.String("reason", "unknown account"))
		return Session{}, domain.ErrBadCredentials
	}

	// 2. Password
	if err := s.Hasher.Verify(c.Password, a.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("password verification failed", slog.String("account_id", a.ID.String()), slog.Any("error", err))
		}
		log.Info("login failed", slog.String("reason", "bad password"), slog.String("account_id", a.ID.String()))
		return Session{}, domain.ErrBadCredentials
	}

	// 3. Status
	if a.Status != domain.AccountActive {
		log.Info("login refused", slog.String("reason", "account "+string(a.Status)), slog.String("account_id", a.ID.String()))
		return Session{}, domain.ErrAccountDisabled
	}

	// 4. Second factor
	if a.MFAEnabled() && s.MFA != nil {
		if c.OTPCode == "" {
			return Session{}, domain.ErrMFARequired
		}
		ok, err := s.MFA.check(a, c.OTPCode)
		if err != nil {
			return Session{}, err
		}
		if !ok {
			log.Info("login failed", slog.String("reason", "bad otp"), slog.String("account_id", a.ID.String()))
			return Session{}, domain.ErrBadCredentials
		}
	}

	// 5. Tenant
	ms, err := s.Store.Memberships().ListMembershipsByAccount(ctx, a.ID)
	if err != nil {
		return Session{}, err
	}
	if len(ms) == 0 {
		return Session{}, domain.ErrNoTenant
	}
	m, err := s.selector(c).Select(ctx, ms)
	if err != nil {
		return Session{}, err
	}
	tenant, err := s.Store.Tenants().GetTenantByID(ctx, m.TenantID)
	if err != nil {
		return Session{}, notFoundAs(err, domain.ErrNoTenant)
	}

	// 6. Token
	token, expiresAt, err := s.Tokens.Issue(a.ID.String(), m.TenantID.String(), string(m.Role))
	if err != nil {
		log.Error("failed to issue token", slog.Any("error", err))
		return Session{}, err
	}

	log.Info("login succeeded",
		slog.String("account_id", a.ID.String()),
		slog.String("tenant_id", m.TenantID.String()),
		slog.String("role", string(m.Role)),
	)
	record(ctx, s.Audit, AuditEntry{
		Action:     domain.ActionLoginSucceeded,
		TargetType: "account",
		TargetID:   a.ID.String(),
		TenantID:   m.TenantID,
		ActorID:    a.ID,
	})

	return Session{Token: token, ExpiresAt: expiresAt, Profile: newProfile(a, m, tenant)}, nil
}

func (s *SessionIssuer) selector(c Credentials) TenantSelector {
	if !c.TenantID.IsZero() {
		return PreferTenant{TenantID: c.TenantID}
	}
	if s.Selector != nil {
		return s.Selector
	}
	return FirstJoined{}
}

func newProfile(a domain.Account, m domain.Membership, t domain.Tenant) domain.Profile {
	return domain.Profile{
		AccountID:          a.ID,
		Email:              a.Email,
		FamilyName:         a.FamilyName,
		GivenName:          a.GivenName,
		FamilyNamePhonetic: a.FamilyNamePhonetic,
		GivenNamePhonetic:  a.GivenNamePhonetic,
		TenantID:           t.ID,
		TenantCode:         t.Code,
		TenantName:         t.Name,
		Role:               m.Role,
		MFAEnabled:         a.MFAEnabled(),
	}
}
