package service

import (
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRegisterHappyPath(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", intPtr(10))
	inv, token := e.invite(t, tn.ID, "new@example.com", "E-7")

	a, err := e.registrar.Register(e.ctx, Registration{
		InvitationToken:    token,
		Email:              "new@example.com",
		Password:           strongPassword,
		FamilyName:         "Suzuki",
		GivenName:          "Ren",
		FamilyNamePhonetic: "スズキ",
	})
	require.NoError(t, err)
	require.Equal(t, "new@example.com", a.Email)
	require.Equal(t, domain.AccountActive, a.Status)
	require.NoError(t, e.hasher.Verify(strongPassword, a.PasswordHash))

	// Created by the system identity, which created itself.
	sys, err := e.store.Accounts().GetAccountByEmail(e.ctx, DefaultSystemEmail)
	require.NoError(t, err)
	require.Equal(t, sys.ID, sys.CreatedBy)
	require.Equal(t, sys.ID, a.CreatedBy)
	require.False(t, sys.CanLogin())

	m, err := e.store.Memberships().GetMembership(e.ctx, a.ID, tn.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleEmployee, m.Role)

	job, err := e.store.Employments().GetEmploymentByEmployeeNo(e.ctx, tn.ID, "E-7")
	require.NoError(t, err)
	require.Equal(t, a.ID, job.AccountID)
	require.Equal(t, domain.EmploymentFulltime, job.Type)
	require.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), job.HireDate, "today in Asia/Tokyo")

	stored, err := e.store.Invitations().GetInvitationByID(e.ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationUsed, stored.Status)
	require.Equal(t, 1, stored.UsedCount)
	require.Equal(t, a.ID, stored.UsedBy)

	require.Equal(t, []string{
		domain.ActionInvitationIssued,
		domain.ActionAccountCreated,
		domain.ActionMembershipCreated,
		domain.ActionEmploymentCreated,
		domain.ActionInvitationConsumed,
	}, e.audit.actions())

	// Second use of the same token.
	_, err = e.registrar.Register(e.ctx, Registration{
		InvitationToken: token, Email: "new@example.com", Password: strongPassword, FamilyName: "x", GivenName: "y",
	})
	require.ErrorIs(t, err, domain.ErrInvitationInvalid)
}

func TestRegisterUsesInvitationDefaults(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)

	hire := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	_, token, err := e.ledger.Issue(e.ctx, IssueInvitation{
		TenantID:       tn.ID,
		Email:          "pt@example.com",
		Role:           domain.RoleManager,
		EmployeeNo:     "P-1",
		EmploymentType: domain.EmploymentParttime,
		HireDate:       &hire,
	})
	require.NoError(t, err)

	a, err := e.registrar.Register(e.ctx, Registration{
		InvitationToken: token, Email: "pt@example.com", Password: strongPassword, FamilyName: "Ito", GivenName: "Sora",
	})
	require.NoError(t, err)

	job, err := e.store.Employments().GetEmploymentByEmployeeNo(e.ctx, tn.ID, "P-1")
	require.NoError(t, err)
	require.Equal(t, a.ID, job.AccountID)
	require.Equal(t, domain.EmploymentParttime, job.Type)
	require.Equal(t, hire, job.HireDate)

	m, err := e.store.Memberships().GetMembership(e.ctx, a.ID, tn.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, m.Role)
}

func TestRegisterExpiredInvitation(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)
	inv, token := e.invite(t, tn.ID, "late@example.com", "E-1")

	e.clock.Advance(8 * 24 * time.Hour)

	_, err := e.registrar.Register(e.ctx, Registration{
		InvitationToken: token, Email: "late@example.com", Password: strongPassword, FamilyName: "A", GivenName: "B",
	})
	require.ErrorIs(t, err, domain.ErrInvitationInvalid)

	stored, err := e.store.Invitations().GetInvitationByID(e.ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationExpired, stored.Status, "expiry persists although registration failed")

	_, err = e.store.Accounts().GetAccountByEmail(e.ctx, "late@example.com")
	require.Error(t, err)
}

func TestRegisterExistingAccount(t *testing.T) {
	e := newEnv(t)
	home := e.tenant(t, "home", nil)
	other := e.tenant(t, "other", nil)

	existing := e.member(t, home.ID, "both@example.com", "H-1")
	_, token := e.invite(t, other.ID, "both@example.com", "O-1")

	t.Run("password is refused", func(t *testing.T) {
		_, err := e.registrar.Register(e.ctx, Registration{
			InvitationToken: token, Email: "both@example.com", Password: strongPassword,
		})
		require.ErrorIs(t, err, domain.ErrUnexpectedPassword)
	})

	t.Run("joins without password", func(t *testing.T) {
		a, err := e.registrar.Register(e.ctx, Registration{InvitationToken: token, Email: "both@example.com"})
		require.NoError(t, err)
		require.Equal(t, existing.ID, a.ID)
		require.NoError(t, e.hasher.Verify(strongPassword, a.PasswordHash), "password unchanged")

		ms, err := e.store.Memberships().ListMembershipsByAccount(e.ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, ms, 2)
	})
}

func TestRegisterRejectsBadInput(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)
	inv, token := e.invite(t, tn.ID, "in@example.com", "E-1")

	cases := []struct {
		name  string
		reg   Registration
		want  error
		field string
	}{
		{"email mismatch", Registration{Email: "In@example.com", Password: strongPassword, FamilyName: "a", GivenName: "b"}, domain.ErrEmailMismatch, ""},
		{"missing password", Registration{Email: "in@example.com", FamilyName: "a", GivenName: "b"}, domain.ErrMissingRequiredField, "password"},
		{"missing given name", Registration{Email: "in@example.com", Password: strongPassword, FamilyName: "a"}, domain.ErrMissingRequiredField, "given_name"},
		{"missing family name", Registration{Email: "in@example.com", Password: strongPassword, GivenName: "b"}, domain.ErrMissingRequiredField, "family_name"},
		{"weak password", Registration{Email: "in@example.com", Password: "alllowercase", FamilyName: "a", GivenName: "b"}, domain.ErrWeakPassword, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.reg.InvitationToken = token
			_, err := e.registrar.Register(e.ctx, tc.reg)
			require.ErrorIs(t, err, tc.want)

			if tc.field != "" {
				var fe *domain.FieldError
				require.ErrorAs(t, err, &fe)
				require.Equal(t, tc.field, fe.Field)
			}
		})
	}

	stored, err := e.store.Invitations().GetInvitationByID(e.ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, stored.Status)
	require.Zero(t, stored.UsedCount)
}

func TestRegisterRechecksCapacity(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "tiny", intPtr(1))

	// Both invitations fit while nobody has joined yet.
	_, first := e.invite(t, tn.ID, "one@example.com", "E-1")
	inv2, second := e.invite(t, tn.ID, "two@example.com", "E-2")

	_, err := e.registrar.Register(e.ctx, Registration{
		InvitationToken: first, Email: "one@example.com", Password: strongPassword, FamilyName: "a", GivenName: "b",
	})
	require.NoError(t, err)

	_, err = e.registrar.Register(e.ctx, Registration{
		InvitationToken: second, Email: "two@example.com", Password: strongPassword, FamilyName: "a", GivenName: "b",
	})
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)

	require.Equal(t, 1, countMembers(t, e.store, tn.ID))
	_, err = e.store.Accounts().GetAccountByEmail(e.ctx, "two@example.com")
	require.Error(t, err, "rolled back")

	stored, err := e.store.Invitations().GetInvitationByID(e.ctx, inv2.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, stored.Status)
}

func TestRegisterEmployeeNumberTaken(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)
	e.member(t, tn.ID, "first@example.com", "E-1")

	_, token := e.invite(t, tn.ID, "second@example.com", "E-1")
	_, err := e.registrar.Register(e.ctx, Registration{
		InvitationToken: token, Email: "second@example.com", Password: strongPassword, FamilyName: "a", GivenName: "b",
	})
	require.ErrorIs(t, err, domain.ErrInvitationInvalid)

	_, err = e.store.Accounts().GetAccountByEmail(e.ctx, "second@example.com")
	require.Error(t, err, "rolled back")
}

func TestRegisterSingleUseUnderConcurrency(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)
	inv, token := e.invite(t, tn.ID, "race@example.com", "E-1")

	const n = 8
	results := make([]error, n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			_, results[i] = e.registrar.Register(e.ctx, Registration{
				InvitationToken: token, Email: "race@example.com", Password: strongPassword, FamilyName: "a", GivenName: "b",
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		// Losers either saw the invitation spent or the account already made.
		require.True(t,
			errors.Is(err, domain.ErrInvitationInvalid) || errors.Is(err, domain.ErrUnexpectedPassword),
			"unexpected error: %v", err)
	}
	require.Equal(t, 1, wins)

	stored, err := e.store.Invitations().GetInvitationByID(e.ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.UsedCount)
	require.Equal(t, 1, countMembers(t, e.store, tn.ID))
}

func TestBootstrapResolveIsIdempotent(t *testing.T) {
	e := newEnv(t)

	const n = 16
	ids := make([]idx.ID, n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			if i%2 == 0 {
				var err error
				ids[i], err = e.bootstrap.Resolve(e.ctx, e.store)
				return err
			}
			return e.store.WithTx(e.ctx, func(tx store.Tx) error {
				var err error
				ids[i], err = e.bootstrap.Resolve(e.ctx, tx)
				return err
			})
		})
	}
	require.NoError(t, g.Wait())

	for _, id := range ids {
		require.Equal(t, ids[0], id)
	}

	sys, err := e.store.Accounts().GetAccountByEmail(e.ctx, DefaultSystemEmail)
	require.NoError(t, err)
	require.Equal(t, ids[0], sys.ID)
	require.Equal(t, sys.ID, sys.CreatedBy)
	require.Equal(t, sys.ID, sys.UpdatedBy)
}

func TestRegisterMultiUseInvitation(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)

	inv, token, err := e.ledger.Issue(e.ctx, IssueInvitation{
		TenantID:   tn.ID,
		Email:      "twice@example.com",
		Role:       domain.RoleEmployee,
		EmployeeNo: "E-1",
		MaxUses:    2,
	})
	require.NoError(t, err)

	first := e.clock.Now()
	a, err := e.registrar.Register(e.ctx, Registration{
		InvitationToken: token, Email: "twice@example.com", Password: strongPassword, FamilyName: "Mori", GivenName: "Aoi",
	})
	require.NoError(t, err)

	stored, err := e.store.Invitations().GetInvitationByID(e.ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, stored.Status, "one use left")
	require.Equal(t, 1, stored.UsedCount)
	require.Equal(t, a.ID, stored.UsedBy)
	require.Equal(t, first, *stored.UsedAt)

	// The second redemption finds the account and reuses its rows.
	e.clock.Advance(time.Hour)
	again, err := e.registrar.Register(e.ctx, Registration{InvitationToken: token, Email: "twice@example.com"})
	require.NoError(t, err)
	require.Equal(t, a.ID, again.ID)

	stored, err = e.store.Invitations().GetInvitationByID(e.ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationUsed, stored.Status)
	require.Equal(t, 2, stored.UsedCount)
	require.Equal(t, a.ID, stored.UsedBy, "first consumer is kept")
	require.Equal(t, first, *stored.UsedAt)
	require.Equal(t, 1, countMembers(t, e.store, tn.ID))

	_, err = e.registrar.Register(e.ctx, Registration{InvitationToken: token, Email: "twice@example.com"})
	require.ErrorIs(t, err, domain.ErrInvitationInvalid)
}

func TestRegisterRejectsSystemEmailInvitation(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", intPtr(5))

	sysID, err := e.bootstrap.Resolve(e.ctx, e.store)
	require.NoError(t, err)

	// Written straight to the store, as Issue refuses this address.
	const token = "reserved-invitation-token"
	inv := domain.Invitation{
		ID:         idx.New(),
		TenantID:   tn.ID,
		Email:      DefaultSystemEmail,
		TokenHash:  cryptox.FingerprintToken(token),
		Role:       domain.RoleAdmin,
		EmployeeNo: "SYS-1",
		ExpiresAt:  e.clock.Now().Add(24 * time.Hour),
		MaxUses:    1,
		Status:     domain.InvitationPending,
		Stamp:      domain.NewStamp(e.clock.Now(), sysID),
	}
	require.NoError(t, e.store.Invitations().CreateInvitation(e.ctx, inv))

	_, err = e.registrar.Register(e.ctx, Registration{InvitationToken: token, Email: DefaultSystemEmail})
	require.ErrorIs(t, err, domain.ErrInvitationInvalid)

	_, err = e.store.Memberships().GetMembership(e.ctx, sysID, tn.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.Zero(t, countMembers(t, e.store, tn.ID))

	stored, err := e.store.Invitations().GetInvitationByID(e.ctx, inv.ID)
	require.NoError(t, err)
	require.Zero(t, stored.UsedCount)
}
