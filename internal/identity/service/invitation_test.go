package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestIssueInvitation(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)

	inv, token, err := e.ledger.Issue(e.ctx, IssueInvitation{
		TenantID:   tn.ID,
		Email:      "new@example.com",
		Role:       domain.RoleManager,
		EmployeeNo: "E-1",
		IssuedBy:   idx.Zero,
	})
	require.NoError(t, err)
	require.Len(t, token, 43, "256 bits, base64url")
	require.Equal(t, cryptox.FingerprintToken(token), inv.TokenHash)
	require.NotContains(t, inv.TokenHash, token)
	require.Equal(t, domain.InvitationPending, inv.Status)
	require.Equal(t, 1, inv.MaxUses)
	require.Equal(t, e.clock.Now().Add(7*24*time.Hour), inv.ExpiresAt)
	require.Equal(t, []string{domain.ActionInvitationIssued}, e.audit.actions())

	got, err := e.ledger.Validate(e.ctx, token)
	require.NoError(t, err)
	require.Equal(t, inv.ID, got.ID)
}

func TestIssueInvitationValidation(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)

	_, _, err := e.ledger.Issue(e.ctx, IssueInvitation{TenantID: tn.ID, Email: "nope", Role: "owner", TTLDays: 365})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.Contains(t, verrs, "email")
	require.Contains(t, verrs, "role")
	require.Contains(t, verrs, "employee_no")
	require.Contains(t, verrs, "ttl_days")

	_, _, err = e.ledger.Issue(e.ctx, IssueInvitation{
		TenantID: idx.New(), Email: "a@example.com", Role: domain.RoleEmployee, EmployeeNo: "E-1",
	})
	require.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestIssueRespectsCapacity(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "small", intPtr(1))

	e.member(t, tn.ID, "first@example.com", "E-1")

	_, _, err := e.ledger.Issue(e.ctx, IssueInvitation{
		TenantID: tn.ID, Email: "second@example.com", Role: domain.RoleEmployee, EmployeeNo: "E-2",
	})
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestValidateUnknownToken(t *testing.T) {
	e := newEnv(t)

	_, err := e.ledger.Validate(e.ctx, "")
	require.ErrorIs(t, err, domain.ErrInvitationNotFound)

	_, err = e.ledger.Validate(e.ctx, "not-a-real-token")
	require.ErrorIs(t, err, domain.ErrInvitationNotFound)
}

func TestValidatePersistsLazyExpiry(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)
	inv, token := e.invite(t, tn.ID, "late@example.com", "E-1")

	e.clock.Advance(7*24*time.Hour + time.Second)

	_, err := e.ledger.Validate(e.ctx, token)
	require.ErrorIs(t, err, domain.ErrInvitationInvalid)

	stored, err := e.store.Invitations().GetInvitationByID(e.ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationExpired, stored.Status)
	require.Contains(t, e.audit.actions(), domain.ActionInvitationExpired)

	// Stays expired and is not re-audited.
	_, err = e.ledger.Validate(e.ctx, token)
	require.ErrorIs(t, err, domain.ErrInvitationInvalid)
	n := 0
	for _, a := range e.audit.actions() {
		if a == domain.ActionInvitationExpired {
			n++
		}
	}
	require.Equal(t, 1, n)
}

func TestConsumeIsSingleUseUnderConcurrency(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)
	inv, token := e.invite(t, tn.ID, "race@example.com", "E-1")

	winner := e.member(t, tn.ID, "winner@example.com", "E-2")
	loser := e.member(t, tn.ID, "loser@example.com", "E-3")

	// Both read the same state before either writes.
	seen, err := e.ledger.Validate(e.ctx, token)
	require.NoError(t, err)
	require.Equal(t, inv.ID, seen.ID)

	results := make([]error, 2)
	var g errgroup.Group
	for i, acc := range []idx.ID{winner.ID, loser.ID} {
		g.Go(func() error {
			results[i] = e.ledger.Consume(e.ctx, seen, acc)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var ok, lost int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, domain.ErrInvitationInvalid)
			lost++
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, lost)

	stored, err := e.store.Invitations().GetInvitationByID(e.ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationUsed, stored.Status)
	require.Equal(t, 1, stored.UsedCount)
}

func TestCancelInvitation(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)
	inv, token := e.invite(t, tn.ID, "c@example.com", "E-1")
	admin := e.member(t, tn.ID, "admin@example.com", "E-0")

	canceled, err := e.ledger.Cancel(e.ctx, inv.ID, admin.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationCanceled, canceled.Status)

	_, err = e.ledger.Validate(e.ctx, token)
	require.ErrorIs(t, err, domain.ErrInvitationInvalid)

	_, err = e.ledger.Cancel(e.ctx, inv.ID, admin.ID)
	require.ErrorIs(t, err, domain.ErrInvitationInvalid)

	_, err = e.ledger.Cancel(e.ctx, idx.New(), admin.ID)
	require.ErrorIs(t, err, domain.ErrInvitationNotFound)
}

func TestConsumeRejectsLapsedInvitation(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)
	inv, _ := e.invite(t, tn.ID, "late@example.com", "E-1")
	a := e.member(t, tn.ID, "someone@example.com", "E-2")

	e.clock.Advance(8 * 24 * time.Hour)

	err := e.ledger.Consume(e.ctx, inv, a.ID)
	require.ErrorIs(t, err, domain.ErrInvitationInvalid)

	stored, err := e.store.Invitations().GetInvitationByID(e.ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stored.UsedCount)
	require.Nil(t, stored.UsedAt)
	require.True(t, stored.UsedBy.IsZero())
}

func TestIssueRejectsSystemEmail(t *testing.T) {
	e := newEnv(t)
	tn := e.tenant(t, "acme", nil)

	for _, email := range []string{DefaultSystemEmail, "System@Roster.Local"} {
		_, _, err := e.ledger.Issue(e.ctx, IssueInvitation{
			TenantID: tn.ID, Email: email, Role: domain.RoleEmployee, EmployeeNo: "E-1",
		})
		require.ErrorIs(t, err, domain.ErrValidation, email)

		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		require.Contains(t, verrs, "email")
	}

	custom := *e.ledger
	custom.SystemEmail = "ops@example.com"
	_, _, err := custom.Issue(e.ctx, IssueInvitation{
		TenantID: tn.ID, Email: "ops@example.com", Role: domain.RoleEmployee, EmployeeNo: "E-1",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}
