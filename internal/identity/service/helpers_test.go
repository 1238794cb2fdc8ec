package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const strongPassword = "Correct-Horse-9"

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type auditSpy struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func (a *auditSpy) Record(_ context.Context, e AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *auditSpy) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

// env wires every service against one in-memory database.
type env struct {
	ctx   context.Context
	store *sqlite.Store
	clock *fakeClock
	audit *auditSpy

	hasher    *cryptox.PasswordHasher
	codec     *jwtx.Codec
	bootstrap *BootstrapService
	ledger    *InvitationLedger
	registrar *Registrar
	sessions  *SessionIssuer
	mfa       *MFAService
	resets    *PasswordResetService
	tenants   *TenantService
	accounts  *AccountService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	clk := &fakeClock{t: time.Date(2026, 5, 1, 3, 0, 0, 0, time.UTC)}
	spy := &auditSpy{}

	hasher, err := cryptox.NewPasswordHasher([]byte("test-pepper"), bcrypt.MinCost)
	require.NoError(t, err)

	codec, err := jwtx.NewCodec(jwtx.CodecConfig{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "roster-test",
		Now:    clk.Now,
	})
	require.NoError(t, err)

	box, err := cryptox.NewSecretBox([]byte("test-master-key"))
	require.NoError(t, err)

	e := &env{ctx: context.Background(), store: st, clock: clk, audit: spy, hasher: hasher, codec: codec}
	e.bootstrap = &BootstrapService{Now: clk.Now}
	e.ledger = &InvitationLedger{Store: st, Audit: spy, Now: clk.Now}
	e.registrar = &Registrar{Store: st, Ledger: e.ledger, Bootstrap: e.bootstrap, Hasher: hasher, Audit: spy, Now: clk.Now}
	e.mfa = &MFAService{Store: st, Box: box, Issuer: "Roster Test", Audit: spy, Now: clk.Now}
	e.sessions = &SessionIssuer{Store: st, Hasher: hasher, Tokens: codec, MFA: e.mfa, Audit: spy}
	e.resets = &PasswordResetService{Store: st, Hasher: hasher, Audit: spy, Now: clk.Now}
	e.tenants = &TenantService{Store: st, Ledger: e.ledger, Bootstrap: e.bootstrap, Audit: spy, Now: clk.Now}
	e.accounts = &AccountService{Store: st}
	return e
}

func (e *env) tenant(t *testing.T, code string, maxMembers *int) domain.Tenant {
	t.Helper()

	tn := domain.Tenant{
		ID:         idx.New(),
		Code:       code,
		Name:       "Tenant " + code,
		Timezone:   "Asia/Tokyo",
		MaxMembers: maxMembers,
		Stamp:      domain.NewStamp(e.clock.Now(), idx.Zero),
	}
	require.NoError(t, e.store.Tenants().CreateTenant(e.ctx, tn))
	return tn
}

func (e *env) invite(t *testing.T, tenantID idx.ID, email, employeeNo string) (domain.Invitation, string) {
	t.Helper()

	inv, token, err := e.ledger.Issue(e.ctx, IssueInvitation{
		TenantID:   tenantID,
		Email:      email,
		Role:       domain.RoleEmployee,
		EmployeeNo: employeeNo,
	})
	require.NoError(t, err)
	return inv, token
}

// member registers a brand new account through an invitation.
func (e *env) member(t *testing.T, tenantID idx.ID, email, employeeNo string) domain.Account {
	t.Helper()

	_, token := e.invite(t, tenantID, email, employeeNo)
	a, err := e.registrar.Register(e.ctx, Registration{
		InvitationToken: token,
		Email:           email,
		Password:        strongPassword,
		FamilyName:      "Tanaka",
		GivenName:       "Yui",
	})
	require.NoError(t, err)
	return a
}

func intPtr(n int) *int { return &n }

func countMembers(t *testing.T, st store.Store, tenantID idx.ID) int {
	t.Helper()
	n, err := st.Memberships().CountMembers(context.Background(), tenantID)
	require.NoError(t, err)
	return n
}
