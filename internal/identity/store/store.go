package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/pkg/idx"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is returned by conditional writes whose precondition no
	// longer holds, e.g. an invitation consumed by someone else first.
	ErrConflict = errors.New("store: conflicting update")
)

// Store is the root data access interface. Concrete drivers implement it
// and hand out sub-repositories; the same repositories are reachable from
// a Tx so a multi-step operation reads its own writes.
type Store interface {
	Accounts() Accounts
	Tenants() Tenants
	Memberships() Memberships
	Employments() Employments
	Invitations() Invitations
	PasswordResets() PasswordResets
	AuditLogs() AuditLogs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Inside fn, use tx and never the outer Store.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	GetAccountByID(ctx context.Context, id idx.ID) (domain.Account, error)

	// GetAccountByEmail matches the email exactly among non-deleted accounts.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a; ErrAlreadyExists when the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	UpdatePasswordHash(ctx context.Context, id idx.ID, hash string, actor idx.ID, now time.Time) error

	// SetMFASecret stores a sealed TOTP seed without enabling it.
	SetMFASecret(ctx context.Context, id idx.ID, sealed []byte, now time.Time) error

	EnableMFA(ctx context.Context, id idx.ID, now time.Time) error

	// DisableMFA clears both the seed and the enabled timestamp.
	DisableMFA(ctx context.Context, id idx.ID, now time.Time) error
}

type Tenants interface {
	GetTenantByID(ctx context.Context, id idx.ID) (domain.Tenant, error)
	GetTenantByCode(ctx context.Context, code string) (domain.Tenant, error)

	// CreateTenant inserts t; ErrAlreadyExists when the code is taken.
	CreateTenant(ctx context.Context, t domain.Tenant) error
}

type Memberships interface {
	GetMembership(ctx context.Context, accountID, tenantID idx.ID) (domain.Membership, error)

	// ListMembershipsByAccount returns live memberships, earliest joined first.
	ListMembershipsByAccount(ctx context.Context, accountID idx.ID) ([]domain.Membership, error)

	// CountMembers counts live memberships of a tenant.
	CountMembers(ctx context.Context, tenantID idx.ID) (int, error)

	// CreateMembership inserts m; ErrAlreadyExists when the pair exists.
	CreateMembership(ctx context.Context, m domain.Membership) error
}

type Employments interface {
	GetEmploymentByEmployeeNo(ctx context.Context, tenantID idx.ID, employeeNo string) (domain.Employment, error)

	// CreateEmployment inserts e; ErrAlreadyExists when the number is taken.
	CreateEmployment(ctx context.Context, e domain.Employment) error
}

type Invitations interface {
	CreateInvitation(ctx context.Context, inv domain.Invitation) error
	GetInvitationByID(ctx context.Context, id idx.ID) (domain.Invitation, error)

	// GetInvitationByTokenHash ignores soft-deleted invitations.
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// MarkInvitationExpired flips a pending invitation to expired. It is a
	// no-op for any other status.
	MarkInvitationExpired(ctx context.Context, id idx.ID, now time.Time) error

	// ConsumeInvitation records one use by accountID, provided the
	// invitation is still pending with usedCount uses and has not expired
	// at now. Otherwise it returns ErrConflict and changes nothing.
	ConsumeInvitation(ctx context.Context, id idx.ID, usedCount int, accountID idx.ID, now time.Time) error

	// CancelInvitation flips a pending invitation to canceled; ErrConflict
	// when it is no longer pending.
	CancelInvitation(ctx context.Context, id idx.ID, actor idx.ID, now time.Time) error
}

type PasswordResets interface {
	CreateResetToken(ctx context.Context, t domain.PasswordResetToken) error
	GetResetTokenByHash(ctx context.Context, hash string) (domain.PasswordResetToken, error)

	// InvalidateResetTokens marks every unused token of the account used.
	InvalidateResetTokens(ctx context.Context, accountID idx.ID, now time.Time) error

	// MarkResetTokenUsed is single-use: ErrConflict when already used.
	MarkResetTokenUsed(ctx context.Context, id idx.ID, now time.Time) error

	// DeleteStaleResetTokens removes tokens that expired or were used
	// before cutoff.
	DeleteStaleResetTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditFilter narrows ListAuditLogs. Zero fields do not filter.
type AuditFilter struct {
	TenantID idx.ID
	Action   string
	TargetID string
	Limit    int
}

type AuditLogs interface {
	CreateAuditLog(ctx context.Context, l domain.AuditLog) error

	// ListAuditLogs returns matching entries, newest first.
	ListAuditLogs(ctx context.Context, f AuditFilter) ([]domain.AuditLog, error)

	DeleteAuditLogsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
