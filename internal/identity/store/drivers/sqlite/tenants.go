package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
)

type tenantsRepo struct{ db querier }

var _ store.Tenants = (*tenantsRepo)(nil)

const tenantCols = `id, code, name, timezone, currency, max_members, ` + stampCols

func scanTenant(row scanner) (domain.Tenant, error) {
	var (
		t          domain.Tenant
		id         string
		maxMembers sql.NullInt64
		st         stampRow
	)
	dest := append([]any{&id, &t.Code, &t.Name, &t.Timezone, &t.Currency, &maxMembers}, st.dest()...)
	if err := row.Scan(dest...); err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}

	t.ID = idx.ID(id)
	if maxMembers.Valid {
		n := int(maxMembers.Int64)
		t.MaxMembers = &n
	}

	var err error
	if t.Stamp, err = st.stamp(); err != nil {
		return domain.Tenant{}, err
	}
	return t, nil
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id idx.ID) (domain.Tenant, error) {
	return scanTenant(r.db.QueryRowContext(ctx,
		`SELECT `+tenantCols+` FROM tenants WHERE id = ? AND deleted_at IS NULL`, id.String()))
}

func (r *tenantsRepo) GetTenantByCode(ctx context.Context, code string) (domain.Tenant, error) {
	return scanTenant(r.db.QueryRowContext(ctx,
		`SELECT `+tenantCols+` FROM tenants WHERE code = ? AND deleted_at IS NULL`, code))
}

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) error {
	if t.Timezone == "" {
		t.Timezone = domain.DefaultTimezone
	}
	if t.Currency == "" {
		t.Currency = domain.DefaultCurrency
	}

	var maxMembers sql.NullInt64
	if t.MaxMembers != nil {
		maxMembers = sql.NullInt64{Int64: int64(*t.MaxMembers), Valid: true}
	}

	args := append([]any{t.ID.String(), t.Code, t.Name, t.Timezone, t.Currency, maxMembers}, stampArgs(t.Stamp)...)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenants (`+tenantCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	return mapInsertErr(err)
}
