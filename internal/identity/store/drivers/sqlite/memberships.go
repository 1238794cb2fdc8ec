package sqlite

import (
	"context"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
)

type membershipsRepo struct{ db querier }

var _ store.Memberships = (*membershipsRepo)(nil)

const membershipCols = `id, account_id, tenant_id, role, joined_at, ` + stampCols

func scanMembership(row scanner) (domain.Membership, error) {
	var (
		m                       domain.Membership
		id, accountID, tenantID string
		role, joinedAt          string
		st                      stampRow
	)
	dest := append([]any{&id, &accountID, &tenantID, &role, &joinedAt}, st.dest()...)
	if err := row.Scan(dest...); err != nil {
		return domain.Membership{}, mapNotFound(err)
	}

	m.ID = idx.ID(id)
	m.AccountID = idx.ID(accountID)
	m.TenantID = idx.ID(tenantID)
	m.Role = domain.Role(role)

	var err error
	if m.JoinedAt, err = decodeTime(joinedAt); err != nil {
		return domain.Membership{}, err
	}
	if m.Stamp, err = st.stamp(); err != nil {
		return domain.Membership{}, err
	}
	return m, nil
}

func (r *membershipsRepo) GetMembership(ctx context.Context, accountID, tenantID idx.ID) (domain.Membership, error) {
	return scanMembership(r.db.QueryRowContext(ctx,
		`SELECT `+membershipCols+` FROM memberships
		 WHERE account_id = ? AND tenant_id = ? AND deleted_at IS NULL`,
		accountID.String(), tenantID.String()))
}

func (r *membershipsRepo) ListMembershipsByAccount(ctx context.Context, accountID idx.ID) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+membershipCols+` FROM memberships
		 WHERE account_id = ? AND deleted_at IS NULL
		 ORDER BY joined_at ASC, id ASC`,
		accountID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) CountMembers(ctx context.Context, tenantID idx.ID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM memberships WHERE tenant_id = ? AND deleted_at IS NULL`,
		tenantID.String()).Scan(&n)
	return n, err
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	args := append([]any{
		m.ID.String(), m.AccountID.String(), m.TenantID.String(), string(m.Role), encodeTime(m.JoinedAt),
	}, stampArgs(m.Stamp)...)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO memberships (`+membershipCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	return mapInsertErr(err)
}
