package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
)

type invitationsRepo struct{ db querier }

var _ store.Invitations = (*invitationsRepo)(nil)

const invitationCols = `id, tenant_id, email, token_hash, role, employee_no, employment_type, hire_date,
	expires_at, max_uses, used_count, used_at, used_by, status, ` + stampCols

func scanInvitation(row scanner) (domain.Invitation, error) {
	var (
		inv            domain.Invitation
		id, tenantID   string
		role, status   string
		kind, hireDate sql.NullString
		expiresAt      string
		usedAt, usedBy sql.NullString
		st             stampRow
	)
	dest := append([]any{
		&id, &tenantID, &inv.Email, &inv.TokenHash, &role, &inv.EmployeeNo, &kind, &hireDate,
		&expiresAt, &inv.MaxUses, &inv.UsedCount, &usedAt, &usedBy, &status,
	}, st.dest()...)
	if err := row.Scan(dest...); err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}

	inv.ID = idx.ID(id)
	inv.TenantID = idx.ID(tenantID)
	inv.Role = domain.Role(role)
	inv.EmploymentType = domain.EmploymentType(kind.String)
	inv.UsedBy = decodeID(usedBy)
	inv.Status = domain.InvitationStatus(status)

	var err error
	if inv.HireDate, err = decodeDatePtr(hireDate); err != nil {
		return domain.Invitation{}, err
	}
	if inv.ExpiresAt, err = decodeTime(expiresAt); err != nil {
		return domain.Invitation{}, err
	}
	if inv.UsedAt, err = decodeTimePtr(usedAt); err != nil {
		return domain.Invitation{}, err
	}
	if inv.Stamp, err = st.stamp(); err != nil {
		return domain.Invitation{}, err
	}
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	status := inv.Status
	if status == "" {
		status = domain.InvitationPending
	}
	args := append([]any{
		inv.ID.String(), inv.TenantID.String(), inv.Email, inv.TokenHash, string(inv.Role), inv.EmployeeNo,
		encodeString(string(inv.EmploymentType)), encodeDatePtr(inv.HireDate),
		encodeTime(inv.ExpiresAt), inv.MaxUses, inv.UsedCount, encodeTimePtr(inv.UsedAt), encodeID(inv.UsedBy), string(status),
	}, stampArgs(inv.Stamp)...)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitations (`+invitationCols+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	return mapInsertErr(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id idx.ID) (domain.Invitation, error) {
	return scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationCols+` FROM invitations WHERE id = ?`, id.String()))
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	return scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationCols+` FROM invitations WHERE token_hash = ? AND deleted_at IS NULL`, hash))
}

func (r *invitationsRepo) MarkInvitationExpired(ctx context.Context, id idx.ID, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET status = 'expired', updated_at = ?
		 WHERE id = ? AND status = 'pending'`,
		encodeTime(now), id.String())
	return err
}

// ConsumeInvitation is a compare-and-set on used_count: of two concurrent
// redemptions reading the same count, only one matches the WHERE clause.
// An invitation whose expiry has passed at now never matches.
func (r *invitationsRepo) ConsumeInvitation(ctx context.Context, id idx.ID, usedCount int, accountID idx.ID, now time.Time) error {
	ts := encodeTime(now)
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE invitations SET
			used_count = used_count + 1,
			status     = CASE WHEN used_count + 1 >= max_uses THEN 'used' ELSE status END,
			used_at    = COALESCE(used_at, ?),
			used_by    = COALESCE(used_by, ?),
			updated_at = ?,
			updated_by = ?
		 WHERE id = ?
		   AND status = 'pending'
		   AND used_count = ?
		   AND used_count < max_uses
		   AND expires_at > ?
		   AND deleted_at IS NULL`,
		ts, accountID.String(), ts, encodeID(accountID), id.String(), usedCount, ts))
}

func (r *invitationsRepo) CancelInvitation(ctx context.Context, id idx.ID, actor idx.ID, now time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE invitations SET status = 'canceled', updated_at = ?, updated_by = ?
		 WHERE id = ? AND status = 'pending' AND deleted_at IS NULL`,
		encodeTime(now), encodeID(actor), id.String()))
}
