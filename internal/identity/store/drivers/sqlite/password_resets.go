package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
)

type passwordResetsRepo struct{ db querier }

var _ store.PasswordResets = (*passwordResetsRepo)(nil)

func (r *passwordResetsRepo) CreateResetToken(ctx context.Context, t domain.PasswordResetToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO password_reset_tokens (id, account_id, token_hash, expires_at, used_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID.String(), t.AccountID.String(), t.TokenHash,
		encodeTime(t.ExpiresAt), encodeTimePtr(t.UsedAt), encodeTime(t.CreatedAt))
	return mapInsertErr(err)
}

func (r *passwordResetsRepo) GetResetTokenByHash(ctx context.Context, hash string) (domain.PasswordResetToken, error) {
	var (
		t                    domain.PasswordResetToken
		id, accountID        string
		expiresAt, createdAt string
		usedAt               sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, token_hash, expires_at, used_at, created_at
		 FROM password_reset_tokens WHERE token_hash = ?`, hash).
		Scan(&id, &accountID, &t.TokenHash, &expiresAt, &usedAt, &createdAt)
	if err != nil {
		return domain.PasswordResetToken{}, mapNotFound(err)
	}

	t.ID = idx.ID(id)
	t.AccountID = idx.ID(accountID)
	if t.ExpiresAt, err = decodeTime(expiresAt); err != nil {
		return domain.PasswordResetToken{}, err
	}
	if t.CreatedAt, err = decodeTime(createdAt); err != nil {
		return domain.PasswordResetToken{}, err
	}
	if t.UsedAt, err = decodeTimePtr(usedAt); err != nil {
		return domain.PasswordResetToken{}, err
	}
	return t, nil
}

func (r *passwordResetsRepo) InvalidateResetTokens(ctx context.Context, accountID idx.ID, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used_at = ? WHERE account_id = ? AND used_at IS NULL`,
		encodeTime(now), accountID.String())
	return err
}

func (r *passwordResetsRepo) MarkResetTokenUsed(ctx context.Context, id idx.ID, now time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		encodeTime(now), id.String()))
}

func (r *passwordResetsRepo) DeleteStaleResetTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	c := encodeTime(cutoff)
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE expires_at < ? OR used_at < ?`, c, c)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
