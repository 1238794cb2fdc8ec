package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
)

type accountsRepo struct{ db querier }

var _ store.Accounts = (*accountsRepo)(nil)

const accountCols = `id, email, password_hash, family_name, given_name,
	family_name_phonetic, given_name_phonetic, status, mfa_secret, mfa_enabled_at, ` + stampCols

func scanAccount(row scanner) (domain.Account, error) {
	var (
		a            domain.Account
		id           string
		hash         sql.NullString
		status       string
		mfaEnabledAt sql.NullString
		st           stampRow
	)
	dest := append([]any{
		&id, &a.Email, &hash, &a.FamilyName, &a.GivenName,
		&a.FamilyNamePhonetic, &a.GivenNamePhonetic, &status, &a.MFASecret, &mfaEnabledAt,
	}, st.dest()...)
	if err := row.Scan(dest...); err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	var err error
	a.ID = idx.ID(id)
	a.PasswordHash = hash.String
	a.Status = domain.AccountStatus(status)
	if a.MFAEnabledAt, err = decodeTimePtr(mfaEnabledAt); err != nil {
		return domain.Account{}, err
	}
	if a.Stamp, err = st.stamp(); err != nil {
		return domain.Account{}, err
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id idx.ID) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE id = ?`, id.String()))
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE email = ? AND deleted_at IS NULL`, email))
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	status := a.Status
	if status == "" {
		status = domain.AccountActive
	}
	args := append([]any{
		a.ID.String(), a.Email, encodeString(a.PasswordHash), a.FamilyName, a.GivenName,
		a.FamilyNamePhonetic, a.GivenNamePhonetic, string(status), a.MFASecret, encodeTimePtr(a.MFAEnabledAt),
	}, stampArgs(a.Stamp)...)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...)
	return mapInsertErr(err)
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id idx.ID, hash string, actor idx.ID, now time.Time) error {
	return r.update(ctx,
		`UPDATE accounts SET password_hash = ?, updated_at = ?, updated_by = ? WHERE id = ? AND deleted_at IS NULL`,
		hash, encodeTime(now), encodeID(actor), id.String())
}

func (r *accountsRepo) SetMFASecret(ctx context.Context, id idx.ID, sealed []byte, now time.Time) error {
	return r.update(ctx,
		`UPDATE accounts SET mfa_secret = ?, mfa_enabled_at = NULL, updated_at = ?, updated_by = ? WHERE id = ? AND deleted_at IS NULL`,
		sealed, encodeTime(now), id.String(), id.String())
}

func (r *accountsRepo) EnableMFA(ctx context.Context, id idx.ID, now time.Time) error {
	return r.update(ctx,
		`UPDATE accounts SET mfa_enabled_at = ?, updated_at = ?, updated_by = ?
		 WHERE id = ? AND deleted_at IS NULL AND mfa_secret IS NOT NULL AND mfa_enabled_at IS NULL`,
		encodeTime(now), encodeTime(now), id.String(), id.String())
}

func (r *accountsRepo) DisableMFA(ctx context.Context, id idx.ID, now time.Time) error {
	return r.update(ctx,
		`UPDATE accounts SET mfa_secret = NULL, mfa_enabled_at = NULL, updated_at = ?, updated_by = ? WHERE id = ? AND deleted_at IS NULL`,
		encodeTime(now), id.String(), id.String())
}

// update runs a single-row write; store.ErrConflict when nothing matched.
func (r *accountsRepo) update(ctx context.Context, query string, args ...any) error {
	return expectOne(r.db.ExecContext(ctx, query, args...))
}
