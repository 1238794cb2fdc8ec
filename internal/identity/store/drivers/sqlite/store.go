package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

// NewStore opens the database at dsn. The pool is limited to a single
// connection: SQLite allows one writer anyway, transactions queue instead
// of failing with SQLITE_BUSY, and ":memory:" databases stay shared.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

// FileDSN builds the DSN used for on-disk databases.
func FileDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
}

func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Accounts() store.Accounts             { return &accountsRepo{db: s.db} }
func (s *Store) Tenants() store.Tenants               { return &tenantsRepo{db: s.db} }
func (s *Store) Memberships() store.Memberships       { return &membershipsRepo{db: s.db} }
func (s *Store) Employments() store.Employments       { return &employmentsRepo{db: s.db} }
func (s *Store) Invitations() store.Invitations       { return &invitationsRepo{db: s.db} }
func (s *Store) PasswordResets() store.PasswordResets { return &passwordResetsRepo{db: s.db} }
func (s *Store) AuditLogs() store.AuditLogs           { return &auditLogsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapInsertErr turns unique and primary key violations into
// store.ErrAlreadyExists.
func mapInsertErr(err error) error {
	if err == nil {
		return nil
	}
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
	}
	return err
}

// expectOne reports store.ErrConflict when a conditional write matched no
// row.
func expectOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return store.ErrConflict
	}
	return nil
}

// Times are stored as fixed-width UTC text so string comparison in SQL is
// chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func encodeTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func encodeTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: encodeTime(*t), Valid: true}
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: bad timestamp %q: %w", s, err)
	}
	return t, nil
}

func decodeTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := decodeTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func encodeDate(t time.Time) string { return t.UTC().Format(time.DateOnly) }

func encodeDatePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: encodeDate(*t), Valid: true}
}

func decodeDatePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, ns.String)
	if err != nil {
		return nil, fmt.Errorf("sqlite: bad date %q: %w", ns.String, err)
	}
	return &t, nil
}

// encodeID maps the zero ID to NULL.
func encodeID(id idx.ID) sql.NullString {
	if id.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

func decodeID(ns sql.NullString) idx.ID {
	if !ns.Valid {
		return idx.Zero
	}
	return idx.ID(ns.String)
}

func encodeString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// scanner is the shared surface of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// stampCols are the audit columns, in the order stampDest expects them.
const stampCols = `created_at, created_by, updated_at, updated_by, deleted_at, deleted_by`

type stampRow struct {
	createdAt, updatedAt            string
	createdBy, updatedBy, deletedBy sql.NullString
	deletedAt                       sql.NullString
}

func (r *stampRow) dest() []any {
	return []any{&r.createdAt, &r.createdBy, &r.updatedAt, &r.updatedBy, &r.deletedAt, &r.deletedBy}
}

func (r *stampRow) stamp() (domain.Stamp, error) {
	var (
		st  domain.Stamp
		err error
	)
	if st.CreatedAt, err = decodeTime(r.createdAt); err != nil {
		return st, err
	}
	if st.UpdatedAt, err = decodeTime(r.updatedAt); err != nil {
		return st, err
	}
	if st.DeletedAt, err = decodeTimePtr(r.deletedAt); err != nil {
		return st, err
	}
	st.CreatedBy = decodeID(r.createdBy)
	st.UpdatedBy = decodeID(r.updatedBy)
	st.DeletedBy = decodeID(r.deletedBy)
	return st, nil
}

// stampArgs returns the insert arguments matching stampCols.
func stampArgs(st domain.Stamp) []any {
	return []any{
		encodeTime(st.CreatedAt), encodeID(st.CreatedBy),
		encodeTime(st.UpdatedAt), encodeID(st.UpdatedBy),
		encodeTimePtr(st.DeletedAt), encodeID(st.DeletedBy),
	}
}
