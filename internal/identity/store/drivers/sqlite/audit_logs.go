package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
)

const defaultAuditLimit = 100

type auditLogsRepo struct{ db querier }

var _ store.AuditLogs = (*auditLogsRepo)(nil)

func encodeJSON(raw json.RawMessage) sql.NullString {
	if len(raw) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

func decodeJSON(ns sql.NullString) json.RawMessage {
	if !ns.Valid {
		return nil
	}
	return json.RawMessage(ns.String)
}

func (r *auditLogsRepo) CreateAuditLog(ctx context.Context, l domain.AuditLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, tenant_id, actor_account_id, action, target_type, target_id,
			before_data, after_data, request_id, happened_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID.String(), encodeID(l.TenantID), encodeID(l.ActorID), l.Action, l.TargetType, l.TargetID,
		encodeJSON(l.Before), encodeJSON(l.After), l.RequestID, encodeTime(l.HappenedAt))
	return mapInsertErr(err)
}

func (r *auditLogsRepo) ListAuditLogs(ctx context.Context, f store.AuditFilter) ([]domain.AuditLog, error) {
	var (
		where []string
		args  []any
	)
	if !f.TenantID.IsZero() {
		where = append(where, "tenant_id = ?")
		args = append(args, f.TenantID.String())
	}
	if f.Action != "" {
		where = append(where, "action = ?")
		args = append(args, f.Action)
	}
	if f.TargetID != "" {
		where = append(where, "target_id = ?")
		args = append(args, f.TargetID)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}

	query := `SELECT id, tenant_id, actor_account_id, action, target_type, target_id,
		before_data, after_data, request_id, happened_at FROM audit_logs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY happened_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuditLog
	for rows.Next() {
		var (
			l                 domain.AuditLog
			id, happenedAt    string
			tenantID, actorID sql.NullString
			before, after     sql.NullString
		)
		if err := rows.Scan(&id, &tenantID, &actorID, &l.Action, &l.TargetType, &l.TargetID,
			&before, &after, &l.RequestID, &happenedAt); err != nil {
			return nil, err
		}
		l.ID = idx.ID(id)
		l.TenantID = decodeID(tenantID)
		l.ActorID = decodeID(actorID)
		l.Before = decodeJSON(before)
		l.After = decodeJSON(after)
		if l.HappenedAt, err = decodeTime(happenedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *auditLogsRepo) DeleteAuditLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM audit_logs WHERE happened_at < ?`, encodeTime(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
