package service

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	"github.com/aussiebroadwan/roster/pkg/tenantx"
	"github.com/stretchr/testify/require"
)

// syncBuffer lets the worker log while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestAuditServiceRecordsContext(t *testing.T) {
	e := newEnv(t)
	svc := NewAuditService(e.store, slogx.Discard(), 8)
	svc.Now = e.clock.Now
	svc.Start()

	ctx := slogx.WithRequestID(context.Background(), "req-123")
	ctx, release := tenantx.Attach(ctx, tenantx.Scope{AccountID: "acc-1", TenantID: "ten-1", Role: "admin"})
	defer release()

	svc.Record(ctx, AuditEntry{
		Action:     domain.ActionInvitationCanceled,
		TargetType: "invitation",
		TargetID:   "inv-1",
		Before:     map[string]string{"status": "pending"},
		After:      map[string]string{"status": "canceled"},
	})
	svc.Stop()

	logs, err := e.store.AuditLogs().ListAuditLogs(e.ctx, store.AuditFilter{TargetID: "inv-1"})
	require.NoError(t, err)
	require.Len(t, logs, 1)

	l := logs[0]
	require.Equal(t, idx.ID("ten-1"), l.TenantID)
	require.Equal(t, idx.ID("acc-1"), l.ActorID)
	require.Equal(t, "req-123", l.RequestID)
	require.Equal(t, e.clock.Now(), l.HappenedAt)
	require.JSONEq(t, `{"status":"pending"}`, string(l.Before))
	require.JSONEq(t, `{"status":"canceled"}`, string(l.After))
}

func TestAuditServiceSwallowsFailures(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	var logs syncBuffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	svc := NewAuditService(st, logger, 1)

	ctx := slogx.WithContext(context.Background(), logger)

	// Not encodable.
	svc.Record(ctx, AuditEntry{Action: "x", After: make(chan int)})

	// Queue of one, worker not started: the second entry is dropped.
	svc.Record(ctx, AuditEntry{Action: "first"})
	svc.Record(ctx, AuditEntry{Action: "second"})

	// Store gone by the time the worker writes.
	require.NoError(t, st.Close())
	svc.Start()
	svc.Stop()

	out := logs.String()
	require.Contains(t, out, "audit entry dropped")
	require.Contains(t, out, "audit queue full")
	require.Contains(t, out, "failed to write audit log")
}

func TestHousekeepingCleanup(t *testing.T) {
	e := newEnv(t)
	spy := &notifierSpy{}
	e.resets.Notifier = spy

	tn := e.tenant(t, "acme", nil)
	e.member(t, tn.ID, "hk@example.com", "E-1")
	require.NoError(t, e.resets.RequestReset(e.ctx, "hk@example.com"))
	inv, _ := e.invite(t, tn.ID, "pending@example.com", "E-2")

	require.NoError(t, e.store.AuditLogs().CreateAuditLog(e.ctx, domain.AuditLog{
		ID: idx.New(), Action: "old", TargetType: "t", TargetID: "old", HappenedAt: e.clock.Now(),
	}))

	e.clock.Advance(40 * 24 * time.Hour)
	require.NoError(t, e.store.AuditLogs().CreateAuditLog(e.ctx, domain.AuditLog{
		ID: idx.New(), Action: "new", TargetType: "t", TargetID: "new", HappenedAt: e.clock.Now(),
	}))

	hk := NewHousekeepingService(e.store, slogx.Discard(), time.Hour, 30*24*time.Hour)
	hk.Now = e.clock.Now
	hk.Cleanup(e.ctx)

	require.ErrorIs(t, e.resets.ConfirmReset(e.ctx, spy.token("hk@example.com"), "Another-Pass-77"), domain.ErrResetTokenNotFound)

	old, err := e.store.AuditLogs().ListAuditLogs(e.ctx, store.AuditFilter{TargetID: "old"})
	require.NoError(t, err)
	require.Empty(t, old)
	kept, err := e.store.AuditLogs().ListAuditLogs(e.ctx, store.AuditFilter{TargetID: "new"})
	require.NoError(t, err)
	require.Len(t, kept, 1)

	// Invitation expiry stays lazy.
	stored, err := e.store.Invitations().GetInvitationByID(e.ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, stored.Status)
}

func TestHousekeepingStartStop(t *testing.T) {
	e := newEnv(t)
	hk := NewHousekeepingService(e.store, slogx.Discard(), time.Millisecond, 0)
	hk.Start()
	time.Sleep(5 * time.Millisecond)
	hk.Stop()
}
