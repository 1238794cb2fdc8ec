package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	"github.com/aussiebroadwan/roster/pkg/tenantx"
)

const DefaultAuditBuffer = 256

// AuditEntry describes one change. TenantID and ActorID default to the
// scope attached to the context; set them when acting outside a request
// scope, e.g. during login or registration.
type AuditEntry struct {
	Action     string
	TargetType string
	TargetID   string
	TenantID   idx.ID
	ActorID    idx.ID
	Before     any
	After      any
}

// Auditor records audit entries. Record must never fail the caller.
type Auditor interface {
	Record(ctx context.Context, e AuditEntry)
}

func record(ctx context.Context, a Auditor, e AuditEntry) {
	if a != nil {
		a.Record(ctx, e)
	}
}

// AuditService writes audit entries from a background worker. Entries are
// queued on a buffered channel; a full queue, an encoding error or a
// store error is logged and the entry dropped.
type AuditService struct {
	Store  store.Store
	Logger *slog.Logger
	Now    func() time.Time

	queue  chan domain.AuditLog
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewAuditService creates an audit sink with room for buffer pending
// entries. A non-positive buffer uses DefaultAuditBuffer.
func NewAuditService(st store.Store, logger *slog.Logger, buffer int) *AuditService {
	if buffer <= 0 {
		buffer = DefaultAuditBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuditService{
		Store:  st,
		Logger: logger,
		queue:  make(chan domain.AuditLog, buffer),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Record enqueues e. It never blocks and never returns an error.
func (s *AuditService) Record(ctx context.Context, e AuditEntry) {
	log := slogx.FromContext(ctx)

	scope, _ := tenantx.FromContext(ctx)
	l := domain.AuditLog{
		ID:         idx.New(),
		TenantID:   e.TenantID,
		ActorID:    e.ActorID,
		Action:     e.Action,
		TargetType: e.TargetType,
		TargetID:   e.TargetID,
		RequestID:  slogx.RequestID(ctx),
		HappenedAt: clock(s.Now),
	}
	if l.TenantID.IsZero() {
		l.TenantID = idx.ID(scope.TenantID)
	}
	if l.ActorID.IsZero() {
		l.ActorID = idx.ID(scope.AccountID)
	}

	var err error
	if l.Before, err = encodeAudit(e.Before); err != nil {
		log.Warn("audit entry dropped", slog.String("action", e.Action), slog.Any("error", err))
		return
	}
	if l.After, err = encodeAudit(e.After); err != nil {
		log.Warn("audit entry dropped", slog.String("action", e.Action), slog.Any("error", err))
		return
	}

	select {
	case s.queue <- l:
	default:
		log.Warn("audit queue full, entry dropped", slog.String("action", e.Action))
	}
}

func encodeAudit(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// Start begins draining the queue in the background.
func (s *AuditService) Start() {
	go s.run()
	s.Logger.Info("audit service started", "buffer", cap(s.queue))
}

// Stop flushes queued entries and waits for the worker to exit.
func (s *AuditService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("audit service stopped")
}

func (s *AuditService) run() {
	defer close(s.doneCh)

	for {
		select {
		case l := <-s.queue:
			s.write(l)
		case <-s.stopCh:
			for {
				select {
				case l := <-s.queue:
					s.write(l)
				default:
					return
				}
			}
		}
	}
}

func (s *AuditService) write(l domain.AuditLog) {
	if err := s.Store.AuditLogs().CreateAuditLog(context.Background(), l); err != nil {
		s.Logger.Error("failed to write audit log",
			slog.String("action", l.Action),
			slog.String("request_id", l.RequestID),
			slog.Any("error", err),
		)
	}
}
