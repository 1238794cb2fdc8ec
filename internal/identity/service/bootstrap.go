package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

const DefaultSystemEmail = "system@roster.local"

// BootstrapService resolves the system identity: the account recorded as
// creator of rows written on nobody's behalf. It is created on first use
// and references itself as its own creator.
type BootstrapService struct {
	Email string
	Now   func() time.Time
}

func (b *BootstrapService) email() string {
	if b.Email == "" {
		return DefaultSystemEmail
	}
	return b.Email
}

// isSystemEmail reports whether email names the bootstrap identity
// configured as systemEmail, or the default one when that is empty.
func isSystemEmail(email, systemEmail string) bool {
	if systemEmail == "" {
		systemEmail = DefaultSystemEmail
	}
	return strings.EqualFold(email, systemEmail)
}

// Resolve returns the system account id, creating the account through st
// when it does not exist yet. Pass the caller's transaction as st so the
// account is created atomically with whatever references it.
func (b *BootstrapService) Resolve(ctx context.Context, st store.Store) (idx.ID, error) {
	log := slogx.FromContext(ctx)
	email := b.email()

	// 1. Fast path
	a, err := st.Accounts().GetAccountByEmail(ctx, email)
	if err == nil {
		return a.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return idx.Zero, err
	}

	// 2. Create with the id chosen up front so the row can name itself
	id := idx.New()
	err = st.Accounts().CreateAccount(ctx, domain.Account{
		ID:         id,
		Email:      email,
		FamilyName: "System",
		GivenName:  "Roster",
		Status:     domain.AccountActive,
		Stamp:      domain.NewStamp(clock(b.Now), id),
	})
	if err == nil {
		log.Info("system identity created", slog.String("account_id", id.String()))
		return id, nil
	}

	// 3. Somebody else won the race; use theirs
	if errors.Is(err, store.ErrAlreadyExists) {
		a, err := st.Accounts().GetAccountByEmail(ctx, email)
		if err != nil {
			return idx.Zero, err
		}
		return a.ID, nil
	}

	log.Error("failed to create system identity", slog.Any("error", err))
	return idx.Zero, err
}
