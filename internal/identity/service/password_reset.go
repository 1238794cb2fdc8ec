package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// ResetNotifier delivers a reset token to the account holder.
type ResetNotifier interface {
	NotifyReset(ctx context.Context, a domain.Account, token string, expiresAt time.Time) error
}

// LogNotifier writes reset tokens to the log. Reveal includes the token
// itself and is meant for development only.
type LogNotifier struct {
	Reveal bool
}

func (n LogNotifier) NotifyReset(ctx context.Context, a domain.Account, token string, expiresAt time.Time) error {
	attrs := []any{slog.String("account_id", a.ID.String()), slog.Time("expires_at", expiresAt)}
	if n.Reveal {
		attrs = append(attrs, slog.String("token", token))
	}
	slogx.FromContext(ctx).Info("password reset requested", attrs...)
	return nil
}

type PasswordResetService struct {
	Store    store.Store
	Hasher   *cryptox.PasswordHasher
	Notifier ResetNotifier
	Audit    Auditor
	Now      func() time.Time
}

// RequestReset starts a reset for email. The result is the same whether
// or not the email belongs to an account.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	a, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		log.Debug("password reset for unknown email ignored")
		return nil
	}
	if err != nil {
		return err
	}
	if !a.CanLogin() || a.Status != domain.AccountActive {
		log.Debug("password reset for inactive account ignored", slog.String("account_id", a.ID.String()))
		return nil
	}

	token, fingerprint, err := cryptox.NewOpaqueToken()
	if err != nil {
		return err
	}

	now := clock(s.Now)
	t := domain.PasswordResetToken{
		ID:        idx.New(),
		AccountID: a.ID,
		TokenHash: fingerprint,
		ExpiresAt: now.Add(domain.PasswordResetTTL),
		CreatedAt: now,
	}

	// Older tokens die when a new one is issued.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.PasswordResets().InvalidateResetTokens(ctx, a.ID, now); err != nil {
			return err
		}
		return tx.PasswordResets().CreateResetToken(ctx, t)
	})
	if err != nil {
		log.Error("failed to store reset token", slog.Any("error", err))
		return err
	}

	if s.Notifier != nil {
		if err := s.Notifier.NotifyReset(ctx, a, token, t.ExpiresAt); err != nil {
			log.Error("failed to deliver reset token", slog.String("account_id", a.ID.String()), slog.Any("error", err))
		}
	}
	return nil
}

// ConfirmReset sets a new password using a token from RequestReset. Each
// token works once.
func (s *PasswordResetService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrResetTokenNotFound
	}

	t, err := s.Store.PasswordResets().GetResetTokenByHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		return notFoundAs(err, domain.ErrResetTokenNotFound)
	}
	now := clock(s.Now)
	if t.UsedAt != nil {
		return domain.ErrResetTokenNotFound
	}
	if t.Expired(now) {
		return domain.ErrResetTokenInvalid
	}

	if err := CheckPassword(newPassword); err != nil {
		return err
	}
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.PasswordResets().MarkResetTokenUsed(ctx, t.ID, now); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return domain.ErrResetTokenNotFound
			}
			return err
		}
		if err := tx.Accounts().UpdatePasswordHash(ctx, t.AccountID, hash, t.AccountID, now); err != nil {
			return notFoundAs(err, domain.ErrResetTokenNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset completed", slog.String("account_id", t.AccountID.String()))
	record(ctx, s.Audit, AuditEntry{
		Action:     domain.ActionPasswordReset,
		TargetType: "account",
		TargetID:   t.AccountID.String(),
		ActorID:    t.AccountID,
	})
	return nil
}
