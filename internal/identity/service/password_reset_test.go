package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/stretchr/testify/require"
)

type notifierSpy struct {
	mu     sync.Mutex
	tokens map[string]string // email to latest token
}

func (n *notifierSpy) NotifyReset(_ context.Context, a domain.Account, token string, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.tokens == nil {
		n.tokens = map[string]string{}
	}
	n.tokens[a.Email] = token
	return nil
}

func (n *notifierSpy) token(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tokens[email]
}

func TestPasswordReset(t *testing.T) {
	e := newEnv(t)
	spy := &notifierSpy{}
	e.resets.Notifier = spy

	tn := e.tenant(t, "acme", nil)
	e.member(t, tn.ID, "forgot@example.com", "E-1")
	const newPassword = "Brand-New-Pass-42"

	t.Run("unknown email succeeds silently", func(t *testing.T) {
		require.NoError(t, e.resets.RequestReset(e.ctx, "nobody@example.com"))
		require.Empty(t, spy.token("nobody@example.com"))

		require.NoError(t, e.resets.RequestReset(e.ctx, DefaultSystemEmail))
		require.Empty(t, spy.token(DefaultSystemEmail))
	})

	t.Run("new request invalidates the old token", func(t *testing.T) {
		require.NoError(t, e.resets.RequestReset(e.ctx, "forgot@example.com"))
		old := spy.token("forgot@example.com")
		require.NoError(t, e.resets.RequestReset(e.ctx, "forgot@example.com"))
		require.NotEqual(t, old, spy.token("forgot@example.com"))

		require.ErrorIs(t, e.resets.ConfirmReset(e.ctx, old, newPassword), domain.ErrResetTokenNotFound)
	})

	t.Run("weak password keeps the token usable", func(t *testing.T) {
		token := spy.token("forgot@example.com")
		require.ErrorIs(t, e.resets.ConfirmReset(e.ctx, token, "short"), domain.ErrWeakPassword)
	})

	t.Run("single use", func(t *testing.T) {
		token := spy.token("forgot@example.com")
		require.NoError(t, e.resets.ConfirmReset(e.ctx, token, newPassword))
		require.ErrorIs(t, e.resets.ConfirmReset(e.ctx, token, newPassword), domain.ErrResetTokenNotFound)

		_, err := e.sessions.Login(e.ctx, Credentials{Email: "forgot@example.com", Password: strongPassword})
		require.ErrorIs(t, err, domain.ErrBadCredentials)
		_, err = e.sessions.Login(e.ctx, Credentials{Email: "forgot@example.com", Password: newPassword})
		require.NoError(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		require.NoError(t, e.resets.RequestReset(e.ctx, "forgot@example.com"))
		token := spy.token("forgot@example.com")

		e.clock.Advance(domain.PasswordResetTTL)
		require.ErrorIs(t, e.resets.ConfirmReset(e.ctx, token, newPassword+"!"), domain.ErrResetTokenInvalid)
	})

	t.Run("unknown token", func(t *testing.T) {
		require.ErrorIs(t, e.resets.ConfirmReset(e.ctx, "", newPassword), domain.ErrResetTokenNotFound)
		require.ErrorIs(t, e.resets.ConfirmReset(e.ctx, "bogus", newPassword), domain.ErrResetTokenNotFound)
	})
}
