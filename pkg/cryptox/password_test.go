package cryptox

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T, pepper string) *PasswordHasher {
	t.Helper()
	h, err := NewPasswordHasher([]byte(pepper), bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestHashAndVerify(t *testing.T) {
	h := newTestHasher(t, "pepper")

	tests := []struct {
		name     string
		password string
	}{
		{"simple", "password123"},
		{"complex", "P@ssw0rd!#$%^&*()"},
		{"longer than bcrypt limit", strings.Repeat("a", 100)},
		{"unicode", "пароль🔒密码"},
		{"whitespace", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$2a$"), hash)

			require.NoError(t, h.Verify(tt.password, hash))
			require.ErrorIs(t, h.Verify(tt.password+"x", hash), ErrPasswordMismatch)
		})
	}
}

func TestLongPasswordsAreNotTruncated(t *testing.T) {
	h := newTestHasher(t, "pepper")

	base := strings.Repeat("a", 72)
	hash, err := h.Hash(base + "1")
	require.NoError(t, err)
	require.ErrorIs(t, h.Verify(base+"2", hash), ErrPasswordMismatch)
}

func TestPepperIsRequiredToVerify(t *testing.T) {
	hash, err := newTestHasher(t, "pepper-a").Hash("secret")
	require.NoError(t, err)

	require.ErrorIs(t, newTestHasher(t, "pepper-b").Verify("secret", hash), ErrPasswordMismatch)
}

func TestVerifyMalformedHash(t *testing.T) {
	err := newTestHasher(t, "pepper").Verify("secret", "not-a-hash")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestVerifyDummy(t *testing.T) {
	h := newTestHasher(t, "pepper")
	h.VerifyDummy("anything")
	h.VerifyDummy("anything else")
}

func TestNewPasswordHasherValidation(t *testing.T) {
	_, err := NewPasswordHasher(nil, 0)
	require.Error(t, err)

	_, err = NewPasswordHasher([]byte("p"), 99)
	require.Error(t, err)

	h, err := NewPasswordHasher([]byte("p"), 0)
	require.NoError(t, err)
	require.Equal(t, DefaultBcryptCost, h.cost)
}

func TestLoadOrCreatePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	again, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, again, "pepper must be stable across loads")
}
