package jwtx_test

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// fakeClock is a settable clock shared between issue and verify.
type fakeClock struct{ unix atomic.Int64 }

func (c *fakeClock) Now() time.Time { return time.Unix(c.unix.Load(), 0).UTC() }
func (c *fakeClock) Advance(d time.Duration) { c.unix.Add(int64(d / time.Second)) }

func newCodec(t *testing.T, clock *fakeClock) *jwtx.Codec {
	t.Helper()
	codec, err := jwtx.NewCodec(jwtx.CodecConfig{
		Secret: testSecret,
		Issuer: "roster",
		TTL:    24 * time.Hour,
		Now:    clock.Now,
	})
	require.NoError(t, err)
	return codec
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{}
	clock.unix.Store(1_700_000_000)
	codec := newCodec(t, clock)

	token, exp, err := codec.Issue("acc-1", "ten-1", "manager")
	require.NoError(t, err)
	require.Equal(t, clock.Now().Add(24*time.Hour), exp)

	id, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, jwtx.Identity{AccountID: "acc-1", TenantID: "ten-1", Role: "manager"}, id)
}

func TestCodecExpiry(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{}
	clock.unix.Store(1_700_000_000)
	codec := newCodec(t, clock)

	token, _, err := codec.Issue("acc-1", "ten-1", "employee")
	require.NoError(t, err)

	clock.Advance(24*time.Hour - time.Second)
	_, err = codec.Verify(token)
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	_, err = codec.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestCodecRejects(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{}
	clock.unix.Store(1_700_000_000)
	codec := newCodec(t, clock)

	good, _, err := codec.Issue("acc-1", "ten-1", "admin")
	require.NoError(t, err)

	claims := jwtx.NewClaims("acc-1", "ten-1", "admin", "roster", time.Hour, clock.Now())

	t.Run("empty", func(t *testing.T) {
		_, err := codec.Verify("")
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := codec.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("tampered signature", func(t *testing.T) {
		parts := strings.Split(good, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		_, err := codec.Verify(parts[0] + "." + parts[1] + "." + string(sig))
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := jwtx.NewSignerHS256([]byte("ffffffffffffffffffffffffffffffff"))
		require.NoError(t, err)
		tok, err := other.Sign(claims)
		require.NoError(t, err)
		_, err = codec.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("alg none", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = codec.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("alg HS512 with same secret", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
		require.NoError(t, err)
		_, err = codec.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := jwtx.NewClaims("acc-1", "ten-1", "admin", "someone-else", time.Hour, clock.Now())
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(testSecret)
		require.NoError(t, err)
		_, err = codec.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("missing company claim", func(t *testing.T) {
		c := jwtx.NewClaims("acc-1", "", "admin", "roster", time.Hour, clock.Now())
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(testSecret)
		require.NoError(t, err)
		_, err = codec.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})
}

func TestCodecConfig(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewCodec(jwtx.CodecConfig{Secret: []byte("short")})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	codec, err := jwtx.NewCodec(jwtx.CodecConfig{Secret: testSecret})
	require.NoError(t, err)
	require.Equal(t, jwtx.DefaultTTL, codec.TTL())

	_, _, err = codec.Issue("", "ten", "admin")
	require.Error(t, err)
}
