package jwtx

import (
	"errors"
	"time"
)

// CodecConfig configures a Codec.
type CodecConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration // DefaultTTL when zero
	Leeway time.Duration
	Now    func() time.Time
}

// Codec issues and verifies session tokens. It is safe for concurrent use.
type Codec struct {
	signer   Signer
	verifier Verifier
	issuer   string
	ttl      time.Duration
	now      func() time.Time
}

// NewCodec builds an HS256 codec from cfg.
func NewCodec(cfg CodecConfig) (*Codec, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	signer, err := NewSignerHS256(cfg.Secret)
	if err != nil {
		return nil, err
	}
	verifier, err := NewVerifierHS256(cfg.Secret, VerifyOptions{
		Issuer: cfg.Issuer,
		Leeway: cfg.Leeway,
		Now:    cfg.Now,
	})
	if err != nil {
		return nil, err
	}

	return NewCodecWith(signer, verifier, cfg.Issuer, cfg.TTL, cfg.Now), nil
}

// NewCodecWith assembles a codec around an arbitrary signer/verifier pair.
func NewCodecWith(s Signer, v Verifier, issuer string, ttl time.Duration, now func() time.Time) *Codec {
	if now == nil {
		now = time.Now
	}
	return &Codec{signer: s, verifier: v, issuer: issuer, ttl: ttl, now: now}
}

// TTL reports the lifetime of issued tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue mints a token for the account acting within tenantID as role.
func (c *Codec) Issue(accountID, tenantID, role string) (string, time.Time, error) {
	if accountID == "" || tenantID == "" || role == "" {
		return "", time.Time{}, errors.New("jwtx: subject, company and role are required")
	}

	// NumericDate has second precision, so truncate to keep exp exact.
	now := c.now().UTC().Truncate(time.Second)
	claims := NewClaims(accountID, tenantID, role, c.issuer, c.ttl, now)

	token, err := c.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

// Verify returns the identity asserted by token. Every failure, be it a
// bad signature, wrong algorithm, expiry or missing claim, is reported as
// ErrInvalidToken.
func (c *Codec) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	claims, err := c.verifier.Verify(token)
	if err != nil {
		return Identity{}, errors.Join(ErrInvalidToken, err)
	}
	return claims.Identity(), nil
}
