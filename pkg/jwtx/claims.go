package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of a session token when none is configured.
const DefaultTTL = 24 * time.Hour

// Claims are the session-token claims. The subject is the account id;
// company_id and role describe the tenant the session was minted for.
type Claims struct {
	jwt.RegisteredClaims

	// CompanyID is the tenant the token is scoped to.
	CompanyID string `json:"company_id"`

	// Role is the membership role within CompanyID, e.g. "admin".
	Role string `json:"role"`
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	AccountID string
	TenantID  string
	Role      string
}

// NewClaims builds minimally-correct claims.
func NewClaims(subject, companyID, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		CompanyID: companyID,
		Role:      role,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateRequired checks the custom claims every session token must carry.
func (c *Claims) ValidateRequired() error {
	if c.Subject == "" || c.CompanyID == "" || c.Role == "" {
		return ErrInvalidClaim
	}
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	return nil
}

// Identity projects the claims onto the bearer identity.
func (c *Claims) Identity() Identity {
	return Identity{
		AccountID: c.Subject,
		TenantID:  c.CompanyID,
		Role:      c.Role,
	}
}
