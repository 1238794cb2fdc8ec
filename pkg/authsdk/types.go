package authsdk

import "time"

// ============================================================================
// Envelope Types
// ============================================================================

// Envelope is the wrapper around every JSON response of the identity
// service. Exactly one of Data and Error is set.
type Envelope[T any] struct {
	Success   bool       `json:"success"`
	Data      T          `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	// Code is the stable machine code (e.g., "BAD_CREDENTIALS")
	Code string `json:"code"`

	// Message is a human-readable description of the error
	Message string `json:"message"`

	// Details carries per-field information, e.g. {"field": "password"}
	Details map[string]string `json:"details,omitempty"`
}

// ErrorResponse is the failure envelope as it appears on the wire.
type ErrorResponse struct {
	Success   bool       `json:"success" example:"false"`
	Error     *ErrorBody `json:"error"`
	RequestID string     `json:"request_id,omitempty"`
}

// ============================================================================
// Session Types
// ============================================================================

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// OTPCode is required once the account has activated TOTP
	OTPCode string `json:"otp_code,omitempty"`

	// TenantID picks the tenant for accounts with several memberships
	TenantID string `json:"tenant_id,omitempty"`
}

// Profile is an account as seen from one tenant.
type Profile struct {
	AccountID          string `json:"account_id"`
	Email              string `json:"email"`
	FamilyName         string `json:"family_name"`
	GivenName          string `json:"given_name"`
	FamilyNamePhonetic string `json:"family_name_phonetic,omitempty"`
	GivenNamePhonetic  string `json:"given_name_phonetic,omitempty"`
	TenantID           string `json:"tenant_id"`
	TenantCode         string `json:"tenant_code"`
	TenantName         string `json:"tenant_name"`
	Role               string `json:"role"`
	MFAEnabled         bool   `json:"mfa_enabled"`
}

// LoginResponse is returned by POST /v1/auth/login.
type LoginResponse struct {
	// AccessToken is the HS256 JWT to send as "Bearer {token}"
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	ExpiresAt time.Time `json:"expires_at"`
	Profile   Profile   `json:"profile"`
}

// ============================================================================
// Registration Types
// ============================================================================

// RegisterRequest is the body of POST /v1/auth/register. Password and
// names may be omitted when the email already has an account.
type RegisterRequest struct {
	InvitationToken    string `json:"invitation_token"`
	Email              string `json:"email"`
	Password           string `json:"password,omitempty"`
	FamilyName         string `json:"family_name,omitempty"`
	GivenName          string `json:"given_name,omitempty"`
	FamilyNamePhonetic string `json:"family_name_phonetic,omitempty"`
	GivenNamePhonetic  string `json:"given_name_phonetic,omitempty"`
}

// RegisterResponse is returned by POST /v1/auth/register.
type RegisterResponse struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// ============================================================================
// Password Reset Types
// ============================================================================

// PasswordResetRequest is the body of POST /v1/auth/password-reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest is the body of POST /v1/auth/password-reset/confirm.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// MessageResponse is returned by endpoints with nothing else to say.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Invitation Types
// ============================================================================

// IssueInvitationRequest is the body of POST /v1/invitations. TenantID is
// only honoured for system administrators; everyone else invites into the
// tenant of their token.
type IssueInvitationRequest struct {
	TenantID       string `json:"tenant_id,omitempty"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	EmployeeNo     string `json:"employee_no"`
	EmploymentType string `json:"employment_type,omitempty"`

	// HireDate is a calendar date, "2006-01-02"
	HireDate string `json:"hire_date,omitempty"`

	TTLDays int `json:"ttl_days,omitempty"`
	MaxUses int `json:"max_uses,omitempty"`
}

// Invitation describes an invitation without its token.
type Invitation struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	EmployeeNo     string    `json:"employee_no"`
	EmploymentType string    `json:"employment_type"`
	HireDate       string    `json:"hire_date,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
	MaxUses        int       `json:"max_uses"`
	UsedCount      int       `json:"used_count"`
	Status         string    `json:"status"`
}

// IssuedInvitation is returned once, when the invitation is created. The
// token cannot be retrieved again.
type IssuedInvitation struct {
	Invitation
	Token string `json:"token"`
}

// ============================================================================
// MFA Types
// ============================================================================

// TOTPEnrollResponse carries the seed for an authenticator app.
type TOTPEnrollResponse struct {
	Secret string `json:"secret"`

	// OTPAuthURL is the otpauth:// URI, suitable for a QR code
	OTPAuthURL string `json:"otpauth_url"`
}

// TOTPCodeRequest is the body of the activate and disable endpoints.
type TOTPCodeRequest struct {
	Code string `json:"code"`
}

// ============================================================================
// Tenant Types
// ============================================================================

// ProvisionTenantRequest is the body of POST /v1/tenants.
type ProvisionTenantRequest struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	Timezone        string `json:"timezone,omitempty"`
	Currency        string `json:"currency,omitempty"`
	MaxMembers      *int   `json:"max_members,omitempty"`
	AdminEmail      string `json:"admin_email"`
	AdminEmployeeNo string `json:"admin_employee_no"`
}

// Tenant describes a company.
type Tenant struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Timezone   string `json:"timezone"`
	Currency   string `json:"currency"`
	MaxMembers *int   `json:"max_members,omitempty"`
}

// ProvisionedTenant is returned by POST /v1/tenants.
type ProvisionedTenant struct {
	Tenant     Tenant           `json:"tenant"`
	Invitation IssuedInvitation `json:"invitation"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains the status of critical dependencies (readyz only)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
