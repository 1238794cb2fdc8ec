package domain

import "errors"

// Kind groups errors by how a caller should react to them.
type Kind int

const (
	KindUnknown    Kind = iota
	KindAuth            // caller is not who they claim to be
	KindAuthz           // caller may not do this
	KindNotFound        // referenced thing does not exist
	KindInvalid         // thing exists but is in the wrong state
	KindCapacity        // a tenant limit would be exceeded
	KindValidation      // request is malformed
)

// Error is a failure with a stable machine code. The sentinels below are
// the whole taxonomy; add detail by wrapping them with %w.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrBadCredentials  = newError(KindAuth, "BAD_CREDENTIALS", "invalid email or password")
	ErrInvalidToken    = newError(KindAuth, "INVALID_TOKEN", "invalid or expired token")
	ErrUnauthenticated = newError(KindAuth, "UNAUTHENTICATED", "authentication required")
	ErrMFARequired     = newError(KindAuth, "MFA_REQUIRED", "a one-time code is required")
	ErrInvalidOTP      = newError(KindAuth, "INVALID_OTP", "invalid one-time code")

	ErrAccountDisabled = newError(KindAuthz, "ACCOUNT_DISABLED", "account is not active")
	ErrNoTenant        = newError(KindAuthz, "NO_TENANT", "account does not belong to any tenant")
	ErrForbidden       = newError(KindAuthz, "FORBIDDEN", "operation not permitted")

	ErrInvitationNotFound = newError(KindNotFound, "INVITATION_NOT_FOUND", "invitation not found")
	ErrResetTokenNotFound = newError(KindNotFound, "RESET_TOKEN_NOT_FOUND", "reset token not found")
	ErrTenantNotFound     = newError(KindNotFound, "TENANT_NOT_FOUND", "tenant not found")

	ErrInvitationInvalid  = newError(KindInvalid, "INVITATION_INVALID", "invitation is no longer usable")
	ErrEmailMismatch      = newError(KindInvalid, "EMAIL_MISMATCH", "email does not match the invitation")
	ErrUnexpectedPassword = newError(KindInvalid, "UNEXPECTED_PASSWORD", "account already exists; sign in with the existing password")
	ErrResetTokenInvalid  = newError(KindInvalid, "RESET_TOKEN_INVALID", "reset token has expired")
	ErrTenantCodeTaken    = newError(KindInvalid, "TENANT_CODE_TAKEN", "tenant code already in use")
	ErrMFAAlreadyEnabled  = newError(KindInvalid, "MFA_ALREADY_ENABLED", "two-factor authentication is already enabled")
	ErrMFANotEnrolled     = newError(KindInvalid, "MFA_NOT_ENROLLED", "two-factor authentication is not enrolled")

	ErrCapacityExceeded = newError(KindCapacity, "CAPACITY_EXCEEDED", "tenant member limit reached")

	ErrMissingRequiredField = newError(KindValidation, "MISSING_REQUIRED_FIELD", "missing required field")
	ErrWeakPassword         = newError(KindValidation, "WEAK_PASSWORD", "password must be 12+ characters mixing upper, lower, digit and symbol")
	ErrValidation           = newError(KindValidation, "VALIDATION_ERROR", "request validation failed")
)

// FieldError attaches the offending field to a validation failure.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Err.Error() + ": " + e.Field }
func (e *FieldError) Unwrap() error { return e.Err }

// MissingField reports that field was required but empty.
func MissingField(field string) error {
	return &FieldError{Field: field, Err: ErrMissingRequiredField}
}

// AsError finds the taxonomy error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
