package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Machine codes returned by the identity service.
const (
	CodeBadCredentials       = "BAD_CREDENTIALS"
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeUnauthenticated      = "UNAUTHENTICATED"
	CodeMFARequired          = "MFA_REQUIRED"
	CodeInvalidOTP           = "INVALID_OTP"
	CodeAccountDisabled      = "ACCOUNT_DISABLED"
	CodeNoTenant             = "NO_TENANT"
	CodeForbidden            = "FORBIDDEN"
	CodeInvitationNotFound   = "INVITATION_NOT_FOUND"
	CodeInvitationInvalid    = "INVITATION_INVALID"
	CodeEmailMismatch        = "EMAIL_MISMATCH"
	CodeUnexpectedPassword   = "UNEXPECTED_PASSWORD"
	CodeCapacityExceeded     = "CAPACITY_EXCEEDED"
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeWeakPassword         = "WEAK_PASSWORD"
	CodeValidation           = "VALIDATION_ERROR"
	CodeResetTokenNotFound   = "RESET_TOKEN_NOT_FOUND"
	CodeResetTokenInvalid    = "RESET_TOKEN_INVALID"
	CodeTenantNotFound       = "TENANT_NOT_FOUND"
	CodeTenantCodeTaken      = "TENANT_CODE_TAKEN"
	CodeMFAAlreadyEnabled    = "MFA_ALREADY_ENABLED"
	CodeMFANotEnrolled       = "MFA_NOT_ENROLLED"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternal             = "INTERNAL_ERROR"
)

// APIError is a failure envelope returned by the service.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	Code      string
	Message   string
	Details   map[string]string
	RequestID string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Field returns the offending field of a validation failure, if any.
func (e *APIError) Field() string {
	return e.Details["field"]
}

// HasCode reports whether err is an APIError carrying code.
func HasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
// Bodies that are not an error envelope (e.g. from a proxy) become a
// generic error keyed on the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var env ErrorResponse
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Code != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Error.Code,
			Message:    env.Error.Message,
			Details:    env.Error.Details,
			RequestID:  env.RequestID,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       CodeInternal,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		RequestID:  resp.Header.Get("X-Request-ID"),
	}
}
