package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/roster/internal/identity/domain"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// statusOf maps a taxonomy error to its HTTP status.
func statusOf(e *domain.Error) int {
	switch e.Kind {
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindAuthz, domain.KindCapacity:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalid:
		if e == domain.ErrEmailMismatch || e == domain.ErrUnexpectedPassword {
			return http.StatusBadRequest
		}
		return http.StatusConflict
	case domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as a failure envelope. Errors outside the
// taxonomy are logged and reported as INTERNAL_ERROR without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, httpx.ErrBadJSON) {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeValidation, "request body is not valid JSON", nil)
		return
	}

	e, ok := domain.AsError(err)
	if !ok || e.Kind == domain.KindUnknown {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal server error", nil)
		return
	}

	httpx.WriteError(w, statusOf(e), e.Code, e.Message, details(err))
}

// details extracts per-field information from a validation failure.
func details(err error) map[string]string {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return map[string]string{"field": fe.Field}
	}

	var ve validation.Errors
	if errors.As(err, &ve) && len(ve) > 0 {
		out := make(map[string]string, len(ve))
		for field, fieldErr := range ve {
			out[field] = fieldErr.Error()
		}
		return out
	}
	return nil
}
