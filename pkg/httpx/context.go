package httpx

import "context"

type ctxKey string

// CtxKeyUserID holds the authenticated account id, used as the rate
// limiting key for signed-in callers.
const CtxKeyUserID ctxKey = "user_id"

// UserIDFromContext returns the authenticated account id, or "".
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
