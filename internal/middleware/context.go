package middleware

import "context"

type ctxKey string

const (
	ContextUserID    ctxKey = "user_id"
	ContextRequestID ctxKey = "request_id"
)

func UserIDFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(ContextUserID).(int)
	return v, ok
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextRequestID).(string)
	return v, ok
}
