package log

import "context"

// Logger is the ctx-first logging facade used across the service.
type Logger interface {
	Debug(ctx context.Context, arg ...any)
	Debugf(ctx context.Context, template string, arg ...any)
	Info(ctx context.Context, arg ...any)
	Infof(ctx context.Context, template string, arg ...any)
	Warn(ctx context.Context, arg ...any)
	Warnf(ctx context.Context, template string, arg ...any)
	Error(ctx context.Context, arg ...any)
	Errorf(ctx context.Context, template string, arg ...any)
	DPanic(ctx context.Context, arg ...any)
	DPanicf(ctx context.Context, template string, arg ...any)
	Panic(ctx context.Context, arg ...any)
	Panicf(ctx context.Context, template string, arg ...any)
	Fatal(ctx context.Context, arg ...any)
	Fatalf(ctx context.Context, template string, arg ...any)
}

type ctxKey string

// RequestIDKey is the context key the HTTP layer stores the request id under.
const RequestIDKey ctxKey = "request_id"

const (
	loginKey   ctxKey = "login"
	sessionKey ctxKey = "session_id"
)

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithCaller returns a copy of ctx whose log lines carry the GitHub login and
// session id. Empty values are left out.
func WithCaller(ctx context.Context, login, sessionID string) context.Context {
	if login != "" {
		ctx = context.WithValue(ctx, loginKey, login)
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, sessionKey, sessionID)
	}
	return ctx
}
