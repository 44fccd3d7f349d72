package session

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// HeaderName carries the session id for clients that do not keep cookies.
const HeaderName = "X-Session-Id"

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session resolved by the middleware, or nil.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok {
		return s
	}
	return nil
}

// IDFromRequest looks for a session id in the header first, then the cookie.
func IDFromRequest(r *http.Request, cookieName string) string {
	if id := r.Header.Get(HeaderName); id != "" {
		return id
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
