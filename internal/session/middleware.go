package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/api"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
)

const DefaultCookieName = "storefront_session"

// Middleware resolves the request's session, issues one when absent and
// holds its lock until the handler returns.
func Middleware(reg *Registry, cookieName string, ttl time.Duration, tr i18n.Translator) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, issued, err := reg.Acquire(r.Context(), IDFromRequest(r, cookieName))
			if errors.Is(err, ErrInvalidID) {
				api.WriteError(w, http.StatusNotFound, tr.T("session.unknown", nil))
				return
			}

			if issued {
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    s.ID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(HeaderName, s.ID)

			s.Lock()
			defer s.Unlock()
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}
