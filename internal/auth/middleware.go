package auth

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/httpx"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/metrics"
)

// SessionMiddleware attaches the claims of a valid session cookie to the
// request context. A bad or expired cookie is cleared and the request goes on
// unauthenticated.
func (s *AuthService) SessionMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := s.sessionToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := s.Parse(token)
			if err != nil {
				logger.Debugw("dropping session cookie", "path", r.URL.Path, "err", err)
				s.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// GuardMiddleware enforces Decide before any handler runs. Page requests get
// a 303 redirect; API requests get a JSON error instead.
func GuardMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _ := FromContext(r.Context())
			d := Decide(claims, r.URL.Path)
			if d.Allowed() {
				next.ServeHTTP(w, r)
				return
			}

			metrics.GuardRedirects.WithLabelValues(d.Location).Inc()
			logger.Debugw("guard redirect", "path", r.URL.Path, "location", d.Location)

			if isAPIPath(r.URL.Path) {
				switch d.Location {
				case LoginPath:
					httpx.WriteErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
				case ChangePasswordPath:
					httpx.WriteJSON(w, http.StatusForbidden, httpx.ErrorResponse{
						Error:    "Password change required",
						Redirect: ChangePasswordPath,
					})
				default:
					httpx.WriteErrorMessage(w, http.StatusForbidden, "Forbidden")
				}
				return
			}

			loc := d.Location
			if loc == LoginPath && r.URL.Path != DashboardPath {
				loc += "?callbackUrl=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, loc, http.StatusSeeOther)
		})
	}
}
