package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ers-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// SessionRequired rejects requests without a verified session token whose
// session is still present in the store. It must run after jwtauth.Verify.
func SessionRequired(jwtService jwt.Service, sessions auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				if errors.Is(err, jwtauth.ErrNoTokenFound) {
					response.HandleError(w, auth.ErrNoSession)
					return
				}
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrNoSession)
				return
			}

			sessionID, _, err := jwtService.ParseSessionClaims(claims)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// The store is authoritative so logged out sessions stop working
			// before their token expires.
			session, err := sessions.Session(r.Context(), sessionID)
			if err != nil {
				slog.Debug("Session lookup failed", "error", err)
				response.HandleError(w, err)
				return
			}

			ctx := WithPrincipal(r.Context(), session.ID, session.Principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
