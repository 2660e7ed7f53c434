package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/docket/pkg/jwtx"
	"github.com/aussiebroadwan/docket/pkg/slogx"
)

// SessionChecker confirms the session named by a token's sid claim is still
// live. A signed token alone is not enough once its session is logged out.
type SessionChecker interface {
	CheckSession(ctx context.Context, sessionID, userID string) error
}

// AuthnMiddleware verifies the bearer token, then asks sessions (when not
// nil) whether the session behind it is still valid.
func AuthnMiddleware(v jwtx.Verifier, sessions SessionChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			if sessions != nil {
				if err := sessions.CheckSession(ctx, claims.SID, claims.Subject); err != nil {
					log.Warn("session rejected",
						"sid", claims.SID,
						"user_id", claims.Subject,
						"err", err,
					)
					writeBearerError(w, "session is no longer valid")
					return
				}
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.WithUser(ctx, claims.Subject, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750 error for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, ErrorBody{
		Error:            "invalid_token",
		ErrorDescription: desc,
	})
}
