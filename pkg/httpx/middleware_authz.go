package httpx

import (
	"net/http"
	"slices"
)

// RequireAnyRole lets the request through only when the caller's role claim
// is one of roles. It must sit behind AuthnMiddleware.
func RequireAnyRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, Role(r.Context())) {
				WriteJSON(w, http.StatusForbidden, ErrorBody{
					Error:            "forbidden",
					ErrorDescription: "your role does not allow this operation",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
