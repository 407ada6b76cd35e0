package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rollcall-io/rollcall/internal/auth"
)

// authenticate extracts the bearer token, runs the full validation
// sequence and stores the resulting identity in the request context.
func (api *Api) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w, "authorization header required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			unauthorized(w, "authorization header format must be Bearer {token}")
			return
		}

		identity, err := api.authn.Authenticate(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidToken):
				unauthorized(w, "invalid or expired token")
			case errors.Is(err, auth.ErrIdentityGone):
				forbidden(w, "user for token no longer exists")
			default:
				internalError(w, err)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	})
}

func (api *Api) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			unauthorized(w, "authentication required")
			return
		}
		if err := auth.RequireAdmin(identity); err != nil {
			forbidden(w, "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (api *Api) requireAdminOrTeacher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			unauthorized(w, "authentication required")
			return
		}
		if err := auth.RequireAdminOrTeacher(identity); err != nil {
			forbidden(w, "admin or teacher privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// identity returns the authenticated identity for the request. Handlers
// behind the authenticate middleware can rely on it being present.
func (api *Api) identity(r *http.Request) *auth.Identity {
	identity, _ := auth.IdentityFromContext(r.Context())
	return identity
}
