package auth

import (
	"crypto/subtle"
	"net/http"

	"bakery-production/internal/http/response"
	"bakery-production/internal/storage"
)

const CSRFHeader = "X-CSRF-Token"

// CSRF rejects mutating requests whose X-CSRF-Token does not match the session token.
// It must run after Sessions.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			next.ServeHTTP(w, r)
			return
		}

		s, ok := SessionFrom(r.Context())
		if !ok {
			response.Error(w, r, http.StatusUnauthorized, "authorization required")
			return
		}

		got := r.Header.Get(CSRFHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(s.CSRF)) != 1 {
			response.Error(w, r, http.StatusForbidden, "invalid CSRF token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RequireRole(roles ...storage.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := SessionFrom(r.Context())
			if !ok {
				response.Error(w, r, http.StatusUnauthorized, "authorization required")
				return
			}
			for _, role := range roles {
				if s.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Error(w, r, http.StatusForbidden, "your role cannot perform this action")
		})
	}
}
