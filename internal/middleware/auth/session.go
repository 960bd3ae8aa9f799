package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bakery-production/internal/http/response"
	"bakery-production/internal/storage"
)

// Session is the logged-in user a request acts for.
type Session struct {
	UserID   int64
	FullName string
	Role     storage.Role
	CSRF     string
}

type sessionKey struct{}

type Claims struct {
	UserID   int64        `json:"user_id"`
	FullName string       `json:"full_name"`
	Role     storage.Role `json:"role"`
	CSRF     string       `json:"csrf"`
	jwt.RegisteredClaims
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// IssueToken signs a session token for the user. The returned CSRF value must be echoed in
// X-CSRF-Token on every mutating request made with the token.
func IssueToken(secret, issuer string, ttl time.Duration, userID int64, fullName string, role storage.Role) (token, csrf string, err error) {
	if userID <= 0 {
		return "", "", errors.New("user id must be positive")
	}
	if !role.Valid() {
		return "", "", fmt.Errorf("unknown role %q", role)
	}

	csrf = uuid.NewString()
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		FullName: fullName,
		Role:     role,
		CSRF:     csrf,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return token, csrf, nil
}

// Sessions resolves the bearer token into a Session stored in the request context.
func Sessions(secret, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				response.Error(w, r, http.StatusUnauthorized, "authorization required")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			},
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithIssuer(issuer),
				jwt.WithExpirationRequired(),
			)
			if err != nil || !token.Valid {
				response.Error(w, r, http.StatusUnauthorized, "invalid or expired session")
				return
			}
			if claims.UserID <= 0 || !claims.Role.Valid() || claims.CSRF == "" {
				response.Error(w, r, http.StatusUnauthorized, "invalid session")
				return
			}

			ctx := WithSession(r.Context(), Session{
				UserID:   claims.UserID,
				FullName: claims.FullName,
				Role:     claims.Role,
				CSRF:     claims.CSRF,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
