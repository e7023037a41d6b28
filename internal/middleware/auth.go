package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pingpay/dashboard/internal/model"
)

// SessionCookieName is the cookie carrying the auth provider's session token
// for browser navigation; API clients send the same token as a bearer header.
const SessionCookieName = "pp_session"

type contextKey string

const (
	contextKeyUserID contextKey = "userID"
	contextKeyRole   contextKey = "role"
)

// roleResolver resolves the dashboard role for an authenticated user.
type roleResolver interface {
	Role(ctx context.Context, userID string) (model.Role, error)
}

// Auth validates the session token issued by the hosted auth provider and
// populates the request context with the user ID and role. Tokens are never
// issued here, only verified. API requests get a 401 JSON envelope;
// navigation requests are redirected to /login.
func Auth(secret []byte, profiles roleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie(SessionCookieName); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				unauthorized(w, r, "missing session token")
				return
			}

			userID, err := verifyToken(secret, token)
			if err != nil {
				unauthorized(w, r, "invalid session token")
				return
			}

			role, err := profiles.Role(r.Context(), userID)
			if err != nil {
				unauthorized(w, r, "unknown user")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyUserID, userID)
			ctx = context.WithValue(ctx, contextKeyRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows only users with the specified role. Returns 403
// Forbidden for any other role.
func RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin allows only admin users.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)
}

// UserIDFromContext returns the authenticated user's ID from the context.
func UserIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(contextKeyUserID).(string)
	return v
}

// RoleFromContext returns the authenticated user's role from the context.
func RoleFromContext(ctx context.Context) model.Role {
	v, _ := ctx.Value(contextKeyRole).(model.Role)
	return v
}

// WithUser returns a context carrying an authenticated identity. Useful for
// handlers under test.
func WithUser(ctx context.Context, userID string, role model.Role) context.Context {
	ctx = context.WithValue(ctx, contextKeyUserID, userID)
	return context.WithValue(ctx, contextKeyRole, role)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func verifyToken(secret []byte, raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
