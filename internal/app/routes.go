package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/pingpay/dashboard/internal/handler"
	"github.com/pingpay/dashboard/internal/middleware"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RateLimit(rate.Limit(app.config.RateLimitRPS), app.config.RateLimitBurst))
	r.Use(app.requestLogger)
	if len(app.config.Cors.TrustedOrigins) > 0 {
		r.Use(corsMiddleware(app.config.Cors.TrustedOrigins))
	}

	// Health check
	r.Get("/api/health", handler.Health(app.pool))

	// Everything else requires a session issued by the auth provider.
	authMW := middleware.Auth([]byte(app.config.AuthJWTSecret), app.profiles)
	r.Group(func(r chi.Router) {
		r.Use(authMW)

		// Role-based dashboard entry points
		redirect := handler.RoleRedirect()
		r.Get("/", redirect)
		r.Get("/dashboard", redirect)

		// Admin API
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			analyticsHandler := handler.NewAnalyticsHandler(app.logger, app.analytics)
			r.Get("/api/dashboard/admin/analytics", analyticsHandler.Get)

			usersHandler := handler.NewUsersHandler(app.logger, app.users)
			r.Get("/api/dashboard/admin/users", usersHandler.List)
			r.Post("/api/dashboard/admin/users/actions", usersHandler.Actions)
		})
	})
	return r
}

func (app *App) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		app.logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	normalized := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		normalized[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			_, allowed := normalized[origin]
			if origin == "" || !allowed {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
