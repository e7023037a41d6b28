package handler

import (
	"net/http"

	appmw "github.com/pingpay/dashboard/internal/middleware"
)

// RoleRedirect sends an authenticated user to the dashboard for their role.
// Requests without a valid session never reach this handler; the auth
// middleware redirects them to /login first.
func RoleRedirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := appmw.RoleFromContext(r.Context())
		http.Redirect(w, r, role.DashboardPath(), http.StatusSeeOther)
	}
}
