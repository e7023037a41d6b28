package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pingpay/dashboard/internal/model"
	"github.com/pingpay/dashboard/internal/store"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type userManagementStore interface {
	List(ctx context.Context, p store.ListParams) ([]model.User, int, error)
	Action(ctx context.Context, action string, userIDs []string) ([]model.User, error)
}

// UsersHandler forwards user-management requests to the get_admin_users and
// admin_user_action database functions.
type UsersHandler struct {
	BaseHandler
	users userManagementStore
}

func NewUsersHandler(logger *slog.Logger, users userManagementStore) *UsersHandler {
	return &UsersHandler{BaseHandler: BaseHandler{Logger: logger}, users: users}
}

// List handles GET /api/dashboard/admin/users. The five query parameters map
// one-to-one onto get_admin_users; absent parameters take the documented
// defaults (''/''/20/0/'').
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := store.ListParams{
		KYC:    q.Get("filter_kyc"),
		Status: q.Get("filter_status"),
		Limit:  intParam(q.Get("page_limit"), defaultPageLimit),
		Offset: intParam(q.Get("page_offset"), 0),
		Search: q.Get("search_term"),
	}
	if params.Limit <= 0 || params.Limit > maxPageLimit {
		params.Limit = defaultPageLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	users, total, err := h.users.List(r.Context(), params)
	if err != nil {
		h.remoteErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"data": users, "count": total}, nil); err != nil {
		h.logError(r, err)
	}
}

// Actions handles POST /api/dashboard/admin/users/actions. The body is
// forwarded to admin_user_action; the function itself decides which actions
// are valid.
func (h *UsersHandler) Actions(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Action  string   `json:"action"`
		UserIDs []string `json:"user_ids"`
	}
	if err := h.readJSON(w, r, &input); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	users, err := h.users.Action(r.Context(), input.Action, input.UserIDs)
	if err != nil {
		h.remoteErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"data": users}, nil); err != nil {
		h.logError(r, err)
	}
}

func intParam(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
