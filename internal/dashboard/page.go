package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ControllerOptions configures a UsersController.
type ControllerOptions struct {
	DebounceDelay  time.Duration
	InitialFilters FilterState
	Logger         *slog.Logger
}

// UsersController composes the filter store, fetch coordinator, selection
// set, and confirmation gate into the user-management view: pagination is
// 1-based, filter changes refetch the current page, destructive actions pass
// through the gate, and the selection is cleared whenever the backing row
// set changes shape.
type UsersController struct {
	Filters   *FilterStore
	coord     *Coordinator
	selection *Selection
	gate      *ConfirmGate
	logger    *slog.Logger

	mu    sync.Mutex
	page  int
	shape string
}

func NewUsersController(coord *Coordinator, opts ControllerOptions) *UsersController {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &UsersController{
		coord:     coord,
		selection: NewSelection(),
		gate:      NewConfirmGate(),
		logger:    logger,
		page:      1,
	}
	c.Filters = NewFilterStore(FilterStoreOptions{
		DebounceDelay:  opts.DebounceDelay,
		InitialFilters: opts.InitialFilters,
		OnChange:       c.onFiltersChanged,
	})
	return c
}

// Refresh fetches the current page under the current filters.
func (c *UsersController) Refresh(ctx context.Context) error {
	return c.fetch(ctx, c.Filters.Filters(), c.Page())
}

// SetPage moves the 1-based pagination cursor and fetches that page.
func (c *UsersController) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
	return c.fetch(ctx, c.Filters.Filters(), page)
}

// Page returns the current 1-based page.
func (c *UsersController) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Users, Total, TotalPages, and Loading expose the coordinator's state.
func (c *UsersController) Users() []User { return c.coord.Users() }

func (c *UsersController) Total() int { return c.coord.Total() }

func (c *UsersController) TotalPages() int { return c.coord.TotalPages() }

func (c *UsersController) Loading() bool { return c.coord.Loading() }

func (c *UsersController) Selected() int { return c.selection.Count() }

func (c *UsersController) SelectedIDs() []string { return c.selection.IDs() }

// ToggleSelect flips one row's checkbox.
func (c *UsersController) ToggleSelect(id string) {
	c.selection.Toggle(id)
}

// IsSelected reports whether a row is checked.
func (c *UsersController) IsSelected(id string) bool {
	return c.selection.Has(id)
}

// SelectAllDisplayed checks exactly the currently displayed rows.
func (c *UsersController) SelectAllDisplayed() {
	users := c.coord.Users()
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	c.selection.SelectAll(ids)
}

// ClearSelection unchecks everything.
func (c *UsersController) ClearSelection() {
	c.selection.Clear()
}

// RequestBulkAction opens the confirmation gate for the selected users.
// No-op error when nothing is selected; rejected while another confirmation
// is pending.
func (c *UsersController) RequestBulkAction(action Action) error {
	ids := c.selection.IDs()
	if len(ids) == 0 {
		return ErrNoSelection
	}
	return c.gate.Open(ConfirmRequest{
		Title:       fmt.Sprintf("Confirm action: %s", action),
		Message:     fmt.Sprintf("Are you sure you want to %s %d user(s)?", action, len(ids)),
		ActionLabel: capitalize(string(action)),
		OnConfirm:   c.boundAction(action, ids),
	})
}

// RequestUserAction opens the confirmation gate for a single user.
func (c *UsersController) RequestUserAction(userID string, action Action) error {
	return c.gate.Open(ConfirmRequest{
		Title:       fmt.Sprintf("Confirm action: %s", action),
		Message:     fmt.Sprintf("Are you sure you want to %s this user?", action),
		ActionLabel: capitalize(string(action)),
		OnConfirm:   c.boundAction(action, []string{userID}),
	})
}

// PendingConfirmation exposes the gate's current request.
func (c *UsersController) PendingConfirmation() (ConfirmRequest, bool) {
	return c.gate.Pending()
}

// Confirm runs the pending action; the gate closes whether it succeeds or
// fails.
func (c *UsersController) Confirm(ctx context.Context) error {
	return c.gate.Confirm(ctx)
}

// Cancel discards the pending confirmation.
func (c *UsersController) Cancel() {
	c.gate.Cancel()
}

func (c *UsersController) boundAction(action Action, ids []string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		err := c.coord.ExecuteAction(ctx, action, ids, c.Filters.Filters(), c.Page())
		if err != nil {
			return err
		}
		c.selection.Clear()
		c.rememberShape()
		return nil
	}
}

// onFiltersChanged runs on every immediate filter update and after each
// search debounce window. It refetches the current page in the background;
// failures keep the previous rows and are logged, not surfaced.
func (c *UsersController) onFiltersChanged(filters FilterState) {
	if err := c.fetch(context.Background(), filters, c.Page()); err != nil {
		c.logger.Error("failed to fetch users", "error", err)
	}
}

func (c *UsersController) fetch(ctx context.Context, filters FilterState, page int) error {
	if err := c.coord.Fetch(ctx, filters, page); err != nil {
		return err
	}

	c.mu.Lock()
	prev := c.shape
	c.mu.Unlock()
	if shape := c.currentShape(); shape != prev {
		c.selection.Clear()
		c.mu.Lock()
		c.shape = shape
		c.mu.Unlock()
	}
	return nil
}

func (c *UsersController) rememberShape() {
	shape := c.currentShape()
	c.mu.Lock()
	c.shape = shape
	c.mu.Unlock()
}

// currentShape fingerprints the displayed row set; selection survives only
// as long as the same rows stay on screen.
func (c *UsersController) currentShape() string {
	users := c.coord.Users()
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return strings.Join(ids, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
