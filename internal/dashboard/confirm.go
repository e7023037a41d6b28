package dashboard

import (
	"context"
	"errors"
	"sync"
)

// ErrConfirmationPending reports an Open while a request is already pending.
// A pending confirmation is never silently overwritten.
var ErrConfirmationPending = errors.New("a confirmation is already pending")

// errNothingPending is returned by Confirm/outcomes when the gate is closed.
var errNothingPending = errors.New("no confirmation pending")

// ConfirmRequest is one confirmation prompt: what to show and what to run on
// confirm.
type ConfirmRequest struct {
	Title       string
	Message     string
	ActionLabel string
	OnConfirm   func(ctx context.Context) error
}

// ConfirmGate is a one-shot confirmation channel with two states: closed
// (initial) and pending. Destructive actions open the gate and only run via
// Confirm; Cancel discards. The gate always returns to closed after Confirm,
// whether the bound action succeeded or failed.
type ConfirmGate struct {
	mu      sync.Mutex
	pending *ConfirmRequest
}

func NewConfirmGate() *ConfirmGate {
	return &ConfirmGate{}
}

// Open transitions closed -> pending. Opening while pending is rejected.
func (g *ConfirmGate) Open(req ConfirmRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending != nil {
		return ErrConfirmationPending
	}
	g.pending = &req
	return nil
}

// Pending returns the current request, if any.
func (g *ConfirmGate) Pending() (ConfirmRequest, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return ConfirmRequest{}, false
	}
	return *g.pending, true
}

// Confirm runs the bound action and closes the gate regardless of the
// action's outcome.
func (g *ConfirmGate) Confirm(ctx context.Context) error {
	g.mu.Lock()
	req := g.pending
	g.mu.Unlock()

	if req == nil {
		return errNothingPending
	}

	defer func() {
		g.mu.Lock()
		g.pending = nil
		g.mu.Unlock()
	}()

	if req.OnConfirm == nil {
		return nil
	}
	return req.OnConfirm(ctx)
}

// Cancel discards the pending request.
func (g *ConfirmGate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = nil
}
