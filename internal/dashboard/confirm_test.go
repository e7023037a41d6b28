package dashboard

import (
	"context"
	"errors"
	"testing"
)

func TestConfirmGateRunsBoundActionOnce(t *testing.T) {
	g := NewConfirmGate()

	ran := 0
	err := g.Open(ConfirmRequest{
		Title:       "Confirm action: suspend",
		ActionLabel: "Suspend",
		OnConfirm:   func(context.Context) error { ran++; return nil },
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := g.Confirm(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if ran != 1 {
		t.Errorf("action ran %d times, want 1", ran)
	}
	if _, pending := g.Pending(); pending {
		t.Error("gate must close after confirm")
	}
}

func TestConfirmGateClosesEvenOnFailure(t *testing.T) {
	g := NewConfirmGate()
	boom := errors.New("boom")

	_ = g.Open(ConfirmRequest{OnConfirm: func(context.Context) error { return boom }})

	if err := g.Confirm(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected the action error, got %v", err)
	}
	if _, pending := g.Pending(); pending {
		t.Error("gate must close after a failed confirm")
	}
}

func TestConfirmGateRejectsOverlappingRequests(t *testing.T) {
	g := NewConfirmGate()

	if err := g.Open(ConfirmRequest{Title: "first"}); err != nil {
		t.Fatalf("open: %v", err)
	}
	err := g.Open(ConfirmRequest{Title: "second"})
	if !errors.Is(err, ErrConfirmationPending) {
		t.Fatalf("expected ErrConfirmationPending, got %v", err)
	}

	// The first request is untouched.
	req, pending := g.Pending()
	if !pending || req.Title != "first" {
		t.Errorf("pending request = %+v, want the first one", req)
	}
}

func TestConfirmGateCancelDiscards(t *testing.T) {
	g := NewConfirmGate()

	ran := false
	_ = g.Open(ConfirmRequest{OnConfirm: func(context.Context) error { ran = true; return nil }})
	g.Cancel()

	if _, pending := g.Pending(); pending {
		t.Error("gate must close on cancel")
	}
	if err := g.Confirm(context.Background()); err == nil {
		t.Error("confirm on a closed gate must error")
	}
	if ran {
		t.Error("cancelled action must not run")
	}
}
