package dashboard

import (
	"sync"
	"testing"
	"time"
)

// changeRecorder captures listener notifications.
type changeRecorder struct {
	mu     sync.Mutex
	states []FilterState
}

func (r *changeRecorder) record(s FilterState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *changeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func (r *changeRecorder) last() FilterState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return nil
	}
	return r.states[len(r.states)-1]
}

func TestFilterStoreDefaults(t *testing.T) {
	s := NewFilterStore(FilterStoreOptions{})
	defer s.Close()

	got := s.Filters()
	want := FilterState{
		KeySearchTerm:   "",
		KeyStatusFilter: "all",
		KeyTypeFilter:   "all",
		KeyDateFilter:   "all",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("default %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestApplyFilterKeepsRecognizedKeysDefined(t *testing.T) {
	s := NewFilterStore(FilterStoreOptions{})
	defer s.Close()

	s.ApplyFilter(KeyStatusFilter, "active")
	s.ApplyFilter("customFilter", "x")
	s.ApplyFilter(KeyTypeFilter, "")

	got := s.Filters()
	for _, key := range recognizedKeys {
		if _, ok := got[key]; !ok {
			t.Errorf("recognized key %s must always be present", key)
		}
	}
	if got[KeyStatusFilter] != "active" {
		t.Errorf("statusFilter = %q, want active", got[KeyStatusFilter])
	}
	if got["customFilter"] != "x" {
		t.Errorf("extra keys must be kept, got %q", got["customFilter"])
	}
}

func TestApplyFilterNotifiesImmediately(t *testing.T) {
	rec := &changeRecorder{}
	s := NewFilterStore(FilterStoreOptions{OnChange: rec.record})
	defer s.Close()

	s.ApplyFilter(KeyStatusFilter, "suspended")

	if rec.count() != 1 {
		t.Fatalf("expected 1 immediate notification, got %d", rec.count())
	}
	if got := rec.last()[KeyStatusFilter]; got != "suspended" {
		t.Errorf("notified statusFilter = %q, want suspended", got)
	}
	// Listener receives the FULL resulting state, not just the delta.
	if _, ok := rec.last()[KeySearchTerm]; !ok {
		t.Error("notification must carry the full state")
	}
}

func TestUpdateSearchEchoesImmediatelyNotifiesOnce(t *testing.T) {
	rec := &changeRecorder{}
	s := NewFilterStore(FilterStoreOptions{
		DebounceDelay: 30 * time.Millisecond,
		OnChange:      rec.record,
	})
	defer s.Close()

	for _, term := range []string{"j", "jo", "joh", "john"} {
		s.UpdateSearch(term)
	}

	// Local state reflects the keystroke immediately.
	if got := s.Filters()[KeySearchTerm]; got != "john" {
		t.Errorf("immediate echo = %q, want john", got)
	}
	// But no notification inside the window.
	if rec.count() != 0 {
		t.Fatalf("expected no notifications inside the debounce window, got %d", rec.count())
	}

	time.Sleep(150 * time.Millisecond)

	if rec.count() != 1 {
		t.Fatalf("expected exactly 1 debounced notification, got %d", rec.count())
	}
	if got := rec.last()[KeySearchTerm]; got != "john" {
		t.Errorf("debounced searchTerm = %q, want john", got)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	rec := &changeRecorder{}
	s := NewFilterStore(FilterStoreOptions{
		DebounceDelay: 10 * time.Millisecond,
		OnChange:      rec.record,
	})
	defer s.Close()

	s.ApplyFilter(KeyStatusFilter, "pending")
	s.ApplyFilter(KeyTypeFilter, "business")
	s.UpdateSearch("alice")

	s.Reset()

	got := s.Filters()
	want := FilterState{
		KeySearchTerm:   "",
		KeyStatusFilter: "all",
		KeyTypeFilter:   "all",
		KeyDateFilter:   "all",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("after reset %s = %q, want %q", k, got[k], v)
		}
	}

	// The pending debounced search must not resurrect the old term.
	before := rec.count()
	time.Sleep(60 * time.Millisecond)
	if rec.count() != before {
		t.Error("reset must cancel the pending debounced search")
	}
}

func TestResetHonorsInitialOverrides(t *testing.T) {
	s := NewFilterStore(FilterStoreOptions{
		InitialFilters: FilterState{KeyStatusFilter: "active"},
	})
	defer s.Close()

	s.ApplyFilter(KeyStatusFilter, "suspended")
	s.Reset()

	if got := s.Filters()[KeyStatusFilter]; got != "active" {
		t.Errorf("reset statusFilter = %q, want configured initial active", got)
	}
}
