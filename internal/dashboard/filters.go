package dashboard

import (
	"sync"
	"time"
)

// Recognized filter keys. The state is an open map, so callers may track
// extra keys, but the recognized ones are always present with a defined
// value.
const (
	KeySearchTerm   = "searchTerm"
	KeyStatusFilter = "statusFilter"
	KeyTypeFilter   = "typeFilter"
	KeyDateFilter   = "dateFilter"
)

var recognizedKeys = []string{KeySearchTerm, KeyStatusFilter, KeyTypeFilter, KeyDateFilter}

// FilterState holds the current filter values for a view.
type FilterState map[string]string

func (s FilterState) clone() FilterState {
	out := make(FilterState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// DefaultDebounceDelay is the search debounce window.
const DefaultDebounceDelay = 500 * time.Millisecond

// FilterStoreOptions configures a FilterStore.
type FilterStoreOptions struct {
	// DebounceDelay for UpdateSearch; DefaultDebounceDelay when zero.
	DebounceDelay time.Duration
	// InitialFilters override the built-in defaults and are restored by
	// Reset.
	InitialFilters FilterState
	// OnChange is called with the full resulting state after every
	// non-search update and after the search debounce window closes.
	OnChange func(FilterState)
}

// FilterStore owns the filter state for one mounted view. Search input takes
// a double path: the state reflects every keystroke immediately, while
// OnChange fires only after the debounce window, so downstream fetches do not
// run per keystroke. Discrete controls (dropdowns) update immediately.
type FilterStore struct {
	initial  FilterState
	onChange func(FilterState)
	debounce *Debouncer

	mu      sync.Mutex
	filters FilterState
}

func NewFilterStore(opts FilterStoreOptions) *FilterStore {
	delay := opts.DebounceDelay
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}

	initial := FilterState{
		KeySearchTerm:   "",
		KeyStatusFilter: "all",
		KeyTypeFilter:   "all",
		KeyDateFilter:   "all",
	}
	for k, v := range opts.InitialFilters {
		initial[k] = v
	}

	return &FilterStore{
		initial:  initial,
		onChange: opts.OnChange,
		debounce: NewDebouncer(delay),
		filters:  initial.clone(),
	}
}

// Filters returns a copy of the current state.
func (s *FilterStore) Filters() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.clone()
}

// UpdateFilters merges the given keys into the state and notifies the
// listener with the full resulting state. Synchronous and immediate.
func (s *FilterStore) UpdateFilters(partial FilterState) {
	s.mu.Lock()
	for k, v := range partial {
		s.filters[k] = v
	}
	snapshot := s.filters.clone()
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(snapshot)
	}
}

// ApplyFilter sets one key immediately, without debouncing. Used for
// discrete controls where no typing storm exists.
func (s *FilterStore) ApplyFilter(key, value string) {
	s.UpdateFilters(FilterState{key: value})
}

// UpdateSearch sets the search term immediately in local state (so an input
// echo reads its own keystroke back) and schedules the listener notification
// behind the debounce window. N calls within the window produce exactly one
// notification, carrying the last term.
func (s *FilterStore) UpdateSearch(term string) {
	s.mu.Lock()
	s.filters[KeySearchTerm] = term
	s.mu.Unlock()

	s.debounce.Call(func() {
		s.UpdateFilters(FilterState{KeySearchTerm: term})
	})
}

// Reset restores the initial configuration and notifies the listener. Any
// pending debounced search is cancelled.
func (s *FilterStore) Reset() {
	s.debounce.Stop()

	s.mu.Lock()
	s.filters = s.initial.clone()
	snapshot := s.filters.clone()
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(snapshot)
	}
}

// Close cancels any pending debounced work.
func (s *FilterStore) Close() {
	s.debounce.Stop()
}
