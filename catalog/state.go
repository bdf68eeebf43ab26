package catalog

import (
	"slices"
	"sync"

	"github.com/s0up4200/cinelist/movieapi"
)

// Phase is the load state of the catalog view
type Phase int

const (
	// PhaseLoading is the initial state before the first fetch settles
	PhaseLoading Phase = iota
	// PhaseFailed means the last fetch failed; the cache may be stale or empty
	PhaseFailed
	// PhaseLoaded means the cache mirrors the server as of the last fetch
	PhaseLoaded
)

// String returns the string representation of a Phase
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseFailed:
		return "failed"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// State is the client-side cache of the movie collection plus the current
// search query. Only Replace mutates the records, and it swaps the whole slice.
type State struct {
	mu      sync.RWMutex
	records []movieapi.Movie
	query   string
	phase   Phase
}

// NewState returns an empty state in PhaseLoading
func NewState() *State {
	return &State{records: []movieapi.Movie{}}
}

// NewStateWith returns a loaded state holding a copy of records
func NewStateWith(records []movieapi.Movie) *State {
	s := NewState()
	s.Replace(records)
	return s
}

// Replace swaps the cache for a copy of records and marks the state loaded
func (s *State) Replace(records []movieapi.Movie) {
	cp := slices.Clone(records)
	if cp == nil {
		cp = []movieapi.Movie{}
	}

	s.mu.Lock()
	s.records = cp
	s.phase = PhaseLoaded
	s.mu.Unlock()
}

// MarkFailed records a failed fetch without touching the cache
func (s *State) MarkFailed() {
	s.mu.Lock()
	s.phase = PhaseFailed
	s.mu.Unlock()
}

// Records returns a copy of the cached records in server order
func (s *State) Records() []movieapi.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Len returns the number of cached records
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Find looks a record up by identifier, compared as strings
func (s *State) Find(id movieapi.ID) (movieapi.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.records {
		if m.ID.String() == id.String() {
			return m, true
		}
	}
	return movieapi.Movie{}, false
}

// Phase returns the current load phase
func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// SetQuery stores the search query
func (s *State) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
}

// Query returns the last search query
func (s *State) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// View returns the records visible under the current query
func (s *State) View() []movieapi.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.records, s.query)
}
