package state

import (
	"sync"
	"time"

	"github.com/vfpar/registro/internal/registry"
)

// LoadStatus is the lifecycle of the company collection.
type LoadStatus int

const (
	// StatusLoading is the zero value: a load has been requested and nothing
	// has been committed since.
	StatusLoading LoadStatus = iota
	StatusReady
	StatusFailed
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot represents the view state handed to the UI.
type Snapshot struct {
	Companies  []registry.Company
	Status     LoadStatus
	Message    string // human-readable failure, set only when Status is StatusFailed
	SearchTerm string
	Selected   *registry.Company
	LoadedAt   time.Time
	// ConsecutiveFailures counts failed loads since the last successful one.
	ConsecutiveFailures int
}

// Visible returns the subset of the collection matching the search term.
func (s Snapshot) Visible() []registry.Company {
	return registry.Filter(s.Companies, s.SearchTerm)
}

// SectorCount returns the number of distinct sectors in the whole collection.
func (s Snapshot) SectorCount() int {
	return registry.DistinctSectors(s.Companies)
}

// HasData reports whether at least one load has committed.
func (s Snapshot) HasData() bool {
	return !s.LoadedAt.IsZero()
}

// Store owns the view state of one session. The zero value is ready to use and
// starts in StatusLoading with an empty collection.
//
// The collection and load status are written only through a Loader; search
// and selection are plain UI state.
type Store struct {
	mu sync.RWMutex

	companies []registry.Company
	status    LoadStatus
	message   string
	loadedAt  time.Time
	failures  int
	seq       uint64

	searchTerm string
	selected   *registry.Company
}

// SetSearch replaces the search term.
func (s *Store) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

// ClearSearch resets the search term to empty.
func (s *Store) ClearSearch() {
	s.SetSearch("")
}

// Select opens c for detail view, replacing any prior selection. Records that
// are not part of the loaded collection are rejected and Select returns false.
// The store keeps its own copy, so later reloads do not change what is shown.
func (s *Store) Select(c registry.Company) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.companies {
		if s.companies[i].ID == c.ID {
			picked := s.companies[i].Clone()
			s.selected = &picked
			return true
		}
	}
	return false
}

// Dismiss closes the detail view.
func (s *Store) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns the selected record, if any.
func (s *Store) Selected() (registry.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return registry.Company{}, false
	}
	return s.selected.Clone(), true
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Companies:           cloneCompanies(s.companies),
		Status:              s.status,
		Message:             s.message,
		SearchTerm:          s.searchTerm,
		LoadedAt:            s.loadedAt,
		ConsecutiveFailures: s.failures,
	}
	if s.selected != nil {
		picked := s.selected.Clone()
		snap.Selected = &picked
	}
	return snap
}

// beginLoad moves to StatusLoading and returns the sequence number of the new
// request. Earlier requests can no longer commit.
func (s *Store) beginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.status = StatusLoading
	s.message = ""
	return s.seq
}

// commitLoad replaces the collection when seq is still the latest request.
func (s *Store) commitLoad(seq uint64, companies []registry.Company, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.companies = cloneCompanies(companies)
	s.status = StatusReady
	s.message = ""
	s.loadedAt = at
	s.failures = 0
	return true
}

// failLoad records a failed request. The collection is left untouched.
func (s *Store) failLoad(seq uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.status = StatusFailed
	s.message = message
	s.failures++
	return true
}

func cloneCompanies(items []registry.Company) []registry.Company {
	if len(items) == 0 {
		return nil
	}
	dup := make([]registry.Company, len(items))
	for i := range items {
		dup[i] = items[i].Clone()
	}
	return dup
}
