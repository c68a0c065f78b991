// Package journal implements the journal state store: a single in-memory,
// durably persisted data layer owning all entries and derived views.
// UI, CLI, web, and MCP collaborators mutate state only through the store's
// action methods and read it through its selectors.
package journal

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fernlog/fern/internal/config"
	"github.com/fernlog/fern/internal/entry"
	"github.com/fernlog/fern/internal/errors"
)

// ViewMode selects which subset of entries the UI displays.
type ViewMode string

const (
	ViewAll       ViewMode = "all"
	ViewFavorites ViewMode = "favorites"
	ViewDeleted   ViewMode = "deleted"
)

// Snapshot is the persisted subset of store state: entries, settings, and
// streak data. Selection and filter state is transient and never persisted.
type Snapshot struct {
	Entries  []*entry.Entry
	Settings Settings
	Streak   StreakData
}

// Store owns the entry collection, selection/filter state, settings, and
// streak statistics. All mutation funnels through its methods; there is no
// other mutation path.
//
// The store is logically single-writer. The mutex serializes the HTTP and
// MCP collaborators onto that single logical thread.
type Store struct {
	mu  sync.Mutex
	cfg *config.Config
	now func() time.Time

	entries  []*entry.Entry
	settings Settings
	streak   StreakData

	// Transient session state, reset on reload.
	view         ViewMode
	searchQuery  string
	selectedTag  string
	selectedMood string
	selectedDate *time.Time
	currentID    string
	editing      bool

	tagCache      []string
	tagCacheStale bool

	subscribers []func(Snapshot)
}

// New creates an empty store with default settings.
func New(cfg *config.Config) *Store {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Store{
		cfg:           cfg,
		now:           time.Now,
		settings:      DefaultSettings(),
		view:          ViewAll,
		tagCacheStale: true,
	}
}

// NewFromSnapshot creates a store rehydrated from persisted state.
func NewFromSnapshot(cfg *config.Config, snap *Snapshot) *Store {
	s := New(cfg)
	if snap == nil {
		return s
	}
	for _, e := range snap.Entries {
		if e != nil && e.ID != "" {
			s.entries = append(s.entries, e.Clone())
		}
	}
	s.settings = snap.Settings.withDefaults()
	s.streak = snap.Streak
	return s
}

// Subscribe registers a function called synchronously with a snapshot of
// the persisted state after every mutation of that state. Subscribers must
// not call back into the store.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Snapshot returns a deep copy of the persisted subset of store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	entries := make([]*entry.Entry, len(s.entries))
	for i, e := range s.entries {
		entries[i] = e.Clone()
	}
	return Snapshot{
		Entries:  entries,
		Settings: s.settings,
		Streak:   s.streak,
	}
}

// publish notifies subscribers. Call without the lock held.
func (s *Store) publish(snap Snapshot) {
	for _, fn := range s.subscribers {
		fn(snap)
	}
}

// Get returns a copy of the entry with the given id, deleted or not.
func (s *Store) Get(id string) (*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.findLocked(id)
	if e == nil {
		return nil, errors.NewNotFound(id)
	}
	return e.Clone(), nil
}

// Entries returns copies of all entries in collection order.
func (s *Store) Entries() []*entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entry.Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the total number of entries, including soft-deleted ones.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// findLocked returns the live entry with the given id, or nil.
func (s *Store) findLocked(id string) *entry.Entry {
	for _, e := range s.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// findActiveLocked returns the live non-deleted entry with the given id.
func (s *Store) findActiveLocked(id string) *entry.Entry {
	e := s.findLocked(id)
	if e == nil || e.Deleted {
		return nil
	}
	return e
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
