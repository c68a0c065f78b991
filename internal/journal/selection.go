package journal

import (
	"time"

	"github.com/fernlog/fern/internal/entry"
	"github.com/fernlog/fern/internal/errors"
)

// Selection actions mutate transient session state only. None of them are
// persisted and none notify subscribers.

// SetView switches the active view mode.
func (s *Store) SetView(v ViewMode) error {
	switch v {
	case ViewAll, ViewFavorites, ViewDeleted:
	default:
		return errors.NewInvalidRequest("view must be one of: all, favorites, deleted")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
	return nil
}

// View returns the active view mode.
func (s *Store) View() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetSearch sets the search text applied by Filtered.
func (s *Store) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = q
}

// SearchQuery returns the current search text.
func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// SelectTag sets the tag filter ("" clears it).
func (s *Store) SelectTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedTag = entry.NormalizeTag(tag)
}

// SelectedTag returns the tag filter.
func (s *Store) SelectedTag() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedTag
}

// SelectMood sets the mood filter ("" clears it).
func (s *Store) SelectMood(mood string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedMood = entry.NormalizeMood(mood)
}

// SelectedMood returns the mood filter.
func (s *Store) SelectedMood() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedMood
}

// SelectDate sets the calendar-day filter (nil clears it).
func (s *Store) SelectDate(d *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d == nil {
		s.selectedDate = nil
		return
	}
	day := entry.Day(*d)
	s.selectedDate = &day
}

// SelectedDate returns the calendar-day filter, or nil.
func (s *Store) SelectedDate() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedDate == nil {
		return nil
	}
	d := *s.selectedDate
	return &d
}

// SetCurrent makes the entry with the given id current. The store keeps
// only the id; the object is derived by lookup at read time, so there is
// no second copy to keep in sync.
func (s *Store) SetCurrent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findLocked(id) == nil {
		return errors.NewNotFound(id)
	}
	s.currentID = id
	return nil
}

// ClearCurrent unsets the current entry and leaves edit mode.
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = ""
	s.editing = false
}

// Current returns a copy of the current entry, or nil if none.
func (s *Store) Current() *entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" {
		return nil
	}
	e := s.findLocked(s.currentID)
	if e == nil {
		return nil
	}
	return e.Clone()
}

// CurrentID returns the current entry id, or "".
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// StartEditing enters edit mode on the given entry.
func (s *Store) StartEditing(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findActiveLocked(id) == nil {
		return errors.NewNotFound(id)
	}
	s.currentID = id
	s.editing = true
	return nil
}

// StopEditing leaves edit mode without changing the current entry.
func (s *Store) StopEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = false
}

// Editing reports whether the store is in edit mode.
func (s *Store) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}
