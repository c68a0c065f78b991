package journal

import (
	"github.com/fernlog/fern/internal/entry"
	"github.com/fernlog/fern/internal/errors"
)

// Create allocates a new entry, prepends it to the collection, makes it
// current, and enters edit mode. Template mode seeds the reflective-prompt
// structure and the default "daily" tag; both modes share all other
// defaults. Returns a copy of the new entry.
func (s *Store) Create(template bool) (*entry.Entry, error) {
	s.mu.Lock()

	id, err := generateULID()
	if err != nil {
		s.mu.Unlock()
		return nil, errors.NewInternal(err)
	}
	// ULIDs are unique in practice; the collection is still the source of
	// truth for the uniqueness invariant.
	for s.findLocked(id) != nil {
		if id, err = generateULID(); err != nil {
			s.mu.Unlock()
			return nil, errors.NewInternal(err)
		}
	}

	now := s.now()
	e := &entry.Entry{
		ID:        id,
		Title:     "Untitled",
		Content:   "",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if template {
		e.Title = entry.TemplateTitle
		e.Content = entry.TemplateContent
		e.Tags = entry.TemplateTags()
	}

	// Newest-first collection order on insertion, independent of display
	// sort.
	s.entries = append([]*entry.Entry{e}, s.entries...)
	s.currentID = id
	s.editing = true
	s.tagCacheStale = true
	s.recalculateStreakLocked()

	out := e.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return out, nil
}
