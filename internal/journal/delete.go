package journal

import (
	"github.com/fernlog/fern/internal/errors"
)

// SoftDelete moves an entry to the bin. If it was current, the first
// remaining non-deleted entry (by collection order) becomes current.
// UpdatedAt is not bumped; deletion is not a content edit.
func (s *Store) SoftDelete(id string) error {
	s.mu.Lock()

	e := s.findLocked(id)
	if e == nil {
		s.mu.Unlock()
		return errors.NewNotFound(id)
	}
	if e.Deleted {
		s.mu.Unlock()
		return nil
	}

	now := s.now()
	e.Deleted = true
	e.DeletedAt = &now

	if s.currentID == id {
		s.currentID = ""
		s.editing = false
		for _, other := range s.entries {
			if !other.Deleted {
				s.currentID = other.ID
				break
			}
		}
	}

	s.recalculateStreakLocked()

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return nil
}

// Restore undoes a soft delete. Restoring an entry that is not deleted is
// a no-op, so calling Restore twice has the same effect as once.
func (s *Store) Restore(id string) error {
	s.mu.Lock()

	e := s.findLocked(id)
	if e == nil {
		s.mu.Unlock()
		return errors.NewNotFound(id)
	}
	if !e.Deleted {
		s.mu.Unlock()
		return nil
	}

	e.Deleted = false
	e.DeletedAt = nil

	s.recalculateStreakLocked()

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return nil
}
