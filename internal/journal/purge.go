package journal

import (
	"github.com/fernlog/fern/internal/entry"
	"github.com/fernlog/fern/internal/errors"
)

// Purge removes an entry from the collection irrecoverably. If it was
// current, another deleted entry becomes current if one exists, else the
// current entry becomes unset. Streaks are unaffected: only active entries
// count toward them, and purge accepts only binned entries in normal use.
func (s *Store) Purge(id string) error {
	s.mu.Lock()

	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return errors.NewNotFound(id)
	}

	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.tagCacheStale = true

	if s.currentID == id {
		s.currentID = ""
		s.editing = false
		for _, other := range s.entries {
			if other.Deleted {
				s.currentID = other.ID
				break
			}
		}
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return nil
}

// EmptyBin purges all soft-deleted entries in one operation and returns
// how many were removed. If the current entry was among them, the first
// remaining entry becomes current, else the current entry becomes unset.
func (s *Store) EmptyBin() int {
	s.mu.Lock()

	kept := make([]*entry.Entry, 0, len(s.entries))
	purged := 0
	currentPurged := false
	for _, e := range s.entries {
		if e.Deleted {
			purged++
			if e.ID == s.currentID {
				currentPurged = true
			}
			continue
		}
		kept = append(kept, e)
	}

	if purged == 0 {
		s.mu.Unlock()
		return 0
	}

	s.entries = kept
	s.tagCacheStale = true

	if currentPurged {
		s.currentID = ""
		s.editing = false
		if len(s.entries) > 0 {
			s.currentID = s.entries[0].ID
		}
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return purged
}
