package journal

import (
	"strings"

	"github.com/fernlog/fern/internal/entry"
	"github.com/fernlog/fern/internal/errors"
)

// ToggleFavorite flips an entry's favorite flag. Favoriting is metadata,
// not a content edit: UpdatedAt is untouched and the tag cache stays valid.
func (s *Store) ToggleFavorite(id string) error {
	s.mu.Lock()

	e := s.findActiveLocked(id)
	if e == nil {
		s.mu.Unlock()
		return errors.NewNotFound(id)
	}
	e.Favorite = !e.Favorite

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return nil
}

// AddImage appends an already-encoded data URI to an entry's image list
// and refreshes UpdatedAt. The store never encodes images itself.
func (s *Store) AddImage(id, dataURI string) error {
	s.mu.Lock()

	if !strings.HasPrefix(dataURI, "data:") {
		s.mu.Unlock()
		return errors.NewInvalidRequest("image must be a data URI")
	}
	if max := s.cfg.MaxImageBytes; max > 0 && len(dataURI) > max {
		s.mu.Unlock()
		return errors.NewImageTooLarge(max, len(dataURI))
	}

	e := s.findActiveLocked(id)
	if e == nil {
		s.mu.Unlock()
		return errors.NewNotFound(id)
	}

	e.Images = append(e.Images, dataURI)
	e.UpdatedAt = s.now()

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return nil
}

// RemoveImage removes the image at index from an entry's image list and
// refreshes UpdatedAt. An out-of-range index is a silent no-op: the index
// may come from a render cycle that raced a mutation, and crashing the UI
// over it helps nobody.
func (s *Store) RemoveImage(id string, index int) error {
	s.mu.Lock()

	e := s.findActiveLocked(id)
	if e == nil {
		s.mu.Unlock()
		return errors.NewNotFound(id)
	}

	if index < 0 || index >= len(e.Images) {
		s.mu.Unlock()
		return nil
	}

	e.Images = append(e.Images[:index], e.Images[index+1:]...)
	e.UpdatedAt = s.now()

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return nil
}

// SetLocation replaces an entry's location wholesale (nil clears it) and
// refreshes UpdatedAt.
func (s *Store) SetLocation(id string, loc *entry.Location) error {
	s.mu.Lock()

	e := s.findActiveLocked(id)
	if e == nil {
		s.mu.Unlock()
		return errors.NewNotFound(id)
	}

	if loc == nil {
		e.Location = nil
	} else {
		l := *loc
		e.Location = &l
	}
	e.UpdatedAt = s.now()

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return nil
}

// SetWeather replaces an entry's weather snapshot wholesale (nil clears
// it) and refreshes UpdatedAt.
func (s *Store) SetWeather(id string, w *entry.Weather) error {
	s.mu.Lock()

	e := s.findActiveLocked(id)
	if e == nil {
		s.mu.Unlock()
		return errors.NewNotFound(id)
	}

	if w == nil {
		e.Weather = nil
	} else {
		snapW := *w
		e.Weather = &snapW
	}
	e.UpdatedAt = s.now()

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return nil
}
