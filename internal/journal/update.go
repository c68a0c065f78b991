package journal

import (
	"encoding/json"
	"log"

	"github.com/fernlog/fern/internal/entry"
	"github.com/fernlog/fern/internal/errors"
)

// Patch contains entry fields to change (nil = don't change).
//
// Content accepts either a string or any JSON-serializable document; a
// structured document is serialized before storage. Location and Weather
// replace the optional field when non-nil; use SetLocation/SetWeather with
// nil to clear them.
type Patch struct {
	Title    *string
	Content  any
	Tags     *[]string
	Mood     *string
	Favorite *bool
	Images   *[]string
	Location *entry.Location
	Weather  *entry.Weather
}

func (p Patch) empty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil &&
		p.Mood == nil && p.Favorite == nil && p.Images == nil &&
		p.Location == nil && p.Weather == nil
}

// Update applies a partial change to a non-deleted entry and refreshes its
// UpdatedAt. The current entry needs no separate sync: the store keeps only
// the current id and derives the object at read time.
func (s *Store) Update(id string, patch Patch) error {
	s.mu.Lock()

	if patch.empty() {
		s.mu.Unlock()
		return errors.NewInvalidRequest("at least one field must be provided")
	}

	e := s.findActiveLocked(id)
	if e == nil {
		s.mu.Unlock()
		return errors.NewNotFound(id)
	}

	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Content != nil {
		if text, ok := contentString(patch.Content); ok {
			e.Content = text
		}
		// Serialization failure leaves content unchanged.
	}
	if patch.Tags != nil {
		e.Tags = entry.NormalizeTags(*patch.Tags)
		s.tagCacheStale = true
	}
	if patch.Mood != nil {
		e.Mood = entry.NormalizeMood(*patch.Mood)
	}
	if patch.Favorite != nil {
		e.Favorite = *patch.Favorite
	}
	if patch.Images != nil {
		e.Images = append([]string(nil), (*patch.Images)...)
	}
	if patch.Location != nil {
		loc := *patch.Location
		e.Location = &loc
	}
	if patch.Weather != nil {
		w := *patch.Weather
		e.Weather = &w
	}

	e.UpdatedAt = s.now()

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return nil
}

// contentString normalizes a content value to string form. Structured
// documents are serialized as JSON; if serialization fails the mutation
// keeps the previous content rather than writing corrupt data.
func contentString(v any) (string, bool) {
	if text, ok := v.(string); ok {
		return text, true
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("journal: content serialization failed, keeping previous content: %v", err)
		return "", false
	}
	return string(data), true
}
