package journal

import (
	"encoding/json"

	"github.com/fernlog/fern/internal/entry"
	"github.com/fernlog/fern/internal/errors"
)

// backupDoc is the export file shape: a single "entries" key.
type backupDoc struct {
	Entries []entry.ExportRecord `json:"entries"`
}

// Export serializes the entire collection, soft-deleted entries included,
// as a pretty-printed JSON document. Export is a full backup; nothing is
// filtered.
func (s *Store) Export() (string, error) {
	s.mu.Lock()
	doc := backupDoc{Entries: make([]entry.ExportRecord, len(s.entries))}
	for i, e := range s.entries {
		doc.Entries[i] = entry.FromEntry(e)
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return string(data), nil
}

// Import parses a backup document and merges its entries into the
// collection. It fails closed: if the top-level "entries" key is missing
// or is not a collection, or no record passes structural validation,
// nothing is mutated and Import returns false.
//
// Surviving records have their timestamps coerced and are prepended to the
// collection. Records whose id already exists in the collection (or earlier
// in the same payload) are skipped, so re-importing the same backup is a
// successful no-op rather than a duplication.
func (s *Store) Import(jsonText string) bool {
	var doc struct {
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		return false
	}
	if doc.Entries == nil {
		return false
	}

	s.mu.Lock()
	now := s.now()

	seen := make(map[string]bool, len(s.entries))
	for _, e := range s.entries {
		seen[e.ID] = true
	}

	validated := 0
	incoming := make([]*entry.Entry, 0, len(doc.Entries))
	for _, raw := range doc.Entries {
		var rec entry.ExportRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if !rec.Valid() {
			continue
		}
		validated++
		e := rec.ToEntry(now)
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		incoming = append(incoming, e)
	}

	if validated == 0 {
		s.mu.Unlock()
		return false
	}

	if len(incoming) > 0 {
		s.entries = append(incoming, s.entries...)
		s.tagCacheStale = true
		s.recalculateStreakLocked()
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return true
}
