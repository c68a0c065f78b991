package journal

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fernlog/fern/internal/entry"
)

// Query parameterizes a filtered view of the collection.
type Query struct {
	View   ViewMode
	Search string
	Tag    string
	Mood   string
	Date   *time.Time
	Sort   SortOrder
}

// FilterEntries is the deterministic filtering/sorting pipeline behind every
// view. It is a pure function of its inputs: the result shares entry
// pointers with the input slice but the input is never reordered.
func FilterEntries(entries []*entry.Entry, q Query) []*entry.Entry {
	if q.View == "" {
		q.View = ViewAll
	}
	if q.Sort == "" {
		q.Sort = SortNewest
	}

	result := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if !matchesView(e, q.View) {
			continue
		}
		if q.Search != "" && !matchesSearch(e, q.Search) {
			continue
		}
		// Tag/date/mood filters are suppressed in the deleted view: the
		// bin always shows every deleted entry.
		if q.View != ViewDeleted {
			if q.Tag != "" && !hasTag(e, q.Tag) {
				continue
			}
			if q.Date != nil && !entry.SameDay(e.CreatedAt, *q.Date) {
				continue
			}
			if q.Mood != "" && e.Mood != q.Mood {
				continue
			}
		}
		result = append(result, e)
	}

	sortEntries(result, q.Sort)
	return result
}

func matchesView(e *entry.Entry, view ViewMode) bool {
	switch view {
	case ViewFavorites:
		return e.Favorite && !e.Deleted
	case ViewDeleted:
		return e.Deleted
	default:
		return !e.Deleted
	}
}

// matchesSearch is a case-insensitive substring match over title, content,
// and tags, not a tokenized search.
func matchesSearch(e *entry.Entry, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(e.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Content), q) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func hasTag(e *entry.Entry, tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func sortEntries(entries []*entry.Entry, order SortOrder) {
	switch order {
	case SortOldest:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		})
	case SortAlphabetical:
		// Collators are not safe for concurrent use, so each sort gets
		// its own.
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(entries, func(i, j int) bool {
			return c.CompareString(entries[i].Title, entries[j].Title) < 0
		})
	default: // SortNewest
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			// Deleted entries sort after active ones regardless of
			// timestamps; only mixed-view callers ever see both.
			if a.Deleted != b.Deleted {
				return !a.Deleted
			}
			if a.Deleted {
				return deletedAt(a).After(deletedAt(b))
			}
			return a.UpdatedAt.After(b.UpdatedAt)
		})
	}
}

func deletedAt(e *entry.Entry) time.Time {
	if e.DeletedAt == nil {
		return time.Time{}
	}
	return *e.DeletedAt
}

// Filtered returns the current view: the collection filtered and sorted by
// the session's view mode, search text, tag/mood/date selection, and the
// settings' sort order. Entries are returned as copies.
func (s *Store) Filtered() []*entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := Query{
		View:   s.view,
		Search: s.searchQuery,
		Tag:    s.selectedTag,
		Mood:   s.selectedMood,
		Date:   s.selectedDate,
		Sort:   s.settings.SortOrder,
	}
	return cloneAll(FilterEntries(s.entries, q))
}

// Filter returns the collection filtered and sorted by an explicit query,
// ignoring session state. Entries are returned as copies.
func (s *Store) Filter(q Query) []*entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.Sort == "" {
		q.Sort = s.settings.SortOrder
	}
	return cloneAll(FilterEntries(s.entries, q))
}

func cloneAll(entries []*entry.Entry) []*entry.Entry {
	out := make([]*entry.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// AllTags collects unique tags across non-deleted entries in
// discovery order. Side-effect-free and safe to call during render.
func (s *Store) AllTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collectTags(s.entries)
}

// AllMoods collects unique mood values across non-deleted entries in
// discovery order. Side-effect-free and safe to call during render.
func (s *Store) AllMoods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	moods := make([]string, 0)
	for _, e := range s.entries {
		if e.Deleted || e.Mood == "" {
			continue
		}
		if seen[e.Mood] {
			continue
		}
		seen[e.Mood] = true
		moods = append(moods, e.Mood)
	}
	return moods
}

// Tags returns the cached tag list, recomputing it only when a mutation
// has marked it stale. Cheap enough for repeated render-time access.
func (s *Store) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tagCacheStale {
		s.tagCache = collectTags(s.entries)
		s.tagCacheStale = false
	}
	return append([]string(nil), s.tagCache...)
}

// RefreshTagCache recomputes the cached tag list. Mutations that change the
// entry count invalidate the cache themselves; this is for callers that
// want the recompute to happen eagerly.
func (s *Store) RefreshTagCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tagCache = collectTags(s.entries)
	s.tagCacheStale = false
}

func collectTags(entries []*entry.Entry) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, e := range entries {
		if e.Deleted {
			continue
		}
		for _, t := range e.Tags {
			key := strings.ToLower(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, t)
		}
	}
	return tags
}
