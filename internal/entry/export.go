package entry

import (
	"time"
)

// ExportRecord is an entry as it appears in a backup file. The id, title,
// content, and timestamp fields are deliberately loose so one malformed
// record fails validation on its own instead of aborting the whole parse.
type ExportRecord struct {
	ID        any       `json:"id"`
	Title     any       `json:"title"`
	Content   any       `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	Mood      string    `json:"mood,omitempty"`
	Favorite  bool      `json:"favorite,omitempty"`
	Images    []string  `json:"images,omitempty"`
	Location  *Location `json:"location,omitempty"`
	Weather   *Weather  `json:"weather,omitempty"`
	CreatedAt any       `json:"created_at,omitempty"`
	UpdatedAt any       `json:"updated_at,omitempty"`
	Deleted   bool      `json:"deleted,omitempty"`
	DeletedAt any       `json:"deleted_at,omitempty"`
}

// Valid reports whether the record passes minimal structural validation:
// id, title, and content present and string-typed.
func (r *ExportRecord) Valid() bool {
	id, ok := r.ID.(string)
	if !ok || id == "" {
		return false
	}
	if _, ok := r.Title.(string); !ok {
		return false
	}
	if _, ok := r.Content.(string); !ok {
		return false
	}
	return true
}

// ToEntry converts a validated record to an Entry, coercing timestamps and
// recomputing the tag set. Call Valid first; ToEntry assumes it passed.
func (r *ExportRecord) ToEntry(now time.Time) *Entry {
	created := CoerceTime(r.CreatedAt, now)
	updated := CoerceTime(r.UpdatedAt, created)

	e := &Entry{
		ID:        r.ID.(string),
		Title:     r.Title.(string),
		Content:   r.Content.(string),
		Tags:      NormalizeTags(r.Tags),
		Mood:      NormalizeMood(r.Mood),
		Favorite:  r.Favorite,
		Images:    append([]string(nil), r.Images...),
		Location:  r.Location,
		Weather:   r.Weather,
		CreatedAt: created,
		UpdatedAt: updated,
		Deleted:   r.Deleted,
	}

	// Deletion timestamp defaults to absent when not present.
	if r.DeletedAt != nil {
		at := CoerceTime(r.DeletedAt, time.Time{})
		if !at.IsZero() {
			e.DeletedAt = &at
		}
	}

	return e
}

// FromEntry converts an Entry to its export form. Dates serialize as
// RFC 3339 strings.
func FromEntry(e *Entry) ExportRecord {
	r := ExportRecord{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		Tags:      e.Tags,
		Mood:      e.Mood,
		Favorite:  e.Favorite,
		Images:    e.Images,
		Location:  e.Location,
		Weather:   e.Weather,
		CreatedAt: e.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339Nano),
		Deleted:   e.Deleted,
	}
	if e.DeletedAt != nil {
		r.DeletedAt = e.DeletedAt.Format(time.RFC3339Nano)
	}
	return r
}

// CoerceTime converts a loosely-typed timestamp value to a time.Time.
// Accepted forms: RFC 3339 string, calendar-date string, unix seconds or
// milliseconds as a JSON number. Anything else yields the fallback.
func CoerceTime(v any, fallback time.Time) time.Time {
	switch t := v.(type) {
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		if parsed, err := time.ParseInLocation("2006-01-02", t, time.Local); err == nil {
			return parsed
		}
		return fallback
	case float64:
		// JSON numbers arrive as float64. Values past the year 33658 in
		// seconds are assumed to be milliseconds.
		if t > 1e12 {
			return time.UnixMilli(int64(t))
		}
		return time.Unix(int64(t), 0)
	case time.Time:
		return t
	default:
		return fallback
	}
}
