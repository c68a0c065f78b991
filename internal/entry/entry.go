package entry

import "time"

// Entry is a single journal record. Content is an opaque serialized
// rich-document string; the store never parses it.
type Entry struct {
	// ID is a ULID that uniquely identifies this entry for its lifetime
	ID string `json:"id"`

	// Title is the entry title as typed by the user
	Title string `json:"title"`

	// Content is the serialized document produced by the editor
	Content string `json:"content"`

	// Tags is the entry's tag set (deduplicated, insertion order)
	Tags []string `json:"tags,omitempty"`

	// Mood is a free-form mood label, possibly emoji-prefixed ("" = unset)
	Mood string `json:"mood,omitempty"`

	// Favorite marks the entry for the favorites view
	Favorite bool `json:"favorite,omitempty"`

	// Images holds embedded images as data URIs, in display order
	Images []string `json:"images,omitempty"`

	// Location is an optional place attached to the entry
	Location *Location `json:"location,omitempty"`

	// Weather is an optional weather snapshot taken at write time
	Weather *Weather `json:"weather,omitempty"`

	// CreatedAt is when the entry was created
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every content-level mutation
	UpdatedAt time.Time `json:"updated_at"`

	// Deleted marks the entry as soft-deleted (in the bin)
	Deleted bool `json:"deleted,omitempty"`

	// DeletedAt is set when Deleted transitions true, cleared on restore
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Location is a place name with an optional coordinate pair.
type Location struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// Weather is a point-in-time weather snapshot.
type Weather struct {
	Condition string  `json:"condition"`
	TempC     float64 `json:"temp_c"`
	Icon      string  `json:"icon,omitempty"`
}

// SuggestedMoods is the advisory mood set offered by picker UIs.
// Moods are stored as free-form strings; this list is not enforced.
var SuggestedMoods = []string{
	"😊 Happy",
	"😌 Calm",
	"😔 Sad",
	"😤 Frustrated",
	"😰 Anxious",
	"🥱 Tired",
	"🤩 Excited",
	"😐 Neutral",
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.Tags != nil {
		c.Tags = append([]string(nil), e.Tags...)
	}
	if e.Images != nil {
		c.Images = append([]string(nil), e.Images...)
	}
	if e.Location != nil {
		loc := *e.Location
		if e.Location.Lat != nil {
			lat := *e.Location.Lat
			loc.Lat = &lat
		}
		if e.Location.Lon != nil {
			lon := *e.Location.Lon
			loc.Lon = &lon
		}
		c.Location = &loc
	}
	if e.Weather != nil {
		w := *e.Weather
		c.Weather = &w
	}
	if e.DeletedAt != nil {
		at := *e.DeletedAt
		c.DeletedAt = &at
	}
	return &c
}

// Day truncates t to its calendar day in local time.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
