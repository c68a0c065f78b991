package journal

import (
	"testing"
	"time"

	"github.com/fernlog/fern/internal/entry"
)

// seedEntry builds an entry directly for pipeline tests.
func seedEntry(id, title, content string, tags []string, at time.Time) *entry.Entry {
	return &entry.Entry{
		ID:        id,
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestFilterEntriesByTag(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		seedEntry("1", "standup notes", "", []string{"work"}, base),
		seedEntry("2", "weekend trip", "", []string{"travel"}, base.Add(time.Hour)),
		seedEntry("3", "sprint review", "", []string{"work", "meetings"}, base.Add(2*time.Hour)),
		seedEntry("4", "recipe ideas", "", []string{"cooking"}, base.Add(3*time.Hour)),
		seedEntry("5", "no tags here", "", nil, base.Add(4*time.Hour)),
	}

	got := FilterEntries(entries, Query{Tag: "work"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, e := range got {
		if e.ID != "1" && e.ID != "3" {
			t.Errorf("unexpected entry %s", e.ID)
		}
	}
}

func TestFilterEntriesViews(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	deletedAt := base.Add(time.Hour)
	active := seedEntry("a", "active", "", nil, base)
	fav := seedEntry("f", "favorite", "", nil, base)
	fav.Favorite = true
	binned := seedEntry("d", "binned", "", nil, base)
	binned.Deleted = true
	binned.DeletedAt = &deletedAt
	favBinned := seedEntry("fd", "favorite binned", "", nil, base)
	favBinned.Favorite = true
	favBinned.Deleted = true
	favBinned.DeletedAt = &deletedAt

	entries := []*entry.Entry{active, fav, binned, favBinned}

	if got := FilterEntries(entries, Query{View: ViewAll}); len(got) != 2 {
		t.Errorf("all view len = %d, want 2", len(got))
	}
	got := FilterEntries(entries, Query{View: ViewFavorites})
	if len(got) != 1 || got[0].ID != "f" {
		t.Errorf("favorites view = %v", ids(got))
	}
	if got := FilterEntries(entries, Query{View: ViewDeleted}); len(got) != 2 {
		t.Errorf("deleted view len = %d, want 2", len(got))
	}
}

func TestFilterEntriesSearch(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		seedEntry("1", "Morning Walk", "saw a heron by the river", nil, base),
		seedEntry("2", "note", "nothing special", []string{"Birdwatching"}, base),
		seedEntry("3", "note", "grocery list", nil, base),
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"WALK", []string{"1"}},     // title, case-insensitive
		{"heron", []string{"1"}},    // content
		{"birdwatch", []string{"2"}}, // tag substring
		{"note", []string{"2", "3"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		got := FilterEntries(entries, Query{Search: tt.query})
		if len(got) != len(tt.want) {
			t.Errorf("search %q: got %v, want %v", tt.query, ids(got), tt.want)
		}
	}
}

func TestFilterEntriesDeletedViewIgnoresTagMoodDate(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	deletedAt := base.Add(time.Hour)
	binned := seedEntry("d", "binned", "", []string{"other"}, base)
	binned.Deleted = true
	binned.DeletedAt = &deletedAt
	binned.Mood = "😔 Sad"

	other := base.AddDate(0, 0, 5)
	got := FilterEntries([]*entry.Entry{binned}, Query{
		View: ViewDeleted,
		Tag:  "work",
		Mood: "😊 Happy",
		Date: &other,
	})
	if len(got) != 1 {
		t.Error("the bin always shows every deleted entry")
	}
}

func TestFilterEntriesDateFilter(t *testing.T) {
	day1 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	day2 := time.Date(2024, 6, 2, 23, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		seedEntry("1", "a", "", nil, day1),
		seedEntry("2", "b", "", nil, day2),
	}

	target := time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local)
	got := FilterEntries(entries, Query{Date: &target})
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("got %v", ids(got))
	}
}

func TestSortOrders(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	a := seedEntry("a", "banana", "", nil, base)
	b := seedEntry("b", "Apple", "", nil, base.Add(time.Hour))
	c := seedEntry("c", "cherry", "", nil, base.Add(2*time.Hour))
	entries := []*entry.Entry{a, b, c}

	got := FilterEntries(entries, Query{Sort: SortNewest})
	if got[0].ID != "c" || got[2].ID != "a" {
		t.Errorf("newest order = %v", ids(got))
	}

	got = FilterEntries(entries, Query{Sort: SortOldest})
	if got[0].ID != "a" || got[2].ID != "c" {
		t.Errorf("oldest order = %v", ids(got))
	}

	// Case-insensitive alphabetical.
	got = FilterEntries(entries, Query{Sort: SortAlphabetical})
	if got[0].ID != "b" || got[1].ID != "a" || got[2].ID != "c" {
		t.Errorf("alphabetical order = %v", ids(got))
	}
}

func TestSortNewestUsesDeletedAtInBin(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	early := base.Add(time.Hour)
	late := base.Add(3 * time.Hour)

	a := seedEntry("a", "first deleted", "", nil, base.Add(2*time.Hour))
	a.Deleted = true
	a.DeletedAt = &early
	b := seedEntry("b", "last deleted", "", nil, base)
	b.Deleted = true
	b.DeletedAt = &late

	got := FilterEntries([]*entry.Entry{a, b}, Query{View: ViewDeleted, Sort: SortNewest})
	if got[0].ID != "b" {
		t.Errorf("bin should sort by deletion time, got %v", ids(got))
	}
}

func TestFilterEntriesDoesNotReorderInput(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		seedEntry("1", "a", "", nil, base),
		seedEntry("2", "b", "", nil, base.Add(time.Hour)),
	}

	_ = FilterEntries(entries, Query{Sort: SortNewest})
	if entries[0].ID != "1" || entries[1].ID != "2" {
		t.Error("input slice was reordered")
	}
}

func TestTagsExcludeDeletedOnlyTags(t *testing.T) {
	s := newTestStore(t)
	a := mustCreate(t, s)
	b := mustCreate(t, s)
	_ = s.Update(a.ID, Patch{Tags: &[]string{"shared", "active-only"}})
	_ = s.Update(b.ID, Patch{Tags: &[]string{"shared", "binned-only"}})
	_ = s.SoftDelete(b.ID)

	tags := s.Tags()
	if len(tags) != 2 {
		t.Fatalf("tags = %v", tags)
	}
	for _, tag := range tags {
		if tag == "binned-only" {
			t.Error("tag carried only by a binned entry should not appear")
		}
	}
}

func TestTagsCacheInvalidation(t *testing.T) {
	s := newTestStore(t)
	e := mustCreate(t, s)
	_ = s.Update(e.ID, Patch{Tags: &[]string{"first"}})

	if got := s.Tags(); len(got) != 1 || got[0] != "first" {
		t.Fatalf("tags = %v", got)
	}

	_ = s.Update(e.ID, Patch{Tags: &[]string{"second"}})
	if got := s.Tags(); len(got) != 1 || got[0] != "second" {
		t.Errorf("stale tag cache: %v", got)
	}
}

func TestAllMoodsDiscoveryOrder(t *testing.T) {
	s := newTestStore(t)
	a := mustCreate(t, s)
	b := mustCreate(t, s)
	c := mustCreate(t, s)

	happy := "😊 Happy"
	calm := "😌 Calm"
	_ = s.Update(a.ID, Patch{Mood: &happy})
	_ = s.Update(b.ID, Patch{Mood: &calm})
	_ = s.Update(c.ID, Patch{Mood: &happy})

	moods := s.AllMoods()
	if len(moods) != 2 {
		t.Fatalf("moods = %v", moods)
	}
	// Collection order is newest-first, so c's mood is discovered first.
	if moods[0] != happy || moods[1] != calm {
		t.Errorf("moods = %v", moods)
	}
}

func TestFilteredUsesSessionState(t *testing.T) {
	s := newTestStore(t)
	a := mustCreate(t, s)
	b := mustCreate(t, s)
	_ = s.Update(a.ID, Patch{Tags: &[]string{"work"}})
	fav := true
	_ = s.Update(b.ID, Patch{Favorite: &fav})

	_ = s.SetView(ViewFavorites)
	got := s.Filtered()
	if len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("favorites view = %v", ids(got))
	}

	_ = s.SetView(ViewAll)
	s.SelectTag("work")
	got = s.Filtered()
	if len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("tag-filtered view = %v", ids(got))
	}
}

func ids(entries []*entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
