package journal

import (
	"testing"
	"time"

	"github.com/fernlog/fern/internal/entry"
)

func entryOn(id string, day time.Time) *entry.Entry {
	return &entry.Entry{
		ID:        id,
		Title:     "t",
		Content:   "",
		CreatedAt: day,
		UpdatedAt: day,
	}
}

func TestComputeStreakEmpty(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	got := computeStreak(nil, now)
	if got.Current != 0 || got.Longest != 0 || got.LastEntryDate != nil {
		t.Errorf("got %+v", got)
	}
}

func TestComputeStreakThreeConsecutiveDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		entryOn("1", now),
		entryOn("2", now.AddDate(0, 0, -1)),
		entryOn("3", now.AddDate(0, 0, -2)),
	}

	got := computeStreak(entries, now)
	if got.Current != 3 {
		t.Errorf("Current = %d, want 3", got.Current)
	}
	if got.Longest != 3 {
		t.Errorf("Longest = %d, want 3", got.Longest)
	}
	if got.LastEntryDate == nil || !got.LastEntryDate.Equal(now) {
		t.Errorf("LastEntryDate = %v", got.LastEntryDate)
	}
}

func TestComputeStreakGapResetsCurrent(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		entryOn("1", now),
		entryOn("2", now.AddDate(0, 0, -2)), // gap at D-1
	}

	got := computeStreak(entries, now)
	if got.Current != 1 {
		t.Errorf("Current = %d, want 1", got.Current)
	}
	if got.Longest != 1 {
		t.Errorf("Longest = %d, want 1", got.Longest)
	}
}

func TestComputeStreakYesterdayStillCounts(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		entryOn("1", now.AddDate(0, 0, -1)),
		entryOn("2", now.AddDate(0, 0, -2)),
	}

	got := computeStreak(entries, now)
	if got.Current != 2 {
		t.Errorf("Current = %d, want 2 (streak survives until end of today)", got.Current)
	}
}

func TestComputeStreakStaleStreakDies(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		entryOn("1", now.AddDate(0, 0, -3)),
		entryOn("2", now.AddDate(0, 0, -4)),
		entryOn("3", now.AddDate(0, 0, -5)),
	}

	got := computeStreak(entries, now)
	if got.Current != 0 {
		t.Errorf("Current = %d, want 0", got.Current)
	}
	if got.Longest != 3 {
		t.Errorf("Longest = %d, want 3", got.Longest)
	}
}

func TestComputeStreakLongestInMiddle(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		entryOn("1", now),
		entryOn("2", now.AddDate(0, 0, -5)),
		entryOn("3", now.AddDate(0, 0, -6)),
		entryOn("4", now.AddDate(0, 0, -7)),
		entryOn("5", now.AddDate(0, 0, -8)),
	}

	got := computeStreak(entries, now)
	if got.Current != 1 {
		t.Errorf("Current = %d, want 1", got.Current)
	}
	if got.Longest != 4 {
		t.Errorf("Longest = %d, want 4", got.Longest)
	}
}

func TestComputeStreakMultipleEntriesSameDay(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		entryOn("1", now),
		entryOn("2", now.Add(2*time.Hour)),
		entryOn("3", now.AddDate(0, 0, -1)),
	}

	got := computeStreak(entries, now)
	if got.Current != 2 {
		t.Errorf("Current = %d, want 2 (same day counts once)", got.Current)
	}
}

func TestComputeStreakIgnoresDeleted(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	binned := entryOn("1", now)
	binned.Deleted = true
	entries := []*entry.Entry{
		binned,
		entryOn("2", now.AddDate(0, 0, -1)),
	}

	got := computeStreak(entries, now)
	if got.Current != 1 {
		t.Errorf("Current = %d, want 1 (deleted entries don't count)", got.Current)
	}
	if got.LastEntryDate == nil || !got.LastEntryDate.Equal(now.AddDate(0, 0, -1)) {
		t.Errorf("LastEntryDate = %v", got.LastEntryDate)
	}
}

func TestStreakRecomputedOnMutations(t *testing.T) {
	s := newTestStore(t)

	e := mustCreate(t, s)
	if got := s.Streak(); got.Current != 1 {
		t.Errorf("after create: Current = %d, want 1", got.Current)
	}

	_ = s.SoftDelete(e.ID)
	if got := s.Streak(); got.Current != 0 {
		t.Errorf("after delete: Current = %d, want 0", got.Current)
	}

	_ = s.Restore(e.ID)
	if got := s.Streak(); got.Current != 1 {
		t.Errorf("after restore: Current = %d, want 1", got.Current)
	}
}

func TestRecalculateStreakOnDemand(t *testing.T) {
	s := newTestStore(t)
	_ = mustCreate(t, s)

	// The clock rolls forward two days; the cached streak is stale until a
	// recompute.
	setClock(s, time.Date(2024, 6, 17, 10, 0, 0, 0, time.Local))
	got := s.RecalculateStreak()
	if got.Current != 0 {
		t.Errorf("Current = %d, want 0 after rollover", got.Current)
	}
}
