package journal

import (
	"sort"
	"time"

	"github.com/fernlog/fern/internal/entry"
)

// StreakData is the derived consecutive-day writing statistic. It is
// recomputed in full on demand, never maintained incrementally.
type StreakData struct {
	// Current is the consecutive-day streak ending today or yesterday.
	Current int `json:"current"`

	// Longest is the longest consecutive-day run ever observed.
	Longest int `json:"longest"`

	// LastEntryDate is the creation time of the most recent active entry.
	LastEntryDate *time.Time `json:"last_entry_date,omitempty"`
}

// Streak returns the cached streak data.
func (s *Store) Streak() StreakData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streak
}

// RecalculateStreak recomputes streak data over all non-deleted entries and
// stores the result. Create, soft delete, restore, and import call this
// themselves; it is exported for collaborators that want a recompute on
// demand (e.g. at midnight rollover).
func (s *Store) RecalculateStreak() StreakData {
	s.mu.Lock()
	s.recalculateStreakLocked()
	streak := s.streak
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return streak
}

func (s *Store) recalculateStreakLocked() {
	s.streak = computeStreak(s.entries, s.now())
}

// computeStreak is the full O(entries) streak computation. Multiple entries
// on the same calendar day count once.
func computeStreak(entries []*entry.Entry, now time.Time) StreakData {
	var last time.Time
	daySet := make(map[time.Time]bool)
	for _, e := range entries {
		if e.Deleted {
			continue
		}
		daySet[entry.Day(e.CreatedAt)] = true
		if e.CreatedAt.After(last) {
			last = e.CreatedAt
		}
	}

	if len(daySet) == 0 {
		return StreakData{}
	}

	days := make([]time.Time, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	today := entry.Day(now)
	latest := days[len(days)-1]

	// Current streak: dead if the most recent entry day is more than one
	// calendar day ago, otherwise walk backward until the first gap.
	current := 0
	if !latest.Before(today.AddDate(0, 0, -1)) {
		for d := latest; daySet[d]; d = d.AddDate(0, 0, -1) {
			current++
		}
	}

	// Longest streak: longest run of consecutive days, final run included.
	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return StreakData{
		Current:       current,
		Longest:       longest,
		LastEntryDate: &last,
	}
}
