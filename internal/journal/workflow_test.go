package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestJournalWorkflow drives a full session against a single store: writing,
// tagging, favoriting, binning, exporting and re-importing.
func TestJournalWorkflow(t *testing.T) {
	s := newTestStore(t)

	// Day one: two entries, one from the template.
	first, err := s.Create(false)
	require.NoError(t, err)
	require.Equal(t, "Untitled", first.Title)
	require.Equal(t, first.ID, s.CurrentID())
	require.True(t, s.Editing())

	second, err := s.Create(true)
	require.NoError(t, err)
	require.Equal(t, "Daily Reflection", second.Title)
	require.Contains(t, second.Tags, "daily")

	title := "First steps"
	content := "Started keeping a journal today."
	require.NoError(t, s.Update(first.ID, Patch{
		Title:   &title,
		Content: content,
		Tags:    &[]string{"beginnings", "Daily"},
	}))

	got, err := s.Get(first.ID)
	require.NoError(t, err)
	require.Equal(t, "First steps", got.Title)
	// "Daily" collides case-insensitively with the template's "daily", but
	// tags are normalized per entry, not across the collection.
	require.Equal(t, []string{"beginnings", "Daily"}, got.Tags)

	require.NoError(t, s.ToggleFavorite(first.ID))

	// Day two, next morning.
	setClock(s, time.Date(2024, 6, 16, 8, 0, 0, 0, time.Local))
	third, err := s.Create(false)
	require.NoError(t, err)

	streak := s.Streak()
	require.Equal(t, 2, streak.Current)
	require.Equal(t, 2, streak.Longest)

	// The favorites view shows only the starred entry.
	require.NoError(t, s.SetView(ViewFavorites))
	favs := s.Filtered()
	require.Len(t, favs, 1)
	require.Equal(t, first.ID, favs[0].ID)

	// Bin the scratch entry; it leaves the active views but stays exportable.
	require.NoError(t, s.SetView(ViewAll))
	require.NoError(t, s.SoftDelete(third.ID))
	require.Len(t, s.Filtered(), 2)

	data, err := s.Export()
	require.NoError(t, err)

	// A fresh store rebuilt from the backup agrees on everything that
	// persists: entries, deletion state, favorites.
	restored := newTestStore(t)
	require.True(t, restored.Import(data))
	require.Equal(t, 3, restored.Len())

	back, err := restored.Get(first.ID)
	require.NoError(t, err)
	require.True(t, back.Favorite)
	require.Equal(t, "First steps", back.Title)

	binned, err := restored.Get(third.ID)
	require.NoError(t, err)
	require.True(t, binned.Deleted)

	// Purging the bin is terminal.
	require.Equal(t, 1, s.EmptyBin())
	_, err = s.Get(third.ID)
	require.Error(t, err)
}
