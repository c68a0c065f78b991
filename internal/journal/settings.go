package journal

import "github.com/fernlog/fern/internal/errors"

// SortOrder selects how filtered views are ordered.
type SortOrder string

const (
	SortNewest       SortOrder = "newest"
	SortOldest       SortOrder = "oldest"
	SortAlphabetical SortOrder = "alphabetical"
)

// Settings is the persisted, process-wide user configuration.
type Settings struct {
	Animations       bool      `json:"animations"`
	CompactMode      bool      `json:"compact_mode"`
	DailyGoal        int       `json:"daily_goal"`
	TemplateOnCreate bool      `json:"template_on_create"`
	SortOrder        SortOrder `json:"sort_order"`
	EditorTheme      string    `json:"editor_theme"`
	FontFamily       string    `json:"font_family"`
}

// DefaultSettings returns the settings applied to a fresh store.
func DefaultSettings() Settings {
	return Settings{
		Animations:       true,
		CompactMode:      false,
		DailyGoal:        1,
		TemplateOnCreate: false,
		SortOrder:        SortNewest,
		EditorTheme:      "default",
		FontFamily:       "serif",
	}
}

// withDefaults fills zero-valued fields loaded from an older snapshot.
func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.DailyGoal <= 0 {
		s.DailyGoal = def.DailyGoal
	}
	if !validSortOrder(s.SortOrder) {
		s.SortOrder = def.SortOrder
	}
	if s.EditorTheme == "" {
		s.EditorTheme = def.EditorTheme
	}
	if s.FontFamily == "" {
		s.FontFamily = def.FontFamily
	}
	return s
}

func validSortOrder(o SortOrder) bool {
	switch o {
	case SortNewest, SortOldest, SortAlphabetical:
		return true
	}
	return false
}

// SettingsPatch contains settings fields to change (nil = don't change).
type SettingsPatch struct {
	Animations       *bool
	CompactMode      *bool
	DailyGoal        *int
	TemplateOnCreate *bool
	SortOrder        *SortOrder
	EditorTheme      *string
	FontFamily       *string
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies a partial settings change and persists it.
func (s *Store) UpdateSettings(patch SettingsPatch) error {
	s.mu.Lock()

	if patch.DailyGoal != nil && *patch.DailyGoal < 1 {
		s.mu.Unlock()
		return errors.NewInvalidRequest("daily goal must be a positive integer")
	}
	if patch.SortOrder != nil && !validSortOrder(*patch.SortOrder) {
		s.mu.Unlock()
		return errors.NewInvalidRequest("sort order must be one of: newest, oldest, alphabetical")
	}

	if patch.Animations != nil {
		s.settings.Animations = *patch.Animations
	}
	if patch.CompactMode != nil {
		s.settings.CompactMode = *patch.CompactMode
	}
	if patch.DailyGoal != nil {
		s.settings.DailyGoal = *patch.DailyGoal
	}
	if patch.TemplateOnCreate != nil {
		s.settings.TemplateOnCreate = *patch.TemplateOnCreate
	}
	if patch.SortOrder != nil {
		s.settings.SortOrder = *patch.SortOrder
	}
	if patch.EditorTheme != nil {
		s.settings.EditorTheme = *patch.EditorTheme
	}
	if patch.FontFamily != nil {
		s.settings.FontFamily = *patch.FontFamily
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return nil
}
