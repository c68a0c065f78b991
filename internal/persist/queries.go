package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernlog/fern/internal/entry"
	"github.com/fernlog/fern/internal/journal"
)

// Save replaces the stored snapshot with snap in a single transaction.
// The store is the single writer, so a full replace mirrors its state
// exactly; there is no per-row merge to get wrong.
func Save(db *sql.DB, snap journal.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	insert := `
		INSERT INTO entries (
			id, position, title, content, tags_json, mood, favorite,
			images_json, location_json, weather_json,
			created_at, updated_at, deleted, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, e := range snap.Entries {
		tagsJSON, err := toNullJSON(e.Tags)
		if err != nil {
			return err
		}
		imagesJSON, err := toNullJSON(e.Images)
		if err != nil {
			return err
		}
		locationJSON, err := toNullJSON(e.Location)
		if err != nil {
			return err
		}
		weatherJSON, err := toNullJSON(e.Weather)
		if err != nil {
			return err
		}

		var deletedAt sql.NullInt64
		if e.DeletedAt != nil {
			deletedAt = sql.NullInt64{Int64: e.DeletedAt.UnixMilli(), Valid: true}
		}

		if _, err := tx.Exec(insert,
			e.ID, i, e.Title, e.Content, tagsJSON, nullString(e.Mood), boolInt(e.Favorite),
			imagesJSON, locationJSON, weatherJSON,
			e.CreatedAt.UnixMilli(), e.UpdatedAt.UnixMilli(), boolInt(e.Deleted), deletedAt,
		); err != nil {
			return fmt.Errorf("insert entry %s: %w", e.ID, err)
		}
	}

	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO settings (
			id, animations, compact_mode, daily_goal, template_on_create,
			sort_order, editor_theme, font_family
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?)`,
		boolInt(snap.Settings.Animations), boolInt(snap.Settings.CompactMode),
		snap.Settings.DailyGoal, boolInt(snap.Settings.TemplateOnCreate),
		string(snap.Settings.SortOrder), snap.Settings.EditorTheme, snap.Settings.FontFamily,
	); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	var lastEntryAt sql.NullInt64
	if snap.Streak.LastEntryDate != nil {
		lastEntryAt = sql.NullInt64{Int64: snap.Streak.LastEntryDate.UnixMilli(), Valid: true}
	}
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO streak (id, current, longest, last_entry_at)
		VALUES (1, ?, ?, ?)`,
		snap.Streak.Current, snap.Streak.Longest, lastEntryAt,
	); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. A fresh database yields an empty
// snapshot with default settings.
func Load(db *sql.DB) (*journal.Snapshot, error) {
	snap := &journal.Snapshot{Settings: journal.DefaultSettings()}

	rows, err := db.Query(`
		SELECT id, title, content, tags_json, mood, favorite,
			images_json, location_json, weather_json,
			created_at, updated_at, deleted, deleted_at
		FROM entries
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		snap.Entries = append(snap.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	var (
		animations, compactMode, dailyGoal, templateOnCreate int
		sortOrder, editorTheme, fontFamily                   string
	)
	err = db.QueryRow(`
		SELECT animations, compact_mode, daily_goal, template_on_create,
			sort_order, editor_theme, font_family
		FROM settings WHERE id = 1
	`).Scan(&animations, &compactMode, &dailyGoal, &templateOnCreate,
		&sortOrder, &editorTheme, &fontFamily)
	switch err {
	case nil:
		snap.Settings = journal.Settings{
			Animations:       animations != 0,
			CompactMode:      compactMode != 0,
			DailyGoal:        dailyGoal,
			TemplateOnCreate: templateOnCreate != 0,
			SortOrder:        journal.SortOrder(sortOrder),
			EditorTheme:      editorTheme,
			FontFamily:       fontFamily,
		}
	case sql.ErrNoRows:
		// keep defaults
	default:
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var current, longest int
	var lastEntryAt sql.NullInt64
	err = db.QueryRow(`SELECT current, longest, last_entry_at FROM streak WHERE id = 1`).
		Scan(&current, &longest, &lastEntryAt)
	switch err {
	case nil:
		snap.Streak = journal.StreakData{Current: current, Longest: longest}
		if lastEntryAt.Valid {
			t := time.UnixMilli(lastEntryAt.Int64)
			snap.Streak.LastEntryDate = &t
		}
	case sql.ErrNoRows:
		// fresh database
	default:
		return nil, fmt.Errorf("load streak: %w", err)
	}

	return snap, nil
}

func scanEntry(rows *sql.Rows) (*entry.Entry, error) {
	var (
		e                        entry.Entry
		tagsJSON, imagesJSON     sql.NullString
		locationJSON, weatherJSON sql.NullString
		mood                     sql.NullString
		favorite, deleted        int
		createdAt, updatedAt     int64
		deletedAt                sql.NullInt64
	)

	if err := rows.Scan(
		&e.ID, &e.Title, &e.Content, &tagsJSON, &mood, &favorite,
		&imagesJSON, &locationJSON, &weatherJSON,
		&createdAt, &updatedAt, &deleted, &deletedAt,
	); err != nil {
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	if err := fromNullJSON(tagsJSON, &e.Tags); err != nil {
		return nil, err
	}
	if err := fromNullJSON(imagesJSON, &e.Images); err != nil {
		return nil, err
	}
	if err := fromNullJSON(locationJSON, &e.Location); err != nil {
		return nil, err
	}
	if err := fromNullJSON(weatherJSON, &e.Weather); err != nil {
		return nil, err
	}

	e.Mood = mood.String
	e.Favorite = favorite != 0
	e.Deleted = deleted != 0
	e.CreatedAt = time.UnixMilli(createdAt)
	e.UpdatedAt = time.UnixMilli(updatedAt)
	if deletedAt.Valid {
		t := time.UnixMilli(deletedAt.Int64)
		e.DeletedAt = &t
	}

	return &e, nil
}

// toNullJSON marshals v to a nullable JSON column; nil slices/pointers
// store as NULL.
func toNullJSON(v any) (sql.NullString, error) {
	switch t := v.(type) {
	case []string:
		if len(t) == 0 {
			return sql.NullString{}, nil
		}
	case *entry.Location:
		if t == nil {
			return sql.NullString{}, nil
		}
	case *entry.Weather:
		if t == nil {
			return sql.NullString{}, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal column: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func fromNullJSON(col sql.NullString, dst any) error {
	if !col.Valid {
		return nil
	}
	if err := json.Unmarshal([]byte(col.String), dst); err != nil {
		return fmt.Errorf("unmarshal column: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
