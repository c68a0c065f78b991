package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fernlog/fern/internal/config"
	"github.com/fernlog/fern/internal/journal"
)

func setupHandlers(t *testing.T) (*Handlers, *journal.Store) {
	t.Helper()
	cfg := config.DefaultConfig()
	store := journal.New(cfg)
	return NewHandlers(store, cfg), store
}

func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

// resultJSON unmarshals the first text content of a tool result.
func resultJSON(t *testing.T, result *mcp.CallToolResult, dst any) {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	if err := json.Unmarshal([]byte(text.Text), dst); err != nil {
		t.Fatalf("result is not JSON: %v\n%s", err, text.Text)
	}
}

func createEntry(t *testing.T, h *Handlers) string {
	t.Helper()
	result, err := h.HandleCreate(context.Background(), makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("HandleCreate: %v", err)
	}
	if result.IsError {
		t.Fatal("HandleCreate returned an error result")
	}
	var e struct {
		ID string `json:"id"`
	}
	resultJSON(t, result, &e)
	return e.ID
}

func TestHandleCreate(t *testing.T) {
	h, store := setupHandlers(t)

	result, err := h.HandleCreate(context.Background(), makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("HandleCreate: %v", err)
	}
	if result.IsError {
		t.Fatal("unexpected error result")
	}

	var e struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	resultJSON(t, result, &e)
	if e.ID == "" {
		t.Error("entry has no id")
	}
	if e.Title != "Untitled" {
		t.Errorf("Title = %q", e.Title)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d entries", store.Len())
	}
}

func TestHandleCreateWithTemplate(t *testing.T) {
	h, _ := setupHandlers(t)

	result, err := h.HandleCreate(context.Background(), makeRequest(map[string]any{"template": true}))
	if err != nil {
		t.Fatalf("HandleCreate: %v", err)
	}

	var e struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}
	resultJSON(t, result, &e)
	if e.Title != "Daily Reflection" {
		t.Errorf("Title = %q", e.Title)
	}
	if len(e.Tags) != 1 || e.Tags[0] != "daily" {
		t.Errorf("Tags = %v", e.Tags)
	}
}

func TestHandleGet(t *testing.T) {
	h, _ := setupHandlers(t)
	id := createEntry(t, h)

	result, err := h.HandleGet(context.Background(), makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("HandleGet: %v", err)
	}
	if result.IsError {
		t.Fatal("unexpected error result")
	}

	t.Run("unknown id", func(t *testing.T) {
		result, err := h.HandleGet(context.Background(), makeRequest(map[string]any{"id": "nope"}))
		if err != nil {
			t.Fatalf("HandleGet: %v", err)
		}
		if !result.IsError {
			t.Error("expected error result for unknown id")
		}
		var resp struct {
			Error struct {
				Code   string `json:"code"`
				Status int    `json:"status"`
			} `json:"error"`
		}
		resultJSON(t, result, &resp)
		if resp.Error.Code != "NOT_FOUND" || resp.Error.Status != 404 {
			t.Errorf("error = %+v", resp.Error)
		}
	})
}

func TestHandleUpdate(t *testing.T) {
	h, store := setupHandlers(t)
	id := createEntry(t, h)

	result, err := h.HandleUpdate(context.Background(), makeRequest(map[string]any{
		"id":      id,
		"title":   "Renamed",
		"content": "New content",
		"tags":    []any{"one", "two"},
		"mood":    "😊 Happy",
	}))
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if result.IsError {
		t.Fatal("unexpected error result")
	}

	var e struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
		Mood  string   `json:"mood"`
	}
	resultJSON(t, result, &e)
	if e.Title != "Renamed" || len(e.Tags) != 2 || e.Mood != "😊 Happy" {
		t.Errorf("entry = %+v", e)
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != "New content" {
		t.Errorf("Content = %q", got.Content)
	}

	t.Run("empty patch rejected", func(t *testing.T) {
		result, err := h.HandleUpdate(context.Background(), makeRequest(map[string]any{"id": id}))
		if err != nil {
			t.Fatal(err)
		}
		if !result.IsError {
			t.Error("expected error result for empty patch")
		}
	})
}

func TestHandleDeleteRestorePurge(t *testing.T) {
	h, store := setupHandlers(t)
	id := createEntry(t, h)

	result, err := h.HandleDelete(context.Background(), makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatal("delete failed")
	}
	if e, _ := store.Get(id); !e.Deleted {
		t.Error("entry not binned")
	}

	result, err = h.HandleRestore(context.Background(), makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatal("restore failed")
	}
	if e, _ := store.Get(id); e.Deleted {
		t.Error("entry still binned")
	}

	result, err = h.HandlePurge(context.Background(), makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatal("purge failed")
	}
	if _, err := store.Get(id); err == nil {
		t.Error("entry survived purge")
	}
}

func TestHandleEmptyBin(t *testing.T) {
	h, store := setupHandlers(t)
	id := createEntry(t, h)
	if _, err := h.HandleDelete(context.Background(), makeRequest(map[string]any{"id": id})); err != nil {
		t.Fatal(err)
	}

	t.Run("requires confirm", func(t *testing.T) {
		result, err := h.HandleEmptyBin(context.Background(), makeRequest(map[string]any{}))
		if err != nil {
			t.Fatal(err)
		}
		if !result.IsError {
			t.Error("expected error without confirm")
		}
		if _, err := store.Get(id); err != nil {
			t.Error("entry purged without confirmation")
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		result, err := h.HandleEmptyBin(context.Background(), makeRequest(map[string]any{"confirm": true}))
		if err != nil {
			t.Fatal(err)
		}
		if result.IsError {
			t.Fatal("empty_bin failed")
		}
		var resp struct {
			Purged int `json:"purged"`
		}
		resultJSON(t, result, &resp)
		if resp.Purged != 1 {
			t.Errorf("purged = %d", resp.Purged)
		}
	})
}

func TestHandleListWithFilters(t *testing.T) {
	h, store := setupHandlers(t)
	a := createEntry(t, h)
	b := createEntry(t, h)
	if _, err := h.HandleUpdate(context.Background(), makeRequest(map[string]any{
		"id": a, "tags": []any{"work"},
	})); err != nil {
		t.Fatal(err)
	}
	if err := store.SoftDelete(b); err != nil {
		t.Fatal(err)
	}

	t.Run("tag filter", func(t *testing.T) {
		result, err := h.HandleList(context.Background(), makeRequest(map[string]any{"tag": "work"}))
		if err != nil {
			t.Fatal(err)
		}
		var resp struct {
			Count int `json:"count"`
		}
		resultJSON(t, result, &resp)
		if resp.Count != 1 {
			t.Errorf("count = %d", resp.Count)
		}
	})

	t.Run("deleted view", func(t *testing.T) {
		result, err := h.HandleList(context.Background(), makeRequest(map[string]any{"view": "deleted"}))
		if err != nil {
			t.Fatal(err)
		}
		var resp struct {
			Count   int `json:"count"`
			Entries []struct {
				ID string `json:"id"`
			} `json:"entries"`
		}
		resultJSON(t, result, &resp)
		if resp.Count != 1 || resp.Entries[0].ID != b {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		result, err := h.HandleList(context.Background(), makeRequest(map[string]any{"date": "soon"}))
		if err != nil {
			t.Fatal(err)
		}
		if !result.IsError {
			t.Error("expected error for malformed date")
		}
	})
}

func TestHandleTagsAndMoods(t *testing.T) {
	h, _ := setupHandlers(t)
	id := createEntry(t, h)
	if _, err := h.HandleUpdate(context.Background(), makeRequest(map[string]any{
		"id": id, "tags": []any{"reading"}, "mood": "😌 Calm",
	})); err != nil {
		t.Fatal(err)
	}

	result, err := h.HandleTags(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	var tagsResp struct {
		Tags []string `json:"tags"`
	}
	resultJSON(t, result, &tagsResp)
	if len(tagsResp.Tags) != 1 || tagsResp.Tags[0] != "reading" {
		t.Errorf("tags = %v", tagsResp.Tags)
	}

	result, err = h.HandleMoods(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	var moodsResp struct {
		Moods     []string `json:"moods"`
		Suggested []string `json:"suggested"`
	}
	resultJSON(t, result, &moodsResp)
	if len(moodsResp.Moods) != 1 {
		t.Errorf("moods = %v", moodsResp.Moods)
	}
	if len(moodsResp.Suggested) == 0 {
		t.Error("suggested moods missing")
	}
}

func TestHandleStreak(t *testing.T) {
	h, _ := setupHandlers(t)
	createEntry(t, h)

	result, err := h.HandleStreak(context.Background(), makeRequest(map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	var streak struct {
		Current int `json:"current"`
		Longest int `json:"longest"`
	}
	resultJSON(t, result, &streak)
	if streak.Current != 1 || streak.Longest != 1 {
		t.Errorf("streak = %+v", streak)
	}
}

func TestHandleFavorite(t *testing.T) {
	h, _ := setupHandlers(t)
	id := createEntry(t, h)

	result, err := h.HandleFavorite(context.Background(), makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatal(err)
	}
	var resp struct {
		Favorite bool `json:"favorite"`
	}
	resultJSON(t, result, &resp)
	if !resp.Favorite {
		t.Error("favorite not set")
	}

	result, err = h.HandleFavorite(context.Background(), makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatal(err)
	}
	resultJSON(t, result, &resp)
	if resp.Favorite {
		t.Error("second toggle should clear the flag")
	}
}

func TestHandleExportImport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true
	store := journal.New(cfg)
	h := NewHandlers(store, cfg)

	id := createEntry(t, h)
	path := t.TempDir() + "/backup.json"

	result, err := h.HandleExport(context.Background(), makeRequest(map[string]any{"path": path}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatal("export failed")
	}

	// Import into a second store sharing the config.
	store2 := journal.New(cfg)
	h2 := NewHandlers(store2, cfg)

	result, err = h2.HandleImport(context.Background(), makeRequest(map[string]any{"path": path}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatal("import failed")
	}
	if _, err := store2.Get(id); err != nil {
		t.Error("entry missing after import")
	}

	t.Run("missing file", func(t *testing.T) {
		result, err := h2.HandleImport(context.Background(), makeRequest(map[string]any{
			"path": t.TempDir() + "/nope.json",
		}))
		if err != nil {
			t.Fatal(err)
		}
		if !result.IsError {
			t.Error("expected error for missing file")
		}
	})
}

func TestHandleSettings(t *testing.T) {
	h, store := setupHandlers(t)

	result, err := h.HandleSettings(context.Background(), makeRequest(map[string]any{
		"daily_goal": float64(3),
		"sort_order": "oldest",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatal("settings update failed")
	}

	got := store.Settings()
	if got.DailyGoal != 3 || got.SortOrder != journal.SortOldest {
		t.Errorf("settings = %+v", got)
	}

	t.Run("invalid goal", func(t *testing.T) {
		result, err := h.HandleSettings(context.Background(), makeRequest(map[string]any{
			"daily_goal": float64(0),
		}))
		if err != nil {
			t.Fatal(err)
		}
		if !result.IsError {
			t.Error("expected error for daily_goal < 1")
		}
	})
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != len(toolRegistry) {
		t.Fatalf("len = %d, want %d", len(names), len(toolRegistry))
	}
	seen := make(map[string]bool)
	for _, name := range names {
		seen[name] = true
	}
	for _, want := range []string{"journal_create", "journal_list", "journal_export", "journal_settings"} {
		if !seen[want] {
			t.Errorf("missing tool %q", want)
		}
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"journal_create", "journal_frobnicate"})
	if len(unknown) != 1 || unknown[0] != "journal_frobnicate" {
		t.Errorf("unknown = %v", unknown)
	}

	if got := ValidateDisabledTools(nil); len(got) != 0 {
		t.Errorf("nil input: %v", got)
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	cfg := config.DefaultConfig()
	store := journal.New(cfg)

	if s := NewServer(store, cfg, "test"); s == nil {
		t.Fatal("NewServer returned nil")
	}

	cfg.DisabledTools = []string{"journal_purge"}
	if s := NewServer(store, cfg, "test"); s == nil {
		t.Fatal("NewServer with disabled tools returned nil")
	}
}
