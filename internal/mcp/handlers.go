package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fernlog/fern/internal/config"
	"github.com/fernlog/fern/internal/entry"
	"github.com/fernlog/fern/internal/errors"
	"github.com/fernlog/fern/internal/journal"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store *journal.Store
	cfg   *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *journal.Store, cfg *config.Config) *Handlers {
	return &Handlers{store: store, cfg: cfg}
}

// Request types for each tool

// CreateRequest represents the arguments for create.
type CreateRequest struct {
	Template bool `json:"template,omitempty"`
}

// GetRequest represents the arguments for get.
type GetRequest struct {
	ID string `json:"id"`
}

// UpdateRequest represents the arguments for update.
type UpdateRequest struct {
	ID       string    `json:"id"`
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	Mood     *string   `json:"mood,omitempty"`
	Favorite *bool     `json:"favorite,omitempty"`
}

// IDRequest represents the arguments for tools that take only an id.
type IDRequest struct {
	ID string `json:"id"`
}

// EmptyBinRequest represents the arguments for empty_bin.
type EmptyBinRequest struct {
	Confirm bool `json:"confirm"`
}

// ListRequest represents the arguments for list.
type ListRequest struct {
	View   string `json:"view,omitempty"`
	Search string `json:"search,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Mood   string `json:"mood,omitempty"`
	Date   string `json:"date,omitempty"`
	Sort   string `json:"sort,omitempty"`
}

// StreakRequest represents the arguments for streak.
type StreakRequest struct {
	Recalculate bool `json:"recalculate,omitempty"`
}

// ExportRequest represents the arguments for export.
type ExportRequest struct {
	Path string `json:"path,omitempty"`
}

// ImportRequest represents the arguments for import.
type ImportRequest struct {
	Path string `json:"path"`
}

// SettingsRequest represents the arguments for settings.
type SettingsRequest struct {
	Animations       *bool    `json:"animations,omitempty"`
	CompactMode      *bool    `json:"compact_mode,omitempty"`
	DailyGoal        *float64 `json:"daily_goal,omitempty"`
	TemplateOnCreate *bool    `json:"template_on_create,omitempty"`
	SortOrder        *string  `json:"sort_order,omitempty"`
	EditorTheme      *string  `json:"editor_theme,omitempty"`
	FontFamily       *string  `json:"font_family,omitempty"`
}

// Handler implementations

// HandleCreate handles the create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	e, err := h.store.Create(input.Template)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(e)
}

// HandleGet handles the get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	e, err := h.store.Get(input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(e)
}

// HandleUpdate handles the update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	patch := journal.Patch{
		Title:    input.Title,
		Tags:     input.Tags,
		Mood:     input.Mood,
		Favorite: input.Favorite,
	}
	if input.Content != nil {
		patch.Content = *input.Content
	}

	if err := h.store.Update(input.ID, patch); err != nil {
		return errorResult(err), nil
	}

	e, err := h.store.Get(input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(e)
}

// HandleDelete handles the delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.SoftDelete(input.ID); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"deleted": true, "id": input.ID})
}

// HandleRestore handles the restore tool call.
func (h *Handlers) HandleRestore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.Restore(input.ID); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"restored": true, "id": input.ID})
}

// HandlePurge handles the purge tool call.
func (h *Handlers) HandlePurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.Purge(input.ID); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"purged": true, "id": input.ID})
}

// HandleEmptyBin handles the empty_bin tool call.
func (h *Handlers) HandleEmptyBin(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EmptyBinRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if !input.Confirm {
		return errorResult(errors.NewInvalidRequest("confirm must be true")), nil
	}

	purged := h.store.EmptyBin()
	return successResult(map[string]any{"purged": purged})
}

// HandleList handles the list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	q := journal.Query{
		View:   journal.ViewMode(input.View),
		Search: input.Search,
		Tag:    input.Tag,
		Mood:   input.Mood,
		Sort:   journal.SortOrder(input.Sort),
	}
	if input.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
		if err != nil {
			return errorResult(errors.NewInvalidRequest("date must be YYYY-MM-DD")), nil
		}
		q.Date = &d
	}

	entries := h.store.Filter(q)
	return successResult(map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

// HandleTags handles the tags tool call.
func (h *Handlers) HandleTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{"tags": h.store.Tags()})
}

// HandleMoods handles the moods tool call.
func (h *Handlers) HandleMoods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{
		"moods":     h.store.AllMoods(),
		"suggested": entry.SuggestedMoods,
	})
}

// HandleStreak handles the streak tool call.
func (h *Handlers) HandleStreak(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StreakRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	streak := h.store.Streak()
	if input.Recalculate {
		streak = h.store.RecalculateStreak()
	}
	return successResult(streak)
}

// HandleFavorite handles the favorite tool call.
func (h *Handlers) HandleFavorite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.ToggleFavorite(input.ID); err != nil {
		return errorResult(err), nil
	}

	e, err := h.store.Get(input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"id": e.ID, "favorite": e.Favorite})
}

// HandleExport handles the export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	path, err := h.store.ExportToFile(input.Path)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"path":    path,
		"entries": h.store.Len(),
	})
}

// HandleImport handles the import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	ok, err := h.store.ImportFromFile(input.Path)
	if err != nil {
		return errorResult(err), nil
	}
	if !ok {
		return errorResult(errors.NewInvalidImport("backup payload is not a valid journal export")), nil
	}

	return successResult(map[string]any{
		"imported": true,
		"entries":  h.store.Len(),
	})
}

// HandleSettings handles the settings tool call.
func (h *Handlers) HandleSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SettingsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	patch := journal.SettingsPatch{
		Animations:       input.Animations,
		CompactMode:      input.CompactMode,
		TemplateOnCreate: input.TemplateOnCreate,
		EditorTheme:      input.EditorTheme,
		FontFamily:       input.FontFamily,
	}
	if input.DailyGoal != nil {
		goal := int(*input.DailyGoal)
		patch.DailyGoal = &goal
	}
	if input.SortOrder != nil {
		order := journal.SortOrder(*input.SortOrder)
		patch.SortOrder = &order
	}

	if err := h.store.UpdateSettings(patch); err != nil {
		return errorResult(err), nil
	}

	return successResult(h.store.Settings())
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if jErr, ok := err.(*errors.JournalError); ok {
		errorObj := map[string]any{
			"code":    jErr.Code,
			"message": jErr.Message,
			"status":  jErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths
		if jErr.Code != errors.ErrInternal && jErr.Details != nil {
			errorObj["details"] = jErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
