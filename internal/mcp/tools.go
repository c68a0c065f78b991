package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. The input schemas mirror the request structs in
// handlers.go.

var createToolDef = mcp.NewTool(
	"journal_create",
	mcp.WithDescription("Create a new journal entry and make it current. Set template=true to seed the daily reflection template."),
	mcp.WithBoolean("template",
		mcp.Description("Seed the entry with the daily reflection template."),
	),
)

var getToolDef = mcp.NewTool(
	"journal_get",
	mcp.WithDescription("Fetch a single journal entry by id, deleted or not."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry ULID."),
	),
)

var updateToolDef = mcp.NewTool(
	"journal_update",
	mcp.WithDescription("Apply a partial update to a non-deleted entry. At least one field is required."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry ULID."),
	),
	mcp.WithString("title",
		mcp.Description("New title."),
	),
	mcp.WithString("content",
		mcp.Description("New content (opaque document string)."),
	),
	mcp.WithArray("tags",
		mcp.Description("Replacement tag list; tags are trimmed and deduplicated case-insensitively."),
	),
	mcp.WithString("mood",
		mcp.Description("Mood label (free-form; empty clears)."),
	),
	mcp.WithBoolean("favorite",
		mcp.Description("Set the favorite flag."),
	),
)

var deleteToolDef = mcp.NewTool(
	"journal_delete",
	mcp.WithDescription("Move an entry to the bin (soft delete)."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry ULID."),
	),
)

var restoreToolDef = mcp.NewTool(
	"journal_restore",
	mcp.WithDescription("Restore a binned entry. Restoring a non-deleted entry is a no-op."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry ULID."),
	),
)

var purgeToolDef = mcp.NewTool(
	"journal_purge",
	mcp.WithDescription("Permanently delete a single entry. Irreversible."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry ULID."),
	),
)

var emptyBinToolDef = mcp.NewTool(
	"journal_empty_bin",
	mcp.WithDescription("Permanently delete all binned entries. Irreversible."),
	mcp.WithBoolean("confirm",
		mcp.Required(),
		mcp.Description("Must be true to proceed."),
	),
)

var listToolDef = mcp.NewTool(
	"journal_list",
	mcp.WithDescription("List entries through the filtering/sorting pipeline."),
	mcp.WithString("view",
		mcp.Description("View mode."),
		mcp.Enum("all", "favorites", "deleted"),
	),
	mcp.WithString("search",
		mcp.Description("Case-insensitive substring search over title, content, and tags."),
	),
	mcp.WithString("tag",
		mcp.Description("Only entries carrying this tag (ignored in the deleted view)."),
	),
	mcp.WithString("mood",
		mcp.Description("Only entries with this exact mood (ignored in the deleted view)."),
	),
	mcp.WithString("date",
		mcp.Description("Only entries created on this day, YYYY-MM-DD (ignored in the deleted view)."),
	),
	mcp.WithString("sort",
		mcp.Description("Sort order; defaults to the settings' sort order."),
		mcp.Enum("newest", "oldest", "alphabetical"),
	),
)

var tagsToolDef = mcp.NewTool(
	"journal_tags",
	mcp.WithDescription("List unique tags across non-deleted entries in discovery order."),
)

var moodsToolDef = mcp.NewTool(
	"journal_moods",
	mcp.WithDescription("List unique mood values across non-deleted entries, plus the suggested mood set."),
)

var streakToolDef = mcp.NewTool(
	"journal_streak",
	mcp.WithDescription("Report the consecutive-day writing streak. Set recalculate=true to force a recompute first."),
	mcp.WithBoolean("recalculate",
		mcp.Description("Recompute the streak before reporting."),
	),
)

var favoriteToolDef = mcp.NewTool(
	"journal_favorite",
	mcp.WithDescription("Toggle an entry's favorite flag."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry ULID."),
	),
)

var exportToolDef = mcp.NewTool(
	"journal_export",
	mcp.WithDescription("Write a full JSON backup, soft-deleted entries included."),
	mcp.WithString("path",
		mcp.Description("Destination file (.json). Defaults to a timestamped file in the exports directory."),
	),
)

var importToolDef = mcp.NewTool(
	"journal_import",
	mcp.WithDescription("Import a JSON backup file. Records with existing ids are skipped; an unusable payload changes nothing."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Backup file to read (.json)."),
	),
)

var settingsToolDef = mcp.NewTool(
	"journal_settings",
	mcp.WithDescription("Read or partially update journal settings. With no arguments, returns current settings."),
	mcp.WithBoolean("animations",
		mcp.Description("Enable UI animations."),
	),
	mcp.WithBoolean("compact_mode",
		mcp.Description("Enable compact list rendering."),
	),
	mcp.WithNumber("daily_goal",
		mcp.Description("Target entries per day (minimum 1)."),
	),
	mcp.WithBoolean("template_on_create",
		mcp.Description("Seed new entries with the daily reflection template."),
	),
	mcp.WithString("sort_order",
		mcp.Description("Default sort order for views."),
		mcp.Enum("newest", "oldest", "alphabetical"),
	),
	mcp.WithString("editor_theme",
		mcp.Description("Editor theme name."),
	),
	mcp.WithString("font_family",
		mcp.Description("Editor font family."),
	),
)
