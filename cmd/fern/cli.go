package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/fernlog/fern/internal/config"
	"github.com/fernlog/fern/internal/errors"
	"github.com/fernlog/fern/internal/journal"
	"github.com/fernlog/fern/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(store *journal.Store, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "fern",
		Usage:   "Personal journal store",
		Version: Version,
		Commands: []*cli.Command{
			newCmd(store),
			showCmd(store),
			listCmd(store),
			editCmd(store),
			favoriteCmd(store),
			deleteCmd(store),
			restoreCmd(store),
			purgeCmd(store),
			emptyBinCmd(store),
			tagsCmd(store),
			moodsCmd(store),
			streakCmd(store),
			exportCmd(store),
			importCmd(store),
			settingsCmd(store),
			webCmd(store, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// newCmd creates the new command.
func newCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "Create a new entry (optionally reads content from stdin)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "template", Usage: "Seed the daily reflection template"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Entry title"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
			&cli.StringFlag{Name: "mood", Aliases: []string{"m"}, Usage: "Mood label"},
		},
		Action: func(c *cli.Context) error {
			template := c.Bool("template")
			if !c.IsSet("template") && store.Settings().TemplateOnCreate {
				template = true
			}

			e, err := store.Create(template)
			if err != nil {
				return outputError(err)
			}

			patch := journal.Patch{}
			if title := c.String("title"); title != "" {
				patch.Title = &title
			}
			if c.IsSet("tags") {
				tags := parseTags(c.String("tags"))
				patch.Tags = &tags
			}
			if mood := c.String("mood"); mood != "" {
				patch.Mood = &mood
			}
			if stdinHasData() {
				content, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				if content != "" {
					patch.Content = content
				}
			}

			if patch.Title != nil || patch.Tags != nil || patch.Mood != nil || patch.Content != nil {
				if err := store.Update(e.ID, patch); err != nil {
					return outputError(err)
				}
			}

			out, err := store.Get(e.ID)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// showCmd creates the show command.
func showCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single entry",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("entry id is required"))
			}
			e, err := store.Get(c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(e)
		},
	}
}

// listCmd creates the list command.
func listCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List entries through the filter pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "view", Value: "all", Usage: "View mode: all|favorites|deleted"},
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Substring search over title, content, tags"},
			&cli.StringFlag{Name: "tag", Usage: "Filter by tag"},
			&cli.StringFlag{Name: "mood", Usage: "Filter by exact mood"},
			&cli.StringFlag{Name: "date", Usage: "Filter by creation day (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "sort", Usage: "Sort order: newest|oldest|alphabetical"},
		},
		Action: func(c *cli.Context) error {
			q := journal.Query{
				View:   journal.ViewMode(c.String("view")),
				Search: c.String("search"),
				Tag:    c.String("tag"),
				Mood:   c.String("mood"),
				Sort:   journal.SortOrder(c.String("sort")),
			}
			if date := c.String("date"); date != "" {
				d, err := time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return outputError(errors.NewInvalidRequest("date must be YYYY-MM-DD"))
				}
				q.Date = &d
			}

			entries := store.Filter(q)
			return outputJSON(map[string]any{
				"entries": entries,
				"count":   len(entries),
			})
		},
	}
}

// editCmd creates the edit command.
func editCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Update an entry (optionally reads content from stdin)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "tags", Usage: "New comma-separated tags"},
			&cli.StringFlag{Name: "mood", Aliases: []string{"m"}, Usage: "New mood label (empty clears)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("entry id is required"))
			}
			id := c.Args().First()

			patch := journal.Patch{}
			if title := c.String("title"); title != "" {
				patch.Title = &title
			}
			if c.IsSet("tags") {
				tags := parseTags(c.String("tags"))
				patch.Tags = &tags
			}
			if c.IsSet("mood") {
				mood := c.String("mood")
				patch.Mood = &mood
			}
			if stdinHasData() {
				content, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				if content != "" {
					patch.Content = content
				}
			}

			if err := store.Update(id, patch); err != nil {
				return outputError(err)
			}

			e, err := store.Get(id)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(e)
		},
	}
}

// favoriteCmd creates the favorite command.
func favoriteCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:      "favorite",
		Usage:     "Toggle an entry's favorite flag",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("entry id is required"))
			}
			id := c.Args().First()
			if err := store.ToggleFavorite(id); err != nil {
				return outputError(err)
			}
			e, err := store.Get(id)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"id": e.ID, "favorite": e.Favorite})
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Move an entry to the bin",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("entry id is required"))
			}
			id := c.Args().First()
			if err := store.SoftDelete(id); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"deleted": true, "id": id})
		},
	}
}

// restoreCmd creates the restore command.
func restoreCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "Restore a binned entry",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("entry id is required"))
			}
			id := c.Args().First()
			if err := store.Restore(id); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"restored": true, "id": id})
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:      "purge",
		Usage:     "Permanently delete a single entry",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("entry id is required"))
			}
			id := c.Args().First()
			if err := store.Purge(id); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"purged": true, "id": id})
		},
	}
}

// emptyBinCmd creates the empty-bin command.
func emptyBinCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:  "empty-bin",
		Usage: "Permanently delete all binned entries",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "confirm", Usage: "Required to proceed"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("confirm") {
				return outputError(errors.NewInvalidRequest("pass --confirm to empty the bin"))
			}
			purged := store.EmptyBin()
			return outputJSON(map[string]any{"purged": purged})
		},
	}
}

// tagsCmd creates the tags command.
func tagsCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: "List unique tags across non-deleted entries",
		Action: func(c *cli.Context) error {
			return outputJSON(map[string]any{"tags": store.Tags()})
		},
	}
}

// moodsCmd creates the moods command.
func moodsCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:  "moods",
		Usage: "List unique moods across non-deleted entries",
		Action: func(c *cli.Context) error {
			return outputJSON(map[string]any{"moods": store.AllMoods()})
		},
	}
}

// streakCmd creates the streak command.
func streakCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:  "streak",
		Usage: "Report the consecutive-day writing streak",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "recalculate", Usage: "Recompute before reporting"},
		},
		Action: func(c *cli.Context) error {
			streak := store.Streak()
			if c.Bool("recalculate") {
				streak = store.RecalculateStreak()
			}
			return outputJSON(streak)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a full JSON backup",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.fern/exports/journal-<timestamp>.json)"},
		},
		Action: func(c *cli.Context) error {
			path, err := store.ExportToFile(c.String("path"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{
				"path":    path,
				"entries": store.Len(),
			})
		},
	}
}

// importCmd creates the import command.
func importCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import a JSON backup file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
		},
		Action: func(c *cli.Context) error {
			ok, err := store.ImportFromFile(c.String("path"))
			if err != nil {
				return outputError(err)
			}
			if !ok {
				return outputError(errors.NewInvalidImport("backup payload is not a valid journal export"))
			}
			return outputJSON(map[string]any{
				"imported": true,
				"entries":  store.Len(),
			})
		},
	}
}

// settingsCmd creates the settings command.
func settingsCmd(store *journal.Store) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or update journal settings",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "animations", Usage: "Enable UI animations"},
			&cli.BoolFlag{Name: "compact-mode", Usage: "Enable compact list rendering"},
			&cli.IntFlag{Name: "daily-goal", Usage: "Target entries per day (minimum 1)"},
			&cli.BoolFlag{Name: "template-on-create", Usage: "Seed new entries with the template"},
			&cli.StringFlag{Name: "sort-order", Usage: "Default sort order: newest|oldest|alphabetical"},
			&cli.StringFlag{Name: "editor-theme", Usage: "Editor theme name"},
			&cli.StringFlag{Name: "font-family", Usage: "Editor font family"},
		},
		Action: func(c *cli.Context) error {
			patch := journal.SettingsPatch{}
			if c.IsSet("animations") {
				v := c.Bool("animations")
				patch.Animations = &v
			}
			if c.IsSet("compact-mode") {
				v := c.Bool("compact-mode")
				patch.CompactMode = &v
			}
			if c.IsSet("daily-goal") {
				v := c.Int("daily-goal")
				patch.DailyGoal = &v
			}
			if c.IsSet("template-on-create") {
				v := c.Bool("template-on-create")
				patch.TemplateOnCreate = &v
			}
			if c.IsSet("sort-order") {
				v := journal.SortOrder(c.String("sort-order"))
				patch.SortOrder = &v
			}
			if c.IsSet("editor-theme") {
				v := c.String("editor-theme")
				patch.EditorTheme = &v
			}
			if c.IsSet("font-family") {
				v := c.String("font-family")
				patch.FontFamily = &v
			}

			if err := store.UpdateSettings(patch); err != nil {
				return outputError(err)
			}
			return outputJSON(store.Settings())
		},
	}
}

// webCmd creates the web command.
func webCmd(store *journal.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Run the local web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 7344, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(store, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if jErr, ok := err.(*errors.JournalError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", jErr.Code, jErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
