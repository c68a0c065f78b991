package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/fernlog/fern/internal/config"
	"github.com/fernlog/fern/internal/errors"
	"github.com/fernlog/fern/internal/journal"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	store    *journal.Store
	cfg      *config.Config
	renderer *Renderer
}

// HandleList handles GET /entries — the filtered entry list.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view == "" {
		view = string(journal.ViewAll)
	}
	search := r.URL.Query().Get("q")
	tag := r.URL.Query().Get("tag")
	mood := r.URL.Query().Get("mood")

	q := journal.Query{
		View:   journal.ViewMode(view),
		Search: search,
		Tag:    tag,
		Mood:   mood,
	}
	if date := r.URL.Query().Get("date"); date != "" {
		d, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			h.renderer.renderError(w, r, errors.NewInvalidRequest("date must be YYYY-MM-DD"))
			return
		}
		q.Date = &d
	}

	entries := h.store.Filter(q)

	h.renderer.renderPage(w, r, "list", ListPageData{
		PageData: PageData{
			Title:   "Entries",
			Version: h.renderer.version,
			Nav:     "entries",
		},
		Entries: entries,
		View:    view,
		Search:  search,
		Tag:     tag,
		Mood:    mood,
		Tags:    h.store.Tags(),
		Moods:   h.store.AllMoods(),
		Streak:  h.store.Streak(),
	})
}

// HandleDetail handles GET /entries/{id} — view a single entry.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("entry ID is required"))
		return
	}

	e, err := h.store.Get(id)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   e.Title,
			Version: h.renderer.version,
			Nav:     "entries",
		},
		Entry:        e,
		RenderedHTML: renderContent(e.Content),
	})
}

// HandleDelete handles DELETE /entries/{id} — soft-delete an entry.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("entry ID is required"))
		return
	}

	if err := h.store.SoftDelete(id); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/entries")
		w.WriteHeader(http.StatusOK)
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{
			"deleted": true,
			"id":      id,
		})
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/entries", http.StatusFound)
}

// HandleRestore handles POST /entries/{id}/restore — undo a soft delete.
func (h *Handlers) HandleRestore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("entry ID is required"))
		return
	}

	if err := h.store.Restore(id); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/entries?view=deleted")
		w.WriteHeader(http.StatusOK)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{
			"restored": true,
			"id":       id,
		})
		return
	}

	http.Redirect(w, r, "/entries?view=deleted", http.StatusFound)
}

// HandleFavorite handles POST /entries/{id}/favorite — toggle the flag.
func (h *Handlers) HandleFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("entry ID is required"))
		return
	}

	if err := h.store.ToggleFavorite(id); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	e, err := h.store.Get(id)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{
			"id":       id,
			"favorite": e.Favorite,
		})
		return
	}

	http.Redirect(w, r, "/entries/"+id, http.StatusFound)
}

// HandleEmptyBin handles POST /bin/empty — permanently delete binned entries.
func (h *Handlers) HandleEmptyBin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	purged := h.store.EmptyBin()

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{
			"purged": purged,
		})
		return
	}

	http.Redirect(w, r, "/entries?view=deleted", http.StatusFound)
}

// HandleStats handles GET /stats — streak and collection statistics.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "stats", StatsPageData{
		PageData: PageData{
			Title:   "Stats",
			Version: h.renderer.version,
			Nav:     "stats",
		},
		Streak:   h.store.Streak(),
		Tags:     h.store.Tags(),
		Moods:    h.store.AllMoods(),
		Total:    len(h.store.Filter(journal.Query{View: journal.ViewAll})),
		Settings: h.store.Settings(),
	})
}
