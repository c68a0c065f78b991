package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/fernlog/fern/internal/entry"
	"github.com/fernlog/fern/internal/errors"
	"github.com/fernlog/fern/internal/journal"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "entries", "stats"
}

// ListPageData is the template data for the entry list page.
type ListPageData struct {
	PageData
	Entries []*entry.Entry
	View    string
	Search  string
	Tag     string
	Mood    string
	Tags    []string
	Moods   []string
	Streak  journal.StreakData
}

// DetailPageData is the template data for the entry detail page.
type DetailPageData struct {
	PageData
	Entry        *entry.Entry
	RenderedHTML template.HTML
}

// StatsPageData is the template data for the stats page.
type StatsPageData struct {
	PageData
	Streak   journal.StreakData
	Tags     []string
	Moods    []string
	Total    int
	Settings journal.Settings
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
		"formatTime": formatTime,
		"formatDay":  formatDay,
		"safeHTML":   func(s string) template.HTML { return template.HTML(s) },
		"excerpt":    excerpt,
		"joinTags":   func(tags []string) string { return strings.Join(tags, ", ") },
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"list":   "list.html",
		"detail": "detail.html",
		"stats":  "stats.html",
		"error":  "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, req *http.Request, name string, data any) {
	r.renderPageStatus(w, req, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
// For HTMX requests, only the "content" block is rendered to avoid duplicating the layout.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	block := "layout"
	if req != nil && req.Header.Get("HX-Request") == "true" {
		block = "content"
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var jErr *errors.JournalError
	if !stderrors.As(err, &jErr) {
		jErr = errors.NewInternal(err)
	}

	status := jErr.Status
	message := jErr.Message

	// HTMX request: return HTML fragment
	if req.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprintf(w, `<div class="error-message">%s</div>`, template.HTMLEscapeString(message))
		return
	}

	// JSON request
	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    string(jErr.Code),
				"message": message,
				"status":  status,
			},
		})
		return
	}

	// Full error page
	r.renderPageStatus(w, req, status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", status),
			Version: r.version,
		},
		StatusCode: status,
		Message:    message,
	})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderContent converts entry content to HTML. The store treats content as
// an opaque string; the web view renders it as markdown best-effort, falling
// back to escaped plain text if conversion fails.
func renderContent(content string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(buf.String())
}

// formatTime formats a timestamp as "2006-01-02 15:04".
func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// formatDay formats a timestamp as "Monday, January 2, 2006". It accepts
// either time.Time or *time.Time since templates pass both.
func formatDay(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("Monday, January 2, 2006")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("Monday, January 2, 2006")
	}
	return ""
}

// excerpt truncates content to a short preview for list rows.
func excerpt(content string) string {
	content = strings.TrimSpace(content)
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[:i]
	}
	runes := []rune(content)
	if len(runes) > 120 {
		return string(runes[:120]) + "..."
	}
	return content
}
