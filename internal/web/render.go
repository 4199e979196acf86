package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

//go:embed templates
var templatesFS embed.FS

// pages maps page file name to its parsed layout+content template set.
// Parsed once at startup; a broken template fails the process immediately
// instead of the first request.
var pages = parseTemplates()

func parseTemplates() map[string]*template.Template {
	layout, err := templatesFS.ReadFile("templates/layout.html")
	if err != nil {
		panic(err)
	}

	entries, err := fs.ReadDir(templatesFS, "templates")
	if err != nil {
		panic(err)
	}

	parsed := make(map[string]*template.Template)
	for _, e := range entries {
		name := e.Name()
		if name == "layout.html" || !strings.HasSuffix(name, ".html") {
			continue
		}
		content, err := templatesFS.ReadFile("templates/" + name)
		if err != nil {
			panic(err)
		}
		t := template.Must(template.New("layout").Parse(string(layout)))
		template.Must(t.Parse(string(content)))
		parsed[name] = t
	}
	return parsed
}

// render writes the named page wrapped in the layout. The page is executed
// into a buffer before the status line goes out, so an execute-time failure
// turns into a clean 500 instead of a half-written page.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data map[string]interface{}) {
	t, ok := pages[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("template execute", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// renderError serves the shared error page. Used for 403, 404 and 500; the
// status code matters more than the prose.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, status, "error.html", map[string]interface{}{
		"User":    h.identity(r),
		"Status":  status,
		"Message": message,
	})
}
