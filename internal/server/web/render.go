package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/weekplanner/internal/server/auth"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"home", "list", "detail", "form", "trash", "tags", "search", "overdue",
	"login", "register", "error",
}

var funcs = template.FuncMap{
	"days": func(d *int) string {
		switch {
		case d == nil:
			return "unknown"
		case *d == 1:
			return "1 day"
		default:
			return fmt.Sprintf("%d days", *d)
		}
	},
}

// parseTemplates builds one template set per page, each with the shared layout.
func parseTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := template.New(p).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", p, err)
		}
		out[p] = t
	}
	return out, nil
}

// view is the root object every template receives.
type view struct {
	User  *models.Identity
	Flash *flash
	Data  any
}

// render writes page with status. Output is buffered so a template error
// still produces a clean 500.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, ok := h.templates[page]
	if !ok {
		h.logger.Error(r.Context(), "unknown template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	v := view{Data: data, Flash: popFlash(w, r, h.secureCookies)}
	if id, ok := auth.IdentityFromContext(r.Context()); ok {
		v.User = &id
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		h.logger.Error(r.Context(), "template execution failed", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorPage struct {
	Status  int
	Message string
}

func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render(w, r, status, "error", errorPage{Status: status, Message: msg})
}
