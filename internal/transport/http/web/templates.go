// Package web renders the admin pages. Every page template is parsed
// against the shared layout at startup; a parse error is a deploy-time
// failure, not a request-time one.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var files embed.FS

var pageNames = []string{
	"login.html",
	"employees_list.html",
	"employee_detail.html",
	"confirm_delete.html",
	"error.html",
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"str": func(v *string) string {
			if v == nil {
				return ""
			}
			return *v
		},
		"num": func(v *float64) string {
			if v == nil {
				return ""
			}
			return fmt.Sprintf("%g", *v)
		},
		"orDash": func(v string) string {
			if v == "" {
				return "-"
			}
			return v
		},
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := r.pages[page]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		slog.Warn("render failed", "page", page, "err", err)
	}
}

// ErrorData feeds the page-level error state.
type ErrorData struct {
	Title   string
	Message string
}

func (r *Renderer) Error(w http.ResponseWriter, status int, message string) {
	r.Render(w, status, "error.html", ErrorData{Title: "Error", Message: message})
}
