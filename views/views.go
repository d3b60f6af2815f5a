// Package views renders the catalog's server-side HTML pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var files embed.FS

var pageNames = []string{
	IndexView, ErrorView,
	AuthorListView, AuthorDetailView, AuthorFormView, AuthorDeleteView,
	GenreListView, GenreDetailView, GenreFormView, GenreDeleteView,
	BookListView, BookDetailView, BookFormView, BookDeleteView,
	InstanceListView, InstanceDetailView, InstanceFormView, InstanceDeleteView,
}

var funcs = template.FuncMap{
	// raw marks a value that was HTML-escaped when it was validated and
	// stored, so it is not escaped a second time.
	"raw": func(s string) template.HTML { return template.HTML(s) },
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the page into a buffer first so a template failure never
// leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view %q does not exist", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
