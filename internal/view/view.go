package view

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Page is the data every rendered document receives. Escaping happens in the
// templates via html/template's contextual auto-escaping; view models carry
// raw strings only.
type Page struct {
	Title   string
	Session string // active username, empty when signed out
	Flash   string // one-shot notification, empty when none pending
	View    string // which main region to render
	Data    any
}

// Renderer renders pages from the embedded template set.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl}, nil
}

// Render writes the full document for page to w.
func (r *Renderer) Render(w io.Writer, page Page) error {
	return r.tpl.ExecuteTemplate(w, "layout", page)
}
