// Package render erzeugt das HTML der Konsole aus einem Zustands-Snapshot.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"

	"article-admin/console"
	"article-admin/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var funcMap = template.FuncMap{
	"add": func(a, b int) int { return a + b },
}

// Renderer hält die geparsten Templates.
type Renderer struct {
	tmpl        *template.Template
	maxUploadMB int64
}

// New parst die eingebetteten Templates.
func New(maxUploadMB int64) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, maxUploadMB: maxUploadMB}, nil
}

// Static gibt CSS und JavaScript der Seite zurück.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page schreibt die komplette Seite für einen Snapshot.
func (r *Renderer) Page(w io.Writer, s console.Snapshot) error {
	return r.tmpl.ExecuteTemplate(w, "page", BuildPage(s, r.maxUploadMB))
}

// Table erzeugt nur die Tabelle einer Seite.
func (r *Renderer) Table(rows []models.Record, cols console.Columns) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "table", BuildTable(rows, cols)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
