package render

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"article-admin/console"
	"article-admin/models"
)

// TruncateRunes ist die Länge, ab der lange Textfelder in der Tabelle gekürzt werden.
const TruncateRunes = 120

const doiResolver = "https://doi.org/"

// CellView ist eine Tabellenzelle.
type CellView struct {
	Key      string
	Kind     string // text, link, toggle
	Text     string
	Title    string // voller Wert, wenn Text gekürzt wurde
	Href     string
	Selected bool
	ID       int
}

// DocButton öffnet ein Dokument im Viewer.
type DocButton struct {
	Type           models.DocType
	Label          string
	Href           string
	OriginalHref   string // für den Sprachwechsel im Viewer
	TranslatedHref string
}

// RowView ist eine Tabellenzeile.
type RowView struct {
	ID    int
	Cells []CellView
	Docs  []DocButton
}

// TableView ist die Tabelle einer Seite.
type TableView struct {
	Headers []string
	Rows    []RowView
}

// PageLink ist ein Knopf der Seitennavigation.
type PageLink struct {
	N      int
	Active bool
}

// PaginationView ist die Seitennavigation; Prev und Next sind 0, wenn es keine Seite gibt.
type PaginationView struct {
	Info  string
	Prev  int
	Next  int
	Pages []PageLink
}

// ColumnOption ist eine Checkbox der Spaltenauswahl.
type ColumnOption struct {
	Key     string
	Label   string
	Checked bool
}

// FormField ist ein Eingabefeld im Bearbeitungsdialog.
type FormField struct {
	Key      string
	ID       string
	Label    string
	Value    string
	Max      int
	Len      int
	Over     bool
	Readonly bool
	Multi    bool // textarea statt input
	Number   bool
	Flag     bool
	Checked  bool
}

// FieldGroup fasst Felder im Dialog zusammen.
type FieldGroup struct {
	Name   string
	Fields []FormField
}

// DocSection ist der Dokumentbereich eines Typs im Bearbeitungsdialog.
type DocSection struct {
	Type     models.DocType
	Label    string
	Filename string
	Href     string
}

// EditView ist der Bearbeitungsdialog.
type EditView struct {
	ID        int
	Heading   string
	Loading   bool
	Saving    bool
	Err       string
	Groups    []FieldGroup
	Documents []DocSection
}

// PendingView ist die Bestätigungsabfrage eines Imports mit Duplikaten.
type PendingView struct {
	Filename      string
	TotalInCSV    int
	ExistingCount int
	NewCount      int
	Existing      []ExistingView
}

// ExistingView ist ein bereits vorhandener Artikel in der Bestätigungsabfrage.
type ExistingView struct {
	Title string
	DOI   string
}

// PageView ist alles, was die Seite darstellt.
type PageView struct {
	Loaded      bool
	Total       int
	Query       string
	Selection   string
	PageSize    int
	PageSizes   []int
	Columns     []ColumnOption
	Table       TableView
	Pagination  PaginationView
	Edit        *EditView
	Flash       *console.Flash
	Pending     *PendingView
	ImportBusy  bool
	ExportBusy  bool
	MaxUploadMB int64
}

// DocumentHref ist die Adresse eines Dokuments für den Viewer.
func DocumentHref(filename string) string {
	if filename == "" {
		return ""
	}
	return "/documents/" + url.PathEscape(filename)
}

// DOIHref löst eine DOI auf, sofern sie nicht schon eine URL ist.
func DOIHref(doi string) string {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return ""
	}
	if strings.HasPrefix(doi, "http://") || strings.HasPrefix(doi, "https://") {
		return doi
	}
	return doiResolver + doi
}

// Truncate kürzt s auf n Runen und hängt eine Ellipse an.
func Truncate(s string, n int) (string, bool) {
	if utf8.RuneCountInString(s) <= n {
		return s, false
	}
	r := []rune(s)
	return string(r[:n]) + "…", true
}

// BuildTable projiziert eine Seite und die Spaltenauswahl auf Tabellenzeilen.
func BuildTable(rows []models.Record, cols console.Columns) TableView {
	fields := cols.VisibleFields()
	tv := TableView{Headers: make([]string, 0, len(fields)+1)}
	for _, f := range fields {
		tv.Headers = append(tv.Headers, f.Label)
	}
	tv.Headers = append(tv.Headers, "Acciones")

	for i := range rows {
		r := &rows[i]
		row := RowView{ID: r.ID, Docs: docButtons(r.Documents)}
		for _, f := range fields {
			row.Cells = append(row.Cells, buildCell(r, f))
		}
		tv.Rows = append(tv.Rows, row)
	}
	return tv
}

func buildCell(r *models.Record, f models.FieldSpec) CellView {
	v := r.Value(f.Key)
	c := CellView{Key: f.Key, Kind: "text", ID: r.ID}
	switch f.Kind {
	case models.KindFlag:
		c.Kind = "toggle"
		c.Selected = r.Selected
	case models.KindLink:
		c.Text = v
		if f.Key == "doi" {
			c.Href = DOIHref(v)
		} else {
			c.Href = strings.TrimSpace(v)
		}
		if c.Href != "" {
			c.Kind = "link"
		}
		if f.Key == "enlace" && c.Href != "" {
			c.Text = "Link"
		}
	case models.KindLong:
		text, cut := Truncate(v, TruncateRunes)
		c.Text = text
		if cut {
			c.Title = v
		}
	default:
		c.Text = v
	}
	return c
}

func docButtons(docs []models.Document) []DocButton {
	orig := DocumentHref(models.DocumentFilename(docs, models.DocOriginal))
	trans := DocumentHref(models.DocumentFilename(docs, models.DocTranslated))
	var out []DocButton
	if orig != "" {
		out = append(out, DocButton{Type: models.DocOriginal, Label: "Ver documento original", Href: orig, OriginalHref: orig, TranslatedHref: trans})
	}
	if trans != "" {
		out = append(out, DocButton{Type: models.DocTranslated, Label: "Ver documento en español", Href: trans, OriginalHref: orig, TranslatedHref: trans})
	}
	return out
}

// BuildPagination erzeugt die Seitennavigation.
func BuildPagination(p console.PageResult, window []int) PaginationView {
	first := p.Start + 1
	if p.Total == 0 {
		first = 0
	}
	pv := PaginationView{Info: fmt.Sprintf("Mostrando %d-%d de %d artículos", first, p.End, p.Total)}
	if p.Page > 1 {
		pv.Prev = p.Page - 1
	}
	if p.Page < p.TotalPages {
		pv.Next = p.Page + 1
	}
	for _, n := range window {
		pv.Pages = append(pv.Pages, PageLink{N: n, Active: n == p.Page})
	}
	return pv
}

// BuildEdit erzeugt den Bearbeitungsdialog aus dem Entwurf.
func BuildEdit(e console.EditSession) *EditView {
	if !e.Open() {
		return nil
	}
	ev := &EditView{
		ID:      e.ArticleID,
		Heading: "Editar artículo " + strconv.Itoa(e.ArticleID),
		Loading: e.State == console.EditLoading,
		Saving:  e.State == console.EditSaving,
		Err:     e.Err,
	}
	if ev.Loading {
		return ev
	}

	groupIndex := make(map[string]int)
	for _, f := range models.Fields() {
		if !f.Editable() {
			continue
		}
		v := e.Draft[f.Key]
		ff := FormField{
			Key:      f.Key,
			ID:       f.FormID(),
			Label:    f.Label,
			Value:    v,
			Max:      f.MaxLen,
			Len:      utf8.RuneCountInString(v),
			Readonly: e.IsReadonly(f.Key),
			Multi:    f.Kind == models.KindLong,
			Number:   f.Kind == models.KindNumber,
			Flag:     f.Kind == models.KindFlag,
			Checked:  f.Kind == models.KindFlag && v == "true",
		}
		ff.Over = ff.Max > 0 && ff.Len > ff.Max
		i, ok := groupIndex[f.Group]
		if !ok {
			i = len(ev.Groups)
			groupIndex[f.Group] = i
			ev.Groups = append(ev.Groups, FieldGroup{Name: f.Group})
		}
		ev.Groups[i].Fields = append(ev.Groups[i].Fields, ff)
	}

	for _, t := range []models.DocType{models.DocOriginal, models.DocTranslated} {
		name := models.DocumentFilename(e.Record.Documents, t)
		ev.Documents = append(ev.Documents, DocSection{
			Type:     t,
			Label:    docSectionLabel(t),
			Filename: name,
			Href:     DocumentHref(name),
		})
	}
	return ev
}

func docSectionLabel(t models.DocType) string {
	if t == models.DocTranslated {
		return "Documento traducido (español)"
	}
	return "Documento original"
}

// BuildPage setzt die Seite aus einem Zustands-Snapshot zusammen.
func BuildPage(s console.Snapshot, maxUploadMB int64) PageView {
	pv := PageView{
		Loaded:      s.Loaded,
		Total:       s.AllCount,
		Query:       s.Filter.Query,
		Selection:   s.Filter.Selection.FormValue(),
		PageSize:    s.Page.PageSize,
		PageSizes:   console.PageSizes,
		Table:       BuildTable(s.Page.Items, s.Columns),
		Pagination:  BuildPagination(s.Page, s.Window),
		Edit:        BuildEdit(s.Edit),
		Flash:       s.Flash,
		ImportBusy:  s.Busy[console.BusyImport],
		ExportBusy:  s.Busy[console.BusyExport],
		MaxUploadMB: maxUploadMB,
	}
	for _, f := range models.Fields() {
		pv.Columns = append(pv.Columns, ColumnOption{Key: f.Key, Label: f.Label, Checked: s.Columns.Visible(f.Key)})
	}
	if p := s.Pending; p != nil {
		pending := &PendingView{
			Filename:      p.Filename,
			TotalInCSV:    p.Check.TotalInCSV,
			ExistingCount: p.Check.ExistingCount,
			NewCount:      p.Check.NewCount,
		}
		for _, a := range p.Check.ExistingArticles {
			pending.Existing = append(pending.Existing, ExistingView{Title: a.DisplayTitle(), DOI: a.DOI})
		}
		pv.Pending = pending
	}
	return pv
}
