package console

import (
	"strings"

	"article-admin/models"
)

// Selection ist der dreiwertige Auswahlfilter.
type Selection int

const (
	SelectAny Selection = iota
	SelectSelected
	SelectUnselected
)

// Formularwerte des Auswahlfilters.
const (
	selectionSelectedValue   = "SEL:V"
	selectionUnselectedValue = "SEL:F"
)

// ParseSelection liest den Wert des Auswahlfilters; Unbekanntes bedeutet "alle".
func ParseSelection(v string) Selection {
	switch v {
	case selectionSelectedValue:
		return SelectSelected
	case selectionUnselectedValue:
		return SelectUnselected
	}
	return SelectAny
}

// FormValue ist die Umkehrung von ParseSelection.
func (s Selection) FormValue() string {
	switch s {
	case SelectSelected:
		return selectionSelectedValue
	case SelectUnselected:
		return selectionUnselectedValue
	}
	return ""
}

// Filter kombiniert Suchtext und Auswahlfilter (logisches UND).
type Filter struct {
	Query     string
	Selection Selection
}

// Matches prüft einen Datensatz gegen den Filter. Der Suchtext wird ohne Beachtung der
// Groß-/Kleinschreibung in Originaltitel, übersetztem Titel und Autor gesucht.
func (f Filter) Matches(r *models.Record) bool {
	switch f.Selection {
	case SelectSelected:
		if !r.Selected {
			return false
		}
	case SelectUnselected:
		if r.Selected {
			return false
		}
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	for _, v := range []*string{r.TitleOriginal, r.TitleTranslated, r.Author} {
		if v != nil && strings.Contains(strings.ToLower(*v), q) {
			return true
		}
	}
	return false
}

// Project leitet die gefilterte Sicht ab. all wird nicht verändert.
func Project(all []models.Record, f Filter) []models.Record {
	out := make([]models.Record, 0, len(all))
	for i := range all {
		if f.Matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out
}
