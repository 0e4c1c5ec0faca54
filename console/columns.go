package console

import "article-admin/models"

// Columns ordnet jedem Feld seine Sichtbarkeit in der Tabelle zu. Die Aktionsspalte ist
// immer sichtbar und nicht Teil der Abbildung.
type Columns map[string]bool

// DefaultColumns ist die Spaltenauswahl nach jedem Laden.
func DefaultColumns() Columns {
	c := make(Columns)
	for _, f := range models.Fields() {
		c[f.Key] = f.DefaultVisible
	}
	return c
}

// ColumnsFromSelection baut eine vollständig neue Auswahl aus den angehakten Feldern.
// Unbekannte Schlüssel werden ignoriert.
func ColumnsFromSelection(keys []string) Columns {
	checked := make(map[string]bool, len(keys))
	for _, k := range keys {
		checked[k] = true
	}
	c := make(Columns)
	for _, f := range models.Fields() {
		c[f.Key] = checked[f.Key]
	}
	return c
}

// Visible meldet, ob die Spalte angezeigt wird.
func (c Columns) Visible(key string) bool {
	return c[key]
}

// VisibleFields gibt die sichtbaren Felder in Tabellenreihenfolge zurück.
func (c Columns) VisibleFields() []models.FieldSpec {
	var out []models.FieldSpec
	for _, f := range models.Fields() {
		if c[f.Key] {
			out = append(out, f)
		}
	}
	return out
}

// Clone kopiert die Abbildung.
func (c Columns) Clone() Columns {
	out := make(Columns, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
