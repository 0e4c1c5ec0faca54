package models

// FieldMetadata ist die Antwort von GET /api/field-metadata.
type FieldMetadata struct {
	ReadonlyFields []string     `json:"readonly_fields"`
	Columns        []ColumnMeta `json:"columns"`
}

// ColumnMeta beschreibt eine Spalte laut Tabelle metadata_columnas des Backends.
type ColumnMeta struct {
	Number       int     `json:"nro_columna"`
	Column       string  `json:"columna"`
	Explanation  *string `json:"explicacion"`
	Format       *string `json:"formato"`
	FixedValue   *string `json:"dato_fijo"`
	Language     *string `json:"idioma_deseado_redactar"`
	BackupSource *string `json:"id_from_backup"`
	Max          *int    `json:"max"`
}

// Imported meldet, ob die Spalte aus einer bibliographischen Quelle stammt.
func (c ColumnMeta) Imported() bool {
	return deref(c.BackupSource) != ""
}

// ReadonlySet wandelt die Liste in eine Menge um.
func (m FieldMetadata) ReadonlySet() map[string]bool {
	set := make(map[string]bool, len(m.ReadonlyFields))
	for _, f := range m.ReadonlyFields {
		set[f] = true
	}
	return set
}
