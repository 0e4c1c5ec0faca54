package models

// Record repräsentiert einen Artikel-Datensatz, wie ihn das Backend unter /api/articles liefert.
// Alle Textfelder sind nullable; nur ID und Selected sind immer gesetzt.
type Record struct {
	ID int `json:"id"`

	// Bibliographische Daten (meist aus dem Scopus-Import)
	Author          *string `json:"autor"`
	JournalName     *string `json:"nombre_revista"`
	JournalQuartile *string `json:"quartil_revista"`
	Year            *int    `json:"anio"`
	DOI             *string `json:"doi"`
	TitleOriginal   *string `json:"titulo_original"`
	TitleTranslated *string `json:"titulo_espanol"`
	Database        *string `json:"base_datos"`
	Abstract        *string `json:"abstract"`
	Summary         *string `json:"resumen"`
	AuthorKeywords  *string `json:"keywords_autor"`
	IndexedKeywords *string `json:"keywords_indexed"`

	// Inhaltliche Analyse
	Problem             *string `json:"problema_articulo"`
	StatisticalData     *string `json:"datos_estadisticos"`
	ResearchQuestion    *string `json:"pregunta_investigacion"`
	ObjectiveOriginal   *string `json:"objetivo_original"`
	ObjectiveTranslated *string `json:"objetivo_espanol"`
	ObjectiveRewritten  *string `json:"objetivo_reescrito"`
	Justification       *string `json:"justificacion"`
	Hypothesis          *string `json:"hipotesis"`
	ResearchType        *string `json:"tipo_investigacion"`
	PriorStudies        *string `json:"estudios_previos"`
	PopulationSample    *string `json:"poblacion_muestra_datos"`
	DataCollection      *string `json:"recoleccion_datos"`
	Results             *string `json:"resultados"`
	Conclusions         *string `json:"conclusiones"`
	Discussion          *string `json:"discusion"`
	FutureWork          *string `json:"trabajos_futuros"`

	// Verweise
	Link *string `json:"enlace"`
	EID  *string `json:"eid"`

	Selected  bool       `json:"seleccionado"`
	Documents []Document `json:"documentos"`
}

// Value liefert den Anzeigewert eines Feldes anhand seines Backend-Schlüssels.
// Unbekannte Schlüssel und NULL-Werte ergeben einen leeren String.
func (r *Record) Value(key string) string {
	spec, ok := FieldByKey(key)
	if !ok || spec.get == nil {
		return ""
	}
	return spec.get(r)
}

// Title gibt den Originaltitel zurück, ersatzweise den übersetzten Titel.
func (r *Record) Title() string {
	if t := deref(r.TitleOriginal); t != "" {
		return t
	}
	return deref(r.TitleTranslated)
}

// ToggleResult ist die Antwort von PUT /api/articles/{id}/toggle-selection.
type ToggleResult struct {
	Selected *bool  `json:"seleccionado"`
	Error    string `json:"error"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
