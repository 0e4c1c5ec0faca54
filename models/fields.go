package models

import "strconv"

// FieldKind bestimmt, wie ein Feld in Tabelle und Formular dargestellt wird.
type FieldKind int

const (
	KindText   FieldKind = iota // kurzer Text, ungekürzt
	KindLong                    // langer Text, in der Tabelle gekürzt
	KindLink                    // Hyperlink, nur wenn nicht leer
	KindNumber                  // Ganzzahl (anio)
	KindFlag                    // seleccionado
	KindID                      // Primärschlüssel, nie editierbar
)

// FieldSpec beschreibt ein Feld des Artikel-Datensatzes.
type FieldSpec struct {
	Key            string
	Label          string
	Group          string
	MaxLen         int // 0 = keine Begrenzung
	Kind           FieldKind
	DefaultVisible bool

	get func(*Record) string
}

// FormID ist die ID des Formularfelds im Bearbeitungsdialog.
func (f FieldSpec) FormID() string {
	return "edit_" + f.Key
}

// Editable meldet, ob das Feld grundsätzlich im Formular bearbeitet werden kann.
// Ob es zusätzlich schreibgeschützt ist, entscheiden die Metadaten des Backends.
func (f FieldSpec) Editable() bool {
	return f.Kind != KindID
}

const (
	groupBasic    = "Información básica"
	groupJournal  = "Revista"
	groupTitles   = "Títulos"
	groupAbstract = "Resúmenes"
	groupKeywords = "Palabras clave"
	groupAnalysis = "Análisis"
	groupLinks    = "Enlaces"
)

func str(get func(*Record) *string) func(*Record) string {
	return func(r *Record) string { return deref(get(r)) }
}

// fields ist die Spaltenreihenfolge der Tabelle.
var fields = []FieldSpec{
	{Key: "id", Label: "ID", Group: groupBasic, Kind: KindID, DefaultVisible: true,
		get: func(r *Record) string { return strconv.Itoa(r.ID) }},
	{Key: "titulo_original", Label: "Título Original", Group: groupTitles, MaxLen: 4000, Kind: KindLong, DefaultVisible: true,
		get: str(func(r *Record) *string { return r.TitleOriginal })},
	{Key: "titulo_espanol", Label: "Título Español", Group: groupTitles, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.TitleTranslated })},
	{Key: "autor", Label: "Autor", Group: groupBasic, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.Author })},
	{Key: "anio", Label: "Año", Group: groupBasic, Kind: KindNumber,
		get: func(r *Record) string {
			if r.Year == nil {
				return ""
			}
			return strconv.Itoa(*r.Year)
		}},
	{Key: "nombre_revista", Label: "Revista", Group: groupJournal, MaxLen: 500, Kind: KindLong,
		get: str(func(r *Record) *string { return r.JournalName })},
	{Key: "quartil_revista", Label: "Quartil", Group: groupJournal, MaxLen: 50, Kind: KindText,
		get: str(func(r *Record) *string { return r.JournalQuartile })},
	{Key: "doi", Label: "DOI", Group: groupBasic, MaxLen: 300, Kind: KindLink,
		get: str(func(r *Record) *string { return r.DOI })},
	{Key: "base_datos", Label: "Base de Datos", Group: groupBasic, MaxLen: 100, Kind: KindText,
		get: str(func(r *Record) *string { return r.Database })},
	{Key: "abstract", Label: "Abstract", Group: groupAbstract, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.Abstract })},
	{Key: "resumen", Label: "Resumen", Group: groupAbstract, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.Summary })},
	{Key: "keywords_autor", Label: "Keywords Autor", Group: groupKeywords, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.AuthorKeywords })},
	{Key: "keywords_indexed", Label: "Keywords Indexados", Group: groupKeywords, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.IndexedKeywords })},
	{Key: "problema_articulo", Label: "Problema", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.Problem })},
	{Key: "datos_estadisticos", Label: "Datos Estadísticos", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.StatisticalData })},
	{Key: "pregunta_investigacion", Label: "Pregunta Investigación", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.ResearchQuestion })},
	{Key: "objetivo_original", Label: "Objetivo Original", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.ObjectiveOriginal })},
	{Key: "objetivo_espanol", Label: "Objetivo Español", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.ObjectiveTranslated })},
	{Key: "objetivo_reescrito", Label: "Objetivo Reescrito", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.ObjectiveRewritten })},
	{Key: "justificacion", Label: "Justificación", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.Justification })},
	{Key: "hipotesis", Label: "Hipótesis", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.Hypothesis })},
	{Key: "tipo_investigacion", Label: "Tipo Investigación", Group: groupAnalysis, MaxLen: 500, Kind: KindLong,
		get: str(func(r *Record) *string { return r.ResearchType })},
	{Key: "estudios_previos", Label: "Estudios Previos", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.PriorStudies })},
	{Key: "poblacion_muestra_datos", Label: "Población/Muestra", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.PopulationSample })},
	{Key: "recoleccion_datos", Label: "Recolección Datos", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.DataCollection })},
	{Key: "resultados", Label: "Resultados", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.Results })},
	{Key: "conclusiones", Label: "Conclusiones", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.Conclusions })},
	{Key: "discusion", Label: "Discusión", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.Discussion })},
	{Key: "trabajos_futuros", Label: "Trabajos Futuros", Group: groupAnalysis, MaxLen: 4000, Kind: KindLong,
		get: str(func(r *Record) *string { return r.FutureWork })},
	{Key: "enlace", Label: "Enlace", Group: groupLinks, MaxLen: 500, Kind: KindLink, DefaultVisible: true,
		get: str(func(r *Record) *string { return r.Link })},
	{Key: "eid", Label: "EID", Group: groupLinks, MaxLen: 100, Kind: KindText,
		get: str(func(r *Record) *string { return r.EID })},
	{Key: "seleccionado", Label: "Sel.", Group: groupBasic, Kind: KindFlag, DefaultVisible: true,
		get: func(r *Record) string { return strconv.FormatBool(r.Selected) }},
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fields))
	for i, f := range fields {
		m[f.Key] = i
	}
	return m
}()

// Fields gibt den Feldkatalog in Tabellenreihenfolge zurück.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fields))
	copy(out, fields)
	return out
}

// FieldByKey sucht ein Feld anhand des Backend-Schlüssels.
func FieldByKey(key string) (FieldSpec, bool) {
	i, ok := fieldIndex[key]
	if !ok {
		return FieldSpec{}, false
	}
	return fields[i], true
}
