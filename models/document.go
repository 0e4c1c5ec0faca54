package models

import "fmt"

// DocType unterscheidet das Originaldokument von der übersetzten Fassung.
type DocType string

const (
	DocOriginal   DocType = "original"
	DocTranslated DocType = "translated"
)

// ParseDocType prüft einen doc_type-Wert aus Formular oder URL.
func ParseDocType(s string) (DocType, error) {
	switch DocType(s) {
	case DocOriginal, DocTranslated:
		return DocType(s), nil
	}
	return "", fmt.Errorf("invalid document type %q", s)
}

// Label gibt die Beschriftung für die Oberfläche zurück.
func (t DocType) Label() string {
	if t == DocTranslated {
		return "traducido"
	}
	return "original"
}

// Document ist ein Anhang-Deskriptor. Ein Deskriptor kann einen oder beide Dateinamen tragen;
// ebenso können zwei Deskriptoren (je Sprache einer) zum selben Artikel existieren.
type Document struct {
	ID                 int     `json:"id"`
	ArticleID          int     `json:"articulo_id"`
	OriginalFilename   *string `json:"nombre_archivo_original"`
	TranslatedFilename *string `json:"nombre_archivo_traducido"`
}

// Has meldet, ob der Deskriptor einen Dateinamen für den Typ trägt.
func (d Document) Has(t DocType) bool {
	return d.Filename(t) != ""
}

// Filename liefert den Dateinamen für den Typ oder "".
func (d Document) Filename(t DocType) string {
	if t == DocTranslated {
		return deref(d.TranslatedFilename)
	}
	return deref(d.OriginalFilename)
}

// DocumentByType sucht den Deskriptor für einen Dokumenttyp.
// Bei mehreren Kandidaten gewinnt für "original" derjenige ohne übersetzten Dateinamen,
// für "translated" derjenige, der zusätzlich ein Original trägt. Sonst der erste Kandidat.
func DocumentByType(docs []Document, t DocType) (Document, bool) {
	var candidates []Document
	for _, d := range docs {
		if d.Has(t) {
			candidates = append(candidates, d)
		}
	}
	switch len(candidates) {
	case 0:
		return Document{}, false
	case 1:
		return candidates[0], true
	}
	for _, d := range candidates {
		if t == DocOriginal && !d.Has(DocTranslated) {
			return d, true
		}
		if t == DocTranslated && d.Has(DocOriginal) {
			return d, true
		}
	}
	return candidates[0], true
}

// DocumentFilename ist eine Abkürzung für DocumentByType(...).Filename(t).
func DocumentFilename(docs []Document, t DocType) string {
	d, ok := DocumentByType(docs, t)
	if !ok {
		return ""
	}
	return d.Filename(t)
}
