package models

// Status-Werte der CSV-Endpunkte.
const (
	StatusDuplicatesFound = "duplicates_found"
	StatusReadyToImport   = "ready_to_import"
	StatusSuccess         = "success"
)

// ImportCheck ist die Antwort von POST /api/check-csv.
type ImportCheck struct {
	Status           string            `json:"status"`
	TotalInCSV       int               `json:"total_in_csv"`
	ExistingCount    int               `json:"existing_count"`
	NewCount         int               `json:"new_count"`
	ExistingArticles []ExistingArticle `json:"existing_articles"`
	Message          string            `json:"message,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// HasDuplicates meldet, ob eine Bestätigung durch den Benutzer nötig ist.
func (c ImportCheck) HasDuplicates() bool {
	return c.Status == StatusDuplicatesFound
}

// ExistingArticle ist ein bereits vorhandener Artikel, der im CSV erneut vorkommt.
type ExistingArticle struct {
	ID            *int   `json:"id,omitempty"`
	Title         string `json:"titulo,omitempty"`
	TitleOriginal string `json:"titulo_original,omitempty"`
	DOI           string `json:"doi"`
}

// DisplayTitle berücksichtigt beide Antwortvarianten des Backends.
func (a ExistingArticle) DisplayTitle() string {
	if a.Title != "" {
		return a.Title
	}
	if a.TitleOriginal != "" {
		return a.TitleOriginal
	}
	return "Sin título"
}

// ImportResult ist die Antwort von POST /api/import-csv.
type ImportResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResult ist die generische Antwort der Dokument- und Update-Endpunkte.
type MessageResult struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
