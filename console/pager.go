package console

import "article-admin/models"

// DefaultPageSize gilt, wenn keine gültige Seitengröße gesetzt ist.
const DefaultPageSize = 25

// PageSizes sind die im Auswahlfeld angebotenen Seitengrößen.
var PageSizes = []int{10, 25, 50, 100}

// windowRadius ergibt ein Fenster von höchstens fünf Seitenknöpfen.
const windowRadius = 2

// PageResult ist ein Ausschnitt der gefilterten Sicht.
type PageResult struct {
	Items      []models.Record
	Page       int // 1-basiert
	PageSize   int
	Total      int
	Start      int // Offset des ersten Eintrags
	End        int // Offset hinter dem letzten Eintrag
	TotalPages int // mindestens 1
}

// Empty meldet, ob auf der Seite nichts anzuzeigen ist.
func (p PageResult) Empty() bool {
	return len(p.Items) == 0
}

// Paginate schneidet Seite page (1-basiert) aus records. Zu große Seitenzahlen ergeben eine leere
// Seite, keinen Fehler.
func Paginate(records []models.Record, page, size int) PageResult {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	n := len(records)
	// Vor dem Multiplizieren begrenzen, sonst läuft (page-1)*size bei riesigen Seitenzahlen über.
	start := n
	if page <= TotalPages(n, size) {
		start = (page - 1) * size
	}
	if start > n {
		start = n
	}
	end := start + size
	if end > n {
		end = n
	}
	return PageResult{
		Items:      records[start:end:end],
		Page:       page,
		PageSize:   size,
		Total:      n,
		Start:      start,
		End:        end,
		TotalPages: TotalPages(n, size),
	}
}

// TotalPages berechnet ceil(n/size); null Einträge zählen als eine leere Seite.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (n + size - 1) / size
	if pages == 0 {
		return 1
	}
	return pages
}

// PageWindow liefert die anzuzeigenden Seitennummern um die aktuelle Seite.
func PageWindow(page, totalPages int) []int {
	lo := page - windowRadius
	if lo < 1 {
		lo = 1
	}
	hi := page + windowRadius
	if hi > totalPages {
		hi = totalPages
	}
	var out []int
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
