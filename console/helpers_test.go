package console

import "article-admin/models"

func strPtr(s string) *string { return &s }

func rec(id int, title, author string, selected bool) models.Record {
	r := models.Record{ID: id, Selected: selected}
	if title != "" {
		r.TitleOriginal = strPtr(title)
	}
	if author != "" {
		r.Author = strPtr(author)
	}
	return r
}

func ids(records []models.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
