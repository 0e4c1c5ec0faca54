package models

import "testing"

func name(s string) *string { return &s }

func TestDocumentByType(t *testing.T) {
	both := Document{ID: 1, OriginalFilename: name("o1.pdf"), TranslatedFilename: name("t1.pdf")}
	origOnly := Document{ID: 2, OriginalFilename: name("o2.pdf")}
	transOnly := Document{ID: 3, TranslatedFilename: name("t3.pdf")}
	empty := Document{ID: 4, OriginalFilename: name("")}

	tests := []struct {
		name   string
		docs   []Document
		typ    DocType
		wantID int
		found  bool
	}{
		{"none", nil, DocOriginal, 0, false},
		{"empty filename", []Document{empty}, DocOriginal, 0, false},
		{"single", []Document{origOnly}, DocOriginal, 2, true},
		{"original prefers pure original", []Document{both, origOnly}, DocOriginal, 2, true},
		{"translated prefers combined", []Document{transOnly, both}, DocTranslated, 1, true},
		{"translated single", []Document{origOnly, transOnly}, DocTranslated, 3, true},
		{"fallback first", []Document{both, {ID: 5, OriginalFilename: name("o5.pdf"), TranslatedFilename: name("t5.pdf")}}, DocOriginal, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := DocumentByType(tt.docs, tt.typ)
			if ok != tt.found || d.ID != tt.wantID {
				t.Fatalf("DocumentByType = (%d, %v), want (%d, %v)", d.ID, ok, tt.wantID, tt.found)
			}
		})
	}
}

func TestDocumentFilename(t *testing.T) {
	docs := []Document{
		{ID: 1, ArticleID: 9, OriginalFilename: name("paper.pdf")},
		{ID: 2, ArticleID: 9, TranslatedFilename: name("paper_es.pdf")},
	}
	if got := DocumentFilename(docs, DocOriginal); got != "paper.pdf" {
		t.Errorf("original = %q", got)
	}
	if got := DocumentFilename(docs, DocTranslated); got != "paper_es.pdf" {
		t.Errorf("translated = %q", got)
	}
	if got := DocumentFilename(nil, DocTranslated); got != "" {
		t.Errorf("no documents = %q", got)
	}
}

func TestParseDocType(t *testing.T) {
	for _, s := range []string{"original", "translated"} {
		if _, err := ParseDocType(s); err != nil {
			t.Errorf("ParseDocType(%q): %v", s, err)
		}
	}
	if _, err := ParseDocType("spanish"); err == nil {
		t.Error("unknown doc type accepted")
	}
}
