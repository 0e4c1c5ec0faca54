package models

import (
	"encoding/json"
	"testing"
)

func TestFieldCatalogue(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Fields() {
		if seen[f.Key] {
			t.Errorf("duplicate key %q", f.Key)
		}
		seen[f.Key] = true
		if f.Label == "" {
			t.Errorf("%s: empty label", f.Key)
		}
	}
	if len(seen) != 32 {
		t.Errorf("catalogue has %d fields, want 32", len(seen))
	}
	if f, _ := FieldByKey("id"); f.Editable() {
		t.Error("id must not be editable")
	}
	if _, ok := FieldByKey("acciones"); ok {
		t.Error("actions is not a record field")
	}
}

func TestRecordValueFromJSON(t *testing.T) {
	raw := `{"id": 12, "autor": "Ana", "anio": 2020, "titulo_original": null,
		"titulo_espanol": "Título", "seleccionado": true,
		"documentos": [{"id": 1, "articulo_id": 12, "nombre_archivo_original": "a.pdf", "nombre_archivo_traducido": null}]}`
	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatal(err)
	}
	cases := map[string]string{
		"id":              "12",
		"autor":           "Ana",
		"anio":            "2020",
		"titulo_original": "",
		"seleccionado":    "true",
		"unbekannt":       "",
	}
	for key, want := range cases {
		if got := r.Value(key); got != want {
			t.Errorf("Value(%q) = %q, want %q", key, got, want)
		}
	}
	if r.Title() != "Título" {
		t.Errorf("Title() = %q", r.Title())
	}
	if DocumentFilename(r.Documents, DocOriginal) != "a.pdf" {
		t.Error("document not decoded")
	}
}
