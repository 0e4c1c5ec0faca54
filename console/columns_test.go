package console

import "testing"

func TestDefaultColumns(t *testing.T) {
	c := DefaultColumns()
	for _, k := range []string{"id", "titulo_original", "enlace", "seleccionado"} {
		if !c.Visible(k) {
			t.Errorf("%s should be visible by default", k)
		}
	}
	if c.Visible("abstract") {
		t.Error("abstract should be hidden by default")
	}
	if c.Visible("acciones") {
		t.Error("actions column is not part of the map")
	}
}

func TestColumnsFromSelectionReplaces(t *testing.T) {
	c := ColumnsFromSelection([]string{"autor", "doi", "unknown"})
	if !c.Visible("autor") || !c.Visible("doi") {
		t.Fatal("checked columns not visible")
	}
	if c.Visible("id") || c.Visible("titulo_original") {
		t.Fatal("selection must replace the map wholesale")
	}
	if _, ok := c["unknown"]; ok {
		t.Fatal("unknown key stored")
	}
	fields := c.VisibleFields()
	if len(fields) != 2 || fields[0].Key != "autor" || fields[1].Key != "doi" {
		t.Fatalf("VisibleFields = %v", fields)
	}
}
