package console

import (
	"errors"
	"net/url"
	"testing"

	"article-admin/models"
)

func populated(t *testing.T, r models.Record, readonly map[string]bool) *EditSession {
	t.Helper()
	var e EditSession
	if err := e.Begin(r.ID); err != nil {
		t.Fatal(err)
	}
	if err := e.Populate(r, readonly); err != nil {
		t.Fatal(err)
	}
	return &e
}

func TestBuildPatchSkipsReadonly(t *testing.T) {
	r := rec(7, "Titel", "Autor", false)
	r.DOI = strPtr("10.1/x")
	readonly := map[string]bool{"doi": true, "autor": true}
	e := populated(t, r, readonly)

	form := url.Values{}
	form.Set("edit_doi", "10.2/changed")
	form.Set("edit_titulo_original", "Neu")
	form.Set("edit_anio", "2021")
	form.Set("edit_seleccionado", "on")

	patch, err := e.BeginSave(DraftFromForm(form))
	if err != nil {
		t.Fatal(err)
	}
	for key := range readonly {
		if _, ok := patch[key]; ok {
			t.Errorf("patch contains readonly key %q", key)
		}
	}
	if _, ok := patch["id"]; ok {
		t.Error("patch contains id")
	}
	if patch["titulo_original"] != "Neu" {
		t.Errorf("titulo_original = %v", patch["titulo_original"])
	}
	if patch["anio"] != 2021 {
		t.Errorf("anio = %#v, want 2021", patch["anio"])
	}
	if patch["seleccionado"] != true {
		t.Errorf("seleccionado = %v", patch["seleccionado"])
	}
	if e.State != EditSaving {
		t.Errorf("state = %s, want saving", e.State)
	}
}

func TestBuildPatchYear(t *testing.T) {
	patch, err := BuildPatch(map[string]string{"anio": "  "}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := patch["anio"]; !ok || v != nil {
		t.Fatalf("empty year = %#v, want explicit nil", v)
	}
	if _, err := BuildPatch(map[string]string{"anio": "19x9"}, nil); err == nil {
		t.Fatal("invalid year accepted")
	}
}

func TestDraftFromFormCheckbox(t *testing.T) {
	draft := DraftFromForm(url.Values{"edit_resumen": {"x"}})
	if draft["seleccionado"] != "false" {
		t.Errorf("missing checkbox = %q, want false", draft["seleccionado"])
	}
	if _, ok := draft["abstract"]; ok {
		t.Error("absent text field must not be part of the draft")
	}
	if draft["resumen"] != "x" {
		t.Errorf("resumen = %q", draft["resumen"])
	}
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	e := populated(t, rec(3, "alt", "", false), nil)
	if _, err := e.BeginSave(map[string]string{"titulo_original": "entwurf"}); err != nil {
		t.Fatal(err)
	}
	e.SaveFailed("HTTP 500")
	if e.State != EditPopulated {
		t.Fatalf("state = %s, want populated", e.State)
	}
	if e.Draft["titulo_original"] != "entwurf" {
		t.Fatalf("draft lost: %q", e.Draft["titulo_original"])
	}
	if e.Err != "HTTP 500" {
		t.Fatalf("Err = %q", e.Err)
	}
}

func TestEditTransitions(t *testing.T) {
	var e EditSession
	if err := e.Populate(rec(1, "", "", false), nil); !errors.Is(err, ErrEditState) {
		t.Fatalf("populate while closed: err = %v", err)
	}
	if err := e.Begin(1); err != nil {
		t.Fatal(err)
	}
	if err := e.Populate(rec(2, "", "", false), nil); !errors.Is(err, ErrEditState) {
		t.Fatal("populate with a different id accepted")
	}
	e.LoadFailed()
	if e.Open() {
		t.Fatal("dialog still open after load failure")
	}

	p := populated(t, rec(1, "", "", false), nil)
	if _, err := p.BeginSave(nil); err != nil {
		t.Fatal(err)
	}
	if err := p.Begin(2); !errors.Is(err, ErrEditState) {
		t.Fatal("begin while saving accepted")
	}
	p.SaveSucceeded()
	if p.Open() {
		t.Fatal("dialog open after successful save")
	}
}

func TestRefreshKeepsDraft(t *testing.T) {
	e := populated(t, rec(4, "alt", "", false), nil)
	e.StashDraft(map[string]string{"titulo_original": "entwurf"})

	fresh := rec(4, "alt", "", false)
	name := "a.pdf"
	fresh.Documents = []models.Document{{ID: 1, ArticleID: 4, OriginalFilename: &name}}
	e.Refresh(fresh)

	if len(e.Record.Documents) != 1 {
		t.Fatal("record not refreshed")
	}
	if e.Draft["titulo_original"] != "entwurf" {
		t.Fatal("refresh overwrote the draft")
	}
	e.Refresh(rec(5, "other", "", false))
	if e.Record.ID != 4 {
		t.Fatal("refresh of another article applied")
	}
}
