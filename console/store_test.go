package console

import (
	"testing"

	"article-admin/models"
)

func TestPatchByIDUpdatesBothCollections(t *testing.T) {
	s := NewStore()
	all := []models.Record{rec(1, "a", "", false), rec(2, "b", "", false), rec(3, "c", "", false)}
	s.SetAll(all)
	s.SetFiltered(all[1:])

	inAll, inFiltered := s.PatchByID(2, func(r *models.Record) { r.Selected = true })
	if !inAll || !inFiltered {
		t.Fatalf("PatchByID(2) = %v, %v; want true, true", inAll, inFiltered)
	}
	got, _ := s.Get(2)
	if !got.Selected {
		t.Error("all: record 2 not selected")
	}
	for _, r := range s.Filtered() {
		if r.ID == 2 && !r.Selected {
			t.Error("filtered: record 2 not selected")
		}
	}

	inAll, inFiltered = s.PatchByID(1, func(r *models.Record) { r.Selected = true })
	if !inAll || inFiltered {
		t.Errorf("PatchByID(1) = %v, %v; want true, false", inAll, inFiltered)
	}
}

func TestPatchByIDMissingIsNoop(t *testing.T) {
	s := NewStore()
	s.SetAll([]models.Record{rec(1, "a", "", false)})
	called := false
	inAll, inFiltered := s.PatchByID(99, func(r *models.Record) { called = true })
	if inAll || inFiltered || called {
		t.Fatalf("patch of missing id touched the store")
	}
}

func TestStoreCopiesInput(t *testing.T) {
	s := NewStore()
	in := []models.Record{rec(1, "a", "", false)}
	s.SetAll(in)
	in[0].Selected = true
	if got, _ := s.Get(1); got.Selected {
		t.Fatal("store shares backing array with caller")
	}
	out := s.All()
	out[0].ID = 42
	if _, ok := s.Get(1); !ok {
		t.Fatal("All returned the internal slice")
	}
}

func TestReplaceByID(t *testing.T) {
	s := NewStore()
	all := []models.Record{rec(1, "alt", "", false)}
	s.SetAll(all)
	s.SetFiltered(all)
	s.ReplaceByID(rec(1, "neu", "", true))
	got, _ := s.Get(1)
	if got.Title() != "neu" || !got.Selected {
		t.Fatalf("ReplaceByID: got %+v", got)
	}
	if f := s.Filtered(); f[0].Title() != "neu" {
		t.Fatalf("filtered not replaced: %q", f[0].Title())
	}
}
