package console

import (
	"testing"
	"time"

	"article-admin/models"
)

func TestSessionFilterResetsPage(t *testing.T) {
	s := NewSession("s", 10)
	s.Reload(makeRecords(30))
	s.GoToPage(3)
	if got := s.Snapshot().Page.Page; got != 3 {
		t.Fatalf("page = %d, want 3", got)
	}

	s.SetFilter(Filter{Selection: SelectUnselected})
	snap := s.Snapshot()
	if snap.Page.Page != 1 {
		t.Fatalf("page after filter = %d, want 1", snap.Page.Page)
	}
	if snap.Page.Total != 30 || snap.AllCount != 30 {
		t.Fatalf("total = %d/%d", snap.Page.Total, snap.AllCount)
	}

	s.GoToPage(2)
	s.SetPageSize(25)
	if got := s.CurrentPage(); got != 1 {
		t.Fatalf("page after size change = %d, want 1", got)
	}
}

func TestSessionHugePageRendersEmpty(t *testing.T) {
	s := NewSession("s", 25)
	s.Reload(makeRecords(30))
	s.GoToPage(368934881474191034)
	for i := 0; i < 2; i++ {
		snap := s.Snapshot()
		if !snap.Page.Empty() || snap.Page.Total != 30 {
			t.Fatalf("snapshot %d: %d items of %d, want empty page", i, len(snap.Page.Items), snap.Page.Total)
		}
	}
}

func TestSessionApplySelectionKeepsPage(t *testing.T) {
	s := NewSession("s", 10)
	s.Reload(makeRecords(30))
	s.GoToPage(2)
	s.ApplySelection(15, true)

	snap := s.Snapshot()
	if snap.Page.Page != 2 {
		t.Fatalf("page = %d, want 2", snap.Page.Page)
	}
	r, _ := s.Store().Get(15)
	if !r.Selected {
		t.Fatal("all collection not updated")
	}
	for _, item := range snap.Page.Items {
		if item.ID == 15 && !item.Selected {
			t.Fatal("filtered collection not updated")
		}
	}
}

func TestSessionReloadReprojects(t *testing.T) {
	s := NewSession("s", 10)
	s.SetFilter(Filter{Query: "keep"})
	s.Reload([]models.Record{rec(1, "keep me", "", false), rec(2, "drop", "", false)})
	if got := ids(s.Store().Filtered()); !equalInts(got, []int{1}) {
		t.Fatalf("filtered after reload = %v", got)
	}
	if !s.Loaded() {
		t.Fatal("session not marked loaded")
	}
}

func TestSnapshotConsumesFlash(t *testing.T) {
	s := NewSession("s", 10)
	s.Flash(FlashSuccess, "ok")
	if f := s.Snapshot().Flash; f == nil || f.Text != "ok" {
		t.Fatalf("flash = %+v", f)
	}
	if f := s.Snapshot().Flash; f != nil {
		t.Fatalf("flash shown twice: %+v", f)
	}
}

func TestSnapshotPendingHidesData(t *testing.T) {
	s := NewSession("s", 10)
	s.SetPending(&PendingImport{Filename: "a.csv", Data: []byte("x"), Check: models.ImportCheck{Status: models.StatusDuplicatesFound}})
	snap := s.Snapshot()
	if snap.Pending == nil || snap.Pending.Filename != "a.csv" {
		t.Fatalf("pending = %+v", snap.Pending)
	}
	if p := s.TakePending(); p == nil || string(p.Data) != "x" {
		t.Fatal("pending data lost")
	}
	if s.TakePending() != nil {
		t.Fatal("pending not cleared")
	}
}

func TestRegistrySweep(t *testing.T) {
	r := NewRegistry(25)
	old := r.Create()
	fresh := r.Create()
	now := time.Now()
	old.Touch(now.Add(-2 * time.Hour))
	fresh.Touch(now)

	if n := r.Sweep(now, time.Hour); n != 1 {
		t.Fatalf("Sweep removed %d, want 1", n)
	}
	if _, ok := r.Get(old.ID); ok {
		t.Fatal("idle session still registered")
	}
	if _, ok := r.Get(fresh.ID); !ok {
		t.Fatal("active session removed")
	}
}
