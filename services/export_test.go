package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"article-admin/console"
	"article-admin/providers"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 5, 2, 0, time.Local)
	if got := ExportFilename(providers.ExportAll, now); got != "articulos-todos-2024-03-07--09-05-02.xlsx" {
		t.Errorf("all = %q", got)
	}
	if got := ExportFilename(providers.ExportSelected, now); got != "articulos-marcadores-2024-03-07--09-05-02.xlsx" {
		t.Errorf("selected = %q", got)
	}
}

func TestExportArchives(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)
	archive := newFakeArchive()
	svc.Archive = archive
	svc.Config.ArchiveExports = true
	svc.Now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local) }
	sess := console.NewSession("s", 25)

	file, err := svc.Export(context.Background(), sess, providers.ExportSelected)
	if err != nil {
		t.Fatal(err)
	}
	if string(file.Data) != "xlsx-selected" || !strings.HasPrefix(file.Filename, "articulos-marcadores-") {
		t.Fatalf("file = %s %q", file.Filename, file.Data)
	}
	if _, ok := archive.data["exports/"+file.Filename]; !ok {
		t.Fatal("export not archived")
	}
	if sess.Busy(console.BusyExport) {
		t.Fatal("busy flag not cleared")
	}
}

func TestExportFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.failOp = "export"
	svc := newTestService(backend)
	sess := console.NewSession("s", 25)

	if _, err := svc.Export(context.Background(), sess, providers.ExportAll); err == nil {
		t.Fatal("expected error")
	}
	if sess.Busy(console.BusyExport) {
		t.Fatal("busy flag not cleared")
	}
	if f := sess.Snapshot().Flash; f == nil || f.Kind != console.FlashError {
		t.Fatalf("flash = %+v", f)
	}
}
