package services

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"article-admin/models"
)

func TestSnapshotRotates(t *testing.T) {
	backend := newFakeBackend(models.Record{ID: 1}, models.Record{ID: 2})
	archive := newFakeArchive()
	s := NewSnapshotter(backend, archive, 2, zap.NewNop())
	clock := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s.Now = func() time.Time {
		clock = clock.Add(time.Hour)
		return clock
	}

	var last string
	for i := 0; i < 4; i++ {
		key, err := s.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		last = key
	}
	if len(archive.objects) != 2 {
		t.Fatalf("%d snapshots kept, want 2", len(archive.objects))
	}

	zr, err := gzip.NewReader(bytes.NewReader(archive.data[last]))
	if err != nil {
		t.Fatal(err)
	}
	var records []models.Record
	if err := json.NewDecoder(zr).Decode(&records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("snapshot has %d records", len(records))
	}
}

func TestSnapshotWithoutArchive(t *testing.T) {
	s := NewSnapshotter(newFakeBackend(), nil, 2, zap.NewNop())
	if _, err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error without archive")
	}
}
