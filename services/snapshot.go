package services

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"article-admin/providers"
	"article-admin/storage"
)

const snapshotPrefix = "snapshots/"

// Snapshotter sichert die komplette Artikelliste als gzip-komprimiertes JSON im Archiv
// und behält davon nur die neuesten Keep Stück.
type Snapshotter struct {
	Backend providers.ArticleBackend
	Archive Archiver
	Keep    int
	Logger  *zap.Logger
	Now     func() time.Time
}

// NewSnapshotter erstellt einen neuen Snapshotter.
func NewSnapshotter(backend providers.ArticleBackend, archive Archiver, keep int, logger *zap.Logger) *Snapshotter {
	return &Snapshotter{Backend: backend, Archive: archive, Keep: keep, Logger: logger, Now: time.Now}
}

// Run erstellt einen Snapshot, lädt ihn hoch und rotiert alte Snapshots.
func (s *Snapshotter) Run(ctx context.Context) (string, error) {
	if s.Archive == nil {
		return "", errors.New("snapshot: no archive configured")
	}

	records, err := s.Backend.ListArticles(ctx)
	if err != nil {
		return "", opError("snapshot", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gz).Encode(records); err != nil {
		return "", opError("snapshot", err)
	}
	if err := gz.Close(); err != nil {
		return "", opError("snapshot", err)
	}

	key := fmt.Sprintf("%sarticulos-%s.json.gz", snapshotPrefix, s.Now().UTC().Format("2006-01-02T15-04-05Z"))
	if _, err := s.Archive.UploadFile(ctx, key, buf.Bytes(), "application/gzip"); err != nil {
		return "", opError("snapshot", err)
	}
	s.Logger.Info("Snapshot hochgeladen.", zap.String("key", key), zap.Int("articles", len(records)))

	if err := s.rotate(ctx); err != nil {
		return key, opError("snapshot_rotate", err)
	}
	return key, nil
}

func (s *Snapshotter) rotate(ctx context.Context) error {
	objs, err := s.Archive.ListKeys(ctx, snapshotPrefix)
	if err != nil {
		return err
	}
	expired := storage.Expired(objs, s.Keep)
	if len(expired) == 0 {
		s.Logger.Debug("Keine Rotation nötig.", zap.Int("snapshots", len(objs)), zap.Int("keep", s.Keep))
		return nil
	}
	for _, obj := range expired {
		s.Logger.Info("Lösche alten Snapshot.", zap.String("key", obj.Key))
		if err := s.Archive.DeleteKey(ctx, obj.Key); err != nil {
			s.Logger.Error("Snapshot konnte nicht gelöscht werden.", zap.String("key", obj.Key), zap.Error(err))
		}
	}
	return nil
}
