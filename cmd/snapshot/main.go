package main

import (
	"context"
	"log"
	"time"

	"article-admin/config"
	"article-admin/providers/articles"
	"article-admin/services"
	"article-admin/storage"

	"go.uber.org/zap"
)

func main() {
	log.Println("Starte Snapshot-Prozess...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fehler beim Laden der Konfiguration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// 1. S3-Archiv erstellen
	archive, err := storage.NewArchive(cfg)
	if err != nil {
		log.Fatalf("Fehler beim Erstellen des S3-Clients: %v", err)
	}
	if archive == nil {
		log.Fatalf("Kein Archiv konfiguriert (ARCHIVE_S3_URL und ARCHIVE_S3_BUCKET setzen)")
	}

	// 2. Artikelliste sichern und alte Snapshots rotieren
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	snapshotter := services.NewSnapshotter(articles.NewClient(cfg, logger), archive, cfg.KeepSnapshots, logger)
	key, err := snapshotter.Run(ctx)
	if err != nil {
		log.Fatalf("Fehler beim Snapshot: %v", err)
	}

	log.Printf("Snapshot erfolgreich nach s3://%s/%s hochgeladen", cfg.ArchiveS3Bucket, key)
}
