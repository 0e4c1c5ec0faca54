package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"article-admin/config"
	"article-admin/console"
	"article-admin/models"
	"article-admin/providers"
	"article-admin/storage"
)

// Archiver ist das S3-Archiv für Exporte und Snapshots.
type Archiver interface {
	UploadFile(ctx context.Context, key string, data []byte, contentType string) (string, error)
	ListKeys(ctx context.Context, prefix string) ([]storage.Object, error)
	DeleteKey(ctx context.Context, key string) error
}

// RecordService führt die Operationen der Konsole gegen das Backend aus und gleicht
// die Antworten mit der Sitzung ab. Jede Operation endet mit einer Nachricht in der Sitzung.
type RecordService struct {
	Config  *config.Config
	Backend providers.ArticleBackend
	Archive Archiver // nil = kein Archiv
	Logger  *zap.Logger

	// Now liefert die lokale Uhrzeit für Dateinamen.
	Now func() time.Time
	// PageCount zählt die Seiten eines PDFs.
	PageCount func(rs io.ReadSeeker) (int, error)
}

// NewRecordService erstellt eine neue Instanz des RecordService.
func NewRecordService(cfg *config.Config, backend providers.ArticleBackend, archive Archiver, logger *zap.Logger) *RecordService {
	return &RecordService{
		Config:    cfg,
		Backend:   backend,
		Archive:   archive,
		Logger:    logger,
		Now:       time.Now,
		PageCount: pdfPageCount,
	}
}

// Load lädt Artikelliste und Feld-Metadaten parallel und ersetzt die Sicht der Sitzung.
func (s *RecordService) Load(ctx context.Context, sess *console.Session) error {
	var (
		records []models.Record
		meta    models.FieldMetadata
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.Backend.ListArticles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		meta, err = s.Backend.FieldMetadata(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.Logger.Error("Artikelliste konnte nicht geladen werden.", zap.String("session", sess.ID), zap.Error(err))
		sess.Flash(console.FlashError, "Error al cargar los artículos: "+userMessage(err))
		return opError("load", err)
	}

	sess.Reload(records)
	sess.SetMetadata(meta)
	s.Logger.Info("Artikelliste geladen.", zap.String("session", sess.ID), zap.Int("count", len(records)))
	return nil
}

// Reload lädt die Liste erneut und meldet den Erfolg.
func (s *RecordService) Reload(ctx context.Context, sess *console.Session) error {
	if err := s.Load(ctx, sess); err != nil {
		return err
	}
	sess.Flash(console.FlashSuccess, "Artículos recargados")
	return nil
}

// OpenEdit öffnet den Bearbeitungsdialog: Artikel und Metadaten werden parallel geladen.
func (s *RecordService) OpenEdit(ctx context.Context, sess *console.Session, id int) error {
	log := s.Logger.With(zap.Int("article_id", id))
	if err := sess.Edit(func(e *console.EditSession) error { return e.Begin(id) }); err != nil {
		sess.Flash(console.FlashError, "Espere a que termine el guardado en curso")
		return opError("open_edit", err)
	}

	var (
		rec  models.Record
		meta models.FieldMetadata
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rec, err = s.Backend.GetArticle(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		meta, err = s.Backend.FieldMetadata(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("Artikel konnte nicht zur Bearbeitung geladen werden.", zap.Error(err))
		sess.Edit(func(e *console.EditSession) error {
			e.LoadFailed()
			return nil
		})
		sess.Flash(console.FlashError, "Error al cargar el artículo: "+userMessage(err))
		return opError("open_edit", err)
	}

	sess.SetMetadata(meta)
	if err := sess.Edit(func(e *console.EditSession) error { return e.Populate(rec, meta.ReadonlySet()) }); err != nil {
		// Inzwischen wurde ein anderer Artikel geöffnet oder der Dialog geschlossen.
		log.Debug("Bearbeitungsdialog hat sich während des Ladens geändert.", zap.Error(err))
		return nil
	}
	sess.ApplyRecord(rec)
	return nil
}

// Save speichert die editierbaren Felder aus form. Das Ergebnis des Servers ersetzt den
// Artikel in beiden Sammlungen; bei einem Fehler bleibt der Dialog mit dem Entwurf offen.
func (s *RecordService) Save(ctx context.Context, sess *console.Session, id int, form url.Values) error {
	log := s.Logger.With(zap.Int("article_id", id))
	draft := console.DraftFromForm(form)

	var patch console.Patch
	err := sess.Edit(func(e *console.EditSession) error {
		if e.ArticleID != id {
			return fmt.Errorf("%w: save %d while editing %d", console.ErrEditState, id, e.ArticleID)
		}
		var err error
		patch, err = e.BeginSave(draft)
		return err
	})
	if err != nil {
		sess.Flash(console.FlashError, "Error al guardar: "+err.Error())
		return opError("save", err)
	}

	rec, err := s.Backend.UpdateArticle(ctx, id, patch)
	if err != nil {
		msg := userMessage(err)
		log.Error("Artikel konnte nicht gespeichert werden.", zap.Error(err))
		sess.Edit(func(e *console.EditSession) error {
			e.SaveFailed(msg)
			return nil
		})
		sess.Flash(console.FlashError, "Error al guardar: "+msg)
		return opError("save", err)
	}

	sess.CommitRecord(rec, func(e *console.EditSession) { e.SaveSucceeded() })
	sess.Flash(console.FlashSuccess, "Artículo actualizado correctamente")
	log.Info("Artikel gespeichert.", zap.Int("fields", len(patch)))
	return nil
}

// CancelEdit schließt den Dialog ohne Rückfrage.
func (s *RecordService) CancelEdit(sess *console.Session) {
	sess.Edit(func(e *console.EditSession) error {
		e.Cancel()
		return nil
	})
}

// ToggleSelection kehrt die Markierung über den dedizierten Endpunkt um. Schlägt der Aufruf
// fehl, bleibt der Store unverändert und die Tabelle zeigt weiter den alten Zustand.
func (s *RecordService) ToggleSelection(ctx context.Context, sess *console.Session, id int) error {
	selected, err := s.Backend.ToggleSelection(ctx, id)
	if err != nil {
		s.Logger.Warn("Markierung konnte nicht geändert werden.", zap.Int("article_id", id), zap.Error(err))
		sess.Flash(console.FlashError, "No se pudo cambiar la selección: "+userMessage(err))
		return opError("toggle_selection", err)
	}
	sess.ApplySelection(id, selected)
	if selected {
		sess.Flash(console.FlashSuccess, fmt.Sprintf("Artículo %d marcado", id))
	} else {
		sess.Flash(console.FlashSuccess, fmt.Sprintf("Artículo %d desmarcado", id))
	}
	return nil
}

// refreshRecord lädt genau einen Artikel neu und übernimmt ihn in die Sitzung.
func (s *RecordService) refreshRecord(ctx context.Context, sess *console.Session, id int) error {
	rec, err := s.Backend.GetArticle(ctx, id)
	if err != nil {
		return err
	}
	sess.ApplyRecord(rec)
	return nil
}
