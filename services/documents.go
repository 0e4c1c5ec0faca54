package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"article-admin/console"
	"article-admin/models"
	"article-admin/providers"
)

func pdfPageCount(rs io.ReadSeeker) (int, error) {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return api.PageCount(rs, cfg)
}

// ValidatePDF prüft Größe und Typ eines Dokuments und gibt die Seitenzahl zurück.
func (s *RecordService) ValidatePDF(file providers.Upload) (int, error) {
	if file.Filename == "" || len(file.Data) == 0 {
		return 0, ErrNoFile
	}
	if int64(len(file.Data)) > s.Config.MaxUploadBytes() {
		return 0, fmt.Errorf("%w (%d MB)", ErrTooLarge, s.Config.MaxUploadMB)
	}
	if !mimetype.Detect(file.Data).Is("application/pdf") {
		return 0, ErrNotPDF
	}
	pages, err := s.PageCount(bytes.NewReader(file.Data))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	return pages, nil
}

// UploadDocument hängt ein PDF an und lädt danach nur diesen Artikel neu. draft sind die
// Formularwerte des offenen Dialogs, die dabei erhalten bleiben.
func (s *RecordService) UploadDocument(ctx context.Context, sess *console.Session, id int, docType models.DocType, file providers.Upload, draft map[string]string) error {
	stashDraft(sess, draft)
	log := s.Logger.With(zap.Int("article_id", id), zap.String("doc_type", string(docType)), zap.String("file", file.Filename))

	pages, err := s.ValidatePDF(file)
	if err != nil {
		sess.Flash(console.FlashError, errorText(err))
		return opError("upload_document", err)
	}

	if _, err := s.Backend.UploadDocument(ctx, id, docType, file); err != nil {
		log.Error("Dokument konnte nicht hochgeladen werden.", zap.Error(err))
		sess.Flash(console.FlashError, "Error al subir el documento: "+userMessage(err))
		return opError("upload_document", err)
	}
	log.Info("Dokument hochgeladen.", zap.Int("pages", pages))

	if err := s.refreshRecord(ctx, sess, id); err != nil {
		log.Warn("Artikel konnte nach dem Hochladen nicht neu geladen werden.", zap.Error(err))
		sess.Flash(console.FlashError, "Documento subido, pero no se pudo actualizar el artículo: "+userMessage(err))
		return nil
	}
	sess.Flash(console.FlashSuccess, fmt.Sprintf("Documento %s subido correctamente (%d páginas)", docType.Label(), pages))
	return nil
}

// DeleteDocument entfernt ein PDF und lädt danach nur diesen Artikel neu.
func (s *RecordService) DeleteDocument(ctx context.Context, sess *console.Session, id int, docType models.DocType, draft map[string]string) error {
	stashDraft(sess, draft)
	log := s.Logger.With(zap.Int("article_id", id), zap.String("doc_type", string(docType)))

	if _, err := s.Backend.DeleteDocument(ctx, id, docType); err != nil {
		log.Error("Dokument konnte nicht gelöscht werden.", zap.Error(err))
		sess.Flash(console.FlashError, "Error al eliminar el documento: "+userMessage(err))
		return opError("delete_document", err)
	}
	log.Info("Dokument gelöscht.")

	if err := s.refreshRecord(ctx, sess, id); err != nil {
		log.Warn("Artikel konnte nach dem Löschen nicht neu geladen werden.", zap.Error(err))
		sess.Flash(console.FlashError, "Documento eliminado, pero no se pudo actualizar el artículo: "+userMessage(err))
		return nil
	}
	sess.Flash(console.FlashSuccess, fmt.Sprintf("Documento %s eliminado", docType.Label()))
	return nil
}

// Document reicht eine gespeicherte PDF-Datei an den Viewer durch.
func (s *RecordService) Document(ctx context.Context, filename string) (providers.Stream, error) {
	st, err := s.Backend.Document(ctx, filename)
	if err != nil {
		return st, opError("document", err)
	}
	return st, nil
}

func stashDraft(sess *console.Session, draft map[string]string) {
	if len(draft) == 0 {
		return
	}
	sess.Edit(func(e *console.EditSession) error {
		e.StashDraft(draft)
		return nil
	})
}

// errorText gibt für Validierungsfehler einen Satz mit großem Anfangsbuchstaben zurück.
func errorText(err error) string {
	for _, sentinel := range []error{ErrNoFile, ErrNotPDF, ErrTooLarge, ErrNotCSV, ErrNoImport} {
		if errors.Is(err, sentinel) {
			msg := err.Error()
			return string(bytes.ToUpper([]byte(msg[:1]))) + msg[1:]
		}
	}
	return userMessage(err)
}
