package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"article-admin/console"
	"article-admin/models"
	"article-admin/providers"
)

// ValidateCSV prüft eine CSV-Datei vor dem Versand. maxBytes ist die Obergrenze für die Dateigröße.
func ValidateCSV(file providers.Upload, maxBytes int64) error {
	if file.Filename == "" || len(file.Data) == 0 {
		return ErrNoFile
	}
	if int64(len(file.Data)) > maxBytes {
		return ErrTooLarge
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		return ErrNotCSV
	}
	if !isMIME(mimetype.Detect(file.Data), "text/plain") {
		return ErrNotCSV
	}
	return nil
}

// isMIME prüft den erkannten Typ einschließlich seiner Elterntypen.
func isMIME(m *mimetype.MIME, want string) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(want) {
			return true
		}
	}
	return false
}

// CheckImport prüft eine CSV-Datei auf Duplikate. Ohne Duplikate wird direkt importiert;
// mit Duplikaten wartet die Datei in der Sitzung auf die Entscheidung des Benutzers.
func (s *RecordService) CheckImport(ctx context.Context, sess *console.Session, file providers.Upload) error {
	if err := ValidateCSV(file, s.Config.MaxUploadBytes()); err != nil {
		sess.Flash(console.FlashError, errorText(err))
		return opError("check_import", err)
	}

	sess.SetBusy(console.BusyImport, true)
	defer sess.SetBusy(console.BusyImport, false)

	log := s.Logger.With(zap.String("file", file.Filename))
	check, err := s.Backend.CheckCSV(ctx, file)
	if err != nil {
		log.Error("CSV-Prüfung fehlgeschlagen.", zap.Error(err))
		sess.Flash(console.FlashError, "Error al verificar el CSV: "+userMessage(err))
		return opError("check_import", err)
	}

	if check.HasDuplicates() {
		log.Info("Duplikate im CSV gefunden.",
			zap.Int("total", check.TotalInCSV), zap.Int("existing", check.ExistingCount), zap.Int("new", check.NewCount))
		sess.SetPending(&console.PendingImport{Filename: file.Filename, Data: file.Data, Check: check})
		sess.Flash(console.FlashInfo, fmt.Sprintf("Se encontraron %d artículos existentes de %d en el CSV", check.ExistingCount, check.TotalInCSV))
		return nil
	}

	return s.runImport(ctx, sess, file, false)
}

// ConfirmImport führt den wartenden Import aus. force übernimmt auch die Duplikate,
// sonst werden nur die neuen Artikel importiert.
func (s *RecordService) ConfirmImport(ctx context.Context, sess *console.Session, force bool) error {
	p := sess.TakePending()
	if p == nil {
		sess.Flash(console.FlashError, errorText(ErrNoImport))
		return opError("import", ErrNoImport)
	}

	sess.SetBusy(console.BusyImport, true)
	defer sess.SetBusy(console.BusyImport, false)

	return s.runImport(ctx, sess, providers.Upload{Filename: p.Filename, Data: p.Data}, force)
}

// CancelImport verwirft die wartende Datei.
func (s *RecordService) CancelImport(sess *console.Session) {
	if p := sess.TakePending(); p != nil {
		sess.Flash(console.FlashInfo, "Importación cancelada")
	}
}

func (s *RecordService) runImport(ctx context.Context, sess *console.Session, file providers.Upload, force bool) error {
	log := s.Logger.With(zap.String("file", file.Filename), zap.Bool("force", force))
	res, err := s.Backend.ImportCSV(ctx, file, force)
	if err != nil {
		log.Error("CSV-Import fehlgeschlagen.", zap.Error(err))
		sess.Flash(console.FlashError, "Error al importar: "+userMessage(err))
		return opError("import", err)
	}
	if res.Status != models.StatusSuccess {
		msg := res.Message
		if msg == "" {
			msg = "estado " + res.Status
		}
		sess.Flash(console.FlashError, "Error al importar: "+msg)
		return opError("import", fmt.Errorf("unexpected status %q", res.Status))
	}
	log.Info("CSV importiert.", zap.String("message", res.Message))

	if err := s.Load(ctx, sess); err != nil {
		sess.Flash(console.FlashError, res.Message+". No se pudo recargar la lista: "+userMessage(err))
		return nil
	}
	sess.Flash(console.FlashSuccess, res.Message)
	return nil
}
