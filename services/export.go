package services

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"article-admin/console"
	"article-admin/providers"
)

// xlsxContentType ist der MIME-Typ der Excel-Exporte.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportFile ist ein fertiger Excel-Export.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportFilename bildet {basis}-{YYYY-MM-DD--HH-MM-SS}.xlsx in lokaler Zeit.
func ExportFilename(kind providers.ExportKind, now time.Time) string {
	base := "articulos-todos"
	if kind == providers.ExportSelected {
		base = "articulos-marcadores"
	}
	return base + "-" + now.Local().Format("2006-01-02--15-04-05") + ".xlsx"
}

// Export lädt die Excel-Datei vom Backend und legt sie optional im Archiv ab.
func (s *RecordService) Export(ctx context.Context, sess *console.Session, kind providers.ExportKind) (ExportFile, error) {
	sess.SetBusy(console.BusyExport, true)
	defer sess.SetBusy(console.BusyExport, false)

	log := s.Logger.With(zap.String("kind", string(kind)))
	st, err := s.Backend.Export(ctx, kind)
	if err != nil {
		log.Error("Export fehlgeschlagen.", zap.Error(err))
		sess.Flash(console.FlashError, "Error al exportar: "+userMessage(err))
		return ExportFile{}, opError("export", err)
	}
	defer st.Body.Close()

	data, err := io.ReadAll(st.Body)
	if err != nil {
		log.Error("Export konnte nicht gelesen werden.", zap.Error(err))
		sess.Flash(console.FlashError, "Error al exportar: "+err.Error())
		return ExportFile{}, opError("export", err)
	}

	file := ExportFile{
		Filename:    ExportFilename(kind, s.Now()),
		ContentType: xlsxContentType,
		Data:        data,
	}
	log.Info("Export erstellt.", zap.String("file", file.Filename), zap.Int("bytes", len(data)))

	if s.Archive != nil && s.Config.ArchiveExports {
		link, err := s.Archive.UploadFile(ctx, "exports/"+file.Filename, data, xlsxContentType)
		if err != nil {
			log.Warn("Export konnte nicht archiviert werden.", zap.Error(err))
			sess.Flash(console.FlashError, "Exportación descargada, pero no se pudo archivar: "+err.Error())
			return file, nil
		}
		log.Info("Export archiviert.", zap.String("link", link))
	}
	sess.Flash(console.FlashSuccess, "Exportación generada: "+file.Filename)
	return file, nil
}
