package providers

import (
	"context"
	"io"

	"article-admin/models"
)

// ExportKind wählt zwischen dem Export aller Artikel und dem der markierten.
type ExportKind string

const (
	ExportAll      ExportKind = "all"
	ExportSelected ExportKind = "selected"
)

// Upload ist eine Datei, die als multipart-Feld "file" an das Backend geht.
type Upload struct {
	Filename string
	Data     []byte
}

// Stream ist ein binärer Antwortkörper des Backends. Der Aufrufer muss Body schließen.
type Stream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// ArticleBackend ist das Interface, das das Artikel-Backend (Persistenz, Duplikatprüfung,
// Dateiablage, Excel-Export) für die Konsole bereitstellt.
type ArticleBackend interface {
	// ListArticles lädt alle Artikel in Server-Reihenfolge.
	ListArticles(ctx context.Context) ([]models.Record, error)
	// GetArticle lädt einen einzelnen Artikel samt Dokumenten.
	GetArticle(ctx context.Context, id int) (models.Record, error)
	// UpdateArticle schreibt einen Teil-Datensatz und gibt die kanonische Fassung zurück.
	UpdateArticle(ctx context.Context, id int, patch map[string]any) (models.Record, error)
	// ToggleSelection kehrt die Markierung serverseitig um.
	ToggleSelection(ctx context.Context, id int) (bool, error)
	// FieldMetadata lädt schreibgeschützte Felder und Spaltenbeschreibungen.
	FieldMetadata(ctx context.Context) (models.FieldMetadata, error)
	// CheckCSV prüft eine CSV-Datei auf bereits vorhandene Artikel.
	CheckCSV(ctx context.Context, file Upload) (models.ImportCheck, error)
	// ImportCSV importiert eine CSV-Datei; force übernimmt auch Duplikate.
	ImportCSV(ctx context.Context, file Upload, force bool) (models.ImportResult, error)
	// UploadDocument hängt ein PDF an einen Artikel.
	UploadDocument(ctx context.Context, id int, docType models.DocType, file Upload) (models.MessageResult, error)
	// DeleteDocument entfernt ein PDF eines Artikels.
	DeleteDocument(ctx context.Context, id int, docType models.DocType) (models.MessageResult, error)
	// Export lädt die Excel-Datei.
	Export(ctx context.Context, kind ExportKind) (Stream, error)
	// Document lädt eine gespeicherte PDF-Datei.
	Document(ctx context.Context, filename string) (Stream, error)
}
