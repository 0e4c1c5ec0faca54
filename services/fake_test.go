package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"article-admin/config"
	"article-admin/models"
	"article-admin/providers"
	"article-admin/providers/articles"
	"article-admin/storage"
)

// fakeBackend hält Artikel im Speicher und zeichnet Aufrufe auf.
type fakeBackend struct {
	mu        sync.Mutex
	records   map[int]models.Record
	order     []int
	meta      models.FieldMetadata
	check     models.ImportCheck
	imports   []bool
	failWith  error
	failOp    string
	lists     int
	gets      int
	checks    int
	normalize func(map[string]any)
}

func newFakeBackend(records ...models.Record) *fakeBackend {
	f := &fakeBackend{records: make(map[int]models.Record)}
	for _, r := range records {
		f.records[r.ID] = r
		f.order = append(f.order, r.ID)
	}
	return f
}

func (f *fakeBackend) fail(op string) error {
	if f.failOp == op {
		if f.failWith != nil {
			return f.failWith
		}
		return &articles.StatusError{Status: 500, Body: `{"error":"fallo"}`}
	}
	return nil
}

func (f *fakeBackend) ListArticles(ctx context.Context) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if err := f.fail("list"); err != nil {
		return nil, err
	}
	out := make([]models.Record, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.records[id])
	}
	return out, nil
}

func (f *fakeBackend) GetArticle(ctx context.Context, id int) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if err := f.fail("get"); err != nil {
		return models.Record{}, err
	}
	r, ok := f.records[id]
	if !ok {
		return models.Record{}, &articles.StatusError{Status: 404, Body: `{"error":"Article not found"}`}
	}
	return r, nil
}

func (f *fakeBackend) UpdateArticle(ctx context.Context, id int, patch map[string]any) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("update"); err != nil {
		return models.Record{}, err
	}
	if f.normalize != nil {
		f.normalize(patch)
	}
	r := f.records[id]
	if v, ok := patch["titulo_original"].(string); ok {
		r.TitleOriginal = &v
	}
	if v, ok := patch["seleccionado"].(bool); ok {
		r.Selected = v
	}
	f.records[id] = r
	return r, nil
}

func (f *fakeBackend) ToggleSelection(ctx context.Context, id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("toggle"); err != nil {
		return false, err
	}
	r := f.records[id]
	r.Selected = !r.Selected
	f.records[id] = r
	return r.Selected, nil
}

func (f *fakeBackend) FieldMetadata(ctx context.Context) (models.FieldMetadata, error) {
	if err := f.fail("meta"); err != nil {
		return models.FieldMetadata{}, err
	}
	return f.meta, nil
}

func (f *fakeBackend) CheckCSV(ctx context.Context, file providers.Upload) (models.ImportCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	if err := f.fail("check"); err != nil {
		return models.ImportCheck{}, err
	}
	return f.check, nil
}

func (f *fakeBackend) ImportCSV(ctx context.Context, file providers.Upload, force bool) (models.ImportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imports = append(f.imports, force)
	if err := f.fail("import"); err != nil {
		return models.ImportResult{}, err
	}
	return models.ImportResult{Status: models.StatusSuccess, Message: "Importación completada"}, nil
}

func (f *fakeBackend) UploadDocument(ctx context.Context, id int, docType models.DocType, file providers.Upload) (models.MessageResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("upload"); err != nil {
		return models.MessageResult{}, err
	}
	r := f.records[id]
	name := file.Filename
	doc := models.Document{ID: 100 + len(r.Documents), ArticleID: id}
	if docType == models.DocTranslated {
		doc.TranslatedFilename = &name
	} else {
		doc.OriginalFilename = &name
	}
	r.Documents = append(append([]models.Document(nil), r.Documents...), doc)
	f.records[id] = r
	if f.failOp == "get_after_upload" {
		f.failOp = "get"
	}
	return models.MessageResult{Success: true}, nil
}

func (f *fakeBackend) DeleteDocument(ctx context.Context, id int, docType models.DocType) (models.MessageResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("delete"); err != nil {
		return models.MessageResult{}, err
	}
	r := f.records[id]
	var kept []models.Document
	for _, d := range r.Documents {
		if !d.Has(docType) {
			kept = append(kept, d)
		}
	}
	r.Documents = kept
	f.records[id] = r
	return models.MessageResult{Success: true}, nil
}

func (f *fakeBackend) Export(ctx context.Context, kind providers.ExportKind) (providers.Stream, error) {
	if err := f.fail("export"); err != nil {
		return providers.Stream{}, err
	}
	return providers.Stream{Body: io.NopCloser(bytes.NewReader([]byte("xlsx-" + string(kind))))}, nil
}

func (f *fakeBackend) Document(ctx context.Context, filename string) (providers.Stream, error) {
	return providers.Stream{Body: io.NopCloser(bytes.NewReader([]byte("%PDF-1.4")))}, nil
}

// fakeArchive ist ein Archiv im Speicher.
type fakeArchive struct {
	mu      sync.Mutex
	objects map[string]storage.Object
	data    map[string][]byte
	clock   time.Time
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{objects: make(map[string]storage.Object), data: make(map[string][]byte), clock: time.Unix(1700000000, 0)}
}

func (a *fakeArchive) UploadFile(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clock = a.clock.Add(time.Minute)
	a.objects[key] = storage.Object{Key: key, LastModified: a.clock}
	a.data[key] = data
	return "s3://archive/" + key, nil
}

func (a *fakeArchive) ListKeys(ctx context.Context, prefix string) ([]storage.Object, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []storage.Object
	for _, o := range a.objects {
		out = append(out, o)
	}
	storage.SortNewestFirst(out)
	return out, nil
}

func (a *fakeArchive) DeleteKey(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.objects[key]; !ok {
		return errors.New("not found")
	}
	delete(a.objects, key)
	delete(a.data, key)
	return nil
}

func newTestService(backend providers.ArticleBackend) *RecordService {
	cfg := &config.Config{MaxUploadMB: 16}
	svc := NewRecordService(cfg, backend, nil, zap.NewNop())
	svc.PageCount = func(io.ReadSeeker) (int, error) { return 3, nil }
	return svc
}

func strPtr(s string) *string { return &s }
