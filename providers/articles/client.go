// Package articles spricht mit dem Artikel-Backend über dessen HTTP-API.
package articles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"article-admin/config"
	"article-admin/models"
	"article-admin/providers"
)

// Client implementiert providers.ArticleBackend.
type Client struct {
	Config     *config.Config
	Logger     *zap.Logger
	baseURL    string
	httpClient *http.Client
}

var _ providers.ArticleBackend = (*Client)(nil)

// NewClient erstellt einen Client für BACKEND_URL. Ein BACKEND_TIMEOUT von 0 bedeutet kein Timeout.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		Config:  cfg,
		Logger:  logger,
		baseURL: strings.TrimRight(cfg.BackendURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.BackendTimeout,
			Transport: &CustomTransport{
				Transport: http.DefaultTransport,
				APIKey:    cfg.BackendAPIKey,
			},
		},
	}
}

// ListArticles ruft GET /api/articles auf.
func (c *Client) ListArticles(ctx context.Context) ([]models.Record, error) {
	var records []models.Record
	if err := c.getJSON(ctx, "list", "/api/articles", &records); err != nil {
		return nil, err
	}
	c.Logger.Debug("Artikel geladen.", zap.Int("count", len(records)))
	return records, nil
}

// GetArticle ruft GET /api/articles/{id} auf.
func (c *Client) GetArticle(ctx context.Context, id int) (models.Record, error) {
	var rec models.Record
	err := c.getJSON(ctx, "get", "/api/articles/"+strconv.Itoa(id), &rec)
	return rec, err
}

// UpdateArticle ruft PUT /api/articles/{id} auf. Antwortet das Backend nur mit einer
// Meldung statt mit dem Datensatz, wird der Artikel neu geladen.
func (c *Client) UpdateArticle(ctx context.Context, id int, patch map[string]any) (models.Record, error) {
	body, err := json.Marshal(patch)
	if err != nil {
		return models.Record{}, err
	}
	raw, err := c.doBytes(ctx, "update", http.MethodPut, "/api/articles/"+strconv.Itoa(id), "application/json", bytes.NewReader(body))
	if err != nil {
		return models.Record{}, err
	}

	var probe struct {
		ID    *int   `json:"id"`
		Error string `json:"error"`
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &probe); err != nil {
			return models.Record{}, fmt.Errorf("decode update response: %w", err)
		}
	}
	if probe.Error != "" {
		return models.Record{}, errors.New(probe.Error)
	}
	if probe.ID != nil {
		var rec models.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return models.Record{}, fmt.Errorf("decode update response: %w", err)
		}
		return rec, nil
	}

	c.Logger.Debug("Update-Antwort ohne Datensatz, lade Artikel neu.", zap.Int("article_id", id))
	return c.GetArticle(ctx, id)
}

// ToggleSelection ruft PUT /api/articles/{id}/toggle-selection auf.
func (c *Client) ToggleSelection(ctx context.Context, id int) (bool, error) {
	raw, err := c.doBytes(ctx, "toggle", http.MethodPut, "/api/articles/"+strconv.Itoa(id)+"/toggle-selection", "", nil)
	if err != nil {
		return false, err
	}
	var res models.ToggleResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return false, fmt.Errorf("decode toggle response: %w", err)
	}
	if res.Error != "" {
		return false, errors.New(res.Error)
	}
	if res.Selected == nil {
		return false, errors.New("toggle response without seleccionado")
	}
	return *res.Selected, nil
}

// FieldMetadata ruft GET /api/field-metadata auf.
func (c *Client) FieldMetadata(ctx context.Context) (models.FieldMetadata, error) {
	var meta models.FieldMetadata
	err := c.getJSON(ctx, "field_metadata", "/api/field-metadata", &meta)
	return meta, err
}

// CheckCSV ruft POST /api/check-csv auf.
func (c *Client) CheckCSV(ctx context.Context, file providers.Upload) (models.ImportCheck, error) {
	var check models.ImportCheck
	body, contentType, err := multipartBody(file, nil)
	if err != nil {
		return check, err
	}
	raw, err := c.doBytes(ctx, "check_csv", http.MethodPost, "/api/check-csv", contentType, body)
	if err != nil {
		return check, err
	}
	if err := json.Unmarshal(raw, &check); err != nil {
		return check, fmt.Errorf("decode check-csv response: %w", err)
	}
	if check.Error != "" {
		return check, errors.New(check.Error)
	}
	return check, nil
}

// ImportCSV ruft POST /api/import-csv auf. force wird sowohl als force als auch als
// force_import übertragen.
func (c *Client) ImportCSV(ctx context.Context, file providers.Upload, force bool) (models.ImportResult, error) {
	var res models.ImportResult
	var fields map[string]string
	if force {
		fields = map[string]string{"force": "true", "force_import": "true"}
	}
	body, contentType, err := multipartBody(file, fields)
	if err != nil {
		return res, err
	}
	raw, err := c.doBytes(ctx, "import_csv", http.MethodPost, "/api/import-csv", contentType, body)
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return res, fmt.Errorf("decode import-csv response: %w", err)
	}
	if res.Error != "" {
		return res, errors.New(res.Error)
	}
	return res, nil
}

// UploadDocument ruft POST /api/articles/{id}/documents auf.
func (c *Client) UploadDocument(ctx context.Context, id int, docType models.DocType, file providers.Upload) (models.MessageResult, error) {
	body, contentType, err := multipartBody(file, map[string]string{"doc_type": string(docType)})
	if err != nil {
		return models.MessageResult{}, err
	}
	raw, err := c.doBytes(ctx, "upload_document", http.MethodPost, "/api/articles/"+strconv.Itoa(id)+"/documents", contentType, body)
	if err != nil {
		return models.MessageResult{}, err
	}
	return decodeMessage(raw)
}

// DeleteDocument ruft DELETE /api/articles/{id}/documents/{docType} auf.
func (c *Client) DeleteDocument(ctx context.Context, id int, docType models.DocType) (models.MessageResult, error) {
	path := "/api/articles/" + strconv.Itoa(id) + "/documents/" + url.PathEscape(string(docType))
	raw, err := c.doBytes(ctx, "delete_document", http.MethodDelete, path, "", nil)
	if err != nil {
		return models.MessageResult{}, err
	}
	return decodeMessage(raw)
}

// Export ruft GET /api/export-excel bzw. /api/export-excel-bookmarks auf.
func (c *Client) Export(ctx context.Context, kind providers.ExportKind) (providers.Stream, error) {
	path := "/api/export-excel"
	if kind == providers.ExportSelected {
		path = "/api/export-excel-bookmarks"
	}
	return c.stream(ctx, "export_"+string(kind), path)
}

// Document ruft GET /api/documents/{filename} auf.
func (c *Client) Document(ctx context.Context, filename string) (providers.Stream, error) {
	return c.stream(ctx, "document", "/api/documents/"+url.PathEscape(filename))
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, out any) error {
	raw, err := c.doBytes(ctx, endpoint, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// doBytes führt eine Anfrage aus und liest den Antwortkörper vollständig.
func (c *Client) doBytes(ctx context.Context, endpoint, method, path, contentType string, body io.Reader) ([]byte, error) {
	resp, err := c.do(ctx, endpoint, method, path, contentType, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// do führt eine Anfrage aus. Nicht-2xx-Antworten werden als *StatusError zurückgegeben.
func (c *Client) do(ctx context.Context, endpoint, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	log := c.Logger.With(zap.String("endpoint", endpoint), zap.String("method", method), zap.String("path", path))
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(endpoint, 0, start)
		log.Warn("Backend nicht erreichbar.", zap.Error(err))
		return nil, err
	}
	observe(endpoint, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		serr := statusError(resp)
		log.Warn("Backend antwortet mit Fehler.", zap.Int("status", serr.Status), zap.String("message", serr.Message()))
		return nil, serr
	}
	return resp, nil
}

func (c *Client) stream(ctx context.Context, endpoint, path string) (providers.Stream, error) {
	resp, err := c.do(ctx, endpoint, http.MethodGet, path, "", nil)
	if err != nil {
		return providers.Stream{}, err
	}
	return providers.Stream{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}, nil
}

func multipartBody(file providers.Upload, fields map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	part, err := w.CreateFormFile("file", file.Filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func decodeMessage(raw []byte) (models.MessageResult, error) {
	var res models.MessageResult
	if len(bytes.TrimSpace(raw)) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return res, fmt.Errorf("decode response: %w", err)
	}
	if res.Error != "" {
		return res, errors.New(res.Error)
	}
	return res, nil
}
