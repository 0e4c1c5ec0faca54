package articles

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody begrenzt, wie viel eines Fehlerkörpers gelesen wird.
const maxErrorBody = 4 << 10

// StatusError ist eine Nicht-2xx-Antwort des Backends.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("backend status %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("backend status %d", e.Status)
}

// Message gibt das "error"- oder "message"-Feld eines JSON-Fehlerkörpers zurück, sonst den Rohtext.
func (e *StatusError) Message() string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(e.Body), &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(e.Body)
}

func statusError(resp *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Status: resp.StatusCode, Body: string(b)}
}
