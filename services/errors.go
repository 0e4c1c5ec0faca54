package services

import (
	"errors"
	"fmt"

	"article-admin/providers/articles"
)

// Validierungsfehler, die vor jedem Netzwerkaufruf erkannt werden.
var (
	ErrNoFile   = errors.New("no se ha seleccionado ningún archivo")
	ErrNotPDF   = errors.New("solo se permiten archivos PDF")
	ErrTooLarge = errors.New("el archivo supera el tamaño máximo permitido")
	ErrNotCSV   = errors.New("solo se permiten archivos CSV")
	ErrNoImport = errors.New("no hay ninguna importación pendiente")
)

// OpError beschreibt den Fehlschlag einer Konsolen-Operation.
// Status ist der HTTP-Status des Backends oder 0 bei Transport- und Validierungsfehlern.
type OpError struct {
	Op     string
	Status int
	Err    error
}

func (e *OpError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(op string, err error) *OpError {
	oe := &OpError{Op: op, Err: err}
	var serr *articles.StatusError
	if errors.As(err, &serr) {
		oe.Status = serr.Status
	}
	return oe
}

// userMessage formt einen Fehler in einen kurzen Text für das Nachrichtenbanner um.
func userMessage(err error) string {
	var serr *articles.StatusError
	if errors.As(err, &serr) {
		if msg := serr.Message(); msg != "" {
			return fmt.Sprintf("%s (HTTP %d)", msg, serr.Status)
		}
		return fmt.Sprintf("HTTP %d", serr.Status)
	}
	var oe *OpError
	if errors.As(err, &oe) {
		return userMessage(oe.Err)
	}
	return err.Error()
}
