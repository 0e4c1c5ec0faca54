package console

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"article-admin/models"
)

// EditState ist der Zustand des Bearbeitungsdialogs.
type EditState int

const (
	EditClosed EditState = iota
	EditLoading
	EditPopulated
	EditSaving
)

func (s EditState) String() string {
	switch s {
	case EditLoading:
		return "loading"
	case EditPopulated:
		return "populated"
	case EditSaving:
		return "saving"
	}
	return "closed"
}

// ErrEditState meldet einen Übergang, der im aktuellen Zustand nicht erlaubt ist.
var ErrEditState = errors.New("edit session: invalid transition")

// Patch ist die Nutzlast für PUT /api/articles/{id}.
type Patch map[string]any

// EditSession steuert den Dialog für genau einen Artikel.
type EditSession struct {
	State     EditState
	ArticleID int
	Record    models.Record
	Readonly  map[string]bool
	Draft     map[string]string
	Err       string
}

// Begin startet das Laden eines Artikels. Während eines Speichervorgangs ist das nicht erlaubt.
func (e *EditSession) Begin(id int) error {
	if e.State == EditSaving {
		return fmt.Errorf("%w: begin while %s", ErrEditState, e.State)
	}
	*e = EditSession{State: EditLoading, ArticleID: id}
	return nil
}

// Populate füllt das Formular mit dem geladenen Artikel.
func (e *EditSession) Populate(rec models.Record, readonly map[string]bool) error {
	if e.State != EditLoading || rec.ID != e.ArticleID {
		return fmt.Errorf("%w: populate %d while %s", ErrEditState, rec.ID, e.State)
	}
	e.Record = rec
	e.Readonly = copySet(readonly)
	e.Draft = DraftFromRecord(&rec)
	e.Err = ""
	e.State = EditPopulated
	return nil
}

// LoadFailed schließt den Dialog wieder, wenn der Artikel nicht geladen werden konnte.
func (e *EditSession) LoadFailed() {
	if e.State == EditLoading {
		*e = EditSession{}
	}
}

// StashDraft übernimmt die aktuellen Formularwerte, ohne zu speichern.
func (e *EditSession) StashDraft(draft map[string]string) {
	if e.State != EditPopulated {
		return
	}
	for k, v := range draft {
		e.Draft[k] = v
	}
}

// BeginSave wechselt nach Saving und liefert die Nutzlast aus den editierbaren Feldern.
// Bei ungültigen Werten bleibt der Dialog in Populated.
func (e *EditSession) BeginSave(draft map[string]string) (Patch, error) {
	if e.State != EditPopulated {
		return nil, fmt.Errorf("%w: save while %s", ErrEditState, e.State)
	}
	e.StashDraft(draft)
	patch, err := BuildPatch(e.Draft, e.Readonly)
	if err != nil {
		e.Err = err.Error()
		return nil, err
	}
	e.Err = ""
	e.State = EditSaving
	return patch, nil
}

// SaveFailed kehrt nach Populated zurück; der Entwurf bleibt erhalten.
func (e *EditSession) SaveFailed(msg string) {
	if e.State != EditSaving {
		return
	}
	e.Err = msg
	e.State = EditPopulated
}

// SaveSucceeded schließt den Dialog.
func (e *EditSession) SaveSucceeded() {
	if e.State == EditSaving {
		*e = EditSession{}
	}
}

// Cancel verwirft ungespeicherte Änderungen ohne Rückfrage.
func (e *EditSession) Cancel() {
	*e = EditSession{}
}

// Refresh übernimmt einen neu geladenen Datensatz (z.B. nach einer Dokumentänderung),
// ohne den Entwurf anzutasten.
func (e *EditSession) Refresh(rec models.Record) {
	if e.State == EditClosed || e.ArticleID != rec.ID {
		return
	}
	e.Record = rec
}

// Open meldet, ob der Dialog angezeigt wird.
func (e *EditSession) Open() bool {
	return e.State != EditClosed
}

// IsReadonly meldet, ob ein Feld laut Metadaten schreibgeschützt ist.
func (e *EditSession) IsReadonly(key string) bool {
	return e.Readonly[key]
}

// Clone kopiert die Sitzung für die Darstellung.
func (e *EditSession) Clone() EditSession {
	out := *e
	out.Readonly = copySet(e.Readonly)
	if e.Draft != nil {
		out.Draft = make(map[string]string, len(e.Draft))
		for k, v := range e.Draft {
			out.Draft[k] = v
		}
	}
	return out
}

// DraftFromRecord liest die Formularwerte aus einem Datensatz.
func DraftFromRecord(r *models.Record) map[string]string {
	draft := make(map[string]string)
	for _, f := range models.Fields() {
		if f.Editable() {
			draft[f.Key] = r.Value(f.Key)
		}
	}
	return draft
}

// DraftFromForm liest die Formularwerte des Dialogs. Fehlende Textfelder bleiben unberührt;
// eine fehlende Checkbox bedeutet false.
func DraftFromForm(form url.Values) map[string]string {
	draft := make(map[string]string)
	for _, f := range models.Fields() {
		if !f.Editable() {
			continue
		}
		if f.Kind == models.KindFlag {
			draft[f.Key] = strconv.FormatBool(form.Has(f.FormID()))
			continue
		}
		if form.Has(f.FormID()) {
			draft[f.Key] = form.Get(f.FormID())
		}
	}
	return draft
}

// BuildPatch erstellt die Nutzlast: nur editierbare Felder, nie ein schreibgeschütztes.
func BuildPatch(draft map[string]string, readonly map[string]bool) (Patch, error) {
	patch := make(Patch)
	for _, f := range models.Fields() {
		if !f.Editable() || readonly[f.Key] {
			continue
		}
		v, ok := draft[f.Key]
		if !ok {
			continue
		}
		switch f.Kind {
		case models.KindFlag:
			patch[f.Key] = v == "true"
		case models.KindNumber:
			v = strings.TrimSpace(v)
			if v == "" {
				patch[f.Key] = nil
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%s: valor numérico inválido %q", f.Label, v)
			}
			patch[f.Key] = n
		default:
			patch[f.Key] = v
		}
	}
	return patch, nil
}

func copySet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
