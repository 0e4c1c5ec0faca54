package console

import (
	"sync"
	"time"

	"article-admin/models"
)

// FlashKind bestimmt die Farbe des Nachrichtenbanners.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Flash ist eine einmalig angezeigte Nachricht.
type Flash struct {
	Kind FlashKind
	Text string
}

// Busy-Operationen, für die ein Ladeindikator angezeigt wird.
const (
	BusyImport = "import"
	BusyExport = "export"
)

// PendingImport hält eine CSV-Datei, deren Import auf die Bestätigung des Benutzers wartet.
type PendingImport struct {
	Filename string
	Data     []byte
	Check    models.ImportCheck
}

// Session ist der gesamte Ansichtszustand eines Browsers. Alle Methoden sind nebenläufig
// aufrufbar; Netzwerkaufrufe finden nie unter dem Lock statt.
type Session struct {
	ID string

	mu       sync.Mutex
	store    *Store
	loaded   bool
	filter   Filter
	page     int
	pageSize int
	columns  Columns
	meta     models.FieldMetadata
	edit     EditSession
	flash    *Flash
	pending  *PendingImport
	busy     map[string]bool
	lastSeen time.Time
}

// NewSession erstellt eine Sitzung mit Standardspalten.
func NewSession(id string, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{
		ID:       id,
		store:    NewStore(),
		page:     1,
		pageSize: pageSize,
		columns:  DefaultColumns(),
		busy:     make(map[string]bool),
		lastSeen: time.Now(),
	}
}

// Store gibt den Datensatz-Store der Sitzung zurück.
func (s *Session) Store() *Store {
	return s.store
}

// Loaded meldet, ob die Artikelliste bereits einmal geladen wurde.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Reload ersetzt die Artikelliste, berechnet die Sicht neu und springt auf Seite 1.
func (s *Session) Reload(records []models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetAll(records)
	s.store.SetFiltered(Project(records, s.filter))
	s.page = 1
	s.loaded = true
}

// SetFilter ändert Suchtext und/oder Auswahlfilter und springt auf Seite 1.
func (s *Session) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	s.store.SetFiltered(Project(s.store.All(), f))
	s.page = 1
}

// Filter gibt den aktiven Filter zurück.
func (s *Session) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetPageSize ändert die Seitengröße und springt auf Seite 1.
func (s *Session) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = size
	s.page = 1
}

// GoToPage wechselt die Seite.
func (s *Session) GoToPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

// CurrentPage gibt die aktuelle Seite zurück.
func (s *Session) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// SetColumns ersetzt die Spaltenauswahl vollständig.
func (s *Session) SetColumns(c Columns) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.columns = c.Clone()
}

// SetMetadata speichert die Feld-Metadaten des Backends.
func (s *Session) SetMetadata(m models.FieldMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = m
}

// Metadata gibt die zuletzt geladenen Feld-Metadaten zurück.
func (s *Session) Metadata() models.FieldMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// ApplyRecord übernimmt die kanonische Fassung eines Artikels in beide Sammlungen und,
// falls er gerade bearbeitet wird, in den Dialog. Die aktuelle Seite bleibt erhalten.
func (s *Session) ApplyRecord(rec models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ReplaceByID(rec)
	s.edit.Refresh(rec)
}

// CommitRecord übernimmt den Artikel wie ApplyRecord und führt fn im selben kritischen
// Abschnitt auf dem Bearbeitungsdialog aus.
func (s *Session) CommitRecord(rec models.Record, fn func(e *EditSession)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ReplaceByID(rec)
	s.edit.Refresh(rec)
	if fn != nil {
		fn(&s.edit)
	}
}

// ApplySelection übernimmt den vom Server bestätigten Auswahlstatus.
func (s *Session) ApplySelection(id int, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.PatchByID(id, func(r *models.Record) { r.Selected = selected })
	if s.edit.ArticleID == id && s.edit.State != EditClosed {
		s.edit.Record.Selected = selected
	}
}

// Edit führt fn unter dem Lock auf dem Bearbeitungsdialog aus.
func (s *Session) Edit(fn func(e *EditSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.edit)
}

// EditView gibt eine Kopie des Bearbeitungsdialogs zurück.
func (s *Session) EditView() EditSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edit.Clone()
}

// Flash setzt die nächste anzuzeigende Nachricht.
func (s *Session) Flash(kind FlashKind, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = &Flash{Kind: kind, Text: text}
}

// PeekFlash liest die Nachricht, ohne sie zu verbrauchen.
func (s *Session) PeekFlash() *Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flash == nil {
		return nil
	}
	f := *s.flash
	return &f
}

// SetPending merkt sich eine CSV-Datei bis zur Bestätigung.
func (s *Session) SetPending(p *PendingImport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = p
}

// TakePending gibt die wartende CSV-Datei zurück und entfernt sie.
func (s *Session) TakePending() *PendingImport {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending
	s.pending = nil
	return p
}

// SetBusy setzt oder löscht einen Ladeindikator.
func (s *Session) SetBusy(op string, busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if busy {
		s.busy[op] = true
	} else {
		delete(s.busy, op)
	}
}

// Busy meldet, ob ein Ladeindikator aktiv ist.
func (s *Session) Busy(op string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[op]
}

// Touch aktualisiert den Zeitpunkt der letzten Anfrage.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

// LastSeen gibt den Zeitpunkt der letzten Anfrage zurück.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Snapshot ist eine unveränderliche Kopie des Zustands für die Darstellung.
type Snapshot struct {
	Loaded   bool
	Filter   Filter
	Columns  Columns
	Page     PageResult
	Window   []int
	AllCount int
	Edit     EditSession
	Flash    *Flash
	Pending  *PendingSummary
	Busy     map[string]bool
}

// PendingSummary ist der darstellbare Teil eines wartenden Imports.
type PendingSummary struct {
	Filename string
	Check    models.ImportCheck
}

// Snapshot erstellt eine Kopie des Zustands und verbraucht dabei die Nachricht.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, _ := s.store.Len()
	page := Paginate(s.store.Filtered(), s.page, s.pageSize)
	snap := Snapshot{
		Loaded:   s.loaded,
		Filter:   s.filter,
		Columns:  s.columns.Clone(),
		Page:     page,
		Window:   PageWindow(page.Page, page.TotalPages),
		AllCount: all,
		Edit:     s.edit.Clone(),
		Flash:    s.flash,
		Busy:     make(map[string]bool, len(s.busy)),
	}
	for k, v := range s.busy {
		snap.Busy[k] = v
	}
	if s.pending != nil {
		snap.Pending = &PendingSummary{Filename: s.pending.Filename, Check: s.pending.Check}
	}
	s.flash = nil
	return snap
}
