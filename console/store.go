// Package console hält den Ansichtszustand einer Browser-Sitzung: die Artikelliste,
// die gefilterte Sicht, Seitenwechsel, Spaltenauswahl und den Bearbeitungsdialog.
package console

import (
	"sync"

	"article-admin/models"
)

// Store hält die vollständige Artikelliste (all) und die gefilterte Sicht (filtered).
// Beide Slices besitzen eigene Kopien der Datensätze; ein Patch muss deshalb immer beide treffen.
type Store struct {
	mu       sync.RWMutex
	all      []models.Record
	filtered []models.Record
}

// NewStore erstellt einen leeren Store.
func NewStore() *Store {
	return &Store{}
}

// SetAll ersetzt die vollständige Liste. Die Reihenfolge entspricht der des Servers.
func (s *Store) SetAll(records []models.Record) {
	cp := cloneRecords(records)
	s.mu.Lock()
	s.all = cp
	s.mu.Unlock()
}

// SetFiltered ersetzt die gefilterte Sicht.
func (s *Store) SetFiltered(records []models.Record) {
	cp := cloneRecords(records)
	s.mu.Lock()
	s.filtered = cp
	s.mu.Unlock()
}

// All gibt eine Kopie der vollständigen Liste zurück.
func (s *Store) All() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.all)
}

// Filtered gibt eine Kopie der gefilterten Sicht zurück.
func (s *Store) Filtered() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.filtered)
}

// Get sucht einen Datensatz in der vollständigen Liste.
func (s *Store) Get(id int) (models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.all, id); i >= 0 {
		return s.all[i], true
	}
	return models.Record{}, false
}

// PatchByID wendet apply auf den Eintrag mit der ID in beiden Sammlungen an.
// Beide Änderungen geschehen im selben kritischen Abschnitt. Fehlt die ID in einer
// Sammlung, passiert dort nichts.
func (s *Store) PatchByID(id int, apply func(*models.Record)) (inAll, inFiltered bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.all, id); i >= 0 {
		apply(&s.all[i])
		inAll = true
	}
	if i := indexOf(s.filtered, id); i >= 0 {
		apply(&s.filtered[i])
		inFiltered = true
	}
	return inAll, inFiltered
}

// ReplaceByID ersetzt den Eintrag mit rec.ID vollständig durch rec.
func (s *Store) ReplaceByID(rec models.Record) (inAll, inFiltered bool) {
	return s.PatchByID(rec.ID, func(r *models.Record) { *r = rec })
}

// Len gibt die Größe beider Sammlungen zurück.
func (s *Store) Len() (all, filtered int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.all), len(s.filtered)
}

func indexOf(records []models.Record, id int) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneRecords(records []models.Record) []models.Record {
	if records == nil {
		return nil
	}
	out := make([]models.Record, len(records))
	copy(out, records)
	return out
}
