package console

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry verwaltet die Sitzungen aller Browser.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	pageSize int
}

// NewRegistry erstellt eine leere Registry.
func NewRegistry(pageSize int) *Registry {
	return &Registry{sessions: make(map[string]*Session), pageSize: pageSize}
}

// Get sucht eine Sitzung.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Create legt eine neue Sitzung mit zufälliger ID an.
func (r *Registry) Create() *Session {
	s := NewSession(uuid.NewString(), r.pageSize)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Sweep entfernt Sitzungen, die länger als idle nicht benutzt wurden.
func (r *Registry) Sweep(now time.Time, idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if now.Sub(s.LastSeen()) > idle {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len gibt die Anzahl aktiver Sitzungen zurück.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
