// Package debuglog is a development-only ring buffer of fetched payloads.
// Outside development the sink is inert: every method is a no-op so callers
// never have to guard their Add calls.
package debuglog

import (
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

type Kind string

const (
	KindServer Kind = "server"
	KindClient Kind = "client"
	KindAuth   Kind = "auth"
)

// maxEntries bounds the buffer; the oldest entry is evicted beyond it.
const maxEntries = 50

type Entry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Payload   any       `json:"payload"`
	Kind      Kind      `json:"kind"`
}

type Sink struct {
	mu      sync.Mutex
	enabled bool
	visible bool
	entries []Entry // newest first
}

// New returns a live sink when enabled, an inert one otherwise.
func New(enabled bool) *Sink {
	return &Sink{enabled: enabled}
}

// Add records a payload at the front of the buffer. An entry with the same
// source and a structurally equal payload as the current newest entry is
// dropped to keep duplicate fetch logging from flooding the buffer.
func (s *Sink) Add(source string, payload any, kind Kind) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > 0 {
		newest := s.entries[0]
		if newest.Source == source && cmp.Equal(newest.Payload, payload) {
			return
		}
	}

	entry := Entry{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Source:    source,
		Payload:   payload,
		Kind:      kind,
	}
	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > maxEntries {
		s.entries = s.entries[:maxEntries]
	}
}

// Entries returns a copy, newest first.
func (s *Sink) Entries() []Entry {
	if !s.enabled {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Sink) Len() int {
	if !s.enabled {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sink) Clear() {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// SetVisible toggles the debug panel independently of buffer contents.
func (s *Sink) SetVisible(v bool) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = v
}

func (s *Sink) Visible() bool {
	if !s.enabled {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Enabled reports whether the sink is live (development builds only).
func (s *Sink) Enabled() bool {
	return s.enabled
}
