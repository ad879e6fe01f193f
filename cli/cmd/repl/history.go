package repl

import (
	"strings"
	"sync"
)

// HistoryEntry represents a single history entry with its mode.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History holds the lines entered during a session. It is not persisted.
type History struct {
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{}
}

// Write appends an eval-mode entry.
func (h *History) Write(entry string) int {
	return h.WriteWithMode(entry, modeEval)
}

// WriteWithMode appends a new entry to the history with the specified mode.
// An earlier entry with the same line and mode is moved to the end rather
// than duplicated. It returns the number of entries.
func (h *History) WriteWithMode(entry string, mode inputMode) int {
	entry = strings.TrimSpace(entry)

	h.mu.Lock()
	defer h.mu.Unlock()

	if entry == "" {
		return len(h.entries)
	}

	for i, e := range h.entries {
		if e.Line == entry && e.Mode == mode {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)

			break
		}
	}

	h.entries = append(h.entries, HistoryEntry{Line: entry, Mode: mode})

	return len(h.entries)
}

// GetEntry retrieves a historic entry (line and mode) by index.
// Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns all history entries.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]HistoryEntry, len(h.entries))
	copy(result, h.entries)

	return result
}
