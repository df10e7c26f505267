package lingopipe

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultHistorySize is the number of recent translations kept by default.
const DefaultHistorySize = 10

// HistoryEntry is a single completed translation.
type HistoryEntry struct {
	ID             string    `json:"id"`
	Time           time.Time `json:"time"`
	SourceText     string    `json:"source_text"`
	TranslatedText string    `json:"translated_text"`
	Source         string    `json:"source"`
	Target         string    `json:"target"`
	Provider       string    `json:"provider"`
	Cached         bool      `json:"cached"`
}

// History is a bounded, thread-safe list of recent translations,
// newest first. Adding beyond capacity drops the oldest entry.
type History struct {
	mu      sync.RWMutex
	entries []HistoryEntry
	size    int
}

// NewHistory creates a history keeping the most recent size entries.
// A non-positive size falls back to DefaultHistorySize.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

// Add records an entry. ID and Time are filled in when empty.
func (h *History) Add(entry HistoryEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]HistoryEntry{entry}, h.entries...)
	if len(h.entries) > h.size {
		h.entries = h.entries[:h.size]
	}
}

// Entries returns a copy of the recorded entries, newest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Size returns the history capacity.
func (h *History) Size() int {
	return h.size
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// historyExport is the JSON structure for history export.
type historyExport struct {
	Version    string         `json:"version"`
	ExportedAt string         `json:"exported_at"`
	Entries    []HistoryEntry `json:"entries"`
}

// Export writes the history to a writer in JSON format, newest first.
func (h *History) Export(w io.Writer) error {
	export := historyExport{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    h.Entries(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ExportToFile exports the history to a file.
// The path is provided by the caller and is intentionally user-controlled.
func (h *History) ExportToFile(path string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return h.Export(f)
}
