package lingopipe

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestHistory_AddAndEntries(t *testing.T) {
	h := NewHistory(10)

	h.Add(HistoryEntry{SourceText: "Hello", TranslatedText: "Hola", Source: "en", Target: "es"})
	h.Add(HistoryEntry{SourceText: "World", TranslatedText: "Mundo", Source: "en", Target: "es"})

	entries := h.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	// Newest first.
	if entries[0].SourceText != "World" {
		t.Errorf("Expected newest entry first, got %q", entries[0].SourceText)
	}
	if entries[1].SourceText != "Hello" {
		t.Errorf("Expected oldest entry last, got %q", entries[1].SourceText)
	}
}

func TestHistory_FillsIDAndTime(t *testing.T) {
	h := NewHistory(10)
	h.Add(HistoryEntry{SourceText: "Hello"})

	entry := h.Entries()[0]
	if entry.ID == "" {
		t.Error("Expected generated ID")
	}
	if entry.Time.IsZero() {
		t.Error("Expected timestamp to be filled in")
	}
}

func TestHistory_TrimsToSize(t *testing.T) {
	h := NewHistory(3)

	for _, text := range []string{"a", "b", "c", "d", "e"} {
		h.Add(HistoryEntry{SourceText: text})
	}

	entries := h.Entries()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].SourceText != "e" || entries[2].SourceText != "c" {
		t.Errorf("Expected newest three entries, got %q..%q", entries[0].SourceText, entries[2].SourceText)
	}
}

func TestHistory_DefaultSize(t *testing.T) {
	h := NewHistory(0)
	if h.Size() != DefaultHistorySize {
		t.Errorf("Expected default size %d, got %d", DefaultHistorySize, h.Size())
	}

	for i := 0; i < DefaultHistorySize+5; i++ {
		h.Add(HistoryEntry{SourceText: "x"})
	}
	if h.Len() != DefaultHistorySize {
		t.Errorf("Expected %d entries, got %d", DefaultHistorySize, h.Len())
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(10)
	h.Add(HistoryEntry{SourceText: "Hello"})
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Expected empty history, got %d entries", h.Len())
	}
}

func TestHistory_EntriesReturnsCopy(t *testing.T) {
	h := NewHistory(10)
	h.Add(HistoryEntry{SourceText: "Hello"})

	entries := h.Entries()
	entries[0].SourceText = "mutated"

	if h.Entries()[0].SourceText != "Hello" {
		t.Error("Mutating the returned slice must not affect the history")
	}
}

func TestHistory_Export(t *testing.T) {
	h := NewHistory(10)
	h.Add(HistoryEntry{SourceText: "Hello", TranslatedText: "Hola", Source: "en", Target: "es", Provider: "mock"})

	var buf bytes.Buffer
	if err := h.Export(&buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export struct {
		Version    string         `json:"version"`
		ExportedAt string         `json:"exported_at"`
		Entries    []HistoryEntry `json:"entries"`
	}
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Invalid export JSON: %v", err)
	}

	if export.Version != "1.0" {
		t.Errorf("Expected version '1.0', got %q", export.Version)
	}
	if export.ExportedAt == "" {
		t.Error("Expected exported_at timestamp")
	}
	if len(export.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(export.Entries))
	}
	if export.Entries[0].TranslatedText != "Hola" {
		t.Errorf("Expected 'Hola', got %q", export.Entries[0].TranslatedText)
	}
}

func TestHistory_ConcurrentAccess(t *testing.T) {
	h := NewHistory(10)
	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				h.Add(HistoryEntry{SourceText: "x"})
				h.Entries()
				h.Len()
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	if h.Len() != 10 {
		t.Errorf("Expected history at capacity, got %d", h.Len())
	}
}
