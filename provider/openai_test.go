package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lingopipe/lingopipe"
)

// openAITestServer serves canned chat completion content.
func openAITestServer(t *testing.T, content string) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]interface{}{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		})
	}))
	t.Cleanup(server.Close)

	return NewOpenAIProvider(OpenAIConfig{APIKey: "test", BaseURL: server.URL})
}

func TestOpenAIProvider_Translate(t *testing.T) {
	p := openAITestServer(t, `{"translation": "Hola Mundo", "detected_language": "en"}`)

	result, err := p.Translate(context.Background(), Request{
		Text:   "Hello World",
		Source: lingopipe.AutoDetect,
		Target: "es",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if result.Text != "Hola Mundo" {
		t.Errorf("Expected 'Hola Mundo', got %q", result.Text)
	}
	if result.DetectedLang != "en" {
		t.Errorf("Expected detected 'en', got %q", result.DetectedLang)
	}
	if result.Provider != "openai" {
		t.Errorf("Expected provider 'openai', got %q", result.Provider)
	}
}

func TestOpenAIProvider_Translate_InvalidJSON(t *testing.T) {
	p := openAITestServer(t, "Hola Mundo")

	if _, err := p.Translate(context.Background(), Request{Text: "Hello", Source: "en", Target: "es"}); err == nil {
		t.Error("Expected error for non-JSON model output")
	}
}

func TestOpenAIProvider_Detect(t *testing.T) {
	p := openAITestServer(t, `{"language": "fr", "confidence": 0.95}`)

	detection, err := p.Detect(context.Background(), "Bonjour le monde")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if detection.Lang != "fr" {
		t.Errorf("Expected 'fr', got %q", detection.Lang)
	}
	if detection.Confidence != 0.95 {
		t.Errorf("Expected confidence 0.95, got %v", detection.Confidence)
	}
}

func TestOpenAIProvider_TranslateSystemPrompt(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	prompt := p.translateSystemPrompt(Request{Source: "en", Target: "es"})
	if !strings.Contains(prompt, "Spanish") {
		t.Error("Prompt should name the target language")
	}
	if !strings.Contains(prompt, "English") {
		t.Error("Prompt should name the known source language")
	}

	autoPrompt := p.translateSystemPrompt(Request{Source: lingopipe.AutoDetect, Target: "es"})
	if !strings.Contains(autoPrompt, "unknown") {
		t.Error("Auto prompt should ask for source identification")
	}
	if !strings.Contains(autoPrompt, "ISO 639-1") {
		t.Error("Auto prompt should name the code standard")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"rate limit exceeded", true},
		{"request timeout", true},
		{"connection refused", true},
		{"error, status code: 503", true},
		{"error, status code: 429", true},
		{"invalid api key", false},
		{"model not found", false},
	}

	for _, tt := range tests {
		if got := isRetryableError(errors.New(tt.msg)); got != tt.want {
			t.Errorf("isRetryableError(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
