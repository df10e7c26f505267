package provider

import (
	"context"
	"fmt"

	"github.com/lingopipe/lingopipe"
)

// MockProvider is a scriptable provider for testing.
type MockProvider struct {
	ProviderName string            // Name returned by Name() (default: "mock")
	Translations map[string]string // Map of source text to translation
	DetectedLang string            // Language reported for AutoDetect requests
	Confidence   float64           // Confidence reported alongside DetectedLang
	Err          error             // When set, every call fails with this error
	CallCount    int               // Number of calls made
	LastRequest  *Request          // Last translate request received
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":       "Hola",
			"World":       "Mundo",
			"Hello World": "Hola Mundo",
			"Good night":  "Buenas noches",
		},
		DetectedLang: "en",
		Confidence:   0.99,
	}
}

// Name implements Provider.
func (m *MockProvider) Name() string {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return "mock"
}

// Translate returns scripted translations.
func (m *MockProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return nil, m.Err
	}

	text, ok := m.Translations[req.Text]
	if !ok {
		// Bracketed text marks unknown translations
		text = fmt.Sprintf("[%s]", req.Text)
	}

	result := &Result{
		Text:     text,
		Source:   req.Source,
		Target:   req.Target,
		Provider: m.Name(),
	}
	if req.Source == lingopipe.AutoDetect {
		result.DetectedLang = m.DetectedLang
		result.Confidence = m.Confidence
	}
	return result, nil
}

// Detect returns the scripted detection.
func (m *MockProvider) Detect(ctx context.Context, text string) (*Detection, error) {
	m.CallCount++

	if m.Err != nil {
		return nil, m.Err
	}

	return &Detection{
		Lang:       m.DetectedLang,
		Confidence: m.Confidence,
		Provider:   m.Name(),
	}, nil
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
