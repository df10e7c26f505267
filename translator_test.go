package lingopipe

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockProvider is a simple scriptable provider for testing
type mockProvider struct {
	translations map[string]string
	detected     string
	confidence   float64
	err          error
	callCount    int
	lastRequest  Request
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		translations: map[string]string{
			"Hello":       "Hola",
			"World":       "Mundo",
			"Hello World": "Hola Mundo",
			"Good night":  "Buenas noches",
		},
		detected:   "en",
		confidence: 0.99,
	}
}

func (m *mockProvider) Name() string {
	return "mock"
}

func (m *mockProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	m.callCount++
	m.lastRequest = req

	if m.err != nil {
		return nil, m.err
	}

	text, ok := m.translations[req.Text]
	if !ok {
		text = "[" + req.Text + "]"
	}

	result := &Result{
		Text:     text,
		Source:   req.Source,
		Target:   req.Target,
		Provider: m.Name(),
	}
	if req.Source == AutoDetect {
		result.DetectedLang = m.detected
		result.Confidence = m.confidence
	}
	return result, nil
}

func (m *mockProvider) Detect(ctx context.Context, text string) (*Detection, error) {
	m.callCount++
	if m.err != nil {
		return nil, m.err
	}
	return &Detection{Lang: m.detected, Confidence: m.confidence, Provider: m.Name()}, nil
}

// mockCache is a simple map-backed cache for testing
type mockCache struct {
	data   map[string]string
	setErr error
	gets   int
	sets   int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]string)}
}

func (c *mockCache) Get(key string) (string, bool) {
	c.gets++
	val, ok := c.data[key]
	return val, ok
}

func (c *mockCache) Set(key string, value string) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func TestService_BasicTranslation(t *testing.T) {
	provider := newMockProvider()
	svc := NewService(provider)

	result, err := svc.Translate(context.Background(), Request{
		Text:   "Hello",
		Source: "en",
		Target: "es",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if result.Text != "Hola" {
		t.Errorf("Expected 'Hola', got %q", result.Text)
	}
	if result.Provider != "mock" {
		t.Errorf("Expected provider 'mock', got %q", result.Provider)
	}
	if result.Cached {
		t.Error("Expected uncached result")
	}
}

func TestService_CacheHit(t *testing.T) {
	provider := newMockProvider()
	cache := newMockCache()
	svc := NewService(provider, WithCache(cache))

	ctx := context.Background()
	req := Request{Text: "Hello", Source: "en", Target: "es"}

	first, err := svc.Translate(ctx, req)
	if err != nil {
		t.Fatalf("First translate failed: %v", err)
	}
	if first.Cached {
		t.Error("First result should not be cached")
	}

	second, err := svc.Translate(ctx, req)
	if err != nil {
		t.Fatalf("Second translate failed: %v", err)
	}
	if !second.Cached {
		t.Error("Second result should be cached")
	}
	if second.Text != "Hola" {
		t.Errorf("Expected cached 'Hola', got %q", second.Text)
	}
	if second.Provider != "cache" {
		t.Errorf("Expected provider 'cache', got %q", second.Provider)
	}

	if provider.callCount != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.callCount)
	}
}

func TestService_SkipCache(t *testing.T) {
	provider := newMockProvider()
	cache := newMockCache()
	svc := NewService(provider, WithCache(cache))

	ctx := context.Background()
	req := Request{Text: "Hello", Source: "en", Target: "es"}

	if _, err := svc.Translate(ctx, req); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	req.SkipCache = true
	result, err := svc.Translate(ctx, req)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.Cached {
		t.Error("SkipCache result should not be cached")
	}
	if provider.callCount != 2 {
		t.Errorf("Expected 2 provider calls, got %d", provider.callCount)
	}
}

func TestService_CacheSetFailure(t *testing.T) {
	provider := newMockProvider()
	cache := newMockCache()
	cache.setErr = errors.New("backend down")
	svc := NewService(provider, WithCache(cache))

	// A failed cache write must not fail the translation.
	result, err := svc.Translate(context.Background(), Request{
		Text: "Hello", Source: "en", Target: "es",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.Text != "Hola" {
		t.Errorf("Expected 'Hola', got %q", result.Text)
	}
}

func TestService_AutoDetect(t *testing.T) {
	provider := newMockProvider()
	svc := NewService(provider)

	result, err := svc.Translate(context.Background(), Request{
		Text:   "Hello",
		Source: AutoDetect,
		Target: "es",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if result.Source != "en" {
		t.Errorf("Expected detected source 'en', got %q", result.Source)
	}
	if result.DetectedLang != "en" {
		t.Errorf("Expected DetectedLang 'en', got %q", result.DetectedLang)
	}
}

func TestService_AutoDetect_UnknownLanguage(t *testing.T) {
	provider := newMockProvider()
	provider.detected = "xx"
	svc := NewService(provider)

	result, err := svc.Translate(context.Background(), Request{
		Text:   "Hello",
		Source: AutoDetect,
		Target: "es",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	// Unknown detection keeps the requested source.
	if result.Source != AutoDetect {
		t.Errorf("Expected source to stay %q, got %q", AutoDetect, result.Source)
	}
}

func TestService_NormalizesLanguageCodes(t *testing.T) {
	provider := newMockProvider()
	svc := NewService(provider)

	_, err := svc.Translate(context.Background(), Request{
		Text:   "Hello",
		Source: "EN",
		Target: "zh_cn",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if provider.lastRequest.Source != "en" {
		t.Errorf("Expected normalized source 'en', got %q", provider.lastRequest.Source)
	}
	if provider.lastRequest.Target != "zh-CN" {
		t.Errorf("Expected normalized target 'zh-CN', got %q", provider.lastRequest.Target)
	}
}

func TestService_ValidationErrors(t *testing.T) {
	svc := NewService(newMockProvider())
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
	}{
		{"empty text", Request{Text: "  ", Source: "en", Target: "es"}},
		{"target auto", Request{Text: "Hello", Source: "en", Target: "auto"}},
		{"same languages", Request{Text: "Hello", Source: "es", Target: "es"}},
		{"unknown source", Request{Text: "Hello", Source: "xx", Target: "es"}},
		{"unknown target", Request{Text: "Hello", Source: "en", Target: "xx"}},
		{"too long", Request{Text: strings.Repeat("a", MaxTextLen+1), Source: "en", Target: "es"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Translate(ctx, tt.req)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("Expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestService_SanitizesInput(t *testing.T) {
	provider := newMockProvider()
	svc := NewService(provider)

	_, err := svc.Translate(context.Background(), Request{
		Text:   "  Hello   World  ",
		Source: "en",
		Target: "es",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if provider.lastRequest.Text != "Hello World" {
		t.Errorf("Expected sanitized 'Hello World', got %q", provider.lastRequest.Text)
	}
}

func TestService_ProviderError(t *testing.T) {
	provider := newMockProvider()
	provider.err = &ProviderError{Provider: "mock", Message: "boom"}
	svc := NewService(provider)

	_, err := svc.Translate(context.Background(), Request{
		Text: "Hello", Source: "en", Target: "es",
	})
	if err == nil {
		t.Fatal("Expected error")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Errorf("Expected ProviderError, got %T", err)
	}
}

func TestService_RecordsHistory(t *testing.T) {
	provider := newMockProvider()
	history := NewHistory(10)
	svc := NewService(provider, WithHistory(history))

	_, err := svc.Translate(context.Background(), Request{
		Text: "Hello", Source: "en", Target: "es",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	entries := history.Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(entries))
	}
	if entries[0].SourceText != "Hello" {
		t.Errorf("Expected source text 'Hello', got %q", entries[0].SourceText)
	}
	if entries[0].TranslatedText != "Hola" {
		t.Errorf("Expected translated text 'Hola', got %q", entries[0].TranslatedText)
	}
	if entries[0].ID == "" {
		t.Error("Expected entry ID to be filled in")
	}
}

func TestService_Detect(t *testing.T) {
	provider := newMockProvider()
	svc := NewService(provider)

	detection, err := svc.Detect(context.Background(), "Hello world")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if detection.Lang != "en" {
		t.Errorf("Expected 'en', got %q", detection.Lang)
	}
	if detection.Confidence != 0.99 {
		t.Errorf("Expected confidence 0.99, got %v", detection.Confidence)
	}
}

func TestService_Detect_UnknownLanguage(t *testing.T) {
	provider := newMockProvider()
	provider.detected = "xx"
	svc := NewService(provider)

	_, err := svc.Detect(context.Background(), "Hello")
	if err == nil {
		t.Fatal("Expected error")
	}

	var detErr *DetectionError
	if !errors.As(err, &detErr) {
		t.Errorf("Expected DetectionError, got %T", err)
	}
	if detErr.Lang != "xx" {
		t.Errorf("Expected offending code 'xx', got %q", detErr.Lang)
	}
}

func TestService_Detect_NormalizesCode(t *testing.T) {
	provider := newMockProvider()
	provider.detected = "he"
	svc := NewService(provider)

	detection, err := svc.Detect(context.Background(), "שלום")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if detection.Lang != "iw" {
		t.Errorf("Expected normalized 'iw', got %q", detection.Lang)
	}
}

func TestService_Accessors(t *testing.T) {
	provider := newMockProvider()
	cache := newMockCache()
	history := NewHistory(5)
	svc := NewService(provider, WithCache(cache), WithHistory(history))

	if svc.Provider() != provider {
		t.Error("Provider() returned wrong provider")
	}
	if svc.Cache() != cache {
		t.Error("Cache() returned wrong cache")
	}
	if svc.History() != history {
		t.Error("History() returned wrong history")
	}
}
