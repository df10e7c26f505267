package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lingopipe/lingopipe"
)

// LibreTranslateProvider translates via a LibreTranslate instance.
type LibreTranslateProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// LibreTranslateConfig holds configuration for the LibreTranslate provider.
type LibreTranslateConfig struct {
	Endpoint string        // Base URL, e.g. "https://libretranslate.com" or a local instance
	APIKey   string        // Optional API key
	Timeout  time.Duration // HTTP timeout (default: 10s)
	Client   *http.Client  // Custom HTTP client (optional)
}

// NewLibreTranslateProvider creates a new LibreTranslate provider.
func NewLibreTranslateProvider(cfg LibreTranslateConfig) *LibreTranslateProvider {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &LibreTranslateProvider{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		client:   client,
	}
}

// Name implements Provider.
func (p *LibreTranslateProvider) Name() string {
	return "libretranslate"
}

// Translate implements Provider.
func (p *LibreTranslateProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	payload := map[string]interface{}{
		"q":      req.Text,
		"source": p.sourceCode(req.Source),
		"target": baseCode(req.Target),
		"format": "text",
	}
	if p.apiKey != "" {
		payload["api_key"] = p.apiKey
	}

	var response struct {
		TranslatedText   string `json:"translatedText"`
		DetectedLanguage *struct {
			Confidence float64 `json:"confidence"`
			Language   string  `json:"language"`
		} `json:"detectedLanguage"`
	}
	if err := p.post(ctx, "/translate", payload, &response); err != nil {
		return nil, err
	}

	result := &Result{
		Text:     response.TranslatedText,
		Source:   req.Source,
		Target:   req.Target,
		Provider: p.Name(),
	}
	if req.Source == lingopipe.AutoDetect && response.DetectedLanguage != nil {
		result.DetectedLang = response.DetectedLanguage.Language
		// LibreTranslate reports confidence as a 0-100 percentage.
		result.Confidence = response.DetectedLanguage.Confidence / 100
	}
	return result, nil
}

// Detect implements Provider.
func (p *LibreTranslateProvider) Detect(ctx context.Context, text string) (*Detection, error) {
	payload := map[string]interface{}{"q": text}
	if p.apiKey != "" {
		payload["api_key"] = p.apiKey
	}

	var response []struct {
		Confidence float64 `json:"confidence"`
		Language   string  `json:"language"`
	}
	if err := p.post(ctx, "/detect", payload, &response); err != nil {
		return nil, err
	}

	if len(response) == 0 {
		return nil, &lingopipe.ProviderError{
			Provider: p.Name(),
			Message:  "empty detection response",
		}
	}

	// Candidates arrive ordered by confidence; the first is the best guess.
	return &Detection{
		Lang:       response[0].Language,
		Confidence: response[0].Confidence / 100,
		Provider:   p.Name(),
	}, nil
}

func (p *LibreTranslateProvider) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &lingopipe.ProviderError{
			Provider: p.Name(),
			Message:  "encoding request",
			Cause:    err,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return &lingopipe.ProviderError{
			Provider: p.Name(),
			Message:  "building request",
			Cause:    err,
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", lingopipe.UserAgent())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return &lingopipe.ProviderError{
			Provider:  p.Name(),
			Message:   "request failed",
			Cause:     err,
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &lingopipe.ProviderError{
			Provider:  p.Name(),
			Message:   fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			Retryable: retryableStatus(resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &lingopipe.ProviderError{
			Provider: p.Name(),
			Message:  "invalid response format",
			Cause:    err,
		}
	}
	return nil
}

// sourceCode maps the engine's source code onto LibreTranslate's,
// which uses "auto" as well but bare ISO codes otherwise.
func (p *LibreTranslateProvider) sourceCode(code string) string {
	if code == lingopipe.AutoDetect {
		return "auto"
	}
	return baseCode(code)
}

// baseCode strips a region suffix; LibreTranslate only accepts bare codes
// except for Chinese.
func baseCode(code string) string {
	switch code {
	case "zh-CN":
		return "zh"
	case "zh-TW":
		return "zt"
	case "iw":
		return "he"
	}
	return strings.SplitN(code, "-", 2)[0]
}

// Verify LibreTranslateProvider implements Provider
var _ Provider = (*LibreTranslateProvider)(nil)
