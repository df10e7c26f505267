package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lingopipe/lingopipe"
)

const defaultGoogleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleProvider translates via the unofficial Google Translate web endpoint.
// No API key is required; the endpoint reports the detected source language
// alongside the translation.
type GoogleProvider struct {
	endpoint string
	client   *http.Client
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	Endpoint string        // Override the translate endpoint (used in tests)
	Timeout  time.Duration // HTTP timeout (default: 10s)
	Client   *http.Client  // Custom HTTP client (optional)
}

// NewGoogleProvider creates a new Google provider.
func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultGoogleEndpoint
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &GoogleProvider{
		endpoint: endpoint,
		client:   client,
	}
}

// Name implements Provider.
func (p *GoogleProvider) Name() string {
	return "google"
}

// Translate implements Provider.
func (p *GoogleProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	translated, detected, confidence, err := p.call(ctx, req.Text, req.Source, req.Target)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Text:     translated,
		Source:   req.Source,
		Target:   req.Target,
		Provider: p.Name(),
	}
	if req.Source == lingopipe.AutoDetect && detected != "" {
		result.DetectedLang = detected
		result.Confidence = confidence
	}
	return result, nil
}

// Detect implements Provider. The endpoint has no standalone detect call;
// a throwaway translation to English carries the detected source language.
func (p *GoogleProvider) Detect(ctx context.Context, text string) (*Detection, error) {
	_, detected, confidence, err := p.call(ctx, text, lingopipe.AutoDetect, "en")
	if err != nil {
		return nil, err
	}
	if detected == "" {
		return nil, &lingopipe.ProviderError{
			Provider: p.Name(),
			Message:  "endpoint reported no detected language",
		}
	}
	return &Detection{
		Lang:       detected,
		Confidence: confidence,
		Provider:   p.Name(),
	}, nil
}

// call performs one endpoint request and parses the nested-array response.
func (p *GoogleProvider) call(ctx context.Context, text, source, target string) (translated, detected string, confidence float64, err error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", "", 0, &lingopipe.ProviderError{
			Provider: p.Name(),
			Message:  "building request",
			Cause:    err,
		}
	}
	httpReq.Header.Set("User-Agent", lingopipe.UserAgent())
	httpReq.Header.Set("Accept", "*/*")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", "", 0, &lingopipe.ProviderError{
			Provider:  p.Name(),
			Message:   "request failed",
			Cause:     err,
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", 0, &lingopipe.ProviderError{
			Provider:  p.Name(),
			Message:   fmt.Sprintf("unexpected status %d", resp.StatusCode),
			Retryable: retryableStatus(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", 0, &lingopipe.ProviderError{
			Provider:  p.Name(),
			Message:   "reading response",
			Cause:     err,
			Retryable: true,
		}
	}

	return parseGoogleResponse(p.Name(), body)
}

// parseGoogleResponse decodes the endpoint's positional JSON array:
// index 0 holds [translated, original, ...] segment pairs, index 2 the
// detected source language, index 6 (when present) the confidence.
func parseGoogleResponse(name string, body []byte) (translated, detected string, confidence float64, err error) {
	var payload []interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", 0, &lingopipe.ProviderError{
			Provider: name,
			Message:  "invalid response format",
			Cause:    err,
		}
	}

	if len(payload) == 0 {
		return "", "", 0, &lingopipe.ProviderError{
			Provider: name,
			Message:  "empty response",
		}
	}

	segments, ok := payload[0].([]interface{})
	if !ok {
		return "", "", 0, &lingopipe.ProviderError{
			Provider: name,
			Message:  "missing translation segments",
		}
	}

	var parts []string
	for _, seg := range segments {
		pair, ok := seg.([]interface{})
		if !ok || len(pair) == 0 {
			continue
		}
		if s, ok := pair[0].(string); ok {
			parts = append(parts, s)
		}
	}
	translated = strings.Join(parts, "")

	if len(payload) > 2 {
		if s, ok := payload[2].(string); ok {
			detected = s
		}
	}
	if len(payload) > 6 {
		if f, ok := payload[6].(float64); ok {
			confidence = f
		}
	}

	return translated, detected, confidence, nil
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// Verify GoogleProvider implements Provider
var _ Provider = (*GoogleProvider)(nil)
