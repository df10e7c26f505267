package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lingopipe/lingopipe"
)

const defaultGoogleTTSEndpoint = "https://translate.google.com/translate_tts"

// googleChunkLen is the endpoint's per-request text limit in runes.
const googleChunkLen = 200

// GoogleSynthesizer produces speech via the Google Translate TTS endpoint.
// Text beyond the per-request limit is split at word boundaries and the
// resulting MP3 segments are concatenated.
type GoogleSynthesizer struct {
	endpoint string
	client   *http.Client
	slow     bool
}

// GoogleConfig holds configuration for the Google synthesizer.
type GoogleConfig struct {
	Endpoint string        // Override the TTS endpoint (used in tests)
	Timeout  time.Duration // HTTP timeout (default: 15s)
	Client   *http.Client  // Custom HTTP client (optional)
	Slow     bool          // Request slow speech
}

// NewGoogleSynthesizer creates a new Google synthesizer.
func NewGoogleSynthesizer(cfg GoogleConfig) *GoogleSynthesizer {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultGoogleTTSEndpoint
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &GoogleSynthesizer{
		endpoint: endpoint,
		client:   client,
		slow:     cfg.Slow,
	}
}

// Name implements Synthesizer.
func (s *GoogleSynthesizer) Name() string {
	return "google"
}

// Synthesize implements Synthesizer.
func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text, lang string) (*Audio, error) {
	text, lang = prepare(text, lang)

	if !lingopipe.IsSpeechSupported(lang) {
		return nil, &lingopipe.SynthesisError{
			Provider: s.Name(),
			Message:  "unsupported language: " + lang,
		}
	}

	var buf bytes.Buffer
	for _, chunk := range SplitText(text, googleChunkLen) {
		data, err := s.fetchChunk(ctx, chunk, lang)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}

	return &Audio{
		Data:        buf.Bytes(),
		ContentType: "audio/mpeg",
		Provider:    s.Name(),
	}, nil
}

func (s *GoogleSynthesizer) fetchChunk(ctx context.Context, chunk, lang string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", lang)
	params.Set("q", chunk)
	if s.slow {
		params.Set("ttsspeed", "0.3")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &lingopipe.SynthesisError{
			Provider: s.Name(),
			Message:  "building request",
			Cause:    err,
		}
	}
	httpReq.Header.Set("User-Agent", lingopipe.UserAgent())

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &lingopipe.SynthesisError{
			Provider:  s.Name(),
			Message:   "request failed",
			Cause:     err,
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &lingopipe.SynthesisError{
			Provider:  s.Name(),
			Message:   fmt.Sprintf("unexpected status %d", resp.StatusCode),
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &lingopipe.SynthesisError{
			Provider:  s.Name(),
			Message:   "reading response",
			Cause:     err,
			Retryable: true,
		}
	}
	return data, nil
}

// SplitText splits text into chunks of at most maxLen runes, breaking at
// word boundaries where possible. Words longer than maxLen are split hard.
func SplitText(text string, maxLen int) []string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(runes) > 0 {
		if len(runes) <= maxLen {
			chunks = append(chunks, string(runes))
			break
		}

		cut := maxLen
		for i := maxLen; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}

		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}

	return chunks
}

// Verify GoogleSynthesizer implements Synthesizer
var _ Synthesizer = (*GoogleSynthesizer)(nil)
