package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lingopipe/lingopipe"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider translates via OpenAI chat completions. Slower and paid,
// but handles register and idiom better than the web endpoints, so it is
// usually configured as the last fallback.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Translate implements Provider.
func (p *OpenAIProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	content, err := p.complete(ctx, p.translateSystemPrompt(req), req.Text)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Translation      string `json:"translation"`
		DetectedLanguage string `json:"detected_language"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil || parsed.Translation == "" {
		return nil, &lingopipe.ProviderError{
			Provider: p.Name(),
			Message:  "invalid response format",
			Cause:    err,
		}
	}

	result := &Result{
		Text:     parsed.Translation,
		Source:   req.Source,
		Target:   req.Target,
		Provider: p.Name(),
	}
	if req.Source == lingopipe.AutoDetect && parsed.DetectedLanguage != "" {
		result.DetectedLang = parsed.DetectedLanguage
	}
	return result, nil
}

// Detect implements Provider.
func (p *OpenAIProvider) Detect(ctx context.Context, text string) (*Detection, error) {
	system := `You identify the language of user text. Return a valid JSON object:
{ "language": "<ISO 639-1 code>", "confidence": <0.0-1.0> }
Use "zh-CN" or "zh-TW" for Chinese and "iw" for Hebrew. Do not wrap the JSON in Markdown.`

	content, err := p.complete(ctx, system, text)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil || parsed.Language == "" {
		return nil, &lingopipe.ProviderError{
			Provider: p.Name(),
			Message:  "invalid response format",
			Cause:    err,
		}
	}

	return &Detection{
		Lang:       parsed.Language,
		Confidence: parsed.Confidence,
		Provider:   p.Name(),
	}, nil
}

func (p *OpenAIProvider) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &lingopipe.ProviderError{
			Provider:  p.Name(),
			Message:   "API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &lingopipe.ProviderError{
			Provider:  p.Name(),
			Message:   "no response choices",
			Retryable: true,
		}
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) translateSystemPrompt(req Request) string {
	targetName := lingopipe.LanguageName(req.Target)

	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert native translator. Translate the user's text into idiomatic %s.

- Avoid literal translations; the result must read naturally to a native speaker.
- Never translate idioms literally. Replace them with natural %s equivalents.
- Preserve meaningful whitespace and use idiomatic punctuation for the target language.
- Do NOT translate URLs, email addresses, or content inside backticks.
`, targetName, targetName)

	if req.Source == lingopipe.AutoDetect {
		b.WriteString(`
The source language is unknown. Identify it and report its ISO 639-1 code
(use "zh-CN"/"zh-TW" for Chinese and "iw" for Hebrew).
`)
	} else {
		fmt.Fprintf(&b, "\nThe source language is %s.\n", lingopipe.LanguageName(req.Source))
	}

	b.WriteString(`
Return a valid JSON object: { "translation": "<translated text>", "detected_language": "<code or empty>" }
Do not wrap the JSON in Markdown code blocks.`)

	return b.String()
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
