package tts

import (
	"context"
	"io"

	"github.com/lingopipe/lingopipe"
	"github.com/sashabaranov/go-openai"
)

// OpenAISynthesizer produces speech via the OpenAI speech API.
type OpenAISynthesizer struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
	speed  float64
}

// OpenAIConfig holds configuration for the OpenAI synthesizer.
type OpenAIConfig struct {
	APIKey  string  // OpenAI API key
	Model   string  // TTS model (default: "tts-1")
	Voice   string  // Voice (default: "alloy")
	Speed   float64 // Speech speed, 0.25 to 4.0 (default: 1.0)
	BaseURL string  // Custom base URL (optional)
}

// NewOpenAISynthesizer creates a new OpenAI synthesizer.
func NewOpenAISynthesizer(cfg OpenAIConfig) *OpenAISynthesizer {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = string(openai.TTSModel1)
	}
	voice := cfg.Voice
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	speed := cfg.Speed
	if speed == 0 {
		speed = 1.0
	}

	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(config),
		model:  openai.SpeechModel(model),
		voice:  openai.SpeechVoice(voice),
		speed:  speed,
	}
}

// Name implements Synthesizer.
func (s *OpenAISynthesizer) Name() string {
	return "openai"
}

// Synthesize implements Synthesizer. The speech models detect the input
// language themselves, so lang only gates obviously unsupported input.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text, lang string) (*Audio, error) {
	text, _ = prepare(text, lang)

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		Speed:          s.speed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, &lingopipe.SynthesisError{
			Provider:  s.Name(),
			Message:   "API call failed",
			Cause:     err,
			Retryable: true,
		}
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, &lingopipe.SynthesisError{
			Provider:  s.Name(),
			Message:   "reading audio stream",
			Cause:     err,
			Retryable: true,
		}
	}

	return &Audio{
		Data:        data,
		ContentType: "audio/mpeg",
		Provider:    s.Name(),
	}, nil
}

// Verify OpenAISynthesizer implements Synthesizer
var _ Synthesizer = (*OpenAISynthesizer)(nil)
