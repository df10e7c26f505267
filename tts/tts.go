// Package tts implements text-to-speech backends.
package tts

import (
	"context"
	"errors"

	"github.com/lingopipe/lingopipe"
	"github.com/rs/zerolog"
)

// Audio is synthesized speech.
type Audio struct {
	Data        []byte // Encoded audio bytes
	ContentType string // MIME type, e.g. "audio/mpeg"
	Provider    string // Name of the backend that produced it
}

// Synthesizer converts text to Audio.
type Synthesizer interface {
	// Name returns a short identifier for the backend.
	Name() string

	// Synthesize generates speech for text in the given language.
	// Text longer than lingopipe.MaxSpeechLen runes is truncated.
	Synthesize(ctx context.Context, text, lang string) (*Audio, error)
}

// FallbackSynthesizer chains synthesizers in order; each fallback is
// invoked only when the previous one fails.
type FallbackSynthesizer struct {
	synths []Synthesizer
	log    zerolog.Logger
}

// NewFallbackSynthesizer creates a synthesizer chain.
func NewFallbackSynthesizer(log zerolog.Logger, synths ...Synthesizer) *FallbackSynthesizer {
	return &FallbackSynthesizer{synths: synths, log: log}
}

// Name implements Synthesizer.
func (f *FallbackSynthesizer) Name() string {
	if len(f.synths) == 1 {
		return f.synths[0].Name()
	}
	return "fallback"
}

// Synthesize tries each backend in order and returns the first success.
func (f *FallbackSynthesizer) Synthesize(ctx context.Context, text, lang string) (*Audio, error) {
	var errs []error

	for _, s := range f.synths {
		audio, err := s.Synthesize(ctx, text, lang)
		if err == nil {
			return audio, nil
		}

		f.log.Warn().
			Err(err).
			Str("synthesizer", s.Name()).
			Msg("speech synthesis failed, trying next")
		errs = append(errs, err)

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
	}

	if len(errs) == 0 {
		return nil, &lingopipe.SynthesisError{Message: "no synthesizers configured"}
	}
	return nil, &lingopipe.SynthesisError{
		Message: "all synthesizers failed",
		Cause:   errors.Join(errs...),
	}
}

// prepare truncates over-long text and normalizes the language code.
// Unsupported languages are passed through; the backend decides whether
// to reject them.
func prepare(text, lang string) (string, string) {
	text = lingopipe.Truncate(text, lingopipe.MaxSpeechLen)
	lang = lingopipe.NormalizeCode(lang)
	return text, lang
}
