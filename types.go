package lingopipe

import "context"

// AutoDetect is the pseudo language code that requests source detection.
const AutoDetect = "auto"

// MaxTextLen is the maximum accepted input length in runes.
const MaxTextLen = 5000

// MaxSpeechLen is the maximum text length for speech synthesis in runes.
// Longer input is truncated before synthesis.
const MaxSpeechLen = 2000

// Request contains the parameters for a translation request.
type Request struct {
	Text      string // Text to translate
	Source    string // Source language code, or AutoDetect
	Target    string // Target language code
	SkipCache bool   // Bypass the cache for this request
}

// Result is the outcome of a translation operation.
type Result struct {
	Text         string  // Translated text
	Source       string  // Resolved source language code
	Target       string  // Target language code
	DetectedLang string  // Detected source language (when Source was AutoDetect)
	Confidence   float64 // Detection confidence in [0, 1], 0 when unknown
	Provider     string  // Name of the provider that served the request
	Cached       bool    // Whether the result came from the cache
}

// Detection is the outcome of a language detection operation.
type Detection struct {
	Lang       string  // Detected language code
	Confidence float64 // Confidence in [0, 1], 0 when the backend reports none
	Provider   string  // Name of the provider that served the request
}

// Provider is the interface for translation backends.
type Provider interface {
	// Name returns a short identifier for the backend (e.g. "google").
	Name() string

	// Translate translates req.Text from req.Source to req.Target.
	// When req.Source is AutoDetect the backend detects the source language
	// and reports it in Result.DetectedLang where supported.
	Translate(ctx context.Context, req Request) (*Result, error)

	// Detect identifies the language of the given text.
	Detect(ctx context.Context, text string) (*Detection, error)
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
