package tts

import "context"

// MockSynthesizer is a scriptable synthesizer for testing.
type MockSynthesizer struct {
	SynthName string // Name returned by Name() (default: "mock")
	Data      []byte // Audio returned on success
	Err       error  // When set, every call fails with this error
	CallCount int
	LastText  string
	LastLang  string
}

// Name implements Synthesizer.
func (m *MockSynthesizer) Name() string {
	if m.SynthName != "" {
		return m.SynthName
	}
	return "mock"
}

// Synthesize implements Synthesizer.
func (m *MockSynthesizer) Synthesize(ctx context.Context, text, lang string) (*Audio, error) {
	m.CallCount++
	m.LastText, m.LastLang = prepare(text, lang)

	if m.Err != nil {
		return nil, m.Err
	}

	data := m.Data
	if data == nil {
		data = []byte("mp3")
	}
	return &Audio{
		Data:        data,
		ContentType: "audio/mpeg",
		Provider:    m.Name(),
	}, nil
}

// Verify MockSynthesizer implements Synthesizer
var _ Synthesizer = (*MockSynthesizer)(nil)
