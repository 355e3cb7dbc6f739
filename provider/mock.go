package provider

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is a mock AI provider for testing. It implements both
// AIProvider and SpeechProvider.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	CallCount    int               // Number of times Translate was called
	SpeechCount  int               // Number of times Synthesize was called
	LastRequest  *TranslateRequest // Last translation request received
	LastSpeech   *SpeechRequest    // Last speech request received
	Err          error             // Returned by both methods when set

	mu sync.Mutex
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
	}
}

// Translate returns mock translations.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastRequest = &req
	if m.Err != nil {
		return nil, m.Err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if translation, ok := m.Translations[text]; ok {
			results[i] = translation
		} else {
			// Return bracketed text for unknown translations
			results[i] = fmt.Sprintf("[%s]", text)
		}
	}

	return results, nil
}

// Synthesize returns fake MP3 bytes that embed the language and text.
func (m *MockProvider) Synthesize(ctx context.Context, req SpeechRequest) (*Audio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SpeechCount++
	m.LastSpeech = &req
	if m.Err != nil {
		return nil, m.Err
	}

	return &Audio{
		Data:        []byte(fmt.Sprintf("ID3 %s %s", req.Language, req.Text)),
		Format:      "mp3",
		ContentType: "audio/mpeg",
	}, nil
}

// Reset resets the call counts and last requests.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount = 0
	m.SpeechCount = 0
	m.LastRequest = nil
	m.LastSpeech = nil
}

// Verify MockProvider implements both provider interfaces
var (
	_ AIProvider     = (*MockProvider)(nil)
	_ SpeechProvider = (*MockProvider)(nil)
)
