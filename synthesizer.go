package voxlai

import (
	"context"
	"strings"
)

// SpeechProvider is the interface for text-to-speech backends.
type SpeechProvider interface {
	Synthesize(ctx context.Context, req SpeechRequest) (*Audio, error)
}

// SpeechRequest contains the parameters for a provider synthesis request.
type SpeechRequest struct {
	Text     string
	Language string // BCP 47 code, e.g. "es-ES"
	Voice    string // Provider voice name; empty selects the provider default
}

// AudioStore persists synthesized audio and returns a URL the page can load.
type AudioStore interface {
	Save(ctx context.Context, audio *Audio) (string, error)
}

// Synthesizer turns text into stored speech audio.
type Synthesizer struct {
	provider SpeechProvider
	store    AudioStore
	cache    TranslationCache
	voice    string
}

// SynthesizerOption is a functional option for configuring the Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithAudioCache remembers the URL of stored audio per text, language and voice.
// Only use it with stores whose objects outlive the cache TTL.
func WithAudioCache(cache TranslationCache) SynthesizerOption {
	return func(s *Synthesizer) {
		s.cache = cache
	}
}

// WithVoice sets the voice passed to the provider.
func WithVoice(voice string) SynthesizerOption {
	return func(s *Synthesizer) {
		s.voice = voice
	}
}

// NewSynthesizer creates a Synthesizer that stores provider output in store.
func NewSynthesizer(provider SpeechProvider, store AudioStore, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		provider: provider,
		store:    store,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Synthesize speaks req.Text in req.Language and returns the URL of the stored audio.
func (s *Synthesizer) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, &SynthesisError{Message: "text is empty"}
	}

	lang := NormalizeLocale(req.Language)
	if lang == "" {
		return nil, &LanguageError{Code: req.Language}
	}

	cacheKey := AudioCacheKey(HashText(text), lang, s.voice)
	if s.cache != nil {
		if url, ok := s.cache.Get(cacheKey); ok {
			return &SynthesisResponse{AudioURL: url}, nil
		}
	}

	if s.provider == nil || s.store == nil {
		return nil, &SynthesisError{Message: "synthesizer is not configured"}
	}

	audio, err := s.provider.Synthesize(ctx, SpeechRequest{
		Text:     text,
		Language: lang,
		Voice:    s.voice,
	})
	if err != nil {
		return nil, &SynthesisError{Message: "speech provider failed", Cause: err}
	}
	if audio == nil || len(audio.Data) == 0 {
		return nil, &SynthesisError{Message: "provider returned no audio"}
	}

	url, err := s.store.Save(ctx, audio)
	if err != nil {
		return nil, &SynthesisError{Message: "storing audio", Cause: err}
	}

	if s.cache != nil {
		_ = s.cache.Set(cacheKey, url) // Ignore cache set errors
	}

	return &SynthesisResponse{AudioURL: url}, nil
}

// Voice returns the configured voice.
func (s *Synthesizer) Voice() string {
	return s.voice
}
