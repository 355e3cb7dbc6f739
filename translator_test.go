package voxlai

import (
	"context"
	"errors"
	"testing"
)

// mockProvider is a simple mock for testing
type mockProvider struct {
	translations map[string]string
	callCount    int
	lastRequest  TranslateRequest
	err          error
	extra        bool // return one result too many
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		translations: map[string]string{
			"Hello":       "Hola",
			"World":       "Mundo",
			"Hello World": "Hola Mundo",
			"Good night":  "Buenas noches",
		},
	}
}

func (m *mockProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	m.callCount++
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if translation, ok := m.translations[text]; ok {
			results[i] = translation
		} else {
			results[i] = "[" + text + "]"
		}
	}
	if m.extra {
		results = append(results, "extra")
	}
	return results, nil
}

// mockCache is a simple mock cache for testing
type mockCache struct {
	data   map[string]string
	setErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]string)}
}

func (c *mockCache) Get(key string) (string, bool) {
	val, ok := c.data[key]
	return val, ok
}

func (c *mockCache) Set(key string, value string) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func TestTranslator_BasicTranslation(t *testing.T) {
	provider := newMockProvider()
	translator := NewTranslator(provider)

	result, err := translator.Translate(context.Background(), TranslationRequest{
		Text:           "Hello World",
		SourceLanguage: "en",
		TargetLanguage: "es",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if result.TranslatedText != "Hola Mundo" {
		t.Errorf("Expected 'Hola Mundo', got %q", result.TranslatedText)
	}

	if provider.lastRequest.SourceLang != "en" || provider.lastRequest.TargetLang != "es" {
		t.Errorf("Unexpected languages in request: %+v", provider.lastRequest)
	}
}

func TestTranslator_TrimsText(t *testing.T) {
	provider := newMockProvider()
	translator := NewTranslator(provider)

	result, err := translator.Translate(context.Background(), TranslationRequest{
		Text:           "  Hello \n",
		SourceLanguage: "en",
		TargetLanguage: "es",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if provider.lastRequest.Texts[0] != "Hello" {
		t.Errorf("Provider should receive trimmed text, got %q", provider.lastRequest.Texts[0])
	}
	if result.TranslatedText != "Hola" {
		t.Errorf("Expected 'Hola', got %q", result.TranslatedText)
	}
}

func TestTranslator_CacheHit(t *testing.T) {
	provider := newMockProvider()
	cache := newMockCache()

	translator := NewTranslator(provider, WithCache(cache), WithModel("gpt-4o-mini"))
	req := TranslationRequest{Text: "Hello", SourceLanguage: "en", TargetLanguage: "es"}

	// First call - should translate
	if _, err := translator.Translate(context.Background(), req); err != nil {
		t.Fatalf("First Translate failed: %v", err)
	}

	key := CacheKey(HashText("Hello"), "en", "es", "gpt-4o-mini")
	if cache.data[key] != "Hola" {
		t.Errorf("Expected cache entry %q, got %v", key, cache.data)
	}

	// Second call - should use cache
	result, err := translator.Translate(context.Background(), req)
	if err != nil {
		t.Fatalf("Second Translate failed: %v", err)
	}
	if result.TranslatedText != "Hola" {
		t.Errorf("Expected cached 'Hola', got %q", result.TranslatedText)
	}

	// Provider should only be called once
	if provider.callCount != 1 {
		t.Errorf("Provider should be called once, was called %d times", provider.callCount)
	}
}

func TestTranslator_CacheKeyIncludesLanguagePair(t *testing.T) {
	provider := newMockProvider()
	cache := newMockCache()
	translator := NewTranslator(provider, WithCache(cache))

	translator.Translate(context.Background(), TranslationRequest{Text: "Hello", SourceLanguage: "en", TargetLanguage: "es"})
	translator.Translate(context.Background(), TranslationRequest{Text: "Hello", SourceLanguage: "en", TargetLanguage: "fr"})

	if provider.callCount != 2 {
		t.Errorf("Different targets must not share cache entries, provider called %d times", provider.callCount)
	}
}

func TestTranslator_CacheSetErrorIgnored(t *testing.T) {
	cache := newMockCache()
	cache.setErr = errors.New("redis down")
	translator := NewTranslator(newMockProvider(), WithCache(cache))

	result, err := translator.Translate(context.Background(), TranslationRequest{Text: "Hello", SourceLanguage: "en", TargetLanguage: "es"})
	if err != nil {
		t.Fatalf("Cache set errors should be ignored, got: %v", err)
	}
	if result.TranslatedText != "Hola" {
		t.Errorf("Expected 'Hola', got %q", result.TranslatedText)
	}
}

func TestTranslator_SourceEqualsTarget(t *testing.T) {
	provider := newMockProvider()
	translator := NewTranslator(provider)

	result, err := translator.Translate(context.Background(), TranslationRequest{
		Text:           "Hello",
		SourceLanguage: "en",
		TargetLanguage: "en-US",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if result.TranslatedText != "Hello" {
		t.Errorf("Expected unchanged text, got %q", result.TranslatedText)
	}

	// Provider should not be called
	if provider.callCount != 0 {
		t.Errorf("Provider should not be called when source==target, was called %d times", provider.callCount)
	}
}

func TestTranslator_AutoDetectSource(t *testing.T) {
	provider := newMockProvider()
	translator := NewTranslator(provider)

	_, err := translator.Translate(context.Background(), TranslationRequest{Text: "Hello", TargetLanguage: "es"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if provider.lastRequest.SourceLang != "" {
		t.Errorf("Expected empty source language, got %q", provider.lastRequest.SourceLang)
	}
}

func TestTranslator_EmptyText(t *testing.T) {
	provider := newMockProvider()
	translator := NewTranslator(provider)

	result, err := translator.Translate(context.Background(), TranslationRequest{Text: "   ", SourceLanguage: "en", TargetLanguage: "es"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if result.TranslatedText != "" {
		t.Errorf("Expected empty translation, got %q", result.TranslatedText)
	}

	if provider.callCount != 0 {
		t.Errorf("Provider should not be called for empty text")
	}
}

func TestTranslator_MissingTarget(t *testing.T) {
	translator := NewTranslator(newMockProvider())

	_, err := translator.Translate(context.Background(), TranslationRequest{Text: "Hello", SourceLanguage: "en"})

	var langErr *LanguageError
	if !errors.As(err, &langErr) {
		t.Fatalf("Expected LanguageError, got %T (%v)", err, err)
	}
}

func TestTranslator_ProviderError(t *testing.T) {
	provider := newMockProvider()
	provider.err = &ProviderError{Message: "invalid API key"}
	translator := NewTranslator(provider)

	_, err := translator.Translate(context.Background(), TranslationRequest{Text: "Hello", SourceLanguage: "en", TargetLanguage: "es"})

	var transErr *TranslationError
	if !errors.As(err, &transErr) {
		t.Fatalf("Expected TranslationError, got %T", err)
	}

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Error("Expected wrapped ProviderError")
	}
}

func TestTranslator_CountMismatch(t *testing.T) {
	provider := newMockProvider()
	provider.extra = true
	translator := NewTranslator(provider)

	_, err := translator.Translate(context.Background(), TranslationRequest{Text: "Hello", SourceLanguage: "en", TargetLanguage: "es"})

	var mismatch *CountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Expected CountMismatchError, got %T (%v)", err, err)
	}
	if mismatch.Expected != 1 || mismatch.Got != 2 {
		t.Errorf("Unexpected mismatch: %+v", mismatch)
	}
}

func TestTranslator_NoProvider(t *testing.T) {
	translator := NewTranslator(nil)

	_, err := translator.Translate(context.Background(), TranslationRequest{Text: "Hello", SourceLanguage: "en", TargetLanguage: "es"})
	if err == nil {
		t.Error("Expected error when no provider configured")
	}
}

func TestTranslator_Options(t *testing.T) {
	provider := newMockProvider()
	glossary := map[string]string{"play": "reproducir"}

	translator := NewTranslator(provider,
		WithExcludedTerms([]string{"API", "SDK"}),
		WithContext("Language learning app"),
		WithGlossary(glossary),
		WithStyle(StyleCasual),
	)

	if translator.Context() != "Language learning app" {
		t.Errorf("Unexpected context %q", translator.Context())
	}
	if translator.Style() != StyleCasual {
		t.Errorf("Unexpected style %q", translator.Style())
	}
	if len(translator.ExcludedTerms()) != 2 {
		t.Errorf("Unexpected excluded terms %v", translator.ExcludedTerms())
	}
	if translator.Glossary()["play"] != "reproducir" {
		t.Errorf("Unexpected glossary %v", translator.Glossary())
	}

	translator.Translate(context.Background(), TranslationRequest{Text: "Hello", SourceLanguage: "en", TargetLanguage: "es"})

	req := provider.lastRequest
	if req.Context != "Language learning app" || req.Style != StyleCasual || len(req.ExcludedTerms) != 2 {
		t.Errorf("Options not forwarded to provider: %+v", req)
	}
}

func TestNewTranslator_DefaultStyle(t *testing.T) {
	translator := NewTranslator(newMockProvider())
	if translator.Style() != StyleNeutral {
		t.Errorf("Expected neutral default style, got %q", translator.Style())
	}
}
