package voxlai

import (
	"context"
	"strings"
)

// Translator translates single texts through an AIProvider, with optional caching.
type Translator struct {
	provider      AIProvider
	cache         TranslationCache
	model         string
	excludedTerms []string
	context       string
	glossary      map[string]string
	style         TranslationStyle
}

// AIProvider is the interface for AI translation backends.
type AIProvider interface {
	Translate(ctx context.Context, req TranslateRequest) ([]string, error)
}

// TranslateRequest contains the parameters for a provider translation request.
// An empty SourceLang asks the provider to detect the source language.
type TranslateRequest struct {
	Texts         []string
	TargetLang    string
	SourceLang    string
	ExcludedTerms []string
	Context       string
	Glossary      map[string]string
	Style         TranslationStyle
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithModel tags cache entries with the model that produced them,
// so switching models does not serve stale translations.
func WithModel(model string) TranslatorOption {
	return func(t *Translator) {
		t.model = model
	}
}

// WithExcludedTerms sets terms that should not be translated.
func WithExcludedTerms(terms []string) TranslatorOption {
	return func(t *Translator) {
		t.excludedTerms = terms
	}
}

// WithContext sets the global translation context.
func WithContext(ctx string) TranslatorOption {
	return func(t *Translator) {
		t.context = ctx
	}
}

// WithGlossary sets preferred translations for specific phrases.
func WithGlossary(glossary map[string]string) TranslatorOption {
	return func(t *Translator) {
		t.glossary = glossary
	}
}

// WithStyle sets the translation style/register.
func WithStyle(style TranslationStyle) TranslatorOption {
	return func(t *Translator) {
		t.style = style
	}
}

// NewTranslator creates a new Translator backed by provider.
func NewTranslator(provider AIProvider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		provider: provider,
		style:    StyleNeutral,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Translate translates req.Text from req.SourceLanguage into req.TargetLanguage.
// An empty SourceLanguage lets the provider detect it.
func (t *Translator) Translate(ctx context.Context, req TranslationRequest) (*TranslationResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return &TranslationResponse{}, nil
	}

	source := NormalizeLocale(req.SourceLanguage)
	target := NormalizeLocale(req.TargetLanguage)
	if target == "" {
		return nil, &LanguageError{Code: req.TargetLanguage, Role: "target"}
	}

	// Skip if source == target
	if SameLanguage(source, target) {
		return &TranslationResponse{TranslatedText: req.Text}, nil
	}

	cacheKey := CacheKey(HashText(text), source, target, t.model)
	if t.cache != nil {
		if cached, ok := t.cache.Get(cacheKey); ok {
			return &TranslationResponse{TranslatedText: cached}, nil
		}
	}

	if t.provider == nil {
		return nil, &TranslationError{Message: "no translation provider configured"}
	}

	results, err := t.provider.Translate(ctx, TranslateRequest{
		Texts:         []string{text},
		TargetLang:    target,
		SourceLang:    source,
		ExcludedTerms: t.excludedTerms,
		Context:       t.context,
		Glossary:      t.glossary,
		Style:         t.style,
	})
	if err != nil {
		return nil, &TranslationError{Message: "translation failed", Cause: err}
	}
	if len(results) != 1 {
		return nil, &CountMismatchError{Expected: 1, Got: len(results)}
	}

	if t.cache != nil {
		_ = t.cache.Set(cacheKey, results[0]) // Ignore cache set errors
	}

	return &TranslationResponse{TranslatedText: results[0]}, nil
}

// Glossary returns the glossary of preferred translations.
func (t *Translator) Glossary() map[string]string {
	return t.glossary
}

// Style returns the translation style.
func (t *Translator) Style() TranslationStyle {
	return t.style
}

// Context returns the global translation context.
func (t *Translator) Context() string {
	return t.context
}

// ExcludedTerms returns the list of excluded terms.
func (t *Translator) ExcludedTerms() []string {
	return t.excludedTerms
}
