package voxlai

import (
	"context"
	"errors"
	"testing"
)

func TestSpeaker_Speak(t *testing.T) {
	translations := newMockProvider()
	speech := &mockSpeechProvider{}
	speaker := NewSpeaker(NewTranslator(translations), NewSynthesizer(speech, &mockStore{}))

	result, err := speaker.Speak(context.Background(), SpeakRequest{Text: "Good night", Lang: "es-ES"})
	if err != nil {
		t.Fatalf("Speak failed: %v", err)
	}

	if result.TranslatedText != "Buenas noches" {
		t.Errorf("Expected 'Buenas noches', got %q", result.TranslatedText)
	}
	if result.AudioURL != "/static/output_1.mp3" {
		t.Errorf("Unexpected audio URL %q", result.AudioURL)
	}
	if translations.lastRequest.SourceLang != "" {
		t.Errorf("Source language should be detected by the provider, got %q", translations.lastRequest.SourceLang)
	}
	if speech.lastRequest.Text != "Buenas noches" || speech.lastRequest.Language != "es-ES" {
		t.Errorf("Unexpected speech request %+v", speech.lastRequest)
	}
}

func TestSpeaker_WithoutTranslator(t *testing.T) {
	speech := &mockSpeechProvider{}
	speaker := NewSpeaker(nil, NewSynthesizer(speech, &mockStore{}))

	result, err := speaker.Speak(context.Background(), SpeakRequest{Text: "Bonjour", Lang: "fr"})
	if err != nil {
		t.Fatalf("Speak failed: %v", err)
	}
	if speech.lastRequest.Text != "Bonjour" || result.TranslatedText != "Bonjour" {
		t.Errorf("Text should be spoken unchanged, got %+v", speech.lastRequest)
	}
}

func TestSpeaker_UnsupportedLanguage(t *testing.T) {
	speech := &mockSpeechProvider{}
	speaker := NewSpeaker(nil, NewSynthesizer(speech, &mockStore{}))

	_, err := speaker.Speak(context.Background(), SpeakRequest{Text: "Hello", Lang: "klingon"})

	var langErr *LanguageError
	if !errors.As(err, &langErr) {
		t.Fatalf("Expected LanguageError, got %T (%v)", err, err)
	}
	if speech.callCount != 0 {
		t.Error("Provider should not be called for unsupported languages")
	}
}

func TestSpeaker_TranslationFailure(t *testing.T) {
	translations := newMockProvider()
	translations.err = errors.New("network down")
	speech := &mockSpeechProvider{}
	speaker := NewSpeaker(NewTranslator(translations), NewSynthesizer(speech, &mockStore{}))

	if _, err := speaker.Speak(context.Background(), SpeakRequest{Text: "Hello", Lang: "es"}); err == nil {
		t.Fatal("Expected error")
	}
	if speech.callCount != 0 {
		t.Error("Synthesis should not run after a failed translation")
	}
}
