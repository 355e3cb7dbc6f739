package voxlai

import "context"

// Speaker translates text into a language and speaks the translation in one call.
type Speaker struct {
	translator  *Translator
	synthesizer *Synthesizer
}

// NewSpeaker creates a Speaker. A nil translator speaks the text as given.
func NewSpeaker(translator *Translator, synthesizer *Synthesizer) *Speaker {
	return &Speaker{
		translator:  translator,
		synthesizer: synthesizer,
	}
}

// Speak translates req.Text into req.Lang (source detected by the provider)
// and returns the URL of the spoken translation.
func (s *Speaker) Speak(ctx context.Context, req SpeakRequest) (*SpeakResponse, error) {
	if _, err := ParseLanguage(req.Lang, "target"); err != nil {
		return nil, err
	}

	text := req.Text
	if s.translator != nil {
		translated, err := s.translator.Translate(ctx, TranslationRequest{
			Text:           req.Text,
			TargetLanguage: req.Lang,
		})
		if err != nil {
			return nil, err
		}
		text = translated.TranslatedText
	}

	audio, err := s.synthesizer.Synthesize(ctx, SynthesisRequest{
		Text:     text,
		Language: req.Lang,
	})
	if err != nil {
		return nil, err
	}

	return &SpeakResponse{
		AudioURL:       audio.AudioURL,
		TranslatedText: text,
	}, nil
}
