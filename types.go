package voxlai

// TranslationStyle controls the tone and formality of translations.
type TranslationStyle string

const (
	// StyleFormal uses formal, professional language suitable for official documents.
	StyleFormal TranslationStyle = "formal"
	// StyleNeutral uses a neutral, professional tone suitable for general content.
	StyleNeutral TranslationStyle = "neutral"
	// StyleCasual uses casual, conversational language.
	StyleCasual TranslationStyle = "casual"
)

// GetStyleDescription returns the prompt text describing a style.
// Unknown styles fall back to neutral.
func GetStyleDescription(style TranslationStyle) string {
	switch style {
	case StyleFormal:
		return "Use formal, polite language appropriate for official correspondence."
	case StyleCasual:
		return "Use casual, conversational language as between friends."
	default:
		return "Use a neutral, natural tone suitable for everyday speech."
	}
}

// TranslationRequest is the input of a translate call.
// Form field names on the wire: text, sourceLanguage, targetLanguage.
type TranslationRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// TranslationResponse is the result of a translate call.
type TranslationResponse struct {
	TranslatedText string `json:"translatedText"`
}

// SynthesisRequest is the input of a synthesize call.
// Form field names on the wire: text, language.
type SynthesisRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// SynthesisResponse is the result of a synthesize call.
// The wire key is "audioPath".
type SynthesisResponse struct {
	AudioURL string `json:"audioPath"`
}

// SpeakRequest is the JSON body of the one-shot translate-and-speak call.
type SpeakRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// SpeakResponse is the result of the one-shot translate-and-speak call.
type SpeakResponse struct {
	AudioURL       string `json:"audioUrl"`
	TranslatedText string `json:"translatedText,omitempty"`
}

// Audio is synthesized speech returned by a SpeechProvider.
type Audio struct {
	Data        []byte // Encoded audio bytes
	Format      string // File extension, e.g. "mp3"
	ContentType string // MIME type, e.g. "audio/mpeg"
}
