package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/voxlai"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements AIProvider and SpeechProvider using OpenAI's API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
	speechModel openai.SpeechModel
	voice       openai.SpeechVoice
	voices      map[string]openai.SpeechVoice
	speed       float64
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string            // OpenAI API key
	Model       string            // Chat model for translation (default: "gpt-4o-mini")
	Temperature float32           // Temperature for generation (default: 0.3)
	BaseURL     string            // Custom base URL (optional)
	SpeechModel string            // Speech model (default: "tts-1")
	Voice       string            // Default voice (default: "alloy")
	Voices      map[string]string // Voice per base language, e.g. {"ja": "shimmer"}
	Speed       float64           // Speech speed 0.25-4.0 (default: 1.0)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	speechModel := openai.SpeechModel(cfg.SpeechModel)
	if speechModel == "" {
		speechModel = openai.TTSModel1
	}

	voice := openai.SpeechVoice(cfg.Voice)
	if voice == "" {
		voice = openai.VoiceAlloy
	}

	speed := cfg.Speed
	if speed == 0 {
		speed = 1.0
	}

	voices := make(map[string]openai.SpeechVoice, len(cfg.Voices))
	for lang, v := range cfg.Voices {
		voices[voxlai.BaseLanguage(lang)] = openai.SpeechVoice(v)
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
		speechModel: speechModel,
		voice:       voice,
		voices:      voices,
		speed:       speed,
	}
}

// Model returns the chat model used for translation.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Translate translates a batch of texts using OpenAI.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	if len(req.Texts) == 0 {
		return []string{}, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: p.buildUserMessage(req)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &voxlai.ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &voxlai.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content, len(req.Texts))
}

// Synthesize converts text to MP3 speech using OpenAI's speech endpoint.
func (p *OpenAIProvider) Synthesize(ctx context.Context, req SpeechRequest) (*Audio, error) {
	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          p.speechModel,
		Input:          req.Text,
		Voice:          p.voiceFor(req),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          p.speed,
	})
	if err != nil {
		return nil, &voxlai.ProviderError{
			Message:   "OpenAI speech call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, &voxlai.ProviderError{
			Message:   "reading speech audio",
			Cause:     err,
			Retryable: true,
		}
	}

	return &Audio{
		Data:        data,
		Format:      "mp3",
		ContentType: "audio/mpeg",
	}, nil
}

// voiceFor picks the request voice, then the language voice, then the default.
func (p *OpenAIProvider) voiceFor(req SpeechRequest) openai.SpeechVoice {
	if req.Voice != "" {
		return openai.SpeechVoice(req.Voice)
	}
	if v, ok := p.voices[voxlai.BaseLanguage(req.Language)]; ok {
		return v
	}
	return p.voice
}

func (p *OpenAIProvider) buildSystemPrompt(req TranslateRequest) string {
	targetName := voxlai.GetLanguageName(req.TargetLang)
	localeHint := voxlai.GetLocaleClarification(req.TargetLang)
	styleDesc := voxlai.GetStyleDescription(req.Style)

	sourceText := "Detect the source language of each text."
	if req.SourceLang != "" {
		sourceText = fmt.Sprintf("The source language is %s.", voxlai.GetLanguageName(req.SourceLang))
	}

	contextText := "The texts will be read aloud by a speech synthesizer."
	if req.Context != "" {
		contextText += fmt.Sprintf(" They are used for: %s.", req.Context)
	}

	prompt := fmt.Sprintf(`# Role
You are an expert native translator. You translate content to %s with the fluency of a native speaker.

# Context
%s
%s

# Register
%s

# Style Guide
- **Natural Flow**: Avoid literal translations. The result must sound natural when spoken.
- **Idioms**: Never translate idioms literally. Use natural %s equivalents.
- **Spoken Form**: Write out symbols and abbreviations the way a speaker would say them.
- **Interpolation**: Do NOT translate variables or placeholders (e.g., {{name}}, {count}, %%s).`,
		targetName, sourceText, contextText, styleDesc, targetName)

	if localeHint != "" {
		prompt += fmt.Sprintf("\n- **Locale**: %s", localeHint)
	}

	if len(req.Glossary) > 0 {
		prompt += "\n\n# Glossary\nWhen you encounter these phrases, prefer these translations:"
		for source, target := range req.Glossary {
			prompt += fmt.Sprintf("\n- \"%s\" → %s", source, target)
		}
	}

	prompt += `

# Format
Return a valid JSON object with a single key "translations" containing an array of strings in the exact same order as the input.
Example: { "translations": ["translated string 1", "translated string 2"] }
- Do NOT wrap in Markdown code blocks.`

	if len(req.ExcludedTerms) > 0 {
		terms := strings.Join(req.ExcludedTerms, "\n- ")
		prompt += fmt.Sprintf("\n\n# Exclusions\nDo NOT translate the following terms. Keep them exactly as they appear in the source:\n- %s", terms)
	}

	return prompt
}

func (p *OpenAIProvider) buildUserMessage(req TranslateRequest) string {
	data, _ := json.Marshal(req.Texts)
	return string(data)
}

func (p *OpenAIProvider) parseResponse(content string, expectedCount int) ([]string, error) {
	// Try parsing as object first
	var objResult map[string]interface{}
	if err := json.Unmarshal([]byte(content), &objResult); err == nil {
		if translations, ok := objResult["translations"]; ok {
			if arr, ok := translations.([]interface{}); ok {
				return toStringSlice(arr, expectedCount)
			}
		}

		// Fallback: find first array value
		for _, v := range objResult {
			if arr, ok := v.([]interface{}); ok {
				return toStringSlice(arr, expectedCount)
			}
		}
	}

	var arrResult []interface{}
	if err := json.Unmarshal([]byte(content), &arrResult); err == nil {
		return toStringSlice(arrResult, expectedCount)
	}

	return nil, &voxlai.ProviderError{
		Message:   "invalid response format from OpenAI",
		Retryable: false,
	}
}

func toStringSlice(arr []interface{}, expectedCount int) ([]string, error) {
	result := make([]string, len(arr))
	for i, v := range arr {
		if s, ok := v.(string); ok {
			result[i] = s
		} else {
			result[i] = fmt.Sprintf("%v", v)
		}
	}

	if len(result) != expectedCount {
		return nil, &voxlai.CountMismatchError{
			Expected: expectedCount,
			Got:      len(result),
		}
	}

	return result, nil
}

func isRetryableError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}

	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"connection reset",
		"temporary",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAIProvider implements both provider interfaces
var (
	_ AIProvider     = (*OpenAIProvider)(nil)
	_ SpeechProvider = (*OpenAIProvider)(nil)
)
