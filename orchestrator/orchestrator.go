// Package orchestrator drives the translate-then-speak page: it reads the
// form fields, calls the endpoints, and updates the fields and audio player.
package orchestrator

import (
	"context"
	"sync"

	"github.com/ZaguanLabs/voxlai"
	"go.uber.org/zap"
)

// Alert messages shown when a request fails.
const (
	TranslateAlert  = "An error occurred while translating the text. Please try again."
	SynthesizeAlert = "An error occurred while synthesizing the text. Please try again."
)

// Endpoints is the server API the orchestrator calls. *client.Client implements it.
type Endpoints interface {
	Translate(ctx context.Context, req voxlai.TranslationRequest) (*voxlai.TranslationResponse, error)
	Synthesize(ctx context.Context, req voxlai.SynthesisRequest) (*voxlai.SynthesisResponse, error)
	Speak(ctx context.Context, req voxlai.SpeakRequest) (*voxlai.SpeakResponse, error)
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(msg string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(msg string)

// Alert calls f(msg).
func (f AlertFunc) Alert(msg string) {
	f(msg)
}

// Page is the orchestrator's view of the form and the audio player.
type Page struct {
	TextInput      string
	SourceLanguage string
	TargetLanguage string
	TranslatedText string
	Player         AudioPlayer
}

// Orchestrator handles the page events. Handlers may be called from any
// goroutine; the page lock is not held while a request is in flight.
type Orchestrator struct {
	endpoints Endpoints
	alerter   Alerter
	autoPlay  bool
	logger    *zap.Logger

	mu   sync.Mutex
	page Page
}

// Option is a functional option for configuring the Orchestrator.
type Option func(*Orchestrator)

// WithAutoPlay starts playback after a successful synthesize.
func WithAutoPlay() Option {
	return func(o *Orchestrator) {
		o.autoPlay = true
	}
}

// WithLogger logs failed requests at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithPage sets the initial page state.
func WithPage(p Page) Option {
	return func(o *Orchestrator) {
		o.page = p
	}
}

// New creates an Orchestrator.
func New(endpoints Endpoints, alerter Alerter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		endpoints: endpoints,
		alerter:   alerter,
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.page.Player.SourceURL == "" {
		o.page.Player.reset()
	}

	return o
}

// Page returns a copy of the current page state.
func (o *Orchestrator) Page() Page {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.page
}

// Update applies user edits to the page fields. The audio player is not editable.
func (o *Orchestrator) Update(fn func(p *Page)) {
	o.mu.Lock()
	defer o.mu.Unlock()

	player := o.page.Player
	fn(&o.page)
	o.page.Player = player
}

// HandleTranslateClick translates the input text into the target language.
// On success the translated-text field is replaced and the player reset.
// On failure one alert is raised and the fields are left as they were.
func (o *Orchestrator) HandleTranslateClick(ctx context.Context) error {
	o.mu.Lock()
	req := voxlai.TranslationRequest{
		Text:           o.page.TextInput,
		SourceLanguage: o.page.SourceLanguage,
		TargetLanguage: o.page.TargetLanguage,
	}
	o.mu.Unlock()

	resp, err := o.endpoints.Translate(ctx, req)
	if err != nil {
		o.fail(TranslateAlert, "translate", err)
		return err
	}

	o.mu.Lock()
	o.page.TranslatedText = resp.TranslatedText
	o.page.Player.reset()
	o.mu.Unlock()

	return nil
}

// HandleFormSubmit speaks the translated text in the target language and
// loads the audio into the player.
func (o *Orchestrator) HandleFormSubmit(ctx context.Context) error {
	o.mu.Lock()
	req := voxlai.SynthesisRequest{
		Text:     o.page.TranslatedText,
		Language: o.page.TargetLanguage,
	}
	o.mu.Unlock()

	resp, err := o.endpoints.Synthesize(ctx, req)
	if err != nil {
		o.fail(SynthesizeAlert, "synthesize", err)
		return err
	}

	o.showAudio(resp.AudioURL, o.autoPlay)
	return nil
}

// HandleSpeakSubmit sends the input text and target language as one JSON
// request; the server translates and speaks it. The audio always auto-plays.
func (o *Orchestrator) HandleSpeakSubmit(ctx context.Context) error {
	o.mu.Lock()
	req := voxlai.SpeakRequest{
		Text: o.page.TextInput,
		Lang: o.page.TargetLanguage,
	}
	o.mu.Unlock()

	resp, err := o.endpoints.Speak(ctx, req)
	if err != nil {
		o.fail(SynthesizeAlert, "speak", err)
		return err
	}

	o.showAudio(resp.AudioURL, true)
	return nil
}

// HandleResetClick clears both text fields and resets the audio player.
func (o *Orchestrator) HandleResetClick() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.page.TextInput = ""
	o.page.TranslatedText = ""
	o.page.Player.reset()
}

// ResetAudioPlayer hides, pauses and rewinds the player.
func (o *Orchestrator) ResetAudioPlayer() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.page.Player.reset()
}

func (o *Orchestrator) showAudio(url string, play bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if url == "" {
		// A visible player must have a source.
		o.page.Player.reset()
		return
	}

	o.page.Player.load(url)
	if play {
		o.page.Player.play()
	}
}

func (o *Orchestrator) fail(msg, op string, err error) {
	o.logger.Debug("request failed", zap.String("op", op), zap.Error(err))
	if o.alerter != nil {
		o.alerter.Alert(msg)
	}
}
