// Package client calls the voxlai HTTP endpoints the way the browser page does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZaguanLabs/voxlai"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: server returned %d: %s", e.Path, e.StatusCode, e.Body)
}

// Client talks to a voxlai server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		userAgent:  voxlai.UserAgent(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Translate posts the form fields text, sourceLanguage and targetLanguage to /translate.
func (c *Client) Translate(ctx context.Context, req voxlai.TranslationRequest) (*voxlai.TranslationResponse, error) {
	form := url.Values{
		"text":           {req.Text},
		"sourceLanguage": {req.SourceLanguage},
		"targetLanguage": {req.TargetLanguage},
	}

	var resp voxlai.TranslationResponse
	if err := c.post(ctx, "/translate", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Synthesize posts the form fields text and language to /synthesize.
func (c *Client) Synthesize(ctx context.Context, req voxlai.SynthesisRequest) (*voxlai.SynthesisResponse, error) {
	form := url.Values{
		"text":     {req.Text},
		"language": {req.Language},
	}

	var resp voxlai.SynthesisResponse
	if err := c.post(ctx, "/synthesize", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Speak posts {text, lang} as JSON to /translate and returns the audio URL.
func (c *Client) Speak(ctx context.Context, req voxlai.SpeakRequest) (*voxlai.SpeakResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var resp voxlai.SpeakResponse
	if err := c.post(ctx, "/translate", "application/json", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AudioURL resolves a URL returned by the server against the base URL.
func (c *Client) AudioURL(ref string) (string, error) {
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", err
	}
	u, err := base.Parse(ref)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
