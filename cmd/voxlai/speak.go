package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ZaguanLabs/voxlai/client"
	"github.com/ZaguanLabs/voxlai/orchestrator"
)

// SpeakOutput is the JSON output of `voxlai speak --json`.
type SpeakOutput struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language"`
	TranslatedText string `json:"translated_text,omitempty"`
	AudioURL       string `json:"audio_url"`
	ElapsedMs      int64  `json:"elapsed_ms"`
}

func runSpeak(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("speak", flag.ContinueOnError)
	fs.SetOutput(stderr)

	serverURL := fs.String("server", "", "Server base URL (default: VOXLAI_SERVER env or http://localhost:8080)")
	from := fs.String("from", "en", "Source language code")
	to := fs.String("to", "", "Target language code (e.g., es, ja-JP)")
	oneShot := fs.Bool("one-shot", false, "Send a single JSON request and let the server detect the source language")
	timeout := fs.Duration("timeout", 60*time.Second, "Timeout for each request")
	jsonOutput := fs.Bool("json", false, "Output result as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *to == "" {
		fs.Usage()
		return fmt.Errorf("--to is required")
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" {
		return fmt.Errorf("no text to speak")
	}

	base := *serverURL
	if base == "" {
		base = os.Getenv("VOXLAI_SERVER")
	}
	if base == "" {
		base = "http://localhost:8080"
	}

	c := client.New(base)
	var alerted string
	o := orchestrator.New(c, orchestrator.AlertFunc(func(msg string) {
		alerted = msg
		fmt.Fprintf(stderr, "alert: %s\n", msg)
	}), orchestrator.WithPage(orchestrator.Page{
		TextInput:      text,
		SourceLanguage: *from,
		TargetLanguage: *to,
	}))

	start := time.Now()
	if err := speak(o, *oneShot, *timeout); err != nil {
		if alerted != "" {
			return fmt.Errorf("%s (%w)", strings.TrimSuffix(alerted, " Please try again."), err)
		}
		return err
	}
	elapsed := time.Since(start)

	page := o.Page()
	audioURL, err := c.AudioURL(page.Player.SourceURL)
	if err != nil {
		return fmt.Errorf("resolving audio URL: %w", err)
	}

	if *jsonOutput {
		out := SpeakOutput{
			Text:           text,
			TargetLanguage: *to,
			TranslatedText: page.TranslatedText,
			AudioURL:       audioURL,
			ElapsedMs:      elapsed.Milliseconds(),
		}
		if !*oneShot {
			out.SourceLanguage = *from
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if page.TranslatedText != "" {
		fmt.Fprintln(stdout, page.TranslatedText)
	}
	fmt.Fprintln(stdout, audioURL)
	return nil
}

// speak runs the page flow: translate then synthesize, or the one-shot JSON variant.
func speak(o *orchestrator.Orchestrator, oneShot bool, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if oneShot {
		return o.HandleSpeakSubmit(ctx)
	}

	if err := o.HandleTranslateClick(ctx); err != nil {
		return err
	}

	ctx2, cancel2 := context.WithTimeout(context.Background(), timeout)
	defer cancel2()
	return o.HandleFormSubmit(ctx2)
}
