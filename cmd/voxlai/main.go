// Command voxlai serves the translate-and-speak page and talks to it from the terminal.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ZaguanLabs/voxlai"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = voxlai.Version
	commit    = voxlai.GitCommit
	buildDate = voxlai.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

const usage = `Usage: voxlai <command> [flags]

Commands:
  serve       Run the HTTP server
  speak       Translate text through a running server and synthesize it
  languages   List supported language codes

Run "voxlai <command> --help" for command flags.
`

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("a command is required")
	}

	switch args[0] {
	case "serve":
		return runServe(args[1:], stdout, stderr)
	case "speak":
		return runSpeak(args[1:], stdin, stdout, stderr)
	case "languages":
		return runLanguages(args[1:], stdout, stderr)
	case "version", "--version", "-version":
		printVersion(stdout)
		return nil
	case "help", "--help", "-h":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", voxlai.Name, version)
	if commit != "unknown" && commit != "" {
		fmt.Fprintf(w, "  commit:  %s\n", commit)
	}
	if buildDate != "unknown" && buildDate != "" {
		fmt.Fprintf(w, "  built:   %s\n", buildDate)
	}
}

// LanguageInfo is one entry of `voxlai languages --json`.
type LanguageInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func runLanguages(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(stderr)
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	langs := make([]LanguageInfo, 0, len(voxlai.SupportedLanguages))
	for _, code := range voxlai.SupportedLanguages {
		langs = append(langs, LanguageInfo{Code: code, Name: voxlai.GetLanguageName(code)})
	}

	if *jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(langs)
	}

	for _, l := range langs {
		fmt.Fprintf(stdout, "%-6s %s\n", l.Code, l.Name)
	}
	return nil
}
