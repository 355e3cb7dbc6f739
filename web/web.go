// Package web holds the browser page served at "/" and its script.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/voxlai"
	"golang.org/x/net/html"
)

//go:embed templates/index.html
var indexTemplate []byte

//go:embed static
var staticFiles embed.FS

// Select element ids filled with language options.
const (
	SourceSelectID = "source-language-select"
	TargetSelectID = "target-language-select"
)

// Static returns the embedded static assets (page script), rooted at "static/".
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded path is fixed
	}
	return sub
}

// Option is one entry of a language select.
type Option struct {
	Code  string
	Label string
}

// LanguageOptions builds select options for codes, labelled with display names.
func LanguageOptions(codes []string) []Option {
	opts := make([]Option, 0, len(codes))
	for _, code := range codes {
		name := voxlai.GetLanguageName(code)
		label := name
		if name != code {
			label = fmt.Sprintf("%s (%s)", name, code)
		}
		opts = append(opts, Option{Code: code, Label: label})
	}
	return opts
}

// IndexConfig configures the rendered index page.
type IndexConfig struct {
	Languages     []string // default: voxlai.SupportedLanguages
	DefaultSource string   // default: "en"
	DefaultTarget string   // default: "es"
}

// Index is the rendered index page.
type Index struct {
	body []byte
}

// NewIndex renders the index template once with the language selects filled in.
func NewIndex(cfg IndexConfig) (*Index, error) {
	if len(cfg.Languages) == 0 {
		cfg.Languages = voxlai.SupportedLanguages
	}
	if cfg.DefaultSource == "" {
		cfg.DefaultSource = "en"
	}
	if cfg.DefaultTarget == "" {
		cfg.DefaultTarget = "es"
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(indexTemplate))
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}

	options := LanguageOptions(cfg.Languages)
	if err := fillSelect(doc, SourceSelectID, options, cfg.DefaultSource); err != nil {
		return nil, err
	}
	if err := fillSelect(doc, TargetSelectID, options, cfg.DefaultTarget); err != nil {
		return nil, err
	}

	out, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("rendering index: %w", err)
	}

	return &Index{body: []byte(out)}, nil
}

func fillSelect(doc *goquery.Document, id string, options []Option, selected string) error {
	sel := doc.Find("select#" + id)
	if sel.Length() == 0 {
		return fmt.Errorf("index template has no select #%s", id)
	}

	var b strings.Builder
	for _, opt := range options {
		attr := ""
		if opt.Code == selected {
			attr = " selected"
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`,
			html.EscapeString(opt.Code), attr, html.EscapeString(opt.Label))
	}

	sel.Empty().AppendHtml(b.String())
	return nil
}

// Bytes returns the rendered page.
func (i *Index) Bytes() []byte {
	return i.body
}

// ServeHTTP writes the rendered page.
func (i *Index) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(i.body)
}
