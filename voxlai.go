// Package voxlai translates text and turns the translation into speech.
//
// The server side pairs a Translator and a Synthesizer backed by AI
// providers (OpenAI, etc.) with optional caching and audio storage. The
// client side (see the client and orchestrator packages) drives the
// translate-then-synthesize workflow against the HTTP endpoints.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/voxlai"
//	    "github.com/ZaguanLabs/voxlai/cache"
//	    "github.com/ZaguanLabs/voxlai/provider"
//	    "github.com/ZaguanLabs/voxlai/storage"
//	)
//
//	func main() {
//	    // Create provider
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    // Create translator and synthesizer
//	    t := voxlai.NewTranslator(p, voxlai.WithCache(cache.NewInMemoryCache(3600)))
//	    s := voxlai.NewSynthesizer(p, storage.NewDirStore("static", "/static"))
//
//	    res, err := t.Translate(ctx, voxlai.TranslationRequest{
//	        Text: "Hello World", SourceLanguage: "en", TargetLanguage: "es",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    audio, err := s.Synthesize(ctx, voxlai.SynthesisRequest{
//	        Text: res.TranslatedText, Language: "es",
//	    })
//	    fmt.Println(audio.AudioURL) // /static/output_<uuid>.mp3
//	}
package voxlai
