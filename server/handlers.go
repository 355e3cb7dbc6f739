package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/ZaguanLabs/voxlai"
	"github.com/ZaguanLabs/voxlai/cache"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies on the POST endpoints.
const maxBodyBytes = 1 << 20

// HealthResponse is the response body for /healthz.
type HealthResponse struct {
	Status  string       `json:"status"`
	Version string       `json:"version"`
	Cache   *cache.Stats `json:"cache,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: voxlai.Version,
	}
	if s.opts.CacheStats != nil {
		stats := s.opts.CacheStats()
		resp.Cache = &stats
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleTranslate serves both page contracts: a form post returns the
// translated text, a JSON {text, lang} post also speaks it.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if isJSON(r) {
		s.handleSpeak(w, r)
		return
	}

	text := r.FormValue("text")
	sourceLang := r.FormValue("sourceLanguage")
	targetLang := r.FormValue("targetLanguage")
	if text == "" || sourceLang == "" || targetLang == "" {
		http.Error(w, "Text, source language, or target language not provided", http.StatusBadRequest)
		return
	}

	if _, err := voxlai.ParseLanguage(targetLang, "target"); err != nil {
		http.Error(w, "Invalid target language: "+err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := voxlai.ParseLanguage(sourceLang, "source"); err != nil {
		http.Error(w, "Invalid source language: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := s.translator.Translate(r.Context(), voxlai.TranslationRequest{
		Text:           text,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
	})
	if err != nil {
		s.fail(w, r, "Translation error", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	var req voxlai.SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Text == "" || req.Lang == "" {
		http.Error(w, "Text or language not provided", http.StatusBadRequest)
		return
	}

	resp, err := s.speaker.Speak(r.Context(), req)
	if err != nil {
		s.fail(w, r, "Translation error", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	text := r.FormValue("text")
	lang := r.FormValue("language")
	if text == "" || lang == "" {
		http.Error(w, "Text or language not provided", http.StatusBadRequest)
		return
	}

	if _, err := voxlai.ParseLanguage(lang, ""); err != nil {
		http.Error(w, "Invalid language: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := s.synthesizer.Synthesize(r.Context(), voxlai.SynthesisRequest{
		Text:     text,
		Language: lang,
	})
	if err != nil {
		s.fail(w, r, "Synthesize error", err)
		return
	}

	noCache(w)
	writeJSON(w, http.StatusOK, resp)
}

// fail logs err and writes a plain-text error. Invalid languages are the
// caller's fault; everything else is reported as a server error.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var langErr *voxlai.LanguageError
	if errors.As(err, &langErr) {
		role := "language"
		if langErr.Role != "" {
			role = langErr.Role + " language"
		}
		http.Error(w, fmt.Sprintf("Invalid %s: %q", role, langErr.Code), http.StatusBadRequest)
		return
	}

	s.logger.Error(msg,
		zap.Error(err),
		zap.Bool("retryable", voxlai.IsRetryable(err)),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
	http.Error(w, msg, http.StatusInternalServerError)
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
