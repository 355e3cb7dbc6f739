package voxlai

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a translation cache key from a text hash, the language
// pair and the model that produced it.
func CacheKey(hash, sourceLang, targetLang, model string) string {
	return hash + ":" + sourceLang + ":" + targetLang + ":" + model
}

// AudioCacheKey generates a cache key for the URL of synthesized audio.
func AudioCacheKey(hash, lang, voice string) string {
	return "audio:" + hash + ":" + lang + ":" + voice
}
