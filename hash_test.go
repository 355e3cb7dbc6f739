package voxlai

import "testing"

func TestHashText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple text",
			input:    "Hello World",
			expected: "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e",
		},
		{
			name:     "text with surrounding whitespace",
			input:    "  Hello World \n",
			expected: "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e",
		},
		{
			name:  "empty string",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HashText(tt.input)
			if tt.expected != "" && result != tt.expected {
				t.Errorf("HashText(%q) = %q, want %q", tt.input, result, tt.expected)
			}
			// SHA-256 = 64 hex chars
			if len(result) != 64 {
				t.Errorf("HashText(%q) length = %d, want 64", tt.input, len(result))
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	result := CacheKey("abc123", "en", "es", "gpt-4o-mini")
	expected := "abc123:en:es:gpt-4o-mini"

	if result != expected {
		t.Errorf("CacheKey() = %q, want %q", result, expected)
	}
}

func TestAudioCacheKey(t *testing.T) {
	result := AudioCacheKey("abc123", "es-ES", "alloy")
	expected := "audio:abc123:es-ES:alloy"

	if result != expected {
		t.Errorf("AudioCacheKey() = %q, want %q", result, expected)
	}

	if AudioCacheKey("abc123", "es-ES", "nova") == result {
		t.Error("Different voices must not share a cache key")
	}
}
