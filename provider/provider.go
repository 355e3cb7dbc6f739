// Package provider defines the AI provider interfaces and implementations.
package provider

import "github.com/ZaguanLabs/voxlai"

// AIProvider is the interface for AI translation backends.
// This is an alias to the main package interface for convenience.
type AIProvider = voxlai.AIProvider

// SpeechProvider is the interface for text-to-speech backends.
type SpeechProvider = voxlai.SpeechProvider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = voxlai.TranslateRequest

// SpeechRequest is an alias to the main package type.
type SpeechRequest = voxlai.SpeechRequest

// Audio is an alias to the main package type.
type Audio = voxlai.Audio
