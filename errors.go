package voxlai

import "fmt"

// TranslationError is the base error type for translation failures.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// SynthesisError indicates a speech synthesis failure.
type SynthesisError struct {
	Message string
	Cause   error
}

func (e *SynthesisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("synthesis error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("synthesis error: %s", e.Message)
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates an AI provider failure (API error, rate limit, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// StorageError indicates that synthesized audio could not be stored.
type StorageError struct {
	Message string
	Cause   error
	Backend string // "dir", "s3", ...
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error (%s): %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage error (%s): %s", e.Backend, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// LanguageError indicates an unsupported or malformed language code.
type LanguageError struct {
	Code  string
	Role  string // "source", "target" or empty
	Cause error
}

func (e *LanguageError) Error() string {
	role := "language"
	if e.Role != "" {
		role = e.Role + " language"
	}
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s %q: %v", role, e.Code, e.Cause)
	}
	return fmt.Sprintf("invalid %s %q", role, e.Code)
}

func (e *LanguageError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates the AI returned a different number of translations than expected.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("translation count mismatch: expected %d, got %d", e.Expected, e.Got)
}
