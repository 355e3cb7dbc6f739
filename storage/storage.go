// Package storage persists synthesized audio and hands back a URL the
// browser can load it from.
package storage

import (
	"context"
	"strings"

	"github.com/ZaguanLabs/voxlai"
	"github.com/google/uuid"
)

// Store saves audio and returns its URL.
type Store interface {
	Save(ctx context.Context, audio *voxlai.Audio) (string, error)
}

// objectName returns a unique file name for audio, e.g. "output_<uuid>.mp3".
func objectName(audio *voxlai.Audio) string {
	ext := strings.TrimPrefix(audio.Format, ".")
	if ext == "" {
		ext = "mp3"
	}
	return "output_" + uuid.NewString() + "." + ext
}

func contentType(audio *voxlai.Audio) string {
	if audio.ContentType != "" {
		return audio.ContentType
	}
	return "audio/mpeg"
}
