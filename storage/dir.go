package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/voxlai"
)

// DirStore writes audio files into a directory served over HTTP.
type DirStore struct {
	dir       string
	urlPrefix string
}

// NewDirStore creates a store that writes into dir and builds URLs under urlPrefix,
// e.g. NewDirStore("static", "/static").
func NewDirStore(dir, urlPrefix string) *DirStore {
	return &DirStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}
}

// Dir returns the directory audio is written to.
func (s *DirStore) Dir() string {
	return s.dir
}

// Save writes audio to a new file and returns its URL.
func (s *DirStore) Save(ctx context.Context, audio *voxlai.Audio) (string, error) {
	if audio == nil || len(audio.Data) == 0 {
		return "", &voxlai.StorageError{Message: "no audio data", Backend: "dir"}
	}
	if err := ctx.Err(); err != nil {
		return "", &voxlai.StorageError{Message: "save cancelled", Cause: err, Backend: "dir"}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &voxlai.StorageError{Message: "creating audio directory", Cause: err, Backend: "dir"}
	}

	name := objectName(audio)
	if err := os.WriteFile(filepath.Join(s.dir, name), audio.Data, 0o644); err != nil {
		return "", &voxlai.StorageError{Message: "writing audio file", Cause: err, Backend: "dir"}
	}

	return path.Join(s.urlPrefix, name), nil
}

var _ Store = (*DirStore)(nil)
