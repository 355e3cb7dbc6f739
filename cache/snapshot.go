package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// SnapshotVersion is the format version written by WriteSnapshot.
const SnapshotVersion = "1"

// Snapshot is the on-disk form of an in-memory cache.
type Snapshot struct {
	Version string          `json:"version"`
	SavedAt time.Time       `json:"saved_at"`
	Entries []SnapshotEntry `json:"entries"`
}

// SnapshotEntry is one cached translation or audio URL.
type SnapshotEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LoadResult reports how many snapshot entries were restored.
type LoadResult struct {
	Loaded int
	Failed int
}

// WriteSnapshot encodes the live entries of c to w, sorted by key.
func WriteSnapshot(w io.Writer, c *InMemoryCache) error {
	data := c.Entries()
	entries := make([]SnapshotEntry, 0, len(data))
	for key, value := range data {
		entries = append(entries, SnapshotEntry{Key: key, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	snap := Snapshot{
		Version: SnapshotVersion,
		SavedAt: time.Now().UTC(),
		Entries: entries,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a snapshot from r and sets every entry on c.
// Entries restored this way start a fresh TTL.
func ReadSnapshot(r io.Reader, c TranslationCache) (*LoadResult, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %q", snap.Version)
	}

	result := &LoadResult{}
	for _, e := range snap.Entries {
		if err := c.Set(e.Key, e.Value); err != nil {
			result.Failed++
			continue
		}
		result.Loaded++
	}
	return result, nil
}

// SaveSnapshotFile writes a snapshot of c to path, replacing it atomically.
func SaveSnapshotFile(path string, c *InMemoryCache) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteSnapshot(tmp, c); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// LoadSnapshotFile restores entries from path into c.
// A missing file is not an error and loads nothing.
func LoadSnapshotFile(path string, c TranslationCache) (*LoadResult, error) {
	f, err := os.Open(path) // #nosec G304 - path comes from operator configuration
	if errors.Is(err, os.ErrNotExist) {
		return &LoadResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()

	return ReadSnapshot(f, c)
}
