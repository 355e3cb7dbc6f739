package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ZaguanLabs/voxlai"
)

func TestDirStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewDirStore(dir, "/static/")

	url, err := store.Save(context.Background(), &voxlai.Audio{Data: []byte("ID3data"), Format: "mp3"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasPrefix(url, "/static/output_") || !strings.HasSuffix(url, ".mp3") {
		t.Errorf("Unexpected URL %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/static/")))
	if err != nil {
		t.Fatalf("Audio file not written: %v", err)
	}
	if string(data) != "ID3data" {
		t.Errorf("Unexpected file content %q", data)
	}
}

func TestDirStore_UniqueNames(t *testing.T) {
	store := NewDirStore(t.TempDir(), "static")

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		url, err := store.Save(context.Background(), &voxlai.Audio{Data: []byte("x")})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if seen[url] {
			t.Fatalf("Duplicate URL %q", url)
		}
		seen[url] = true
	}
}

func TestDirStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "static")
	store := NewDirStore(dir, "/static")

	if _, err := store.Save(context.Background(), &voxlai.Audio{Data: []byte("x"), Format: "mp3"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if store.Dir() != dir {
		t.Errorf("Expected Dir %q, got %q", dir, store.Dir())
	}
}

func TestDirStore_Errors(t *testing.T) {
	store := NewDirStore(t.TempDir(), "/static")

	_, err := store.Save(context.Background(), &voxlai.Audio{})
	var storageErr *voxlai.StorageError
	if !errors.As(err, &storageErr) || storageErr.Backend != "dir" {
		t.Errorf("Expected dir StorageError, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Save(ctx, &voxlai.Audio{Data: []byte("x")}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		format string
		suffix string
	}{
		{"mp3", ".mp3"},
		{".wav", ".wav"},
		{"", ".mp3"},
	}

	for _, tt := range tests {
		name := objectName(&voxlai.Audio{Format: tt.format})
		if !strings.HasPrefix(name, "output_") || !strings.HasSuffix(name, tt.suffix) {
			t.Errorf("objectName(%q) = %q", tt.format, name)
		}
	}
}

func TestS3Store_PublicURL(t *testing.T) {
	tests := []struct {
		cfg  S3Config
		key  string
		want string
	}{
		{S3Config{Endpoint: "s3.example.com", Bucket: "tts", Secure: true}, "output_1.mp3", "https://s3.example.com/tts/output_1.mp3"},
		{S3Config{Endpoint: "localhost:9000", Bucket: "tts"}, "audio/a b.mp3", "http://localhost:9000/tts/audio/a%20b.mp3"},
		{S3Config{Endpoint: "x", Bucket: "tts", PublicURL: "https://cdn.example.com/"}, "k.mp3", "https://cdn.example.com/tts/k.mp3"},
	}

	for _, tt := range tests {
		s := newS3Store(nil, tt.cfg)
		if got := s.publicURL(tt.key); got != tt.want {
			t.Errorf("publicURL(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

// fakeS3 answers the bucket check and single-part uploads.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodHead:
		if r.URL.Path == "/tts/" || r.URL.Path == "/tts" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = data
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Store_Save(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	endpoint := strings.TrimPrefix(srv.URL, "http://")
	store, err := NewS3Store(context.Background(), S3Config{
		Endpoint:  endpoint,
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "tts",
		Region:    "us-east-1",
		Prefix:    "audio/",
	})
	if err != nil {
		t.Fatalf("NewS3Store failed: %v", err)
	}

	url, err := store.Save(context.Background(), &voxlai.Audio{Data: []byte("ID3"), Format: "mp3", ContentType: "audio/mpeg"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	prefix := srv.URL + "/tts/audio/output_"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("Expected URL with prefix %q, got %q", prefix, url)
	}

	key := strings.TrimPrefix(url, srv.URL)
	if !strings.Contains(string(fake.objects[key]), "ID3") {
		t.Errorf("Object not uploaded under %q", key)
	}
	if fake.types[key] != "audio/mpeg" {
		t.Errorf("Expected audio/mpeg content type, got %q", fake.types[key])
	}
}

func TestNewS3Store_MissingBucket(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	_, err := NewS3Store(context.Background(), S3Config{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "missing",
		Region:    "us-east-1",
	})

	var storageErr *voxlai.StorageError
	if !errors.As(err, &storageErr) || storageErr.Backend != "s3" {
		t.Errorf("Expected s3 StorageError, got %v", err)
	}
}
