package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ZaguanLabs/voxlai"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config holds configuration for the S3 audio store.
type S3Config struct {
	Endpoint  string // host[:port], no scheme
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Secure    bool   // use HTTPS
	PublicURL string // base for returned URLs (default: scheme://endpoint)
	Prefix    string // key prefix, e.g. "audio/"
}

// S3Store uploads audio to an S3-compatible bucket.
type S3Store struct {
	client *minio.Client
	bucket string
	prefix string
	host   string
}

// NewS3Store connects to the bucket and checks that it exists.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, &voxlai.StorageError{Message: "init S3 client", Cause: err, Backend: "s3"}
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, &voxlai.StorageError{Message: "check bucket", Cause: err, Backend: "s3"}
	}
	if !exists {
		return nil, &voxlai.StorageError{Message: fmt.Sprintf("bucket %q does not exist", cfg.Bucket), Backend: "s3"}
	}

	return newS3Store(client, cfg), nil
}

func newS3Store(client *minio.Client, cfg S3Config) *S3Store {
	host := strings.TrimRight(cfg.PublicURL, "/")
	if host == "" {
		scheme := "http"
		if cfg.Secure {
			scheme = "https"
		}
		host = scheme + "://" + cfg.Endpoint
	}

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.TrimLeft(cfg.Prefix, "/"),
		host:   host,
	}
}

// Save uploads audio under a new key and returns its public URL.
func (s *S3Store) Save(ctx context.Context, audio *voxlai.Audio) (string, error) {
	if audio == nil || len(audio.Data) == 0 {
		return "", &voxlai.StorageError{Message: "no audio data", Backend: "s3"}
	}

	key := s.prefix + objectName(audio)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(audio.Data), int64(len(audio.Data)), minio.PutObjectOptions{
		ContentType:  contentType(audio),
		CacheControl: "no-cache",
		UserMetadata: map[string]string{"uploaded-at": time.Now().UTC().Format(time.RFC3339)},
	})
	if err != nil {
		return "", &voxlai.StorageError{Message: "upload failed", Cause: err, Backend: "s3"}
	}

	return s.publicURL(key), nil
}

func (s *S3Store) publicURL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return fmt.Sprintf("%s/%s/%s", s.host, s.bucket, strings.Join(parts, "/"))
}

var _ Store = (*S3Store)(nil)
