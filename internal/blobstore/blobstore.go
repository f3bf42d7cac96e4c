// Package blobstore provides the S3-compatible object store used for image
// relocation. The Store interface covers the three capabilities the pipeline
// needs: existence check, upload, and public URL derivation.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Sentinel errors for blob store operations.
var (
	ErrIncompleteConfig = errors.New("incomplete blob store configuration")
	ErrStoreConnect     = errors.New("failed to create blob store client")
	ErrUpload           = errors.New("blob store upload failed")
)

// Config holds connection settings for an S3-compatible object store.
type Config struct {
	Endpoint        string // host:port, e.g. "localhost:9000"
	AccessKey       string
	SecretKey       string
	Bucket          string
	UseTLS          bool
	PublicURLPrefix string // optional, e.g. "https://cdn.example.com"
}

// Validate checks that all required connection settings are present.
func (c Config) Validate() error {
	var missing []string
	if c.Endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if c.AccessKey == "" {
		missing = append(missing, "access key")
	}
	if c.SecretKey == "" {
		missing = append(missing, "secret key")
	}
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteConfig, strings.Join(missing, ", "))
	}
	return nil
}

// publicBase returns the base for public URLs: the configured prefix,
// or scheme://endpoint derived from the TLS setting.
func (c Config) publicBase() string {
	if c.PublicURLPrefix != "" {
		return strings.TrimRight(c.PublicURLPrefix, "/")
	}
	scheme := "https"
	if !c.UseTLS {
		scheme = "http"
	}
	return scheme + "://" + c.Endpoint
}

// Store is the object-store capability consumed by the image pipeline.
type Store interface {
	// Exists reports whether the key is already present in the bucket.
	Exists(ctx context.Context, key string) (bool, error)

	// Put uploads data under the key with the given content type.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// PublicURL returns the public-facing URL for a stored key.
	PublicURL(key string) string
}

// MinioStore implements Store backed by a MinIO / S3-compatible server.
type MinioStore struct {
	client *minio.Client
	cfg    Config
}

// NewMinioStore creates a MinioStore from the given configuration.
// The configuration is validated eagerly; no network call is made here.
func NewMinioStore(cfg Config) (*MinioStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreConnect, err)
	}

	return &MinioStore{client: client, cfg: cfg}, nil
}

// Exists checks the bucket for the key via a stat call.
// A missing key is not an error; transport or auth failures are.
func (s *MinioStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.cfg.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat %q: %v", ErrUpload, key, err)
	}
	return true, nil
}

// Put uploads data under key. Uploads are idempotent: identical content maps
// to identical keys, so a concurrent duplicate write is harmless.
func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("%w: put %q: %v", ErrUpload, key, err)
	}
	return nil
}

// PublicURL returns <prefix>/<bucket>/<key>, where prefix is the configured
// public URL prefix or the endpoint with the appropriate scheme.
func (s *MinioStore) PublicURL(key string) string {
	return s.cfg.publicBase() + "/" + s.cfg.Bucket + "/" + key
}

// EnsureBucket creates the configured bucket if it does not exist.
// Callers that manage bucket provisioning elsewhere can skip this.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("%w: bucket check %q: %v", ErrUpload, s.cfg.Bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("%w: create bucket %q: %v", ErrUpload, s.cfg.Bucket, err)
	}
	return nil
}
