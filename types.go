package html2md

import (
	"context"
	"time"

	"github.com/alnah/go-html2md/internal/blobstore"
)

// Input contains conversion parameters. Exactly one of HTML, Data, or URL
// must be set.
type Input struct {
	HTML        string // raw HTML string
	Data        []byte // raw HTML bytes, encoding resolved via ContentType and content sniffing
	URL         string // page to fetch over HTTP(S)
	ContentType string // optional encoding hint for Data, e.g. "text/html; charset=gbk"
}

// Result contains the conversion output.
type Result struct {
	// Markdown is the rendered document.
	Markdown string

	// Images maps each original image reference to its relocated public URL.
	// Empty when image processing is disabled.
	Images map[string]string
}

// BlobConfig configures the S3-compatible object store used for image
// relocation. Endpoint, AccessKey, SecretKey, and Bucket are required
// together when image processing is enabled.
type BlobConfig struct {
	Endpoint  string // host:port, e.g. "minio.internal:9000"
	AccessKey string
	SecretKey string
	Bucket    string

	// DisableTLS turns off HTTPS for the store connection and derived URLs.
	// TLS is on by default.
	DisableTLS bool

	// PublicURLPrefix overrides the base of public image URLs
	// (default: scheme://endpoint). The bucket and key are appended.
	PublicURLPrefix string
}

// Validate checks that all required store settings are present.
func (b *BlobConfig) Validate() error {
	return b.toStoreConfig().Validate()
}

// toStoreConfig converts the public config to the internal store config.
func (b *BlobConfig) toStoreConfig() blobstore.Config {
	if b == nil {
		return blobstore.Config{}
	}
	return blobstore.Config{
		Endpoint:        b.Endpoint,
		AccessKey:       b.AccessKey,
		SecretKey:       b.SecretKey,
		Bucket:          b.Bucket,
		UseTLS:          !b.DisableTLS,
		PublicURLPrefix: b.PublicURLPrefix,
	}
}

// BlobStore is the object-store capability consumed during image relocation.
// Implement it to plug in a backend other than the built-in MinIO client.
type BlobStore interface {
	// Exists reports whether the key is already stored.
	Exists(ctx context.Context, key string) (bool, error)

	// Put uploads data under the key with the given content type.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// PublicURL returns the public-facing URL for a stored key.
	PublicURL(key string) string
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	fetchTimeout    time.Duration
	userAgent       string
	imageProcessing bool
	keepUnresolved  bool
	blob            *BlobConfig
}

// defaultFetchTimeout bounds the document fetch when no timeout is specified.
const defaultFetchTimeout = 30 * time.Second

// WithFetchTimeout sets the timeout for the document fetch and image
// downloads. Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithFetchTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2md: WithFetchTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.fetchTimeout = d
	}
}

// WithUserAgent sets the User-Agent header for outbound requests.
func WithUserAgent(ua string) Option {
	return func(c *Converter) {
		c.cfg.userAgent = ua
	}
}

// WithImageProcessing enables the image relocation stage backed by the
// given blob store configuration. The configuration is validated in
// NewConverter; an incomplete one fails construction, not the first convert.
func WithImageProcessing(cfg BlobConfig) Option {
	return func(c *Converter) {
		c.cfg.imageProcessing = true
		c.cfg.blob = &cfg
	}
}

// WithBlobStore enables image processing against a caller-supplied store,
// bypassing the built-in MinIO client. Useful for alternative S3 backends
// and for tests.
func WithBlobStore(store BlobStore) Option {
	return func(c *Converter) {
		c.cfg.imageProcessing = true
		c.publicStore = store
	}
}

// WithKeepUnresolvedImages switches the image stage to its degraded mode:
// an image whose bytes cannot be obtained or stored keeps its original
// in-document reference instead of failing the conversion. The default is
// to abort on the first failed image.
func WithKeepUnresolvedImages() Option {
	return func(c *Converter) {
		c.cfg.keepUnresolved = true
	}
}
