package html2md

import (
	"context"
	"fmt"

	"github.com/alnah/go-html2md/internal/blobstore"
	"github.com/alnah/go-html2md/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.Fetcher        = (*pipeline.HTTPFetcher)(nil)
	_ pipeline.ImageFetcher   = (*pipeline.HTTPFetcher)(nil)
	_ pipeline.Sanitizer      = (*pipeline.BluemondaySanitizer)(nil)
	_ pipeline.Engine         = (*pipeline.GoqueryEngine)(nil)
	_ pipeline.ImageRelocator = (*pipeline.BlobRelocator)(nil)
	_ pipeline.Renderer       = (*pipeline.MarkdownRenderer)(nil)
	_ blobstore.Store         = (*blobstore.MinioStore)(nil)
)

// Converter orchestrates the HTML-to-Markdown conversion pipeline:
// Fetch → Decode → Sanitize → Parse → Relocate images → Render.
// Create with NewConverter; a Converter is safe for concurrent use, as every
// conversion owns its document model, fingerprint cache, and link map.
type Converter struct {
	cfg         converterConfig
	fetcher     pipeline.Fetcher
	sanitizer   pipeline.Sanitizer
	engine      pipeline.Engine
	relocator   pipeline.ImageRelocator
	renderer    pipeline.Renderer
	store       blobstore.Store
	publicStore BlobStore // from WithBlobStore
}

// publicToInternalStore wraps the public BlobStore in the internal interface.
type publicToInternalStore struct {
	pub BlobStore
}

func (a *publicToInternalStore) Exists(ctx context.Context, key string) (bool, error) {
	return a.pub.Exists(ctx, key)
}

func (a *publicToInternalStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return a.pub.Put(ctx, key, data, contentType)
}

func (a *publicToInternalStore) PublicURL(key string) string {
	return a.pub.PublicURL(key)
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithFetchTimeout,
// WithImageProcessing). Returns an error if image processing is enabled
// with an incomplete blob store configuration.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{fetchTimeout: defaultFetchTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	httpFetcher := pipeline.NewHTTPFetcher(c.cfg.fetchTimeout, c.cfg.userAgent)
	if c.fetcher == nil {
		c.fetcher = httpFetcher
	}
	if c.sanitizer == nil {
		c.sanitizer = pipeline.NewBluemondaySanitizer()
	}
	if c.engine == nil {
		c.engine = pipeline.NewGoqueryEngine()
	}
	if c.renderer == nil {
		c.renderer = pipeline.NewMarkdownRenderer()
	}

	if c.cfg.imageProcessing {
		if c.publicStore != nil {
			c.store = &publicToInternalStore{pub: c.publicStore}
		}
		if c.store == nil {
			store, err := blobstore.NewMinioStore(c.cfg.blob.toStoreConfig())
			if err != nil {
				return nil, fmt.Errorf("configuring blob store: %w", err)
			}
			c.store = store
		}
		if c.relocator == nil {
			c.relocator = pipeline.NewBlobRelocator(c.store, httpFetcher, c.cfg.keepUnresolved)
		}
	}

	return c, nil
}

// ConvertContent converts a raw HTML string to Markdown.
func (c *Converter) ConvertContent(ctx context.Context, htmlContent string) (string, error) {
	result, err := c.Convert(ctx, Input{HTML: htmlContent})
	if err != nil {
		return "", err
	}
	return result.Markdown, nil
}

// ConvertURL fetches a page and converts it to Markdown.
func (c *Converter) ConvertURL(ctx context.Context, pageURL string) (string, error) {
	result, err := c.Convert(ctx, Input{URL: pageURL})
	if err != nil {
		return "", err
	}
	return result.Markdown, nil
}

// Convert runs the full pipeline and returns the Markdown plus the image
// link map. On failure no partial result is returned: the caller gets a
// single classified error identifying the stage and underlying cause.
// Recovers from internal panics to prevent crashes from propagating.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Fetch (URL input only; content input goes straight to decoding)
	fetched, err := c.resolve(ctx, input)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Decode to UTF-8
	decoded, err := pipeline.DecodeToUTF8(fetched.Bytes, fetched.ContentType)
	if err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	// Sanitize before parsing
	sanitized := c.sanitizer.Sanitize(ctx, decoded)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Parse into the document model
	doc, err := c.engine.Parse(ctx, sanitized, fetched.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	// Relocate images (identity when the stage is disabled)
	links := pipeline.LinkMap{}
	if c.relocator != nil {
		links, err = c.relocator.Relocate(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("relocating images: %w", err)
		}
	}

	// Render Markdown
	markdown, err := c.renderer.Render(ctx, doc, links)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	return &Result{Markdown: markdown, Images: links}, nil
}

// resolve normalizes the input variants into a fetched document.
func (c *Converter) resolve(ctx context.Context, input Input) (*pipeline.FetchedDocument, error) {
	switch {
	case input.URL != "":
		fetched, err := c.fetcher.Fetch(ctx, input.URL)
		if err != nil {
			return nil, fmt.Errorf("fetching %q: %w", input.URL, err)
		}
		return fetched, nil
	case input.Data != nil:
		return &pipeline.FetchedDocument{
			Bytes:       input.Data,
			ContentType: input.ContentType,
		}, nil
	default:
		// Go strings are UTF-8 already; declare it so decoding is a no-op.
		return &pipeline.FetchedDocument{
			Bytes:       []byte(input.HTML),
			ContentType: "text/html; charset=utf-8",
		}, nil
	}
}

// validateInput checks the one-variant invariant.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually; the CLI routes its positional argument into exactly one field.
func validateInput(input Input) error {
	populated := 0
	if input.HTML != "" {
		populated++
	}
	if len(input.Data) > 0 {
		populated++
	}
	if input.URL != "" {
		populated++
	}
	switch populated {
	case 0:
		return ErrEmptyInput
	case 1:
		return nil
	default:
		return ErrAmbiguousInput
	}
}
