package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alnah/go-html2md/internal/imageutil"
)

// Sentinel errors for the fetch stage.
var (
	ErrFetch      = errors.New("document fetch failed")
	ErrImageFetch = errors.New("image retrieval failed")
)

// Size caps for fetched payloads. Documents and images beyond these bounds
// fail the fetch rather than exhaust memory.
const (
	MaxDocumentBytes = 32 << 20 // 32 MiB
	MaxImageBytes    = 16 << 20 // 16 MiB
)

// DefaultUserAgent identifies outbound requests.
const DefaultUserAgent = "go-html2md/1.0"

// FetchedDocument is the normalized input to the decoding and parsing stages.
type FetchedDocument struct {
	Bytes       []byte
	ContentType string   // Content-Type header value, may carry a charset
	SourceURL   *url.URL // nil for raw content input
}

// Fetcher resolves a URL into a fetched document.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*FetchedDocument, error)
}

// ImageFetcher downloads remote image bytes.
type ImageFetcher interface {
	FetchImage(ctx context.Context, rawURL string) (data []byte, mimeType string, err error)
}

// HTTPFetcher fetches documents and images over HTTP with a bounded timeout.
// Safe for concurrent use.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates an HTTPFetcher. The timeout bounds each request;
// absence of a response within it surfaces as a fetch error, never a hang.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch issues a GET for the document URL.
// Non-2xx statuses and transport failures wrap ErrFetch with the URL attached.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*FetchedDocument, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrFetch, rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q: unsupported scheme %q", ErrFetch, rawURL, parsed.Scheme)
	}

	body, contentType, err := f.get(ctx, rawURL, "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8", MaxDocumentBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrFetch, rawURL, err)
	}

	return &FetchedDocument{
		Bytes:       body,
		ContentType: contentType,
		SourceURL:   parsed,
	}, nil
}

// FetchImage downloads image bytes from a URL.
// The response must either declare an image content type or sniff as one.
func (f *HTTPFetcher) FetchImage(ctx context.Context, rawURL string) ([]byte, string, error) {
	body, contentType, err := f.get(ctx, rawURL, "image/*,*/*;q=0.8", MaxImageBytes)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q: %v", ErrImageFetch, rawURL, err)
	}

	mimeType := baseMIME(contentType)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = imageutil.DetectMIME(body)
	}
	if len(body) == 0 {
		return nil, "", fmt.Errorf("%w: %q: empty response body", ErrImageFetch, rawURL)
	}

	return body, mimeType, nil
}

// get performs a GET with the configured UA, enforcing the size cap.
func (f *HTTPFetcher) get(ctx context.Context, rawURL, accept string, maxBytes int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %v", err)
	}
	if int64(len(body)) > maxBytes {
		return nil, "", fmt.Errorf("response exceeds %d bytes", maxBytes)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// baseMIME strips parameters from a Content-Type value.
func baseMIME(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
