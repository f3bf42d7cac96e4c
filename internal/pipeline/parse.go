package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrParse indicates the input could not be interpreted as HTML at all.
// Malformed or partial markup does not trigger it; the html5 parser
// recovers from broken tags and the conversion degrades gracefully.
var ErrParse = errors.New("HTML parsing failed")

// Engine parses sanitized HTML into a Document.
// This is the boundary to the document conversion machinery: the
// orchestrator treats the returned Document as an opaque structured model.
type Engine interface {
	Parse(ctx context.Context, htmlContent string, base *url.URL) (*Document, error)
}

// Document is the parsed structural model of an HTML page.
type Document struct {
	gq   *goquery.Document
	base *url.URL
}

// ImageNode is an embedded image reference found in the document.
type ImageNode struct {
	OriginalRef string // the src attribute exactly as written
	Alt         string
}

// Root returns the document's root selection for rendering.
func (d *Document) Root() *goquery.Selection {
	return d.gq.Selection
}

// Base returns the URL the document was fetched from, or nil for raw content.
func (d *Document) Base() *url.URL {
	return d.base
}

// Images enumerates the document's image nodes in document order.
// Nodes without a src attribute are not images to relocate and are skipped.
// The order is deterministic: repeated parses of the same input yield the
// same sequence.
func (d *Document) Images() []ImageNode {
	var images []ImageNode
	d.gq.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || strings.TrimSpace(src) == "" {
			return
		}
		images = append(images, ImageNode{
			OriginalRef: src,
			Alt:         sel.AttrOr("alt", ""),
		})
	})
	return images
}

// GoqueryEngine implements Engine on the x/net/html parser via goquery.
type GoqueryEngine struct{}

// NewGoqueryEngine creates a GoqueryEngine.
func NewGoqueryEngine() *GoqueryEngine {
	return &GoqueryEngine{}
}

// Parse builds the document model. Input that is empty after trimming has
// no interpretable markup and fails with ErrParse; everything else parses,
// however broken, thanks to html5 error recovery.
func (e *GoqueryEngine) Parse(ctx context.Context, htmlContent string, base *url.URL) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(htmlContent) == "" {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return &Document{gq: gq, base: base}, nil
}
