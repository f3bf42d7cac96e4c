package pipeline

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips dangerous markup before parsing.
type Sanitizer interface {
	Sanitize(ctx context.Context, htmlContent string) string
}

// BluemondaySanitizer removes scripts, event handlers, javascript: URLs and
// other XSS vectors while preserving the structural elements the renderer
// cares about (headings, paragraphs, lists, tables, code, links, images).
// The policy is safe for concurrent use.
type BluemondaySanitizer struct {
	policy *bluemonday.Policy
}

// NewBluemondaySanitizer creates a sanitizer with a UGC policy.
// Data URIs on images stay allowed: inline images are extracted and
// relocated downstream, so stripping them here would lose content.
//
// The data-URI allowance covers base64 gif, jpeg, png, and webp payloads
// only. Inline SVG and percent-encoded data URIs are removed at this
// boundary as script vectors, before image accounting begins; the
// relocation stage's no-silent-drop guarantee applies to the sanitized
// document it receives.
func NewBluemondaySanitizer() *BluemondaySanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()
	return &BluemondaySanitizer{policy: policy}
}

// Sanitize returns the HTML with dangerous constructs removed.
func (s *BluemondaySanitizer) Sanitize(_ context.Context, htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}
