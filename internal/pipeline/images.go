package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/alnah/go-html2md/internal/blobstore"
	"github.com/alnah/go-html2md/internal/imageutil"
)

// keyPrefix namespaces relocated images inside the bucket.
const keyPrefix = "images/"

// LinkMap maps an image's original reference to its relocated public URL.
// Built incrementally during relocation, consumed read-only by the renderer.
type LinkMap map[string]string

// ImageRelocator extracts embedded images, persists them to the blob store,
// and returns the link map for the renderer.
type ImageRelocator interface {
	Relocate(ctx context.Context, doc *Document) (LinkMap, error)
}

// BlobRelocator implements ImageRelocator against a blobstore.Store.
//
// For each distinct image reference it obtains the raw bytes (inline data:
// URIs are decoded, remote URLs downloaded), fingerprints the content with
// SHA-256, and uploads under a content-addressed key unless the store
// already holds it. Identical content embedded multiple times uploads once.
//
// All per-run state (the fingerprint cache and link map) is local to a
// single Relocate call, so one BlobRelocator serves concurrent conversions.
type BlobRelocator struct {
	store          blobstore.Store
	images         ImageFetcher
	keepUnresolved bool
}

// NewBlobRelocator creates a BlobRelocator.
// With keepUnresolved true, images whose bytes cannot be obtained or stored
// keep their original in-document reference instead of failing the
// conversion; the default is to abort on the first failed image.
func NewBlobRelocator(store blobstore.Store, images ImageFetcher, keepUnresolved bool) *BlobRelocator {
	return &BlobRelocator{
		store:          store,
		images:         images,
		keepUnresolved: keepUnresolved,
	}
}

// Relocate walks the document's images in document order and returns the
// completed link map. After it returns, every image reference either has a
// public URL in the map or, in the opt-in degraded mode, was deliberately
// left unresolved; a nil error never hides a dropped image. The guarantee
// covers the sanitized document: inline payloads the sanitizer rejects
// (SVG, percent-encoded data URIs) never reach this stage.
func (r *BlobRelocator) Relocate(ctx context.Context, doc *Document) (LinkMap, error) {
	links := make(LinkMap)
	// Run-local fingerprint cache: content hash -> resolved public URL.
	resolved := make(map[string]string)

	for _, img := range doc.Images() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, done := links[img.OriginalRef]; done {
			continue
		}

		data, mimeType, err := r.loadImage(ctx, doc, img.OriginalRef)
		if err != nil {
			if r.keepUnresolved {
				continue
			}
			return nil, err
		}

		sum := sha256.Sum256(data)
		hash := hex.EncodeToString(sum[:])
		if publicURL, seen := resolved[hash]; seen {
			links[img.OriginalRef] = publicURL
			continue
		}

		key := keyPrefix + hash + imageutil.ExtensionForMIME(mimeType)
		exists, err := r.store.Exists(ctx, key)
		if err != nil {
			if r.keepUnresolved {
				continue
			}
			return nil, err
		}
		if !exists {
			if err := r.store.Put(ctx, key, data, mimeType); err != nil {
				if r.keepUnresolved {
					continue
				}
				return nil, err
			}
		}

		publicURL := r.store.PublicURL(key)
		resolved[hash] = publicURL
		links[img.OriginalRef] = publicURL
	}

	return links, nil
}

// loadImage obtains the raw bytes and MIME type for an image reference.
func (r *BlobRelocator) loadImage(ctx context.Context, doc *Document, ref string) ([]byte, string, error) {
	if strings.HasPrefix(ref, "data:") {
		data, mimeType, err := imageutil.ParseDataURI(ref)
		if err != nil {
			return nil, "", fmt.Errorf("%w: inline image: %v", ErrImageFetch, err)
		}
		return data, mimeType, nil
	}

	target, err := r.resolveImageURL(doc, ref)
	if err != nil {
		return nil, "", err
	}
	return r.images.FetchImage(ctx, target)
}

// resolveImageURL turns an image reference into an absolute URL.
// Scheme-relative references inherit the document's scheme (https without
// a source URL); relative references require a source URL to resolve
// against and fail otherwise.
func (r *BlobRelocator) resolveImageURL(doc *Document, ref string) (string, error) {
	if strings.HasPrefix(ref, "//") {
		scheme := "https"
		if base := doc.Base(); base != nil && base.Scheme != "" {
			scheme = base.Scheme
		}
		return scheme + ":" + ref, nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}

	base := doc.Base()
	if base == nil {
		return "", fmt.Errorf("%w: %q: relative reference without a source URL", ErrImageFetch, ref)
	}
	refURL, err := base.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrImageFetch, ref, err)
	}
	return refURL.String(), nil
}
