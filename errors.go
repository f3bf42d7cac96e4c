package html2md

import (
	"errors"

	"github.com/alnah/go-html2md/internal/blobstore"
	"github.com/alnah/go-html2md/internal/pipeline"
)

// Sentinel errors for library operations.
//
// Stage errors are aliases of the internal sentinels so errors.Is works on
// wrapped errors regardless of which layer produced them.
var (
	// Input validation errors.
	ErrEmptyInput     = errors.New("conversion input cannot be empty")
	ErrAmbiguousInput = errors.New("exactly one of HTML, Data, or URL must be set")

	// ErrFetch covers network and URL resolution failures on the document fetch.
	ErrFetch = pipeline.ErrFetch

	// ErrParse means the input could not be interpreted as HTML at all.
	// Malformed-but-parseable markup degrades gracefully instead.
	ErrParse = pipeline.ErrParse

	// ErrEncoding is an unrecoverable character-decoding failure, distinct
	// from the soft UTF-8 fallback applied to malformed byte sequences.
	ErrEncoding = pipeline.ErrEncoding

	// ErrImageFetch means an embedded image's bytes could not be obtained.
	ErrImageFetch = pipeline.ErrImageFetch

	// ErrUpload covers blob-store existence-check and put failures.
	ErrUpload = blobstore.ErrUpload

	// Configuration errors, raised at construction time rather than first use.
	ErrBlobConfigIncomplete = blobstore.ErrIncompleteConfig
	ErrStoreConnect         = blobstore.ErrStoreConnect
)
