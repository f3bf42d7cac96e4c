package main

import (
	"errors"
	"os"

	html2md "github.com/alnah/go-html2md"
)

// Exit codes for html2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input validation
	ExitIO      = 3 // File not found, permission denied
	ExitNetwork = 4 // Page or image fetch errors
	ExitStore   = 5 // Object store errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Object store errors (exit 5)
	if errors.Is(err, html2md.ErrUpload) ||
		errors.Is(err, html2md.ErrStoreConnect) {
		return ExitStore
	}

	// Network errors (exit 4)
	if errors.Is(err, html2md.ErrFetch) ||
		errors.Is(err, html2md.ErrImageFetch) {
		return ExitNetwork
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrConfigParse) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, html2md.ErrEmptyInput) ||
		errors.Is(err, html2md.ErrAmbiguousInput) ||
		errors.Is(err, html2md.ErrBlobConfigIncomplete) ||
		errors.Is(err, html2md.ErrParse) ||
		errors.Is(err, html2md.ErrEncoding) {
		return ExitUsage
	}

	return ExitGeneral
}
