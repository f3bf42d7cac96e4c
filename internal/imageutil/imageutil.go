// Package imageutil provides image format detection and data: URI decoding.
package imageutil

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Sentinel errors for image utility operations.
var (
	ErrInvalidDataURI = errors.New("invalid data URI")
	ErrNotAnImage     = errors.New("data URI does not carry an image")
)

// DetectMIME returns the MIME type of image data by inspecting magic bytes.
// Falls back to http.DetectContentType for formats without a dedicated check,
// and to "image/png" when nothing matches (unknown content still gets a
// deterministic key).
func DetectMIME(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(data, []byte("\xff\xd8")):
		return "image/jpeg"
	case bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a")):
		return "image/gif"
	case bytes.HasPrefix(data, []byte("RIFF")) && len(data) >= 12 && bytes.Equal(data[8:12], []byte("WEBP")):
		return "image/webp"
	case bytes.HasPrefix(data, []byte("BM")):
		return "image/bmp"
	}

	if mime := http.DetectContentType(data); strings.HasPrefix(mime, "image/") {
		return mime
	}
	if looksLikeSVG(data) {
		return "image/svg+xml"
	}
	return "image/png"
}

// looksLikeSVG detects SVG markup, which has no binary magic bytes.
func looksLikeSVG(data []byte) bool {
	head := bytes.TrimSpace(data)
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<svg")) || bytes.Contains(head, []byte("<svg"))
}

// ExtensionForMIME returns the canonical file extension (with leading dot)
// for an image MIME type. Parameters such as "; charset=..." are ignored.
func ExtensionForMIME(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	case "image/svg+xml":
		return ".svg"
	case "image/x-icon", "image/vnd.microsoft.icon":
		return ".ico"
	case "image/tiff":
		return ".tiff"
	case "image/avif":
		return ".avif"
	default:
		return ".png"
	}
}

// ParseDataURI decodes a data: URI into raw bytes and a MIME type.
// Supports both base64 and percent-encoded payloads per RFC 2397.
// The media type must be image/*; anything else fails with ErrNotAnImage.
func ParseDataURI(uri string) (data []byte, mimeType string, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", fmt.Errorf("%w: missing data: scheme", ErrInvalidDataURI)
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("%w: missing comma separator", ErrInvalidDataURI)
	}

	isBase64 := false
	if s, found := strings.CutSuffix(meta, ";base64"); found {
		meta = s
		isBase64 = true
	}

	mimeType = strings.TrimSpace(meta)
	if mimeType == "" {
		// RFC 2397 default is text/plain, which is not an image.
		return nil, "", fmt.Errorf("%w: no media type", ErrNotAnImage)
	}
	// Drop parameters like ;charset=utf-8 for the image check.
	baseType := mimeType
	if i := strings.IndexByte(baseType, ';'); i >= 0 {
		baseType = baseType[:i]
	}
	if !strings.HasPrefix(baseType, "image/") {
		return nil, "", fmt.Errorf("%w: %q", ErrNotAnImage, baseType)
	}

	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// Tolerate unpadded payloads, which appear in the wild.
			data, err = base64.RawStdEncoding.DecodeString(payload)
		}
		if err != nil {
			return nil, "", fmt.Errorf("%w: base64 decode: %v", ErrInvalidDataURI, err)
		}
	} else {
		decoded, decErr := url.PathUnescape(payload)
		if decErr != nil {
			return nil, "", fmt.Errorf("%w: percent decode: %v", ErrInvalidDataURI, decErr)
		}
		data = []byte(decoded)
	}

	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty payload", ErrInvalidDataURI)
	}
	return data, baseType, nil
}
