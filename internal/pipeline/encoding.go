package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrEncoding indicates an unrecoverable character-decoding failure.
// Merely malformed byte sequences do not trigger it; they are replaced
// with U+FFFD so a bad byte never aborts a whole conversion.
var ErrEncoding = errors.New("character encoding resolution failed")

// DecodeToUTF8 resolves the character encoding of raw document bytes and
// returns the content as a UTF-8 string.
//
// Resolution follows the WHATWG sniffing order implemented by
// x/net/html/charset: byte order mark, Content-Type charset parameter,
// then <meta> declarations in the first 1024 bytes. When nothing matches,
// the HTML-standard fallback applies and decoding proceeds best-effort.
func DecodeToUTF8(data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	r, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	// A BOM consumed as content would leak U+FEFF into the Markdown.
	out := strings.TrimPrefix(string(decoded), "\ufeff")

	// Replace any sequences the decoder let through as invalid UTF-8.
	return strings.ToValidUTF8(out, "�"), nil
}
