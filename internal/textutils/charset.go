// Package textutils provides character-set handling for the text-based
// import formats. Vendor exports arrive in ASCII, Latin-1 (ISO 8859-15) or
// UTF-8; decoders wrap their input reader once and work in UTF-8 from there.
package textutils

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Supported file encodings.
const (
	EncodingASCII  = "ascii"
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf-8"
)

// NewReader wraps r so that its content is exposed as UTF-8.
// An empty encoding defaults to UTF-8. ASCII is a strict subset of UTF-8 and
// needs no transformation.
func NewReader(r io.Reader, encoding string) (io.Reader, error) {
	switch encoding {
	case "", EncodingASCII, EncodingUTF8:
		return r, nil
	case EncodingLatin1:
		// The accounting tools emitting "Latin-1" actually use ISO 8859-15
		// (euro sign at 0xA4).
		return transform.NewReader(r, charmap.ISO8859_15.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported file encoding: %s", encoding)
	}
}
