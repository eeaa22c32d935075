package models

import "io"

// DecodeOptions carries the caller-selectable knobs a decoder may honor.
// Formats that declare a fixed encoding or separator ignore the
// corresponding field.
type DecodeOptions struct {
	// Encoding is the declared character encoding of the source file
	// (textutils.EncodingASCII, EncodingLatin1 or EncodingUTF8).
	Encoding string
	// Separator selects the field separator for formats that allow more
	// than one (FEC: '|' or '\t').
	Separator rune
}

// Decoder turns a raw export file into an ordered sequence of pivot lines.
// Implementations are pure functions over their input: same bytes in, same
// lines out, with strictly increasing line numbers.
type Decoder interface {
	Decode(r io.Reader, opts DecodeOptions) ([]PivotLine, error)
}
