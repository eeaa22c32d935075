// Package decoder maps format identifiers to the format-specific decoders.
// New formats register themselves here; nothing downstream of the registry
// knows one format from another.
package decoder

import (
	"fmt"
	"sort"

	"fjacquet/move-import/internal/cielpayeparser"
	"fjacquet/move-import/internal/extensoparser"
	"fjacquet/move-import/internal/fecparser"
	"fjacquet/move-import/internal/genericparser"
	"fjacquet/move-import/internal/logging"
	"fjacquet/move-import/internal/models"
	"fjacquet/move-import/internal/nibelisparser"
	"fjacquet/move-import/internal/payfitparser"
	"fjacquet/move-import/internal/quadraparser"
)

// Format identifies one of the supported file formats.
type Format string

const (
	GenericCSV Format = "genericcsv"
	Nibelis    Format = "nibelis"
	Quadra     Format = "quadra"
	Extenso    Format = "extenso"
	CielPaye   Format = "cielpaye"
	Payfit     Format = "payfit"
	FECText    Format = "fec_txt"
)

// Constructor builds a decoder instance with the given logger.
type Constructor func(logger logging.Logger) models.Decoder

var registry = map[Format]Constructor{
	GenericCSV: func(l logging.Logger) models.Decoder { return genericparser.NewDecoder(l) },
	Nibelis:    func(l logging.Logger) models.Decoder { return nibelisparser.NewDecoder(l) },
	Quadra:     func(l logging.Logger) models.Decoder { return quadraparser.NewDecoder(l) },
	Extenso:    func(l logging.Logger) models.Decoder { return extensoparser.NewDecoder(l) },
	CielPaye:   func(l logging.Logger) models.Decoder { return cielpayeparser.NewDecoder(l) },
	Payfit:     func(l logging.Logger) models.Decoder { return payfitparser.NewDecoder(l) },
	FECText:    func(l logging.Logger) models.Decoder { return fecparser.NewDecoder(l) },
}

// Register adds or replaces a decoder constructor for a format.
func Register(format Format, ctor Constructor) {
	registry[format] = ctor
}

// Get returns a new decoder instance for the given format.
func Get(format Format, logger logging.Logger) (models.Decoder, error) {
	ctor, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("unknown file format: %s", format)
	}
	return ctor(logger), nil
}

// Formats lists the registered format identifiers in stable order.
func Formats() []Format {
	formats := make([]Format, 0, len(registry))
	for f := range registry {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
