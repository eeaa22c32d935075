// Package fecparser decodes FEC text exports (Fichier des Écritures
// Comptables), the French statutory ledger format: 18 named columns, pipe or
// tab separated, one header row, YYYYMMDD dates. It is the only format that
// carries an entry reference (PieceRef) and a reconciliation tag
// (EcritureLet).
package fecparser

import (
	"encoding/csv"
	"errors"
	"io"

	"fjacquet/move-import/internal/dateutils"
	"fjacquet/move-import/internal/importerror"
	"fjacquet/move-import/internal/logging"
	"fjacquet/move-import/internal/models"
	"fjacquet/move-import/internal/textutils"

	"github.com/gocarina/gocsv"
)

const formatName = "fec_txt"

// DefaultSeparator is the FEC field separator used when the caller does not
// select one.
const DefaultSeparator = '|'

// csvRow mirrors the statutory FEC column order.
type csvRow struct {
	JournalCode   string
	JournalLib    string
	EcritureNum   string
	EcritureDate  string
	CompteNum     string
	CompteLib     string
	CompAuxNum    string
	CompAuxLib    string
	PieceRef      string
	PieceDate     string
	EcritureLib   string
	Debit         string
	Credit        string
	EcritureLet   string
	DateLet       string
	ValidDate     string
	Montantdevise string
	Idevise       string
}

// Decoder decodes FEC text exports.
type Decoder struct {
	logger logging.Logger
}

// NewDecoder creates a FEC decoder.
func NewDecoder(logger logging.Logger) *Decoder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Decoder{logger: logger}
}

// Decode reads the whole export and returns one pivot line per data record.
// The single header row is counted but not emitted. Encoding and separator
// come from the options.
func (d *Decoder) Decode(r io.Reader, opts models.DecodeOptions) ([]models.PivotLine, error) {
	decoded, err := textutils.NewReader(r, opts.Encoding)
	if err != nil {
		return nil, &importerror.DecodeError{Format: formatName, Reason: "cannot decode input", Err: err}
	}

	separator := opts.Separator
	if separator == 0 {
		separator = DefaultSeparator
	}

	reader := csv.NewReader(decoded)
	reader.Comma = separator
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows []*csvRow
	if err := gocsv.UnmarshalCSVWithoutHeaders(reader, &rows); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil, &importerror.DecodeError{Format: formatName, Reason: "cannot read file", Err: err}
	}

	var lines []models.PivotLine
	for i, row := range rows {
		n := i + 1
		if n == 1 {
			// Header row.
			continue
		}

		debit, err := models.ParseAmount(row.Debit)
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad debit", Err: err}
		}
		credit, err := models.ParseAmount(row.Credit)
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad credit", Err: err}
		}
		date, err := dateutils.Parse(dateutils.LayoutCompactISO, row.EcritureDate)
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad date '" + row.EcritureDate + "'", Err: err}
		}

		lines = append(lines, models.PivotLine{
			Line:         n,
			Journal:      models.EntityRef{Code: row.JournalCode},
			Account:      models.EntityRef{Code: row.CompteNum},
			Label:        row.EcritureLib,
			Debit:        debit,
			Credit:       credit,
			Date:         date,
			Ref:          row.PieceRef,
			ReconcileRef: row.EcritureLet,
		})
	}

	d.logger.Info("Decoded FEC file", logging.Field{Key: "lines", Value: len(lines)})
	return lines, nil
}
