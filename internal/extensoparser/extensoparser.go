// Package extensoparser decodes In Extenso exports: tab separated, no header
// row, no quoting, packed DDMMYYYY dates. The format carries no label column;
// imports rely on the global label override.
package extensoparser

import (
	"encoding/csv"
	"errors"
	"io"

	"fjacquet/move-import/internal/dateutils"
	"fjacquet/move-import/internal/importerror"
	"fjacquet/move-import/internal/logging"
	"fjacquet/move-import/internal/models"

	"github.com/gocarina/gocsv"
)

const formatName = "extenso"

// csvRow mirrors the fixed 10-column In Extenso layout; only five columns
// carry data the pivot needs.
type csvRow struct {
	Journal string
	Date    string
	Col3    string
	Account string
	Col5    string
	Col6    string
	Col7    string
	Col8    string
	Debit   string
	Credit  string
}

// Decoder decodes In Extenso exports.
type Decoder struct {
	logger logging.Logger
}

// NewDecoder creates an In Extenso decoder.
func NewDecoder(logger logging.Logger) *Decoder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Decoder{logger: logger}
}

// Decode reads the whole export and returns one pivot line per record.
func (d *Decoder) Decode(r io.Reader, _ models.DecodeOptions) ([]models.PivotLine, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows []*csvRow
	if err := gocsv.UnmarshalCSVWithoutHeaders(reader, &rows); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil, &importerror.DecodeError{Format: formatName, Reason: "cannot read file", Err: err}
	}

	lines := make([]models.PivotLine, 0, len(rows))
	for i, row := range rows {
		n := i + 1

		date, err := dateutils.Parse(dateutils.LayoutPackedDMY, row.Date)
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad date '" + row.Date + "'", Err: err}
		}
		debit, err := models.ParseAmount(row.Debit)
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad debit", Err: err}
		}
		credit, err := models.ParseAmount(row.Credit)
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad credit", Err: err}
		}

		lines = append(lines, models.PivotLine{
			Line:    n,
			Journal: models.EntityRef{Code: row.Journal},
			Account: models.EntityRef{Code: row.Account},
			Debit:   debit,
			Credit:  credit,
			Date:    date,
		})
	}

	d.logger.Info("Decoded In Extenso file", logging.Field{Key: "lines", Value: len(lines)})
	return lines, nil
}
