// Package genericparser decodes the generic CSV export format: comma
// separated, double-quote quoted, no header row, one pivot line per record.
// This is the reference format other systems are asked to produce.
package genericparser

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

const formatName = "genericcsv"

// csvRow mirrors the fixed column order of the generic CSV format. The file
// has no header, so mapping is positional.
type csvRow struct {
	Date     string
	Journal  string
	Account  string
	Partner  string
	Analytic string
	Label    string
	Debit    string
	Credit   string
}

// Decoder decodes generic CSV exports.
type Decoder struct {
	logger logging.Logger
}

// NewDecoder creates a generic CSV decoder.
func NewDecoder(logger logging.Logger) *Decoder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Decoder{logger: logger}
}

// Decode reads the whole export and returns one pivot line per record.
func (d *Decoder) Decode(r io.Reader, _ models.DecodeOptions) ([]models.PivotLine, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows []*csvRow
	if err := gocsv.UnmarshalCSVWithoutHeaders(reader, &rows); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil, &importerror.DecodeError{Format: formatName, Reason: "cannot read CSV", Err: err}
	}

	lines := make([]models.PivotLine, 0, len(rows))
	for i, row := range rows {
		n := i + 1

		date, err := dateutils.Parse(dateutils.LayoutSlashDMY, row.Date)
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

		line := models.PivotLine{
			Line:    n,
			Journal: models.EntityRef{Code: row.Journal},
			Account: models.EntityRef{Code: row.Account},
			Label:   row.Label,
			Debit:   debit,
			Credit:  credit,
			Date:    date,
		}
		if row.Partner != "" {
			ref := models.EntityRef{Code: row.Partner}
			line.Partner = &ref
		}
		if row.Analytic != "" {
			ref := models.EntityRef{Code: row.Analytic}
			line.Analytic = &ref
		}
		lines = append(lines, line)
	}

	d.logger.Info("Decoded generic CSV", logging.Field{Key: "lines", Value: len(lines)})
	return lines, nil
}
