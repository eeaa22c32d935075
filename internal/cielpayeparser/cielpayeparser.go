// Package cielpayeparser decodes Ciel Paye payroll exports: tab separated,
// minimally quoted, a single amount column plus a 'C'/'D' sign flag. Rows
// that are not movement rows (headers, totals, section titles) lack a date,
// label or amount and are skipped.
package cielpayeparser

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

const formatName = "cielpaye"

// csvRow mirrors the fixed 10-column Ciel Paye layout.
type csvRow struct {
	Col1    string
	Journal string
	Date    string
	Account string
	Col5    string
	Amount  string
	Sign    string
	Col8    string
	Label   string
	Col10   string
}

// isMovement is the data-row predicate: a movement row carries a date, a
// label and an amount.
func (r csvRow) isMovement() bool {
	return r.Date != "" && r.Label != "" && r.Amount != ""
}

// Decoder decodes Ciel Paye exports.
type Decoder struct {
	logger logging.Logger
}

// NewDecoder creates a Ciel Paye decoder.
func NewDecoder(logger logging.Logger) *Decoder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Decoder{logger: logger}
}

// Decode reads the whole export and returns one pivot line per movement row.
func (d *Decoder) Decode(r io.Reader, _ models.DecodeOptions) ([]models.PivotLine, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	var rows []*csvRow
	if err := gocsv.UnmarshalCSVWithoutHeaders(reader, &rows); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil, &importerror.DecodeError{Format: formatName, Reason: "cannot read file", Err: err}
	}

	var lines []models.PivotLine
	skipped := 0
	for i, row := range rows {
		n := i + 1
		if !row.isMovement() {
			skipped++
			continue
		}

		amount, err := models.ParseAmount(row.Amount)
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad amount", Err: err}
		}
		date, err := dateutils.Parse(dateutils.LayoutSlashDMY, row.Date)
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad date '" + row.Date + "'", Err: err}
		}

		line := models.PivotLine{
			Line:    n,
			Journal: models.EntityRef{Code: row.Journal},
			Account: models.EntityRef{Code: row.Account},
			Label:   row.Label,
			Date:    date,
		}
		// Single amount column; the flag decides the side.
		switch row.Sign {
		case "C":
			line.Credit = amount
		case "D":
			line.Debit = amount
		}
		lines = append(lines, line)
	}

	d.logger.Info("Decoded Ciel Paye file",
		logging.Field{Key: "lines", Value: len(lines)},
		logging.Field{Key: "skipped", Value: skipped})
	return lines, nil
}
