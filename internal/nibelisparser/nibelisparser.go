// Package nibelisparser decodes Nibelis (Prisme) exports: semicolon
// separated, Latin-1 encoded, one header row, 32 columns of which seven are
// meaningful. Amounts come as a single column with a 'C'/'D' sign flag and a
// comma decimal separator; dates are packed YYMMDD.
package nibelisparser

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

const formatName = "nibelis"

// csvRow mirrors the fixed 32-column Nibelis layout. The export is padded
// with columns the pivot does not use; they are kept so positional mapping
// lines up.
type csvRow struct {
	Col1     string
	Col2     string
	Journal  string
	Col4     string
	Col5     string
	Col6     string
	Col7     string
	Date     string
	Col9     string
	Col10    string
	Col11    string
	Col12    string
	Col13    string
	Col14    string
	Account  string
	Col16    string
	Col17    string
	Amount   string
	Col19    string
	Sign     string
	Col21    string
	Col22    string
	Label    string
	Col24    string
	Col25    string
	Col26    string
	Col27    string
	Col28    string
	Col29    string
	Col30    string
	Col31    string
	Analytic string
}

// Decoder decodes Nibelis exports.
type Decoder struct {
	logger logging.Logger
}

// NewDecoder creates a Nibelis decoder.
func NewDecoder(logger logging.Logger) *Decoder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Decoder{logger: logger}
}

// Decode reads the whole export and returns one pivot line per data record.
// The single header row is counted but not emitted.
func (d *Decoder) Decode(r io.Reader, _ models.DecodeOptions) ([]models.PivotLine, error) {
	decoded, err := textutils.NewReader(r, textutils.EncodingLatin1)
	if err != nil {
		return nil, &importerror.DecodeError{Format: formatName, Reason: "cannot decode input", Err: err}
	}

	reader := csv.NewReader(decoded)
	reader.Comma = ';'
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

		amount, err := models.ParseAmount(row.Amount)
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad amount", Err: err}
		}
		date, err := dateutils.Parse(dateutils.LayoutPackedYMDShort, row.Date)
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
		switch row.Sign {
		case "C":
			line.Credit = amount
		case "D":
			line.Debit = amount
		}
		if row.Analytic != "" {
			ref := models.EntityRef{Code: row.Analytic}
			line.Analytic = &ref
		}
		lines = append(lines, line)
	}

	d.logger.Info("Decoded Nibelis file", logging.Field{Key: "lines", Value: len(lines)})
	return lines, nil
}
