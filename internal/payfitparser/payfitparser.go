// Package payfitparser decodes Payfit payroll workbooks. The data lives on
// the second sheet; the first row is a header and rows whose leading column
// is not an account number are section titles or totals and are skipped.
// Account cells may carry a sub-code suffix after a period, which is
// stripped. The workbook has no journal or date columns: imports must supply
// both through the global overrides.
package payfitparser

import (
	"io"
	"strings"
	"unicode"

	"fjacquet/move-import/internal/importerror"
	"fjacquet/move-import/internal/logging"
	"fjacquet/move-import/internal/models"

	"github.com/xuri/excelize/v2"
)

const formatName = "payfit"

// payrollLabel is the label applied to every Payfit movement.
const payrollLabel = "Paye"

// Column positions on the data sheet.
const (
	colAccount  = 0
	colAnalytic = 3
	colDebit    = 5
	colCredit   = 6
)

// Decoder decodes Payfit workbooks.
type Decoder struct {
	logger logging.Logger
}

// NewDecoder creates a Payfit decoder.
func NewDecoder(logger logging.Logger) *Decoder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Decoder{logger: logger}
}

// Decode opens the workbook and returns one pivot line per data row of the
// second sheet.
func (d *Decoder) Decode(r io.Reader, _ models.DecodeOptions) ([]models.PivotLine, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &importerror.DecodeError{Format: formatName, Reason: "cannot open workbook", Err: err}
	}
	defer func() {
		if err := book.Close(); err != nil {
			d.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	sheets := book.GetSheetList()
	if len(sheets) < 2 {
		return nil, &importerror.DecodeError{Format: formatName, Reason: "workbook has no second sheet"}
	}
	rows, err := book.GetRows(sheets[1])
	if err != nil {
		return nil, &importerror.DecodeError{Format: formatName, Reason: "cannot read sheet '" + sheets[1] + "'", Err: err}
	}

	cell := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var lines []models.PivotLine
	skipped := 0
	for rownum, row := range rows {
		n := rownum + 1
		if n == 1 {
			// Header row.
			continue
		}
		account := cell(row, colAccount)
		if account == "" {
			skipped++
			continue
		}
		// Spreadsheet account cells look like "421000.12"; the part after
		// the period is a sub-code, not part of the account number.
		if idx := strings.Index(account, "."); idx >= 0 {
			account = account[:idx]
		}
		if account == "" || !unicode.IsDigit(rune(account[0])) {
			skipped++
			continue
		}

		debit, err := models.ParseAmount(cell(row, colDebit))
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad debit", Err: err}
		}
		credit, err := models.ParseAmount(cell(row, colCredit))
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad credit", Err: err}
		}

		line := models.PivotLine{
			Line:    n,
			Account: models.EntityRef{Code: account},
			Label:   payrollLabel,
			Debit:   debit,
			Credit:  credit,
		}
		if analytic := cell(row, colAnalytic); analytic != "" {
			ref := models.EntityRef{Code: analytic}
			line.Analytic = &ref
		}
		lines = append(lines, line)
	}

	d.logger.Info("Decoded Payfit workbook",
		logging.Field{Key: "sheet", Value: sheets[1]},
		logging.Field{Key: "lines", Value: len(lines)},
		logging.Field{Key: "skipped", Value: skipped})
	return lines, nil
}
