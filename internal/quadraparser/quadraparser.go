// Package quadraparser decodes Quadra exports, a fixed-width format. Only
// movement records are used: they start with an 'M' sentinel, carry a
// 'C'/'D' sign character at offset 41 and the amount as a zero-padded
// integer number of cents at offsets 42-54. Shorter records (headers,
// footers, comments) are silently skipped.
package quadraparser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"fjacquet/move-import/internal/dateutils"
	"fjacquet/move-import/internal/importerror"
	"fjacquet/move-import/internal/logging"
	"fjacquet/move-import/internal/models"
	"fjacquet/move-import/internal/textutils"

	"github.com/shopspring/decimal"
)

const formatName = "quadra"

// Fixed-width field offsets, in characters.
const (
	minRecordLen   = 54
	accountStart   = 1
	accountEnd     = 9
	journalStart   = 9
	journalEnd     = 11
	dateStart      = 14
	dateEnd        = 20
	labelStart     = 21
	labelEnd       = 41
	signOffset     = 41
	amountStart    = 42
	amountEnd      = 55
)

// Decoder decodes Quadra fixed-width exports.
type Decoder struct {
	logger logging.Logger
}

// NewDecoder creates a Quadra decoder.
func NewDecoder(logger logging.Logger) *Decoder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Decoder{logger: logger}
}

// Decode scans the export line by line and returns one pivot line per
// movement record.
func (d *Decoder) Decode(r io.Reader, opts models.DecodeOptions) ([]models.PivotLine, error) {
	decoded, err := textutils.NewReader(r, opts.Encoding)
	if err != nil {
		return nil, &importerror.DecodeError{Format: formatName, Reason: "cannot decode input", Err: err}
	}

	var lines []models.PivotLine
	skipped := 0
	n := 0
	scanner := bufio.NewScanner(decoded)
	for scanner.Scan() {
		n++
		// Offsets are character positions, not byte positions.
		record := []rune(scanner.Text())
		if len(record) < minRecordLen {
			skipped++
			continue
		}
		sign := record[signOffset]
		if record[0] != 'M' || (sign != 'C' && sign != 'D') {
			skipped++
			continue
		}

		end := amountEnd
		if len(record) < end {
			end = len(record)
		}
		cents, err := strconv.ParseInt(strings.TrimSpace(string(record[amountStart:end])), 10, 64)
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad amount", Err: err}
		}
		amount := decimal.New(cents, -2)

		date, err := dateutils.Parse(dateutils.LayoutPackedDMYShort, string(record[dateStart:dateEnd]))
		if err != nil {
			return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "bad date", Err: err}
		}

		line := models.PivotLine{
			Line:    n,
			Journal: models.EntityRef{Code: strings.TrimSpace(string(record[journalStart:journalEnd]))},
			Account: models.EntityRef{Code: strings.TrimSpace(string(record[accountStart:accountEnd]))},
			Label:   strings.TrimSpace(string(record[labelStart:labelEnd])),
			Date:    date,
		}
		if sign == 'C' {
			line.Credit = amount
		} else {
			line.Debit = amount
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &importerror.DecodeError{Format: formatName, Line: n, Reason: "cannot read file", Err: err}
	}

	d.logger.Info("Decoded Quadra file",
		logging.Field{Key: "lines", Value: len(lines)},
		logging.Field{Key: "skipped", Value: skipped})
	return lines, nil
}
