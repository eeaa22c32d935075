package quadraparser

import (
	"fmt"
	"strings"
	"testing"

	"fjacquet/move-import/internal/importerror"
	"fjacquet/move-import/internal/models"
	"fjacquet/move-import/internal/textutils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// record builds one movement record with the fixed-width layout.
func record(account, journal, date, label string, sign rune, cents int64) string {
	return fmt.Sprintf("M%-8s%-2s%3s%6s %-20s%c%013d", account, journal, "", date, label, sign, cents)
}

func TestDecode(t *testing.T) {
	input := strings.Join([]string{
		record("641000", "OD", "150124", "Salaires janvier", 'D', 250000),
		record("421000", "OD", "150124", "Salaires janvier", 'C', 250000),
	}, "\n") + "\n"

	d := NewDecoder(nil)
	lines, err := d.Decode(strings.NewReader(input), models.DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	first := lines[0]
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, "641000", first.Account.Code)
	assert.Equal(t, "OD", first.Journal.Code)
	assert.Equal(t, "Salaires janvier", first.Label)
	assert.Equal(t, "2024-01-15", first.Date.Format("2006-01-02"))
	assert.True(t, first.Debit.Equal(decimal.NewFromInt(2500)), "Amount is an integer number of cents")
	assert.True(t, first.Credit.IsZero())

	second := lines[1]
	assert.True(t, second.Credit.Equal(decimal.NewFromInt(2500)))
}

func TestDecodeSkipsNonMovementRecords(t *testing.T) {
	input := strings.Join([]string{
		"C a short comment record",
		record("641000", "OD", "150124", "Salaires", 'D', 1000),
		// Long enough but not a movement record.
		"X" + strings.Repeat(" ", 60),
		record("421000", "OD", "150124", "Salaires", 'C', 1000),
	}, "\n") + "\n"

	d := NewDecoder(nil)
	lines, err := d.Decode(strings.NewReader(input), models.DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Line, "Line numbers count skipped records")
	assert.Equal(t, 4, lines[1].Line)
}

func TestDecodeBadAmount(t *testing.T) {
	rec := []rune(record("641000", "OD", "150124", "Salaires", 'D', 0))
	copy(rec[42:], []rune("00000000000AB"))

	d := NewDecoder(nil)
	_, err := d.Decode(strings.NewReader(string(rec)+"\n"), models.DecodeOptions{})
	require.Error(t, err)

	var decodeErr *importerror.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 1, decodeErr.Line)
	assert.Contains(t, decodeErr.Reason, "bad amount")
}

func TestDecodeLatin1(t *testing.T) {
	// \xe9 is é in ISO 8859-15; offsets are character positions, so the
	// multi-byte decoding must not shift the amount field.
	input := record("641000", "OD", "150124", "Op\xe9ration paye", 'D', 1000) + "\n"

	d := NewDecoder(nil)
	lines, err := d.Decode(strings.NewReader(input), models.DecodeOptions{Encoding: textutils.EncodingLatin1})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Opération paye", lines[0].Label)
	assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(10)))
}

func TestDecodeEmpty(t *testing.T) {
	d := NewDecoder(nil)
	lines, err := d.Decode(strings.NewReader(""), models.DecodeOptions{})
	require.NoError(t, err)
	assert.Empty(t, lines)
}
