package nibelisparser

import (
	"strings"
	"testing"

	"fjacquet/move-import/internal/importerror"
	"fjacquet/move-import/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row builds one 32-column record with the meaningful fields filled in.
func row(journal, date, account, amount, sign, label, analytic string) string {
	fields := make([]string, 32)
	fields[2] = journal
	fields[7] = date
	fields[14] = account
	fields[17] = amount
	fields[19] = sign
	fields[22] = label
	fields[31] = analytic
	return strings.Join(fields, ";")
}

func header() string {
	fields := make([]string, 32)
	for i := range fields {
		fields[i] = "col"
	}
	return strings.Join(fields, ";")
}

func TestDecode(t *testing.T) {
	input := strings.Join([]string{
		header(),
		// Latin-1 input: \xe9 is é in ISO 8859-15.
		row("OD", "240115", "621000", "99,50", "D", "Op\xe9ration", "PROJ1"),
		row("OD", "240115", "401000", "99,50", "C", "Op\xe9ration", ""),
	}, "\n") + "\n"

	d := NewDecoder(nil)
	lines, err := d.Decode(strings.NewReader(input), models.DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	first := lines[0]
	assert.Equal(t, 2, first.Line, "Header row is counted but not emitted")
	assert.Equal(t, "OD", first.Journal.Code)
	assert.Equal(t, "621000", first.Account.Code)
	assert.Equal(t, "Opération", first.Label, "Latin-1 content should arrive as UTF-8")
	assert.Equal(t, "2024-01-15", first.Date.Format("2006-01-02"))
	assert.True(t, first.Debit.Equal(decimal.NewFromFloat(99.5)))
	assert.True(t, first.Credit.IsZero())
	require.NotNil(t, first.Analytic)
	assert.Equal(t, "PROJ1", first.Analytic.Code)

	second := lines[1]
	assert.True(t, second.Credit.Equal(decimal.NewFromFloat(99.5)))
	assert.Nil(t, second.Analytic)
}

func TestDecodeBadDate(t *testing.T) {
	input := strings.Join([]string{
		header(),
		row("OD", "15/01/2024", "621000", "10", "D", "Label", ""),
	}, "\n") + "\n"

	d := NewDecoder(nil)
	_, err := d.Decode(strings.NewReader(input), models.DecodeOptions{})
	require.Error(t, err)

	var decodeErr *importerror.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 2, decodeErr.Line)
}

func TestDecodeHeaderOnly(t *testing.T) {
	d := NewDecoder(nil)
	lines, err := d.Decode(strings.NewReader(header()+"\n"), models.DecodeOptions{})
	require.NoError(t, err)
	assert.Empty(t, lines)
}
