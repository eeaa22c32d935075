package fecparser

import (
	"strings"
	"testing"

	"fjacquet/move-import/internal/importerror"
	"fjacquet/move-import/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fecHeader = "JournalCode|JournalLib|EcritureNum|EcritureDate|CompteNum|CompteLib|CompAuxNum|CompAuxLib|PieceRef|PieceDate|EcritureLib|Debit|Credit|EcritureLet|DateLet|ValidDate|Montantdevise|Idevise"

func fecRow(journal, date, account, ref, label, debit, credit, let string) string {
	return strings.Join([]string{
		journal, "", "1", date, account, "", "", "", ref, date, label, debit, credit, let, "", "", "", "",
	}, "|")
}

func TestDecode(t *testing.T) {
	input := strings.Join([]string{
		fecHeader,
		fecRow("VT", "20240115", "411000", "F001", "Facture 1", "1200,00", "0,00", "AA"),
		fecRow("VT", "20240115", "706000", "F001", "Facture 1", "0,00", "1200,00", ""),
	}, "\n") + "\n"

	d := NewDecoder(nil)
	lines, err := d.Decode(strings.NewReader(input), models.DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	first := lines[0]
	assert.Equal(t, 2, first.Line, "Header row is counted but not emitted")
	assert.Equal(t, "VT", first.Journal.Code)
	assert.Equal(t, "411000", first.Account.Code)
	assert.Equal(t, "Facture 1", first.Label)
	assert.Equal(t, "F001", first.Ref)
	assert.Equal(t, "AA", first.ReconcileRef)
	assert.Equal(t, "2024-01-15", first.Date.Format("2006-01-02"))
	assert.True(t, first.Debit.Equal(decimal.NewFromInt(1200)))

	assert.Empty(t, lines[1].ReconcileRef)
}

func TestDecodeTabSeparator(t *testing.T) {
	input := strings.ReplaceAll(strings.Join([]string{
		fecHeader,
		fecRow("BQ", "20240131", "512000", "R001", "Relevé", "0,00", "500,00", ""),
	}, "\n")+"\n", "|", "\t")

	d := NewDecoder(nil)
	lines, err := d.Decode(strings.NewReader(input), models.DecodeOptions{Separator: '\t'})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "BQ", lines[0].Journal.Code)
	assert.True(t, lines[0].Credit.Equal(decimal.NewFromInt(500)))
}

func TestDecodeBadDate(t *testing.T) {
	input := strings.Join([]string{
		fecHeader,
		fecRow("VT", "15/01/2024", "411000", "F001", "Facture 1", "10", "0", ""),
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
	lines, err := d.Decode(strings.NewReader(fecHeader+"\n"), models.DecodeOptions{})
	require.NoError(t, err)
	assert.Empty(t, lines)
}
