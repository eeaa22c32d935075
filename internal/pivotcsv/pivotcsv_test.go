package pivotcsv

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"fjacquet/move-import/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	lines := []models.PivotLine{
		{
			Line:         1,
			Journal:      models.EntityRef{Code: "VT"},
			Account:      models.EntityRef{Code: "411000"},
			Partner:      &models.EntityRef{Code: "C0042"},
			Label:        "Facture 1",
			Debit:        decimal.NewFromFloat(1200.50),
			Credit:       decimal.Zero,
			Date:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Ref:          "F001",
			ReconcileRef: "AA",
		},
		{
			Line:     2,
			Journal:  models.EntityRef{Code: "VT"},
			Account:  models.EntityRef{Code: "706000"},
			Analytic: &models.EntityRef{Code: "PROJ1"},
			Label:    "Facture 1",
			Credit:   decimal.NewFromFloat(1200.50),
			Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Ref:      "F001",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(lines, &buf))

	out := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, out, 3, "Header plus one row per line")
	assert.Equal(t, "line,date,journal,account,partner,analytic,label,debit,credit,ref,reconcile", out[0])
	assert.Equal(t, "1,2024-01-15,VT,411000,C0042,,Facture 1,1200.5,0,F001,AA", out[1])
	assert.Equal(t, "2,2024-01-15,VT,706000,,PROJ1,Facture 1,0,1200.5,F001,", out[2])
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(nil, &buf))
	assert.Equal(t, "line,date,journal,account,partner,analytic,label,debit,credit,ref,reconcile",
		strings.TrimRight(buf.String(), "\n"))
}
