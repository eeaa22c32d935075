package importer

import (
	"testing"
	"time"

	"fjacquet/move-import/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOverrides(t *testing.T) {
	forced := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	lines := []models.PivotLine{
		{
			Line:    1,
			Journal: models.EntityRef{Code: "VT"},
			Label:   "Original",
			Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Ref:     "F001",
		},
		{Line: 2},
	}

	out := Normalize(lines, Options{
		ForceDate:    forced,
		ForceLabel:   "Paye janvier",
		ForceRef:     "PAY-2024-01",
		ForceJournal: models.EntityRef{Code: "MISC", ID: "journal-42"},
	})

	require.Len(t, out, 2)
	for _, l := range out {
		assert.Equal(t, forced, l.Date)
		assert.Equal(t, "Paye janvier", l.Label)
		assert.Equal(t, "PAY-2024-01", l.Ref)
		assert.Equal(t, "MISC", l.Journal.Code)
		assert.Equal(t, "journal-42", l.Journal.ID)
	}
}

func TestNormalizeNoOverrides(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	lines := []models.PivotLine{{
		Journal: models.EntityRef{Code: "VT"},
		Label:   "Original",
		Date:    date,
		Ref:     "F001",
	}}

	out := Normalize(lines, Options{})
	assert.Equal(t, "VT", out[0].Journal.Code)
	assert.Equal(t, "Original", out[0].Label)
	assert.Equal(t, "F001", out[0].Ref)
	assert.Equal(t, date, out[0].Date)
}

func TestNormalizeStripsTimeOfDay(t *testing.T) {
	lines := []models.PivotLine{{
		Date: time.Date(2024, 1, 15, 18, 30, 45, 0, time.FixedZone("CET", 3600)),
	}}

	out := Normalize(lines, Options{})
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), out[0].Date)
}
