package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayouts(t *testing.T) {
	tests := []struct {
		layout string
		value  string
		want   string
	}{
		{LayoutSlashDMY, "15/01/2024", "2024-01-15"},
		{LayoutPackedDMY, "15012024", "2024-01-15"},
		{LayoutPackedDMYShort, "150124", "2024-01-15"},
		{LayoutPackedYMDShort, "240115", "2024-01-15"},
		{LayoutCompactISO, "20240115", "2024-01-15"},
	}
	for _, tc := range tests {
		date, err := Parse(tc.layout, tc.value)
		require.NoError(t, err, "layout %s value %s", tc.layout, tc.value)
		assert.Equal(t, tc.want, ToISO(date))
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(LayoutSlashDMY, "2024-01-15")
	assert.Error(t, err)

	_, err = Parse(LayoutPackedDMY, "99999999")
	assert.Error(t, err)
}

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	stamped := time.Date(2024, 1, 15, 18, 30, 45, 12345, loc)
	day := DayOf(stamped)

	assert.Equal(t, "2024-01-15", ToISO(day))
	assert.Equal(t, time.UTC, day.Location())
	assert.Equal(t, 0, day.Hour())
}

func TestToISOZero(t *testing.T) {
	assert.Equal(t, "", ToISO(time.Time{}))
}
