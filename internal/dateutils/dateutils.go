// Package dateutils provides the fixed date layouts used by the format
// decoders. Every import format declares exactly one layout; there is no
// format guessing.
package dateutils

import "time"

// Date layouts found in the supported export formats.
const (
	// LayoutSlashDMY is DD/MM/YYYY (generic CSV, Ciel Paye).
	LayoutSlashDMY = "02/01/2006"
	// LayoutPackedDMY is DDMMYYYY without separators (In Extenso).
	LayoutPackedDMY = "02012006"
	// LayoutPackedDMYShort is DDMMYY without separators (Quadra).
	LayoutPackedDMYShort = "020106"
	// LayoutPackedYMDShort is YYMMDD without separators (Nibelis).
	LayoutPackedYMDShort = "060102"
	// LayoutCompactISO is YYYYMMDD (FEC).
	LayoutCompactISO = "20060102"
	// LayoutISO is the canonical output format.
	LayoutISO = "2006-01-02"
)

// Parse parses value with the given fixed layout.
func Parse(layout, value string) (time.Time, error) {
	return time.Parse(layout, value)
}

// DayOf strips any time-of-day component, keeping the calendar date in UTC.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToISO formats a date as YYYY-MM-DD, or returns the empty string for the
// zero time.
func ToISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LayoutISO)
}
