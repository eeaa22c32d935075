package importer

import (
	"fjacquet/move-import/internal/dateutils"
	"fjacquet/move-import/internal/models"
)

// Normalize applies the import-wide overrides to every pivot line and fills
// the gaps decoders may leave. Overrides win over file content
// unconditionally, in fixed order: date, label, reference, journal. Any
// remaining time-of-day component is stripped. Normalization never fails; it
// only rewrites values.
func Normalize(lines []models.PivotLine, opts Options) []models.PivotLine {
	for i := range lines {
		l := &lines[i]
		if !opts.ForceDate.IsZero() {
			l.Date = opts.ForceDate
		}
		if opts.ForceLabel != "" {
			l.Label = opts.ForceLabel
		}
		if opts.ForceRef != "" {
			l.Ref = opts.ForceRef
		}
		if opts.ForceJournal != (models.EntityRef{}) {
			l.Journal = opts.ForceJournal
		}
		if !l.Date.IsZero() {
			l.Date = dateutils.DayOf(l.Date)
		}
	}
	return lines
}
