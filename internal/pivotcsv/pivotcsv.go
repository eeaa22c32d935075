// Package pivotcsv writes pivot lines in the canonical generic CSV layout,
// so any supported vendor format can be converted into the reference format.
package pivotcsv

import (
	"fmt"
	"io"

	"fjacquet/move-import/internal/dateutils"
	"fjacquet/move-import/internal/models"

	"github.com/gocarina/gocsv"
)

// pivotRow is the output row layout.
type pivotRow struct {
	Line      int    `csv:"line"`
	Date      string `csv:"date"`
	Journal   string `csv:"journal"`
	Account   string `csv:"account"`
	Partner   string `csv:"partner"`
	Analytic  string `csv:"analytic"`
	Label     string `csv:"label"`
	Debit     string `csv:"debit"`
	Credit    string `csv:"credit"`
	Ref       string `csv:"ref"`
	Reconcile string `csv:"reconcile"`
}

// Write renders the pivot lines as CSV with a header row.
func Write(lines []models.PivotLine, w io.Writer) error {
	rows := make([]pivotRow, 0, len(lines))
	for _, l := range lines {
		row := pivotRow{
			Line:      l.Line,
			Date:      dateutils.ToISO(l.Date),
			Journal:   l.Journal.Code,
			Account:   l.Account.Code,
			Label:     l.Label,
			Debit:     l.Debit.String(),
			Credit:    l.Credit.String(),
			Ref:       l.Ref,
			Reconcile: l.ReconcileRef,
		}
		if l.Partner != nil {
			row.Partner = l.Partner.Code
		}
		if l.Analytic != nil {
			row.Analytic = l.Analytic.Code
		}
		rows = append(rows, row)
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("error writing pivot CSV: %w", err)
	}
	return nil
}
