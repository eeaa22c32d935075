// Package models defines the canonical pivot representation shared by all
// format decoders. A decoder turns one vendor export row into one PivotLine;
// everything downstream (normalizer, assembler, matcher) only ever sees
// pivot lines.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityRef is an opaque reference to a ledger entity. Decoders only emit
// codes; resolution against the ledger happens later. ID is set when the
// reference was pre-resolved (forced journal override).
type EntityRef struct {
	Code string
	ID   string
}

// Resolved reports whether the reference already carries a ledger identifier.
func (r EntityRef) Resolved() bool {
	return r.ID != ""
}

// PivotLine is the canonical unit produced by the format decoders: one ledger
// movement, not yet grouped into a journal entry.
//
// Line is 1-based and counts every row of the source file, including header
// rows and rows the decoder skipped, so error messages match what the user
// sees in a text editor. Partner and Analytic are nil when the source data is
// blank; downstream code distinguishes "absent" from "empty".
type PivotLine struct {
	Line         int
	Journal      EntityRef
	Account      EntityRef
	Partner      *EntityRef
	Analytic     *EntityRef
	Label        string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	Date         time.Time
	Ref          string
	ReconcileRef string
}

// Balance returns credit minus debit for this line.
func (l PivotLine) Balance() decimal.Decimal {
	return l.Credit.Sub(l.Debit)
}
