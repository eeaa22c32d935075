// Package ledger defines the narrow interfaces through which the import
// pipeline talks to an accounting ledger system: resolving reference codes to
// live entity handles, creating journal entries, and reconciling lines. The
// pipeline is agnostic to the implementation behind them.
package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by resolver operations when no entity matches the
// given reference.
var ErrNotFound = errors.New("not found")

// AccountHandle identifies a resolved ledger account.
type AccountHandle struct {
	ID   string
	Code string
}

// JournalHandle identifies a resolved journal.
type JournalHandle struct {
	ID   string
	Code string
}

// PartnerHandle identifies a resolved counterparty.
type PartnerHandle struct {
	ID  string
	Ref string
}

// AnalyticHandle identifies a resolved analytic (cost-center) tag.
type AnalyticHandle struct {
	ID   string
	Code string
}

// Resolver maps opaque reference codes to ledger entity handles.
// Implementations must be read-only: the assembler resolves every line
// before any entry is created, and a failed import must leave no trace.
type Resolver interface {
	ResolveAccount(code string) (AccountHandle, error)
	ResolveJournal(code string) (JournalHandle, error)
	ResolvePartner(ref string) (PartnerHandle, error)
	ResolveAnalytic(code string) (AnalyticHandle, error)
}

// Creator persists balanced journal entries. When post is true the created
// entries are posted immediately.
type Creator interface {
	CreateEntries(requests []EntryRequest, post bool) ([]Entry, error)
}

// Reconciler performs ledger-level reconciliation bookkeeping for a group of
// created lines, and exposes the per-account reconciliation flag the matcher
// needs.
type Reconciler interface {
	AccountReconcilable(account AccountHandle) (bool, error)
	Reconcile(lines []Line) error
}

// Ledger aggregates the three capabilities the pipeline consumes.
type Ledger interface {
	Resolver
	Creator
	Reconciler
}

// LineRequest is one movement of an entry-creation request, fully resolved.
// Line keeps the source file line number for error reporting.
type LineRequest struct {
	Line         int
	Account      AccountHandle
	Partner      *PartnerHandle
	Analytic     *AnalyticHandle
	Label        string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	ReconcileRef string
}

// EntryRequest asks the ledger to create one balanced journal entry.
type EntryRequest struct {
	Journal JournalHandle
	Ref     string
	Date    time.Time
	Lines   []LineRequest
}

// Balance returns the sum of credit minus debit over the request's lines.
func (r EntryRequest) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Lines {
		total = total.Add(l.Credit.Sub(l.Debit))
	}
	return total
}

// Entry is a created journal entry handle.
type Entry struct {
	ID      string
	Journal JournalHandle
	Ref     string
	Date    time.Time
	Posted  bool
	Lines   []Line
}

// Line is a created journal item handle.
type Line struct {
	ID           string
	EntryID      string
	Account      AccountHandle
	Partner      *PartnerHandle
	Analytic     *AnalyticHandle
	Label        string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	ReconcileRef string
}
