// Package assembler turns an ordered sequence of normalized pivot lines into
// ordered entry-creation requests. It works in two phases: first every line
// is validated and its references resolved against the ledger, then a single
// forward scan groups consecutive lines into balanced journal entries. No
// entry is created while either phase can still fail.
package assembler

import (
	"errors"
	"fmt"
	"time"

	"fjacquet/move-import/internal/dateutils"
	"fjacquet/move-import/internal/importerror"
	"fjacquet/move-import/internal/ledger"
	"fjacquet/move-import/internal/logging"
	"fjacquet/move-import/internal/models"

	"github.com/shopspring/decimal"
)

// Assembler validates, resolves and groups pivot lines.
type Assembler struct {
	resolver  ledger.Resolver
	precision decimal.Decimal
	logger    logging.Logger
}

// New creates an Assembler. precision is the monetary rounding unit used for
// the balance checks; a non-positive value falls back to
// models.DefaultPrecision.
func New(resolver ledger.Resolver, precision decimal.Decimal, logger logging.Logger) *Assembler {
	if precision.Sign() <= 0 {
		precision = models.DefaultPrecision
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Assembler{resolver: resolver, precision: precision, logger: logger}
}

// resolvedLine pairs a pivot line with its resolved journal and the
// ready-to-create line request.
type resolvedLine struct {
	src     models.PivotLine
	journal ledger.JournalHandle
	request ledger.LineRequest
}

// Assemble runs both phases over the given lines, in input order.
func (a *Assembler) Assemble(lines []models.PivotLine) ([]ledger.EntryRequest, error) {
	resolved, err := a.resolveAll(lines)
	if err != nil {
		return nil, err
	}
	requests, err := a.group(resolved)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Assembled journal entries",
		logging.Field{Key: "lines", Value: len(lines)},
		logging.Field{Key: "entries", Value: len(requests)})
	return requests, nil
}

// resolveAll is phase 1: per-line validation and reference resolution.
// The resolver is treated as read-only, so a failure here aborts the import
// before anything was created.
func (a *Assembler) resolveAll(lines []models.PivotLine) ([]resolvedLine, error) {
	resolved := make([]resolvedLine, 0, len(lines))
	for _, l := range lines {
		account, err := a.resolveAccount(l.Account)
		if err != nil {
			return nil, &importerror.ValidationError{Line: l.Line, Reason: "cannot resolve account", Err: err}
		}
		journal, err := a.resolveJournal(l.Journal)
		if err != nil {
			return nil, &importerror.ValidationError{Line: l.Line, Reason: "cannot resolve journal", Err: err}
		}

		var partner *ledger.PartnerHandle
		if l.Partner != nil {
			h, err := a.resolver.ResolvePartner(l.Partner.Code)
			if err != nil {
				return nil, &importerror.ValidationError{Line: l.Line, Reason: "cannot resolve partner", Err: err}
			}
			partner = &h
		}
		var analytic *ledger.AnalyticHandle
		if l.Analytic != nil {
			h, err := a.resolver.ResolveAnalytic(l.Analytic.Code)
			if err != nil {
				return nil, &importerror.ValidationError{Line: l.Line, Reason: "cannot resolve analytic account", Err: err}
			}
			analytic = &h
		}

		if l.Label == "" {
			return nil, &importerror.ValidationError{Line: l.Line, Reason: "missing label"}
		}
		if l.Date.IsZero() {
			return nil, &importerror.ValidationError{Line: l.Line, Reason: "missing date"}
		}
		if l.Debit.Sign() < 0 {
			return nil, &importerror.ValidationError{Line: l.Line, Reason: fmt.Sprintf("bad value for debit (%s)", l.Debit)}
		}
		if l.Credit.Sign() < 0 {
			return nil, &importerror.ValidationError{Line: l.Line, Reason: fmt.Sprintf("bad value for credit (%s)", l.Credit)}
		}

		resolved = append(resolved, resolvedLine{
			src:     l,
			journal: journal,
			request: ledger.LineRequest{
				Line:         l.Line,
				Account:      account,
				Partner:      partner,
				Analytic:     analytic,
				Label:        l.Label,
				Debit:        l.Debit,
				Credit:       l.Credit,
				ReconcileRef: l.ReconcileRef,
			},
		})
	}
	return resolved, nil
}

func (a *Assembler) resolveAccount(ref models.EntityRef) (ledger.AccountHandle, error) {
	if ref.Resolved() {
		return ledger.AccountHandle{ID: ref.ID, Code: ref.Code}, nil
	}
	if ref.Code == "" {
		return ledger.AccountHandle{}, errors.New("missing account reference")
	}
	return a.resolver.ResolveAccount(ref.Code)
}

func (a *Assembler) resolveJournal(ref models.EntityRef) (ledger.JournalHandle, error) {
	if ref.Resolved() {
		return ledger.JournalHandle{ID: ref.ID, Code: ref.Code}, nil
	}
	if ref.Code == "" {
		return ledger.JournalHandle{}, errors.New("missing journal reference")
	}
	return a.resolver.ResolveJournal(ref.Code)
}

// groupKey delimits journal entries: a change of journal, reference or date
// closes the open entry.
type groupKey struct {
	journal string
	ref     string
	date    string
}

// scanState is the explicit state threaded through the grouping scan: the
// open entry's key, its accumulated lines and the running balance
// (sum of credit minus debit).
type scanState struct {
	open    bool
	key     groupKey
	journal ledger.JournalHandle
	ref     string
	date    time.Time
	lines   []ledger.LineRequest
	balance decimal.Decimal
}

func journalIdentity(h ledger.JournalHandle) string {
	if h.ID != "" {
		return h.ID
	}
	return h.Code
}

// group is phase 2: one forward pass, no lookahead. A line extends the open
// entry only while the key matches and the running balance is still off
// zero; a balanced entry closes even if the next line carries the same key,
// deliberately starting a fresh entry.
func (a *Assembler) group(lines []resolvedLine) ([]ledger.EntryRequest, error) {
	var requests []ledger.EntryRequest
	var cur scanState

	seal := func() error {
		if len(cur.lines) < 2 {
			return &importerror.ValidationError{
				Line:   cur.lines[len(cur.lines)-1].Line,
				Reason: "journal entry has a single line",
			}
		}
		requests = append(requests, ledger.EntryRequest{
			Journal: cur.journal,
			Ref:     cur.ref,
			Date:    cur.date,
			Lines:   cur.lines,
		})
		return nil
	}

	for _, l := range lines {
		key := groupKey{
			journal: journalIdentity(l.journal),
			ref:     l.src.Ref,
			date:    dateutils.ToISO(l.src.Date),
		}
		if cur.open && key == cur.key && !models.IsZeroWithin(cur.balance, a.precision) {
			cur.lines = append(cur.lines, l.request)
			cur.balance = cur.balance.Add(l.src.Balance())
			continue
		}
		if cur.open {
			if !models.IsZeroWithin(cur.balance, a.precision) {
				return nil, &importerror.BalanceError{Line: l.src.Line - 1, Balance: cur.balance.String()}
			}
			if err := seal(); err != nil {
				return nil, err
			}
		}
		cur = scanState{
			open:    true,
			key:     key,
			journal: l.journal,
			ref:     l.src.Ref,
			date:    l.src.Date,
			lines:   []ledger.LineRequest{l.request},
			balance: l.src.Balance(),
		}
	}

	if cur.open {
		if !models.IsZeroWithin(cur.balance, a.precision) {
			return nil, &importerror.BalanceError{Last: true, Balance: cur.balance.String()}
		}
		if err := seal(); err != nil {
			return nil, err
		}
	}
	return requests, nil
}
