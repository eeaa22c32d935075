// Package importer drives the whole import pipeline for one file: decode the
// raw bytes into pivot lines, normalize them, assemble balanced journal
// entries, create them through the ledger, then reconcile created lines by
// tag. One call, one import; the package keeps no state between runs.
package importer

import (
	"io"
	"time"

	"fjacquet/move-import/internal/assembler"
	"fjacquet/move-import/internal/decoder"
	"fjacquet/move-import/internal/ledger"
	"fjacquet/move-import/internal/logging"
	"fjacquet/move-import/internal/models"
	"fjacquet/move-import/internal/reconciler"

	"github.com/shopspring/decimal"
)

// Options configures one import run.
type Options struct {
	// Format selects the decoder.
	Format decoder.Format
	// Decode carries the decoder knobs (encoding, separator).
	Decode models.DecodeOptions
	// Post makes the ledger post the created entries immediately.
	Post bool
	// ForceDate/ForceLabel/ForceRef/ForceJournal override the per-line
	// values for the whole import. ForceJournal may be pre-resolved
	// (ID set), in which case no journal lookup happens.
	ForceDate    time.Time
	ForceLabel   string
	ForceRef     string
	ForceJournal models.EntityRef
	// Precision is the monetary rounding unit for balance checks
	// (default 0.01).
	Precision decimal.Decimal
}

// Result is the outcome of a successful import.
type Result struct {
	Entries   []ledger.Entry
	Decisions []reconciler.Decision
}

// Importer runs imports against one ledger.
type Importer struct {
	ledger ledger.Ledger
	logger logging.Logger
}

// New creates an Importer bound to the given ledger.
func New(l ledger.Ledger, logger logging.Logger) *Importer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Importer{ledger: l, logger: logger}
}

// Run imports one file. A decode, validation or balance failure aborts the
// run before any entry is created; reconciliation failures only show up in
// the decision log.
func (imp *Importer) Run(r io.Reader, opts Options) (*Result, error) {
	dec, err := decoder.Get(opts.Format, imp.logger)
	if err != nil {
		return nil, err
	}
	lines, err := dec.Decode(r, opts.Decode)
	if err != nil {
		return nil, err
	}
	lines = Normalize(lines, opts)

	requests, err := assembler.New(imp.ledger, opts.Precision, imp.logger).Assemble(lines)
	if err != nil {
		return nil, err
	}

	entries, err := imp.ledger.CreateEntries(requests, opts.Post)
	if err != nil {
		return nil, err
	}
	imp.logger.Info("Created journal entries",
		logging.Field{Key: "entries", Value: len(entries)},
		logging.Field{Key: "posted", Value: opts.Post})

	var created []ledger.Line
	for _, e := range entries {
		created = append(created, e.Lines...)
	}
	decisions := reconciler.New(imp.ledger, opts.Precision, imp.logger).Match(created)

	return &Result{Entries: entries, Decisions: decisions}, nil
}
