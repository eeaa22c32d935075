package ledger

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// chartFile is the YAML document describing a chart of accounts, journals,
// partners and analytic tags.
type chartFile struct {
	Journals []struct {
		Code string `yaml:"code"`
		Name string `yaml:"name"`
	} `yaml:"journals"`
	Accounts []struct {
		Code      string `yaml:"code"`
		Name      string `yaml:"name"`
		Reconcile bool   `yaml:"reconcile"`
	} `yaml:"accounts"`
	Partners []struct {
		Ref  string `yaml:"ref"`
		Name string `yaml:"name"`
	} `yaml:"partners"`
	Analytics []struct {
		Code string `yaml:"code"`
		Name string `yaml:"name"`
	} `yaml:"analytics"`
}

// MemoryLedger is an in-memory Ledger implementation backed by a YAML chart
// description. It serves the CLI (dry-run imports against a chart file) and
// the tests; a production deployment would put an ERP adapter behind the same
// interfaces.
type MemoryLedger struct {
	accounts    map[string]AccountHandle
	journals    map[string]JournalHandle
	partners    map[string]PartnerHandle
	analytics   map[string]AnalyticHandle
	reconcilable map[string]bool

	Entries    []Entry
	Reconciled [][]Line
}

// NewMemoryLedger creates an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		accounts:     map[string]AccountHandle{},
		journals:     map[string]JournalHandle{},
		partners:     map[string]PartnerHandle{},
		analytics:    map[string]AnalyticHandle{},
		reconcilable: map[string]bool{},
	}
}

// LoadChart reads a YAML chart description from r.
func LoadChart(r io.Reader) (*MemoryLedger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading chart: %w", err)
	}
	var chart chartFile
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("error parsing chart YAML: %w", err)
	}

	l := NewMemoryLedger()
	for _, j := range chart.Journals {
		l.AddJournal(j.Code)
	}
	for _, a := range chart.Accounts {
		l.AddAccount(a.Code, a.Reconcile)
	}
	for _, p := range chart.Partners {
		l.AddPartner(p.Ref)
	}
	for _, an := range chart.Analytics {
		l.AddAnalytic(an.Code)
	}
	return l, nil
}

// LoadChartFile reads a YAML chart description from a file.
func LoadChartFile(path string) (*MemoryLedger, error) {
	f, err := os.Open(path) // #nosec G304 -- CLI tool takes user-provided chart paths
	if err != nil {
		return nil, fmt.Errorf("error opening chart file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return LoadChart(f)
}

// AddJournal registers a journal code and returns its handle.
func (l *MemoryLedger) AddJournal(code string) JournalHandle {
	h := JournalHandle{ID: uuid.New().String(), Code: code}
	l.journals[code] = h
	return h
}

// AddAccount registers an account code with its reconciliation flag.
func (l *MemoryLedger) AddAccount(code string, reconcile bool) AccountHandle {
	h := AccountHandle{ID: uuid.New().String(), Code: code}
	l.accounts[code] = h
	l.reconcilable[h.ID] = reconcile
	return h
}

// AddPartner registers a partner reference.
func (l *MemoryLedger) AddPartner(ref string) PartnerHandle {
	h := PartnerHandle{ID: uuid.New().String(), Ref: ref}
	l.partners[ref] = h
	return h
}

// AddAnalytic registers an analytic tag code.
func (l *MemoryLedger) AddAnalytic(code string) AnalyticHandle {
	h := AnalyticHandle{ID: uuid.New().String(), Code: code}
	l.analytics[code] = h
	return h
}

func (l *MemoryLedger) ResolveAccount(code string) (AccountHandle, error) {
	h, ok := l.accounts[code]
	if !ok {
		return AccountHandle{}, fmt.Errorf("account '%s': %w", code, ErrNotFound)
	}
	return h, nil
}

func (l *MemoryLedger) ResolveJournal(code string) (JournalHandle, error) {
	h, ok := l.journals[code]
	if !ok {
		return JournalHandle{}, fmt.Errorf("journal '%s': %w", code, ErrNotFound)
	}
	return h, nil
}

func (l *MemoryLedger) ResolvePartner(ref string) (PartnerHandle, error) {
	h, ok := l.partners[ref]
	if !ok {
		return PartnerHandle{}, fmt.Errorf("partner '%s': %w", ref, ErrNotFound)
	}
	return h, nil
}

func (l *MemoryLedger) ResolveAnalytic(code string) (AnalyticHandle, error) {
	h, ok := l.analytics[code]
	if !ok {
		return AnalyticHandle{}, fmt.Errorf("analytic account '%s': %w", code, ErrNotFound)
	}
	return h, nil
}

// CreateEntries materializes the requests as in-memory entries with generated
// identifiers, preserving request order and line order.
func (l *MemoryLedger) CreateEntries(requests []EntryRequest, post bool) ([]Entry, error) {
	created := make([]Entry, 0, len(requests))
	for _, req := range requests {
		entry := Entry{
			ID:      uuid.New().String(),
			Journal: req.Journal,
			Ref:     req.Ref,
			Date:    req.Date,
			Posted:  post,
		}
		for _, lr := range req.Lines {
			entry.Lines = append(entry.Lines, Line{
				ID:           uuid.New().String(),
				EntryID:      entry.ID,
				Account:      lr.Account,
				Partner:      lr.Partner,
				Analytic:     lr.Analytic,
				Label:        lr.Label,
				Debit:        lr.Debit,
				Credit:       lr.Credit,
				ReconcileRef: lr.ReconcileRef,
			})
		}
		created = append(created, entry)
	}
	l.Entries = append(l.Entries, created...)
	return created, nil
}

// AccountReconcilable reports the reconciliation flag of a known account.
func (l *MemoryLedger) AccountReconcilable(account AccountHandle) (bool, error) {
	flag, ok := l.reconcilable[account.ID]
	if !ok {
		return false, fmt.Errorf("account '%s': %w", account.Code, ErrNotFound)
	}
	return flag, nil
}

// Reconcile records the group; the in-memory ledger has no further
// bookkeeping to do.
func (l *MemoryLedger) Reconcile(lines []Line) error {
	l.Reconciled = append(l.Reconciled, lines)
	return nil
}
