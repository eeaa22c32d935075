// Package reconciler links created journal lines across entries by their
// reconciliation tag. Matching runs after entry creation and never fails the
// import: a group that does not qualify is logged with its reason and
// skipped.
package reconciler

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/move-import/internal/ledger"
	"fjacquet/move-import/internal/logging"
	"fjacquet/move-import/internal/models"

	"github.com/shopspring/decimal"
)

// Decision records the outcome for one reconciliation tag.
type Decision struct {
	Tag        string
	Lines      int
	Reconciled bool
	Reason     string
}

// Matcher groups created lines by tag and instructs the ledger to reconcile
// the groups that qualify.
type Matcher struct {
	ledger    ledger.Reconciler
	precision decimal.Decimal
	logger    logging.Logger
}

// New creates a Matcher. precision is the monetary rounding unit used for
// the group balance rule.
func New(l ledger.Reconciler, precision decimal.Decimal, logger logging.Logger) *Matcher {
	if precision.Sign() <= 0 {
		precision = models.DefaultPrecision
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Matcher{ledger: l, precision: precision, logger: logger}
}

// Match processes all created lines and returns one decision per tag, in
// sorted tag order. Lines without a tag are never part of any group.
func (m *Matcher) Match(lines []ledger.Line) []Decision {
	groups := map[string][]ledger.Line{}
	for _, l := range lines {
		if l.ReconcileRef == "" {
			continue
		}
		groups[l.ReconcileRef] = append(groups[l.ReconcileRef], l)
	}

	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	decisions := make([]Decision, 0, len(tags))
	for _, tag := range tags {
		group := groups[tag]
		decision := Decision{Tag: tag, Lines: len(group)}
		if reason := m.disqualify(group); reason != "" {
			decision.Reason = reason
			m.logger.Warn("Skip reconcile",
				logging.Field{Key: "tag", Value: tag},
				logging.Field{Key: "reason", Value: reason})
		} else if err := m.ledger.Reconcile(group); err != nil {
			decision.Reason = fmt.Sprintf("reconcile call failed: %v", err)
			m.logger.WithError(err).Warn("Skip reconcile",
				logging.Field{Key: "tag", Value: tag})
		} else {
			decision.Reconciled = true
			m.logger.Info("Reconciled lines",
				logging.Field{Key: "tag", Value: tag},
				logging.Field{Key: "lines", Value: len(group)})
		}
		decisions = append(decisions, decision)
	}
	return decisions
}

// disqualify applies the eligibility rules in order and returns the reason
// of the first failing one, or "" when the group qualifies. Rules always
// apply to the whole group.
func (m *Matcher) disqualify(group []ledger.Line) string {
	if len(group) < 2 {
		return "this tag is only on 1 line"
	}

	total := decimal.Zero
	accounts := map[string]ledger.AccountHandle{}
	partners := map[string]bool{}
	for _, l := range group {
		total = total.Add(l.Credit.Sub(l.Debit))
		accounts[l.Account.ID] = l.Account
		partnerID := ""
		if l.Partner != nil {
			partnerID = l.Partner.ID
		}
		partners[partnerID] = true
	}

	if !models.IsZeroWithin(total, m.precision) {
		return fmt.Sprintf("the lines with this tag are not balanced (%s)", total)
	}
	if len(accounts) > 1 {
		codes := make([]string, 0, len(accounts))
		for _, acc := range accounts {
			codes = append(codes, acc.Code)
		}
		sort.Strings(codes)
		return fmt.Sprintf("the lines with this tag have different accounts (%s)", strings.Join(codes, ", "))
	}

	var account ledger.AccountHandle
	for _, acc := range accounts {
		account = acc
	}
	eligible, err := m.ledger.AccountReconcilable(account)
	if err != nil {
		return fmt.Sprintf("cannot check account '%s': %v", account.Code, err)
	}
	if !eligible {
		return fmt.Sprintf("the account '%s' is not configured to allow reconciliation", account.Code)
	}

	if len(partners) > 1 {
		return "the lines with this tag have different partners"
	}
	return ""
}
