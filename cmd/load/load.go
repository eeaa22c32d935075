// Package load implements the load subcommand: run the full import pipeline
// against a YAML chart of accounts and report the created entries and the
// reconciliation decisions.
package load

import (
	"fmt"
	"os"

	"fjacquet/move-import/cmd/root"
	"fjacquet/move-import/internal/dateutils"
	"fjacquet/move-import/internal/importer"
	"fjacquet/move-import/internal/ledger"

	"github.com/spf13/cobra"
)

var chartPath string

// Cmd is the load command.
var Cmd = &cobra.Command{
	Use:   "load",
	Short: "Import a vendor export as journal entries against a chart file",
	RunE:  run,
}

func init() {
	Cmd.Flags().StringVar(&chartPath, "chart", "", "YAML chart of accounts, journals, partners and analytic tags")
	Cmd.Flags().BoolVar(&root.Shared.Post, "post", false, "Post the journal entries after the import")
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := root.Options()
	if err != nil {
		return err
	}
	if root.Shared.Input == "" {
		return fmt.Errorf("you must provide an input file (--input)")
	}
	if chartPath == "" {
		return fmt.Errorf("you must provide a chart file (--chart)")
	}

	book, err := ledger.LoadChartFile(chartPath)
	if err != nil {
		return err
	}

	in, err := os.Open(root.Shared.Input) // #nosec G304 -- CLI tool takes user-provided paths
	if err != nil {
		return fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	result, err := importer.New(book, root.Logger()).Run(in, opts)
	if err != nil {
		return err
	}

	report(result)
	return nil
}

// report prints the outcome: one detailed view for a single entry, a summary
// table for several.
func report(result *importer.Result) {
	if len(result.Entries) == 1 {
		entry := result.Entries[0]
		fmt.Printf("Created journal entry %s (journal %s, date %s, ref %q, posted %v)\n",
			entry.ID, entry.Journal.Code, dateutils.ToISO(entry.Date), entry.Ref, entry.Posted)
		for _, l := range entry.Lines {
			fmt.Printf("  %-12s %-30s debit %10s  credit %10s\n",
				l.Account.Code, l.Label, l.Debit.StringFixed(2), l.Credit.StringFixed(2))
		}
	} else {
		fmt.Printf("Created %d journal entries\n", len(result.Entries))
		for _, entry := range result.Entries {
			fmt.Printf("  %s  journal %-8s date %s  ref %-12q %d lines\n",
				entry.ID, entry.Journal.Code, dateutils.ToISO(entry.Date), entry.Ref, len(entry.Lines))
		}
	}
	for _, d := range result.Decisions {
		if d.Reconciled {
			fmt.Printf("Reconciled tag %q (%d lines)\n", d.Tag, d.Lines)
		} else {
			fmt.Printf("Skipped reconcile of tag %q: %s\n", d.Tag, d.Reason)
		}
	}
}
