// Package convert implements the convert subcommand: decode a vendor export
// and write the normalized pivot lines in the canonical CSV layout, without
// touching any ledger.
package convert

import (
	"fmt"
	"os"

	"fjacquet/move-import/cmd/root"
	"fjacquet/move-import/internal/decoder"
	"fjacquet/move-import/internal/importer"
	"fjacquet/move-import/internal/logging"
	"fjacquet/move-import/internal/pivotcsv"

	"github.com/spf13/cobra"
)

var output string

// Cmd is the convert command.
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a vendor export to the canonical pivot CSV format",
	RunE:  run,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file (default: stdout)")
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := root.Options()
	if err != nil {
		return err
	}
	if root.Shared.Input == "" {
		return fmt.Errorf("you must provide an input file (--input)")
	}

	logger := root.Logger()
	dec, err := decoder.Get(opts.Format, logger)
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

	lines, err := dec.Decode(in, opts.Decode)
	if err != nil {
		return err
	}
	lines = importer.Normalize(lines, opts)

	out := os.Stdout
	if output != "" {
		out, err = os.Create(output) // #nosec G304 -- CLI tool takes user-provided paths
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer func() {
			_ = out.Close()
		}()
	}
	if err := pivotcsv.Write(lines, out); err != nil {
		return err
	}
	logger.Info("Converted file",
		logging.Field{Key: "input", Value: root.Shared.Input},
		logging.Field{Key: "lines", Value: len(lines)})
	return nil
}
