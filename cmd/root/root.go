// Package root contains the root command and the flags shared by the
// subcommands.
package root

import (
	"fmt"
	"time"

	"fjacquet/move-import/internal/config"
	"fjacquet/move-import/internal/dateutils"
	"fjacquet/move-import/internal/decoder"
	"fjacquet/move-import/internal/importer"
	"fjacquet/move-import/internal/logging"
	"fjacquet/move-import/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Flags holds the import options shared by the subcommands.
type Flags struct {
	Input        string
	Format       string
	Encoding     string
	FECSeparator string
	ForceDate    string
	ForceLabel   string
	ForceRef     string
	ForceJournal string
	Precision    string
	Post         bool
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// Shared holds the flag values shared by the subcommands.
	Shared = Flags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "move-import",
		Short: "Import accounting journal entries from vendor export files.",
		Long: `move-import converts vendor accounting exports (generic CSV, Nibelis,
Quadra, In Extenso, Ciel Paye, Payfit, FEC) into balanced journal entries and
reconciles imported lines that share a reconciliation tag.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				Log.Fatalf("Configuration error: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&Shared.Input, "input", "i", "", "Input file to import")
	Cmd.PersistentFlags().StringVarP(&Shared.Format, "format", "f", "", "File format (genericcsv, nibelis, quadra, extenso, cielpaye, payfit, fec_txt)")
	Cmd.PersistentFlags().StringVar(&Shared.Encoding, "encoding", "", "File encoding for text formats (ascii, latin1, utf-8)")
	Cmd.PersistentFlags().StringVar(&Shared.FECSeparator, "fec-separator", "", "FEC field separator (pipe or tab)")
	Cmd.PersistentFlags().StringVar(&Shared.ForceDate, "force-date", "", "Force the entry date for the whole import (YYYY-MM-DD)")
	Cmd.PersistentFlags().StringVar(&Shared.ForceLabel, "force-label", "", "Force the line label for the whole import")
	Cmd.PersistentFlags().StringVar(&Shared.ForceRef, "force-ref", "", "Force the entry reference for the whole import")
	Cmd.PersistentFlags().StringVar(&Shared.ForceJournal, "force-journal", "", "Force the journal code for the whole import")
	Cmd.PersistentFlags().StringVar(&Shared.Precision, "precision", "", "Monetary rounding unit for balance checks (e.g. 0.01)")
}

// Logger returns the shared logger wrapped in the logging abstraction.
func Logger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// Options builds importer options from the shared flags and the loaded
// configuration.
func Options() (importer.Options, error) {
	if Shared.Format == "" {
		return importer.Options{}, fmt.Errorf("you must select a file format (--format)")
	}

	opts := importer.Options{
		Format:     decoder.Format(Shared.Format),
		ForceLabel: Shared.ForceLabel,
		ForceRef:   Shared.ForceRef,
		Post:       Shared.Post,
		Precision:  Cfg.Precision(),
	}

	opts.Decode.Encoding = Shared.Encoding
	if opts.Decode.Encoding == "" {
		opts.Decode.Encoding = Cfg.Import.Encoding
	}
	switch Shared.FECSeparator {
	case "":
		opts.Decode.Separator = Cfg.Separator()
	case "pipe":
		opts.Decode.Separator = '|'
	case "tab":
		opts.Decode.Separator = '\t'
	default:
		return importer.Options{}, fmt.Errorf("invalid FEC separator: %s", Shared.FECSeparator)
	}

	if Shared.ForceDate != "" {
		date, err := time.Parse(dateutils.LayoutISO, Shared.ForceDate)
		if err != nil {
			return importer.Options{}, fmt.Errorf("invalid --force-date: %w", err)
		}
		opts.ForceDate = date
	}
	if Shared.ForceJournal != "" {
		opts.ForceJournal = models.EntityRef{Code: Shared.ForceJournal}
	}
	if Shared.Precision != "" {
		precision, err := models.ParseAmount(Shared.Precision)
		if err != nil || precision.Sign() <= 0 {
			return importer.Options{}, fmt.Errorf("invalid --precision: %s", Shared.Precision)
		}
		opts.Precision = precision
	}
	return opts, nil
}
