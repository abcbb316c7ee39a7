// Package main provides the CLI entry point for acedash.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/acedash-go/pkg/acedash/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds the state shared by all commands.
type app struct {
	configPath  string
	verbose     bool
	workbook    string
	spreadsheet string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "acedash",
		Short: "Academic registration dashboard charts",
		Long: `acedash aggregates registration sheets into month, semester and
academic-year charts, and serves them to the dashboard front end.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file (YAML)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&a.workbook, "workbook", "", "Read tables from a local xlsx workbook")
	flags.StringVar(&a.spreadsheet, "spreadsheet", "", "Read tables from this Google spreadsheet id")

	rootCmd.AddCommand(
		newServeCmd(a),
		newOptionsCmd(a),
		newChartCmd(a),
		newTablesCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the configuration, applies source flags and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.spreadsheet != "" {
		cfg.Source.Kind = config.SourceSheets
		cfg.Source.SpreadsheetID = a.spreadsheet
	}
	if a.workbook != "" {
		cfg.Source.Kind = config.SourceWorkbook
		cfg.Source.WorkbookPath = a.workbook
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		a.logger, err = cfg.Log.Build(a.verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "acedash %s\n", version)
		},
	}
}
