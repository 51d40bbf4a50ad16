// Package cmd contains the CLI commands for the statement recovery tool.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fintab/statement-recovery/internal/api"
	"github.com/fintab/statement-recovery/internal/config"
	"github.com/fintab/statement-recovery/internal/converter"
	"github.com/fintab/statement-recovery/internal/extractor"
	"github.com/fintab/statement-recovery/internal/writer"
)

var (
	// Log is the shared logger for all commands, configured in the
	// persistent pre-run hook.
	Log = logrus.New()

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "statement-recovery",
		Short: "Recover structured transactions from bank statement PDFs",
		Long: `statement-recovery reconstructs transaction records from bank
statement PDFs whose only available extraction is positioned text
fragments. It infers the paid out / paid in / balance column layout per
page, groups multi-line details, filters statement boilerplate, and
exports the result as CSV, XLSX or XML.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			cfg = config.Load()
			Log = config.ConfigureLogging(cfg)

			extractor.SetLogger(Log)
			converter.SetLogger(Log)
			writer.SetLogger(Log)
			api.SetLogger(Log)

			writer.SetDelimiter(cfg.Delimiter())
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
