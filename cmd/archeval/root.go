package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archeval",
		Short: "archeval - score cloud architecture descriptions against maturity pillars",
		Long: `Archeval assesses a cloud architecture description against the
Well-Architected maturity pillars.

For each pillar it combines a deterministic signal-matching engine with an
optional externally produced qualitative score set, and emits a scored,
ranked recommendation scorecard for dashboards and reports.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newAssessCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newConsolidateCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
