package cmd

import (
	"fmt"
	"os"

	"festival-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "festival-sync",
	Short: "Festival listings ingestion service",
	Long: `Festival Sync ingests event listings from the remote events API,
reconciles them against the relational store of venues, artists, festivals
and lineups, and records the outcome of each run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. An uncaught error exits non-zero so
// operational alerting can observe total failure; partial runs do not
// reach this path.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with "debug" level gives ISO8601 timestamps,
		// which reads better for a CLI than the production epoch encoder.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
