package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/woodlandsapp/woodlands-events/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitPartial = 2
)

var flagConfig string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "woodlands-events",
		Short: "Aggregate local events for The Woodlands, TX",
		Long: `Scrapes community event listings from multiple local sources,
normalizes and deduplicates them, and stores them in a date-partitioned
catalog that can be queried from the CLI or served over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file (defaults apply when omitted)")

	cmd.AddCommand(newIngestCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEventsCmd())

	return cmd
}

func setupLogger(level string) {
	logger.SetDefault(logger.New(logger.Level(level), os.Stderr))
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
