package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/woodlandsapp/woodlands-events/internal/config"
	"github.com/woodlandsapp/woodlands-events/internal/pipeline"
)

var (
	flagIngestForce  bool
	flagIngestFormat string
)

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run a single scrape-and-store pass across all enabled sources",
		RunE:  runIngest,
	}

	cmd.Flags().BoolVar(&flagIngestForce, "force", false, "Run even if the catalog was refreshed recently")
	cmd.Flags().StringVar(&flagIngestFormat, "format", "text", "Output format: text or json")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagIngestFormat)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	setupLogger(cfg.LogLevel)

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	svc, _ := buildService(cfg, st)

	summary, err := svc.Run(cmd.Context(), flagIngestForce)
	if errors.Is(err, pipeline.ErrRecentRun) {
		fmt.Fprintln(os.Stderr, "Catalog was refreshed recently, skipping (use --force to override).")
		os.Exit(ExitSuccess)
	}
	if err != nil {
		return fmt.Errorf("ingestion run: %w", err)
	}

	if err := WriteSummary(os.Stdout, summary, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if summary.State == pipeline.StatePartiallyFailed {
		os.Exit(ExitPartial)
	}
	os.Exit(ExitSuccess)
	return nil
}
