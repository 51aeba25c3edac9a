package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/woodlandsapp/woodlands-events/internal/config"
	"github.com/woodlandsapp/woodlands-events/internal/event"
)

var (
	flagEventsStart    string
	flagEventsEnd      string
	flagEventsCategory string
	flagEventsSource   string
	flagEventsFormat   string
	flagEventsVerbose  bool
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List stored events",
		RunE:  runEvents,
	}

	cmd.Flags().StringVar(&flagEventsStart, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&flagEventsEnd, "end", "", "End date (YYYY-MM-DD, default start+30d)")
	cmd.Flags().StringVar(&flagEventsCategory, "category", "", "Only show this category")
	cmd.Flags().StringVar(&flagEventsSource, "source", "", "Only show this source")
	cmd.Flags().StringVar(&flagEventsFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagEventsVerbose, "verbose", false, "Show venue, category and source details")

	return cmd
}

func runEvents(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagEventsFormat)
	if err != nil {
		return err
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if flagEventsStart != "" {
		start, err = time.Parse("2006-01-02", flagEventsStart)
		if err != nil {
			return fmt.Errorf("invalid --start date %q, want YYYY-MM-DD", flagEventsStart)
		}
	}
	end := start.AddDate(0, 0, 30)
	if flagEventsEnd != "" {
		end, err = time.Parse("2006-01-02", flagEventsEnd)
		if err != nil {
			return fmt.Errorf("invalid --end date %q, want YYYY-MM-DD", flagEventsEnd)
		}
	}
	if end.Before(start) {
		return fmt.Errorf("--end is before --start")
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

	_, reader := buildService(cfg, st)

	events, err := reader.EventsByDateRange(cmd.Context(), start, end)
	if err != nil {
		return fmt.Errorf("querying events: %w", err)
	}

	if flagEventsCategory != "" {
		events = keepEvents(events, func(e event.Event) bool {
			return string(e.Category) == flagEventsCategory
		})
	}
	if flagEventsSource != "" {
		events = keepEvents(events, func(e event.Event) bool {
			return string(e.Source) == flagEventsSource
		})
	}

	if err := WriteEvents(os.Stdout, events, format, flagEventsVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func keepEvents(events []event.Event, keep func(event.Event) bool) []event.Event {
	out := events[:0:0]
	for _, e := range events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
