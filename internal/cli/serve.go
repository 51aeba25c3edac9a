package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/woodlandsapp/woodlands-events/internal/api"
	"github.com/woodlandsapp/woodlands-events/internal/config"
	"github.com/woodlandsapp/woodlands-events/internal/logger"
	"github.com/woodlandsapp/woodlands-events/internal/pipeline"
)

var flagServeNoInitialRun bool

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run scheduled ingestion",
		RunE:  runServe,
	}

	cmd.Flags().BoolVar(&flagServeNoInitialRun, "no-initial-run", false, "Skip the ingestion run at startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader(flagConfig)
	if err != nil {
		return err
	}
	cfg := loader.Config()
	setupLogger(cfg.LogLevel)

	loader.OnChange(func(next config.Config) {
		setupLogger(next.LogLevel)
		logger.Info("Configuration reloaded", logger.Fields{"log_level": next.LogLevel})
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		return fmt.Errorf("watching config: %w", err)
	}
	defer stopWatch()

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	svc, reader := buildService(cfg, st)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    cfg.Listen,
		Handler: api.New(svc, reader),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", logger.Fields{"addr": cfg.Listen})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	go scrapeLoop(ctx, svc, loader, !flagServeNoInitialRun)

	select {
	case <-ctx.Done():
		logger.Info("Shutting down", nil)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// scrapeLoop runs ingestion on the configured interval. The interval is
// re-read from the loader each cycle so config reloads take effect without a
// restart.
func scrapeLoop(ctx context.Context, svc *pipeline.Service, loader *config.Loader, initialRun bool) {
	if initialRun {
		runScheduled(ctx, svc)
	}

	for {
		interval := loader.Config().Interval
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			runScheduled(ctx, svc)
		}
	}
}

func runScheduled(ctx context.Context, svc *pipeline.Service) {
	_, err := svc.Run(ctx, false)
	switch {
	case err == nil:
	case errors.Is(err, pipeline.ErrRecentRun), errors.Is(err, pipeline.ErrRunActive):
		logger.Debug("Scheduled run skipped", logger.Fields{"reason": err.Error()})
	default:
		logger.Error("Scheduled run failed", nil, err)
	}
}
