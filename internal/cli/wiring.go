package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/woodlandsapp/woodlands-events/internal/catalog"
	"github.com/woodlandsapp/woodlands-events/internal/config"
	"github.com/woodlandsapp/woodlands-events/internal/pipeline"
	"github.com/woodlandsapp/woodlands-events/internal/scraper"
	"github.com/woodlandsapp/woodlands-events/internal/store"
)

// openStore creates the persistence backend selected by the config.
func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.Store {
	case "memory":
		return store.NewMemory(), nil
	case "pebble":
		dir, err := expandPath(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return store.NewPebble(filepath.Join(dir, "catalog"))
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store)
	}
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// buildScrapers creates one adapter per enabled source.
func buildScrapers(cfg config.Config) []scraper.Scraper {
	scrapers := make([]scraper.Scraper, 0, 3)
	if cfg.Sources.Township.IsEnabled() {
		scrapers = append(scrapers, scraper.NewTownship(cfg.Sources.Township.BaseURL))
	}
	if cfg.Sources.WoodlandsOnline.IsEnabled() {
		scrapers = append(scrapers, scraper.NewWoodlandsOnline(cfg.Sources.WoodlandsOnline.BaseURL))
	}
	if cfg.Sources.Pavilion.IsEnabled() {
		scrapers = append(scrapers, scraper.NewPavilion(cfg.Sources.Pavilion.BaseURL))
	}
	return scrapers
}

// buildService wires the full ingestion pipeline on top of a store.
func buildService(cfg config.Config, s store.Store) (*pipeline.Service, *catalog.Reader) {
	writer := catalog.NewWriter(s).WithPartitionTTL(cfg.PartitionTTL)
	reader := catalog.NewReader(s)
	svc := pipeline.New(buildScrapers(cfg), writer, reader,
		pipeline.WithFetchTimeout(cfg.FetchTimeout),
		pipeline.WithMinInterval(cfg.MinInterval),
	)
	return svc, reader
}
