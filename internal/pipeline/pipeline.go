package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/woodlandsapp/woodlands-events/internal/catalog"
	"github.com/woodlandsapp/woodlands-events/internal/dedup"
	"github.com/woodlandsapp/woodlands-events/internal/event"
	"github.com/woodlandsapp/woodlands-events/internal/logger"
	"github.com/woodlandsapp/woodlands-events/internal/metrics"
	"github.com/woodlandsapp/woodlands-events/internal/normalize"
	"github.com/woodlandsapp/woodlands-events/internal/scraper"
)

// State is the orchestrator's lifecycle state.
type State string

const (
	StateIdle            State = "idle"
	StateRunning         State = "running"
	StateCompleted       State = "completed"
	StatePartiallyFailed State = "partially_failed"
)

var (
	// ErrRunActive is returned when a run is requested while one is in
	// progress. Runs are serialized; concurrent runs would race on the same
	// partition keys.
	ErrRunActive = errors.New("pipeline: a run is already active")

	// ErrRecentRun is returned when the last successful run is fresher than
	// the configured minimum interval and the caller did not force.
	ErrRecentRun = errors.New("pipeline: last run is too recent")

	// ErrNoSources is returned when the service has no adapters configured.
	ErrNoSources = errors.New("pipeline: no sources configured")
)

// SourceResult reports one source's contribution to a run.
type SourceResult struct {
	Source    event.Source `json:"source"`
	RawEvents int          `json:"rawEvents"`
	Accepted  int          `json:"accepted"`
	Errors    int          `json:"errors"`
}

// Summary is the structured result of one ingestion run.
type Summary struct {
	RunID       string         `json:"runId"`
	State       State          `json:"state"`
	Success     bool           `json:"success"`
	TotalEvents int            `json:"totalEvents"`
	Sources     []SourceResult `json:"sources"`
	Errors      []string       `json:"errors"`
	StartedAt   time.Time      `json:"startedAt"`
	FinishedAt  time.Time      `json:"finishedAt"`
}

// Service runs the ingestion pipeline across a fixed set of source adapters.
type Service struct {
	scrapers     []scraper.Scraper
	writer       *catalog.Writer
	reader       *catalog.Reader
	fetchTimeout time.Duration
	minInterval  time.Duration

	runMu   sync.Mutex
	stateMu sync.RWMutex
	state   State
}

// Option configures a Service.
type Option func(*Service)

// WithFetchTimeout overrides the per-adapter fetch deadline.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) { s.fetchTimeout = d }
}

// WithMinInterval sets the freshness guard for unforced runs. Zero disables
// the guard.
func WithMinInterval(d time.Duration) Option {
	return func(s *Service) { s.minInterval = d }
}

// New creates a pipeline service over the given adapters and catalog.
func New(scrapers []scraper.Scraper, writer *catalog.Writer, reader *catalog.Reader, opts ...Option) *Service {
	s := &Service{
		scrapers:     scrapers,
		writer:       writer,
		reader:       reader,
		fetchTimeout: scraper.FetchTimeout,
		state:        StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the orchestrator's current state.
func (s *Service) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

func (s *Service) setState(state State) {
	s.stateMu.Lock()
	s.state = state
	s.stateMu.Unlock()
}

// sourceOutcome is one adapter's fetch result.
type sourceOutcome struct {
	source event.Source
	raw    []event.RawEvent
	err    error
}

// Run executes one full ingestion pass and returns its summary. Runs are
// serialized: a second caller gets ErrRunActive while one is in flight.
// Unless forced, a run is skipped with ErrRecentRun when the catalog was
// refreshed more recently than the minimum interval.
func (s *Service) Run(ctx context.Context, force bool) (*Summary, error) {
	if len(s.scrapers) == 0 {
		return nil, ErrNoSources
	}
	if !s.runMu.TryLock() {
		return nil, ErrRunActive
	}
	defer s.runMu.Unlock()

	if !force && s.minInterval > 0 {
		if meta, err := s.reader.Meta(ctx); err == nil {
			if age := time.Since(meta.LastUpdated); age < s.minInterval {
				logger.Info("Skipping run, catalog is fresh", logger.Fields{
					"age":          age.String(),
					"min_interval": s.minInterval.String(),
				})
				return nil, ErrRecentRun
			}
		}
	}

	s.setState(StateRunning)
	startedAt := time.Now().UTC()
	runID := uuid.NewString()

	logger.Info("Starting ingestion run", logger.Fields{
		"run_id":  runID,
		"sources": len(s.scrapers),
	})

	outcomes := s.fetchAll(ctx)

	summary := &Summary{
		RunID:     runID,
		StartedAt: startedAt,
		Errors:    make([]string, 0),
		Sources:   make([]SourceResult, 0, len(outcomes)),
	}

	merged := make([]event.Event, 0)
	for _, outcome := range outcomes {
		result := SourceResult{Source: outcome.source, RawEvents: len(outcome.raw)}

		if outcome.err != nil {
			msg := fmt.Sprintf("Failed to scrape %s: %v", outcome.source, outcome.err)
			summary.Errors = append(summary.Errors, msg)
			result.Errors++
			metrics.ScrapeErrors.WithLabelValues(string(outcome.source)).Inc()
			logger.Error("Scrape failed", logger.Fields{"source": string(outcome.source)}, outcome.err)
			if err := s.writer.RecordError(ctx, outcome.source, outcome.err.Error()); err != nil {
				logger.Warn("Could not record source error", logger.Fields{"source": string(outcome.source)})
			}
			summary.Sources = append(summary.Sources, result)
			continue
		}

		metrics.EventsScraped.WithLabelValues(string(outcome.source)).Add(float64(len(outcome.raw)))

		for _, raw := range outcome.raw {
			if !normalize.Validate(raw) {
				summary.Errors = append(summary.Errors, fmt.Sprintf("Invalid event: %s", raw.Title))
				result.Errors++
				metrics.ScrapeErrors.WithLabelValues(string(outcome.source)).Inc()
				continue
			}
			merged = append(merged, normalize.Normalize(outcome.source, raw))
			result.Accepted++
		}

		metrics.EventsAccepted.WithLabelValues(string(outcome.source)).Add(float64(result.Accepted))
		if err := s.writer.RecordSuccess(ctx, outcome.source, time.Now().UTC()); err != nil {
			logger.Warn("Could not record source success", logger.Fields{"source": string(outcome.source)})
		}

		logger.Info("Scrape finished", logger.Fields{
			"source":   string(outcome.source),
			"raw":      result.RawEvents,
			"accepted": result.Accepted,
			"errors":   result.Errors,
		})
		summary.Sources = append(summary.Sources, result)
	}

	unique := dedup.Deduplicate(merged)
	metrics.UniqueEvents.Set(float64(len(unique)))
	summary.TotalEvents = len(unique)

	logger.Info("Deduplication finished", logger.Fields{
		"merged": len(merged),
		"unique": len(unique),
	})

	summary.Success = true
	if err := s.writer.Persist(ctx, unique); err != nil {
		summary.Success = false
		summary.Errors = append(summary.Errors, fmt.Sprintf("Failed to persist events: %v", err))
		logger.Error("Persistence failed", logger.Fields{"run_id": runID}, err)
	} else if err := s.writer.WriteMeta(ctx, catalog.Meta{
		RunID:       runID,
		TotalEvents: len(unique),
		Sources:     sourceList(s.scrapers),
		Errors:      summary.Errors,
		LastUpdated: time.Now().UTC(),
	}); err != nil {
		summary.Success = false
		summary.Errors = append(summary.Errors, fmt.Sprintf("Failed to write metadata: %v", err))
		logger.Error("Metadata write failed", logger.Fields{"run_id": runID}, err)
	}

	summary.FinishedAt = time.Now().UTC()
	if len(summary.Errors) > 0 {
		summary.State = StatePartiallyFailed
	} else {
		summary.State = StateCompleted
	}
	s.setState(summary.State)

	metrics.Runs.WithLabelValues(string(summary.State)).Inc()
	metrics.RunDuration.Observe(summary.FinishedAt.Sub(summary.StartedAt).Seconds())

	logger.Info("Ingestion run finished", logger.Fields{
		"run_id":   runID,
		"state":    string(summary.State),
		"unique":   summary.TotalEvents,
		"errors":   len(summary.Errors),
		"duration": summary.FinishedAt.Sub(summary.StartedAt).String(),
	})

	return summary, nil
}

// fetchAll runs every adapter concurrently with a bounded deadline each and
// waits for all of them. Results keep adapter registration order so dedup's
// first-seen-wins behavior is deterministic.
func (s *Service) fetchAll(ctx context.Context) []sourceOutcome {
	outcomes := make([]sourceOutcome, len(s.scrapers))

	var wg sync.WaitGroup
	for i, sc := range s.scrapers {
		wg.Add(1)
		go func(i int, sc scraper.Scraper) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()

			raw, err := sc.FetchRawEvents(fetchCtx)
			outcomes[i] = sourceOutcome{source: sc.Source(), raw: raw, err: err}
		}(i, sc)
	}
	wg.Wait()

	return outcomes
}

func sourceList(scrapers []scraper.Scraper) []event.Source {
	sources := make([]event.Source, len(scrapers))
	for i, sc := range scrapers {
		sources[i] = sc.Source()
	}
	return sources
}
