package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/woodlandsapp/woodlands-events/internal/calendar"
	"github.com/woodlandsapp/woodlands-events/internal/catalog"
	"github.com/woodlandsapp/woodlands-events/internal/event"
	"github.com/woodlandsapp/woodlands-events/internal/logger"
	"github.com/woodlandsapp/woodlands-events/internal/pipeline"
)

const (
	dateLayout       = "2006-01-02"
	defaultRangeDays = 30
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	svc    *pipeline.Service
	reader *catalog.Reader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(svc *pipeline.Service, reader *catalog.Reader) http.Handler {
	h := &Handler{svc: svc, reader: reader, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /api/events", h.listEvents)
	h.mux.HandleFunc("GET /api/events/{id}", h.getEvent)
	h.mux.HandleFunc("GET /api/events/{id}/calendar", h.getEventCalendar)
	h.mux.HandleFunc("POST /api/scrape", h.triggerScrape)
	h.mux.HandleFunc("GET /api/stats", h.stats)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// GET /api/events — upcoming events, optionally bounded and filtered.
func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start := startOfDay(now)
	end := start.AddDate(0, 0, defaultRangeDays)

	q := r.URL.Query()
	if raw := q.Get("start"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid start date %q, want YYYY-MM-DD", raw))
			return
		}
		start = parsed
	}
	if raw := q.Get("end"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid end date %q, want YYYY-MM-DD", raw))
			return
		}
		end = parsed
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end date is before start date")
		return
	}

	events, err := h.reader.EventsByDateRange(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if category := q.Get("category"); category != "" {
		events = filterEvents(events, func(e event.Event) bool {
			return string(e.Category) == category
		})
	}
	if source := q.Get("source"); source != "" {
		events = filterEvents(events, func(e event.Event) bool {
			return string(e.Source) == source
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"start":  start.Format(dateLayout),
		"end":    end.Format(dateLayout),
		"count":  len(events),
		"events": events,
	})
}

// GET /api/events/{id} — single event lookup.
func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ev, err := h.reader.EventByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("event %q not found", id))
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// GET /api/events/{id}/calendar — event as a downloadable .ics file.
func (h *Handler) getEventCalendar(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ev, err := h.reader.EventByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("event %q not found", id))
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".ics"))
	_, _ = w.Write([]byte(calendar.GenerateICS(ev)))
}

// POST /api/scrape — manually trigger an ingestion run. Returns 409 when a
// run is already in flight and 429 when the catalog is still fresh.
func (h *Handler) triggerScrape(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	summary, err := h.svc.Run(r.Context(), force)
	switch {
	case errors.Is(err, pipeline.ErrRunActive):
		writeError(w, http.StatusConflict, "a scrape run is already in progress")
		return
	case errors.Is(err, pipeline.ErrRecentRun):
		writeError(w, http.StatusTooManyRequests, "catalog was refreshed recently, use force=true to override")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// sourceStats is the per-source block of the stats payload.
type sourceStats struct {
	Source       event.Source          `json:"source"`
	LastRun      *time.Time            `json:"lastRun,omitempty"`
	RecentErrors []catalog.SourceError `json:"recentErrors"`
}

// GET /api/stats — last run metadata plus per-source diagnostics.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	payload := map[string]interface{}{
		"state": h.svc.State(),
	}

	if meta, err := h.reader.Meta(r.Context()); err == nil {
		payload["lastRun"] = meta
	} else if !errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sources := make([]sourceStats, 0, len(event.Sources()))
	for _, source := range event.Sources() {
		stat := sourceStats{Source: source, RecentErrors: []catalog.SourceError{}}

		if last, err := h.reader.LastRun(r.Context(), source); err == nil && !last.IsZero() {
			stat.LastRun = &last
		}
		if recent, err := h.reader.SourceErrors(r.Context(), source); err == nil && recent != nil {
			stat.RecentErrors = recent
		}
		sources = append(sources, stat)
	}
	payload["sources"] = sources

	writeJSON(w, http.StatusOK, payload)
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func filterEvents(events []event.Event, keep func(event.Event) bool) []event.Event {
	out := events[:0:0]
	for _, e := range events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		logger.Info("Request handled", logger.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		})
	})
}
