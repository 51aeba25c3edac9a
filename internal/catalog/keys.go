package catalog

import (
	"fmt"

	"github.com/woodlandsapp/woodlands-events/internal/event"
)

const (
	// MetaKey holds the latest run's metadata, fully overwritten each run.
	MetaKey = "events:meta"

	partitionPrefix = "events:"
	eventPrefix     = "event:"
	lastRunPrefix   = "scrape:last:"
	errorsPrefix    = "scrape:errors:"
)

// PartitionKey returns the storage key for one calendar date's events.
func PartitionKey(date string) string {
	return partitionPrefix + date
}

// EventKey returns the storage key for a single event record.
func EventKey(id string) string {
	return eventPrefix + id
}

// LastRunKey returns the key holding a source's last successful scrape time.
func LastRunKey(source event.Source) string {
	return fmt.Sprintf("%s%s", lastRunPrefix, source)
}

// ErrorsKey returns the key holding a source's recent error log.
func ErrorsKey(source event.Source) string {
	return fmt.Sprintf("%s%s", errorsPrefix, source)
}
