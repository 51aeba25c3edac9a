package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/woodlandsapp/woodlands-events/internal/event"
)

const (
	UserAgent = "woodlands-events/1.0 (github.com/woodlandsapp/woodlands-events)"

	// FetchTimeout bounds one adapter's whole fetch, retries included.
	FetchTimeout = 10 * time.Second

	// maxRetries is the number of retries beyond the first attempt.
	maxRetries = 2

	// retryBaseDelay is the first retry delay; it doubles on each retry.
	retryBaseDelay = 500 * time.Millisecond
)

// Scraper produces raw candidate events for one fixed source.
type Scraper interface {
	Source() event.Source
	FetchRawEvents(ctx context.Context) ([]event.RawEvent, error)
}

func newClient() *http.Client {
	return &http.Client{Timeout: FetchTimeout}
}

// fetchDocument GETs a page and parses it, retrying transient failures with
// exponential backoff. The operation is a pure function of its inputs, so
// repeated attempts are safe.
func fetchDocument(ctx context.Context, client *http.Client, pageURL string) (*goquery.Document, error) {
	var doc *goquery.Document

	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		parsed, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return fmt.Errorf("parsing HTML: %w", err)
		}
		doc = parsed
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryBaseDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	err := backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// resolveURL joins a possibly-relative href against the page it came from.
func resolveURL(base, href string) string {
	if href == "" {
		return base
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
