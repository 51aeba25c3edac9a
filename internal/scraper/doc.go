// Package scraper provides the source adapter abstraction and the concrete
// adapters that fetch raw event listings from each external source.
//
// Every adapter implements the Scraper interface: it knows a single source,
// fetches that source's listing page over HTTP with a bounded
// exponential-backoff retry, parses the HTML with goquery, and reports raw
// candidate events. Adapters are independent of each other; one source
// failing or timing out never affects another.
package scraper
