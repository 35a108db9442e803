package model

import (
	"sort"
	"time"
)

// CrawlResult is the immutable summary of one finished crawl run.
// It is produced by the orchestrator after the pool has drained and is
// consumed by the report writers and the history database.
type CrawlResult struct {
	// SeedURL is the URL the crawl started from, as given by the user.
	SeedURL string `json:"seed_url"`

	// BaseDomain is the www-stripped host all collected pages belong to.
	BaseDomain string `json:"base_domain"`

	// Workers is the pool size the run used.
	Workers int `json:"workers"`

	// Links are the canonical URLs of every page that returned a 2xx
	// HTML response, sorted lexicographically.
	Links []string `json:"links"`

	// Visited is the number of unique canonical URLs ever submitted,
	// including ones that failed or were never dispatched past the limit.
	Visited int `json:"visited"`

	// Submitted is the number of units of work ever dispatched,
	// counting redirect follows and retries.
	Submitted int64 `json:"submitted"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the wall-clock duration of the crawl.
	Elapsed time.Duration `json:"elapsed"`
}

// NewCrawlResult builds a sorted result snapshot. The links slice is
// copied and sorted here so callers can hand over their working set
// without worrying about later mutation.
func NewCrawlResult(seedURL, baseDomain string, links []string) *CrawlResult {
	sorted := make([]string, len(links))
	copy(sorted, links)
	sort.Strings(sorted)

	return &CrawlResult{
		SeedURL:    seedURL,
		BaseDomain: baseDomain,
		Links:      sorted,
	}
}
