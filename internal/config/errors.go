package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoSeedURL is returned when no seed URL was provided.
	// The crawl has nothing to start from without one.
	ErrNoSeedURL = errors.New("no seed URL specified")

	// ErrInvalidSeedURL is returned when the seed URL does not parse or
	// has no host. This is the only fatal input error: every other bad
	// argument falls back to a default with a warning.
	ErrInvalidSeedURL = errors.New("invalid seed URL")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	// Zero workers would mean the pool can never execute anything.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidCrawlLimit is returned when the crawl limit is not positive.
	// A non-positive limit would reject the seed submission itself.
	ErrInvalidCrawlLimit = errors.New("invalid crawl limit: must be positive")

	// ErrInvalidMaxCollected is returned when the safety cap is not positive.
	ErrInvalidMaxCollected = errors.New("invalid collected-links cap: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
