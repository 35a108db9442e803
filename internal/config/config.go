package config

import (
	"math"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These match the behavior the crawler is documented to have; most can
// be overridden from the command line or the .linkhound config file.
const (
	// DefaultWorkers is the size of the worker pool. Ten concurrent
	// fetches saturates most small sites without tripping rate limits
	// on the first page.
	DefaultWorkers = 10

	// DefaultCrawlLimit is the ceiling on dispatched units of work.
	// The default is effectively unbounded; the collected-links safety
	// cap is the real backstop when no limit is given.
	DefaultCrawlLimit = math.MaxInt

	// DefaultMaxCollected is the hard safety cap on the collected-link
	// set. It bounds worst-case memory on pathological sites that
	// generate pages endlessly, independent of any user-chosen limit.
	DefaultMaxCollected = 500000

	// DefaultFetchTimeout applies separately to dialing and to waiting
	// for response headers. Ten seconds is generous for a healthy page
	// and short enough that a dead host doesn't stall a worker long.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultRetryDelay is the wait before retrying a 429 or 5xx
	// response when the server sent no usable Retry-After header.
	DefaultRetryDelay = 10 * time.Second

	// DefaultUserAgent mimics a current desktop browser. Some sites
	// serve reduced or blocked content to obvious bot agents, which
	// would distort the link graph being enumerated.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultMaxBodySize limits how much of a response body is read.
	// 10MB covers any real HTML page while preventing memory exhaustion
	// from unexpectedly large responses.
	DefaultMaxBodySize = 10 * 1024 * 1024

	// DefaultPollInterval is how often the progress line refreshes
	// while the crawl is running.
	DefaultPollInterval = 500 * time.Millisecond

	// DefaultDrainTimeout is how long shutdown waits for in-flight
	// workers before force-cancelling them.
	DefaultDrainTimeout = 60 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "linkhound"
)

// Config holds all options for one crawl run. It is populated from CLI
// arguments and the optional config file, validated once, and then
// treated as immutable for the lifetime of the run.
//
// Design decision: We use a single flat struct passed explicitly through
// the application rather than global state. The number of options is
// small enough that nesting would add complexity without benefit.
type Config struct {
	// SeedURL is the URL the crawl starts from. Must parse and have a
	// host; this is the only fatal input error.
	SeedURL string

	// Workers is the size of the bounded worker pool, the only
	// concurrency knob the crawler has.
	Workers int

	// CrawlLimit is the maximum number of units of work ever dispatched.
	// Once exceeded, novel URLs are still recorded as visited but no
	// further fetches are scheduled.
	CrawlLimit int

	// MaxCollected is the hard safety cap on the collected-link set,
	// independent of CrawlLimit.
	MaxCollected int

	// FetchTimeout bounds dialing and header wait for each request.
	FetchTimeout time.Duration

	// RetryDelay is the fallback wait for retryable responses without a
	// numeric Retry-After header.
	RetryDelay time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// MaxBodySize caps how many body bytes are read per response.
	MaxBodySize int64

	// PollInterval is the progress line refresh interval.
	PollInterval time.Duration

	// DrainTimeout bounds the graceful-shutdown wait for in-flight work.
	DrainTimeout time.Duration

	// SkipExtensions overrides the default extension skip table when
	// non-empty. Loaded from the config file.
	SkipExtensions []string

	// SkipProtocols overrides the default protocol skip table when
	// non-empty. Loaded from the config file.
	SkipProtocols []string

	// Verbose enables slog.LevelDebug output. When false, only warnings
	// and errors are logged.
	Verbose bool

	// JSONReport outputs the final report as JSON instead of plain text.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport outputs the final report as Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	// Directories are created as needed.
	ReportFile string

	// SaveRun persists the finished run to the history database under
	// the XDG data directory. The crawl itself never reads it back.
	SaveRun bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory for linkhound.
	DBDir string

	// ConfigFilePath is an explicit config file path. When empty the
	// loader searches the working directory and then the home directory.
	ConfigFilePath string
}

// NewConfig creates a Config with default values. Callers override
// specific fields after creation.
//
// Design decision: We use a constructor instead of relying on zero
// values because most defaults are non-zero, and the constructor doubles
// as documentation of what they are.
func NewConfig() *Config {
	return &Config{
		Workers:      DefaultWorkers,
		CrawlLimit:   DefaultCrawlLimit,
		MaxCollected: DefaultMaxCollected,
		FetchTimeout: DefaultFetchTimeout,
		RetryDelay:   DefaultRetryDelay,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
		PollInterval: DefaultPollInterval,
		DrainTimeout: DefaultDrainTimeout,
		DBDir:        XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for linkhound.
// On Linux: ~/.local/share/linkhound
// On macOS: ~/Library/Application Support/linkhound
// On Windows: %LOCALAPPDATA%\linkhound
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after CLI parsing, before any crawling begins, so
// later code can assume a well-formed config.
func (c *Config) Validate() error {
	if c.SeedURL == "" {
		return ErrNoSeedURL
	}
	if u, err := url.Parse(c.SeedURL); err != nil || u.Host == "" || u.Scheme == "" {
		return ErrInvalidSeedURL
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.CrawlLimit <= 0 {
		return ErrInvalidCrawlLimit
	}
	if c.MaxCollected <= 0 {
		return ErrInvalidMaxCollected
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
