package crawler

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/linkhound/linkhound/internal/config"
	"github.com/linkhound/linkhound/internal/fetcher"
	"github.com/linkhound/linkhound/internal/model"
	"github.com/linkhound/linkhound/internal/urlutil"
)

// Fetcher is the transport contract the orchestrator depends on.
// Production code uses fetcher.Fetcher; tests substitute their own.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) fetcher.Outcome
}

// Orchestrator owns all shared crawl state: the visited and collected
// sets, the active and submitted counters, the completion flag, and the
// bounded worker pool. Workers never touch that state directly; they
// mutate it only through Orchestrator methods, which keeps every
// concurrency invariant in one place.
//
// Design decision: The pool is a weighted semaphore rather than a fixed
// set of worker goroutines pulling from a queue. Each unit of work gets
// its own goroutine gated on the semaphore, which keeps resubmission
// (redirects, retries) a plain recursive-free "push new work" operation
// and makes the active counter the single source of completion truth.
type Orchestrator struct {
	fetcher Fetcher
	filter  *urlutil.Filter

	seedURL      string
	crawlLimit   int64
	maxCollected int
	workers      int
	retryDelay   time.Duration
	pollInterval time.Duration
	drainTimeout time.Duration

	// mu guards visited and collected. The membership-test-and-insert
	// on visited must be a single atomic operation: it is the only gate
	// preventing duplicate dispatch of a canonical URL.
	mu        sync.Mutex
	visited   map[string]struct{}
	collected map[string]struct{}

	// active counts dispatched-but-unfinished units of work. It can hit
	// zero only when the crawl is truly done, because workers submit
	// their follow-up work before decrementing.
	active    atomic.Int64
	submitted atomic.Int64

	// complete is the advisory global stop: set by the safety cap and
	// by drain, checked at submission time only. In-flight work is
	// never interrupted by it.
	complete atomic.Bool

	// doneCh is signaled each time active transitions to zero.
	doneCh chan struct{}

	// wg tracks every dispatched goroutine for the drain phase.
	wg sync.WaitGroup

	sem *semaphore.Weighted

	// runCtx governs fetches and retry waits. It is independent of the
	// caller's context: an interrupt stops the wait loop, not in-flight
	// work. Only the drain timeout escalates to cancelling it.
	runCtx context.Context
	cancel context.CancelFunc

	events   io.Writer
	progress io.Writer
	logger   *slog.Logger

	startedAt time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithFetcher replaces the HTTP fetcher. Tests use this to drive the
// worker state machine without a network.
func WithFetcher(f Fetcher) Option {
	return func(o *Orchestrator) {
		o.fetcher = f
	}
}

// WithLogger sets the ambient structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithEventWriter redirects the user-visible SKIP/ERROR lines.
// Defaults to stderr.
func WithEventWriter(w io.Writer) Option {
	return func(o *Orchestrator) {
		o.events = w
	}
}

// WithProgressWriter redirects the overwritten status line.
// Defaults to stdout.
func WithProgressWriter(w io.Writer) Option {
	return func(o *Orchestrator) {
		o.progress = w
	}
}

// New creates an Orchestrator for one crawl run described by cfg.
// The base domain and link filter are derived from the seed URL; the
// config must already have passed Validate.
func New(cfg *config.Config, opts ...Option) (*Orchestrator, error) {
	filterOpts := make([]urlutil.FilterOption, 0, 2)
	if len(cfg.SkipExtensions) > 0 {
		filterOpts = append(filterOpts, urlutil.WithSkipExtensions(cfg.SkipExtensions))
	}
	if len(cfg.SkipProtocols) > 0 {
		filterOpts = append(filterOpts, urlutil.WithSkipProtocols(cfg.SkipProtocols))
	}
	filter, err := urlutil.NewFilter(cfg.SeedURL, filterOpts...)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())

	o := &Orchestrator{
		fetcher: fetcher.New(cfg.FetchTimeout,
			fetcher.WithUserAgent(cfg.UserAgent),
			fetcher.WithMaxBodySize(cfg.MaxBodySize),
			fetcher.WithRetryDelay(cfg.RetryDelay),
		),
		filter:       filter,
		seedURL:      cfg.SeedURL,
		crawlLimit:   int64(cfg.CrawlLimit),
		maxCollected: cfg.MaxCollected,
		workers:      cfg.Workers,
		retryDelay:   cfg.RetryDelay,
		pollInterval: cfg.PollInterval,
		drainTimeout: cfg.DrainTimeout,
		visited:      make(map[string]struct{}),
		collected:    make(map[string]struct{}),
		doneCh:       make(chan struct{}, 1),
		sem:          semaphore.NewWeighted(int64(cfg.Workers)),
		runCtx:       runCtx,
		cancel:       cancel,
		events:       os.Stderr,
		progress:     os.Stdout,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Run executes the crawl to completion: seed submission, the completion
// wait, and the drain. A cancelled ctx stops the wait early; in-flight
// work still drains before the result snapshot is taken.
func (o *Orchestrator) Run(ctx context.Context) *model.CrawlResult {
	o.startedAt = time.Now()

	o.Submit(o.seedURL)
	o.AwaitCompletion(ctx)
	o.Drain()

	return o.Result()
}

// Submit hands a URL to the crawl as a fresh unit of work. It applies,
// in order: the collected-set safety cap, the advisory stop flag,
// canonicalization, the visited-set dedup gate, and the crawl limit.
// A URL that survives all five is dispatched onto the pool.
//
// Once the submitted count passes the crawl limit, novel URLs are still
// recorded as visited but nothing further is ever dispatched.
func (o *Orchestrator) Submit(rawURL string) {
	if o.collectedSize() >= o.maxCollected {
		o.complete.Store(true)
		return
	}
	if o.complete.Load() {
		return
	}

	canonical := urlutil.Normalize(rawURL)

	if !o.addVisited(canonical) {
		return
	}

	if o.submitted.Add(1) > o.crawlLimit {
		return
	}

	o.dispatch(canonical)
}

// resubmit schedules a retry of an already-visited canonical URL as a
// brand-new unit of work. It deliberately bypasses the visited-set gate
// (the URL is in there from its first submission) but still honors the
// stop flag, the safety cap, and the crawl limit, which are the only
// backstops against infinite retry storms.
func (o *Orchestrator) resubmit(canonical string) {
	if o.collectedSize() >= o.maxCollected {
		o.complete.Store(true)
		return
	}
	if o.complete.Load() {
		return
	}

	if o.submitted.Add(1) > o.crawlLimit {
		return
	}

	o.dispatch(canonical)
}

// dispatch increments the active count and starts a worker goroutine
// gated on the pool semaphore. The increment happens before the
// goroutine exists so the active count can never transiently read zero
// while work is pending.
func (o *Orchestrator) dispatch(canonical string) {
	o.active.Add(1)
	o.wg.Add(1)

	go func() {
		defer o.wg.Done()

		if err := o.sem.Acquire(o.runCtx, 1); err != nil {
			// Force-cancelled while queued; the unit still completes.
			o.taskDone()
			return
		}
		defer o.sem.Release(1)

		w := &worker{orch: o, url: canonical}
		w.run(o.runCtx)
	}()
}

// MarkSuccessful records a canonical URL as a successfully collected
// page. Idempotent and safe for concurrent use.
func (o *Orchestrator) MarkSuccessful(url string) {
	canonical := urlutil.Normalize(url)
	o.mu.Lock()
	o.collected[canonical] = struct{}{}
	o.mu.Unlock()
}

// taskDone records the completion of exactly one unit of work and
// signals the wait loop when the last one finishes. Workers call this
// once, after any resubmission they produce has already been dispatched.
func (o *Orchestrator) taskDone() {
	if o.active.Add(-1) == 0 {
		select {
		case o.doneCh <- struct{}{}:
		default:
		}
	}
}

// addVisited atomically tests and inserts a canonical URL into the
// visited set. It returns true only for the first caller; this is the
// sole deduplication gate for the run.
func (o *Orchestrator) addVisited(canonical string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.visited[canonical]; ok {
		return false
	}
	o.visited[canonical] = struct{}{}
	return true
}

func (o *Orchestrator) collectedSize() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.collected)
}

// Stats returns a point-in-time snapshot of the counters the progress
// line renders. It performs no mutation and takes no long-held locks.
func (o *Orchestrator) Stats() Stats {
	return Stats{
		Active:    o.active.Load(),
		Collected: o.collectedSize(),
		Submitted: o.submitted.Load(),
		Elapsed:   time.Since(o.startedAt),
	}
}

// AwaitCompletion blocks until every unit of work has finished or the
// advisory stop flag is set, rendering the status line at the poll
// interval while it waits. A cancelled ctx (user interrupt) returns
// immediately; the caller proceeds to Drain either way.
//
// Completion is signaled by the last finishing worker rather than
// discovered by polling: the ticker only drives the display.
func (o *Orchestrator) AwaitCompletion(ctx context.Context) {
	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	frame := 0
	for {
		if o.active.Load() == 0 || o.complete.Load() {
			finishProgress(o.progress)
			return
		}

		select {
		case <-ctx.Done():
			finishProgress(o.progress)
			return
		case <-o.doneCh:
			if o.active.Load() == 0 {
				finishProgress(o.progress)
				return
			}
		case <-ticker.C:
			renderProgress(o.progress, frame, o.Stats())
			frame++
		}
	}
}

// Drain shuts the pool down: no new work is accepted, in-flight workers
// get up to the drain timeout to finish, and whatever remains after
// that is force-cancelled. Always called exactly once, after the wait.
func (o *Orchestrator) Drain() {
	o.complete.Store(true)

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(o.drainTimeout):
		o.logger.Warn("drain timeout reached, cancelling in-flight work",
			"timeout", o.drainTimeout,
			"active", o.active.Load(),
		)
		o.cancel()
		<-done
	}
	o.cancel()
}

// Result builds the final snapshot of the run. Call after Drain; the
// sets are no longer mutated at that point.
func (o *Orchestrator) Result() *model.CrawlResult {
	o.mu.Lock()
	links := make([]string, 0, len(o.collected))
	for link := range o.collected {
		links = append(links, link)
	}
	visited := len(o.visited)
	o.mu.Unlock()

	result := model.NewCrawlResult(o.seedURL, o.filter.BaseDomain(), links)
	result.Workers = o.workers
	result.Visited = visited
	result.Submitted = o.submitted.Load()
	result.StartedAt = o.startedAt
	result.Elapsed = time.Since(o.startedAt)
	return result
}
