// Package crawler implements the concurrent crawl engine: a bounded
// pool of workers fetching one canonical URL each, feeding discovered
// links back to an orchestrator that owns all shared state.
//
// The orchestrator guarantees that each canonical URL is dispatched at
// most once per run (retries of rate-limited URLs being the single,
// deliberate exception), that the crawl terminates even on unbounded or
// self-referential link graphs, and that completion is detected without
// racing against in-flight resubmissions: a worker always submits its
// follow-up work before it reports its own unit as finished.
package crawler
