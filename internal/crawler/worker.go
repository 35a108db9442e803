package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/linkhound/linkhound/internal/extractor"
	"github.com/linkhound/linkhound/internal/fetcher"
)

// worker processes exactly one unit of work: one fetch of one canonical
// URL, plus whatever follow-up submissions that fetch produces. It holds
// no state of its own beyond the URL; everything shared lives on the
// orchestrator.
type worker struct {
	orch *Orchestrator
	url  string
}

// run drives the outcome state machine for the worker's URL.
//
// Ordering matters here: every path that produces follow-up work
// (redirect targets, retry resubmission, extracted links) submits that
// work before the deferred taskDone fires. The active count therefore
// cannot reach zero while any consequence of this unit is still
// pending, which is what makes the count a safe completion signal.
func (w *worker) run(ctx context.Context) {
	defer w.orch.taskDone()
	defer func() {
		if r := recover(); r != nil {
			w.orch.logError(fmt.Sprintf("processing panic: %v", r), w.url)
		}
	}()

	out := w.orch.fetcher.Fetch(ctx, w.url)

	switch out.Kind {
	case fetcher.KindRedirect:
		w.redirect(out)
	case fetcher.KindRetryable:
		w.retry(ctx, out)
	case fetcher.KindClientError:
		w.orch.logSkip(fmt.Sprintf("client error %d", out.StatusCode), w.url)
	case fetcher.KindTransportError:
		w.orch.logError(out.Err.Error(), w.url)
	case fetcher.KindSuccess:
		w.success(out)
	}
}

// redirect resolves the Location header against the current URL and
// hands the target to the normal submission path. The target gets full
// dedup and crawl-limit treatment but no domain filtering: a redirect
// off the seed domain is followed one hop like any explicit navigation,
// and its own links are then filtered as usual.
func (w *worker) redirect(out fetcher.Outcome) {
	if out.Location == "" {
		w.orch.logSkip(fmt.Sprintf("redirect %d without location", out.StatusCode), w.url)
		return
	}

	target := resolveRedirect(w.url, out.Location)
	w.orch.logSkip(fmt.Sprintf("redirect %d to %s", out.StatusCode, target), w.url)
	w.orch.Submit(target)
}

// retry waits out the server-provided (or default) delay and resubmits
// the same URL as a new unit of work. The wait happens inside this
// unit, so the active count stays positive for the whole backoff and
// the crawl cannot spuriously look finished.
func (w *worker) retry(ctx context.Context, out fetcher.Outcome) {
	reason := "server error"
	if out.StatusCode == 429 {
		reason = "rate limited"
	}
	w.orch.logError(fmt.Sprintf("%s (%d), retrying in %s", reason, out.StatusCode, out.RetryAfter), w.url)

	timer := time.NewTimer(out.RetryAfter)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	w.orch.resubmit(w.url)
}

// success gates on content type, records the page, and streams its
// links through the domain filter into the submission path. Non-HTML
// success responses are dropped without a log line; binary assets that
// slipped past the extension filter are routine, not noteworthy.
func (w *worker) success(out fetcher.Outcome) {
	if !strings.Contains(strings.ToLower(out.ContentType), "text/html") {
		return
	}

	w.orch.MarkSuccessful(w.url)

	extractor.Links(strings.NewReader(out.Body), func(href string) bool {
		if canonical, ok := w.orch.filter.ResolveAndFilter(href, w.url); ok {
			w.orch.Submit(canonical)
		}
		return true
	})
}

// resolveRedirect turns a possibly-relative Location header into an
// absolute URL against the page that produced it. If either side fails
// to parse, the raw header is returned and the submission path's own
// filtering deals with it.
func resolveRedirect(pageURL, location string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return location
	}
	ref, err := url.Parse(location)
	if err != nil {
		return location
	}
	return base.ResolveReference(ref).String()
}
