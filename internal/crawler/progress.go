package crawler

import (
	"fmt"
	"io"
	"time"
)

// Stats is a point-in-time snapshot of the run counters.
type Stats struct {
	// Active is the number of dispatched-but-unfinished units of work.
	Active int64
	// Collected is the number of successfully crawled pages so far.
	Collected int
	// Submitted is the total number of units dispatched, retries included.
	Submitted int64
	// Elapsed is the wall-clock time since the run started.
	Elapsed time.Duration
}

var spinnerFrames = []byte{'|', '/', '-', '\\'}

// renderProgress overwrites the current terminal line with the live
// status. Trailing spaces blank out leftovers from a longer previous
// line.
func renderProgress(w io.Writer, frame int, s Stats) {
	fmt.Fprintf(w, "\r[%c] Active: %d | Found: %d | Submitted: %d | Time: %ds   ",
		spinnerFrames[frame%len(spinnerFrames)],
		s.Active,
		s.Collected,
		s.Submitted,
		int(s.Elapsed.Seconds()),
	)
}

// finishProgress terminates the overwritten status line so subsequent
// output starts on a fresh line.
func finishProgress(w io.Writer) {
	fmt.Fprint(w, "\r\n")
}

// logSkip emits a user-visible line for a URL that was deliberately not
// collected. The leading newline breaks out of the status line.
func (o *Orchestrator) logSkip(reason, url string) {
	fmt.Fprintf(o.events, "\n SKIP: %s -> %s\n", reason, url)
	o.logger.Debug("skipped", "url", url, "reason", reason)
}

// logError emits a user-visible line for a URL that failed.
func (o *Orchestrator) logError(reason, url string) {
	fmt.Fprintf(o.events, "\n ERROR: %s -> %s\n", reason, url)
	o.logger.Debug("errored", "url", url, "reason", reason)
}
