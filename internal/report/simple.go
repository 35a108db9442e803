package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/linkhound/linkhound/internal/model"
)

// SimpleWriter outputs the human-readable terminal report: a finished
// banner, the collected URLs one per line in sorted order, a separator,
// and the total count.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose appends run statistics after the count.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose appends run statistics to the report.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the crawl result as plain text. With no collected links
// only the finished banner is printed.
func (w *SimpleWriter) Write(result *model.CrawlResult) (int, error) {
	var b strings.Builder

	b.WriteString("\n--- Crawling Finished ---\n")

	if len(result.Links) > 0 {
		b.WriteString("\n--- Unique Links Found (Sorted by Label) ---\n")
		for _, link := range result.Links {
			b.WriteString(link)
			b.WriteByte('\n')
		}
		b.WriteString("-----------------------------------\n")
		fmt.Fprintf(&b, "Number of links collected: %d\n", len(result.Links))
	}

	if w.verbose {
		fmt.Fprintf(&b, "\nSeed: %s\nDomain: %s\nWorkers: %d\nVisited: %d\nSubmitted: %d\nElapsed: %s\n",
			result.SeedURL,
			result.BaseDomain,
			result.Workers,
			result.Visited,
			result.Submitted,
			result.Elapsed.Round(10*time.Millisecond),
		)
	}

	return io.WriteString(w.output, b.String())
}
