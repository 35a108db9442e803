package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/linkhound/linkhound/internal/model"
)

// MarkdownWriter outputs crawl results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the crawl result in Markdown format.
func (w *MarkdownWriter) Write(result *model.CrawlResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeLinks(md, result)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.CrawlResult) {
	md.H1("Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed URL", "`" + result.SeedURL + "`"},
			{"Base Domain", "`" + result.BaseDomain + "`"},
			{"Started", result.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", result.Elapsed.String()},
			{"Workers", strconv.Itoa(result.Workers)},
			{"URLs Visited", strconv.Itoa(result.Visited)},
			{"Units Submitted", strconv.FormatInt(result.Submitted, 10)},
			{"Links Collected", strconv.Itoa(len(result.Links))},
		},
	})
	md.PlainText("")
}

// writeLinks writes the sorted collected links as a list.
func (w *MarkdownWriter) writeLinks(md *markdown.Markdown, result *model.CrawlResult) {
	md.H2("Collected Links")
	md.PlainText("")

	if len(result.Links) == 0 {
		md.PlainText("No links collected.")
		return
	}

	md.BulletList(result.Links...)
}
