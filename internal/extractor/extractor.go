package extractor

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Links performs a single pass over an HTML stream and calls yield with
// the raw href value of every anchor tag, in document order. Values are
// passed exactly as written (minus surrounding whitespace); resolution
// and filtering are the caller's concern. If yield returns false the
// scan stops early.
//
// Design decision: We use the x/net/html tokenizer rather than building
// a DOM because:
//  1. The crawler never needs the document structure, only hrefs
//  2. The tokenizer is a forward-only pass with no tree allocation
//  3. It is tolerant of broken markup: bad tokens are skipped, not fatal
//
// Tag and attribute names are matched case-insensitively and attributes
// may appear in any order, including across embedded newlines.
func Links(body io.Reader, yield func(href string) bool) {
	z := html.NewTokenizer(body)
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF on a clean end; anything else means the stream is
			// unrecoverably malformed and the scan is simply over.
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if len(name) != 1 || name[0] != 'a' || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "href" {
					if !yield(strings.TrimSpace(string(val))) {
						return
					}
					break
				}
				if !more {
					break
				}
			}
		}
	}
}

// AllLinks collects every anchor href from an HTML stream into a slice.
// Intended for callers that want the whole sequence at once; the crawler
// itself streams through Links.
func AllLinks(body io.Reader) []string {
	var links []string
	Links(body, func(href string) bool {
		links = append(links, href)
		return true
	})
	return links
}
