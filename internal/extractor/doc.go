// Package extractor scans HTML for anchor hrefs.
//
// It is deliberately not a full HTML parser: the crawler only needs the
// sequence of raw href attribute values found inside <a> tags, and a
// single streaming tokenizer pass provides that while tolerating the
// malformed markup common on real sites.
package extractor
