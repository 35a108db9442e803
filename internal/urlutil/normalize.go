package urlutil

import (
	"net/url"
	"strings"
)

// Normalize reduces a URL to its canonical string form:
// the scheme, host (with a leading "www." stripped), optional port, path,
// and query, with the fragment and a single trailing slash removed.
//
// Two URLs that identify the same page must normalize to the identical
// string, and Normalize(Normalize(u)) == Normalize(u) for every u.
//
// Design decision: Normalization is best-effort rather than fail-fast.
// If the input does not parse, the raw string is returned (minus fragment
// and trailing slash) so that downstream deduplication still keys on
// something stable. Malformed links are rejected later by the filter,
// not here.
func Normalize(raw string) string {
	normalized := raw

	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		host := u.Host
		canonical := StripWWW(host)
		if host != canonical {
			u.Host = canonical
			normalized = u.String()
		}
	}

	// Drop the fragment. A fragment never changes the fetched content.
	if i := strings.IndexByte(normalized, '#'); i != -1 {
		normalized = normalized[:i]
	}

	// Strip exactly one trailing slash so "/x/" and "/x" collapse.
	normalized = strings.TrimSuffix(normalized, "/")

	return normalized
}

// StripWWW removes a single leading "www." label from a host.
// Other subdomains are left untouched: "www.a.com" becomes "a.com"
// but "blog.a.com" stays as it is.
func StripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}
