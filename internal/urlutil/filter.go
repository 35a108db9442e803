package urlutil

import (
	"net/url"
	"strings"
)

// DefaultSkipExtensions is the default set of file extensions that never
// identify crawlable HTML pages. The filter compares the lower-cased
// suffix of the final path segment against this table.
//
// Design decision: The table is data rather than logic so that tests can
// parametrize it and a config file can replace it without touching the
// filter's control flow.
var DefaultSkipExtensions = []string{
	// Images
	"jpg", "jpeg", "png", "gif", "bmp", "tiff", "svg", "ico", "webp",
	// Documents
	"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "rtf",
	// Archives
	"zip", "rar", "tar", "gz", "7z", "bz2",
	// Audio and video
	"mp3", "mp4", "avi", "mov", "wmv", "flv", "wav", "ogg",
	// Print and font formats
	"eps", "ps", "ai", "ttf", "woff", "woff2", "eot",
	// Stylesheets, scripts, structured data
	"css", "js", "xml", "json", "rss", "atom", "csv",
	// Executables and installers
	"exe", "msi", "dmg", "deb", "rpm", "bin",
	// Calendar
	"ics",
}

// DefaultSkipProtocols is the default set of URI schemes that are skipped
// outright when they appear as the leading scheme token of a link.
var DefaultSkipProtocols = []string{"mailto", "tel", "javascript", "data", "ftp"}

// Filter classifies discovered links against a crawl's base domain and
// its skip tables. A Filter is immutable after construction and safe for
// concurrent use.
type Filter struct {
	// baseDomain is the seed URL's host with "www." stripped. Links that
	// resolve to any other host are rejected as external.
	baseDomain string

	// skipExtensions maps lower-cased extensions (without the dot) that
	// mark a link as a non-page resource.
	skipExtensions map[string]struct{}

	// skipProtocols maps lower-cased scheme names rejected before any
	// resolution is attempted.
	skipProtocols map[string]struct{}
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithSkipExtensions replaces the default extension table.
// Entries may be given with or without a leading dot.
func WithSkipExtensions(exts []string) FilterOption {
	return func(f *Filter) {
		f.skipExtensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimPrefix(ext, "."))
			if ext != "" {
				f.skipExtensions[ext] = struct{}{}
			}
		}
	}
}

// WithSkipProtocols replaces the default protocol table.
// Entries may be given with or without a trailing colon.
func WithSkipProtocols(protocols []string) FilterOption {
	return func(f *Filter) {
		f.skipProtocols = make(map[string]struct{}, len(protocols))
		for _, p := range protocols {
			p = strings.ToLower(strings.TrimSuffix(p, ":"))
			if p != "" {
				f.skipProtocols[p] = struct{}{}
			}
		}
	}
}

// NewFilter creates a Filter for the crawl rooted at seedURL.
// The base domain is derived from the seed's host with "www." stripped.
func NewFilter(seedURL string, opts ...FilterOption) (*Filter, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, err
	}

	f := &Filter{baseDomain: StripWWW(u.Host)}
	WithSkipExtensions(DefaultSkipExtensions)(f)
	WithSkipProtocols(DefaultSkipProtocols)(f)
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// BaseDomain returns the domain links must resolve to in order to pass
// the filter.
func (f *Filter) BaseDomain() string {
	return f.baseDomain
}

// IsProtocolSkippable reports whether a raw link is blank or carries a
// leading scheme token from the protocol skip table. The match is
// case-insensitive.
func (f *Filter) IsProtocolSkippable(link string) bool {
	link = strings.TrimSpace(link)
	if link == "" {
		return true
	}

	i := strings.IndexByte(link, ':')
	if i <= 0 {
		return false
	}
	_, ok := f.skipProtocols[strings.ToLower(link[:i])]
	return ok
}

// IsExtensionSkippable reports whether an absolute URL points at a
// non-page resource. Only the final segment of the path component is
// considered, so a dot in an earlier segment (a directory named "v1.2")
// never triggers a match, and the query string is ignored entirely.
// A URL that does not parse is treated as skippable (fail closed).
func (f *Filter) IsExtensionSkippable(absoluteURL string) bool {
	u, err := url.Parse(absoluteURL)
	if err != nil {
		return true
	}

	path := u.Path
	dot := strings.LastIndexByte(path, '.')
	if dot <= 0 {
		return false
	}
	if slash := strings.LastIndexByte(path, '/'); dot < slash {
		// The dot belongs to an earlier segment, not the final one.
		return false
	}

	_, ok := f.skipExtensions[strings.ToLower(path[dot+1:])]
	return ok
}

// ResolveAndFilter resolves a raw link against the page it appeared on
// and decides whether it identifies a crawlable in-domain page.
// It returns the canonical form of the resolved URL and true when the
// link passes every check: not protocol-skippable, http or https after
// resolution, host (www-stripped) equal to the base domain, and not
// extension-skippable.
func (f *Filter) ResolveAndFilter(rawLink, baseURL string) (string, bool) {
	if f.IsProtocolSkippable(rawLink) {
		return "", false
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(strings.TrimSpace(rawLink))
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)

	scheme := strings.ToLower(resolved.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}

	if StripWWW(resolved.Host) != f.baseDomain {
		return "", false
	}

	absolute := resolved.String()
	if f.IsExtensionSkippable(absolute) {
		return "", false
	}

	return Normalize(absolute), true
}
