package urlutil

import "testing"

// TestNormalize tests URL canonicalization.
func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips www prefix",
			in:   "http://www.example.com/page",
			want: "http://example.com/page",
		},
		{
			name: "keeps non-www subdomains",
			in:   "http://blog.example.com/page",
			want: "http://blog.example.com/page",
		},
		{
			name: "drops fragment",
			in:   "http://example.com/page#section-2",
			want: "http://example.com/page",
		},
		{
			name: "strips trailing slash",
			in:   "http://example.com/page/",
			want: "http://example.com/page",
		},
		{
			name: "keeps query string",
			in:   "http://example.com/search?q=go&page=2",
			want: "http://example.com/search?q=go&page=2",
		},
		{
			name: "keeps explicit port",
			in:   "http://www.example.com:8080/page",
			want: "http://example.com:8080/page",
		},
		{
			name: "bare host",
			in:   "http://example.com/",
			want: "http://example.com",
		},
		{
			name: "unparseable input passes through",
			in:   "http://exa mple.com/page#x",
			want: "http://exa mple.com/page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestNormalizeIdempotent verifies Normalize(Normalize(u)) == Normalize(u).
func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"http://www.example.com/page/",
		"https://example.com/a/b?x=1#frag",
		"http://example.com",
		"not a url at all/",
		"http://www.example.com:8080/x/#y",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

// TestNormalizeEquivalence verifies that semantically identical URLs
// collapse to the same canonical string.
func TestNormalizeEquivalence(t *testing.T) {
	t.Parallel()

	if Normalize("http://www.a.com/x/") != Normalize("http://a.com/x") {
		t.Errorf("expected www/trailing-slash variants to normalize identically: %q vs %q",
			Normalize("http://www.a.com/x/"), Normalize("http://a.com/x"))
	}
}

// TestIsProtocolSkippable tests the protocol skip table.
func TestIsProtocolSkippable(t *testing.T) {
	t.Parallel()

	f, err := NewFilter("http://example.com")
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	tests := []struct {
		link string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"mailto:someone@example.com", true},
		{"MAILTO:someone@example.com", true},
		{"tel:+1234567890", true},
		{"javascript:void(0)", true},
		{"Data:text/plain;base64,SGVsbG8=", true},
		{"ftp://example.com/file", true},
		{"/relative/path", false},
		{"http://example.com/page", false},
		{"page.html", false},
		{"//example.com/protocol-relative", false},
	}

	for _, tt := range tests {
		if got := f.IsProtocolSkippable(tt.link); got != tt.want {
			t.Errorf("IsProtocolSkippable(%q) = %v, want %v", tt.link, got, tt.want)
		}
	}
}

// TestIsExtensionSkippable tests the extension skip table.
func TestIsExtensionSkippable(t *testing.T) {
	t.Parallel()

	f, err := NewFilter("http://example.com")
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	tests := []struct {
		url  string
		want bool
	}{
		{"http://example.com/report.pdf", true},
		{"http://example.com/report.PDF", true},
		{"http://example.com/logo.png", true},
		{"http://example.com/page", false},
		{"http://example.com/page.html", false},
		// A dot in a non-final segment must not trigger a match.
		{"http://example.com/v1.2/page", false},
		{"http://example.com/release-1.0.zip", true},
		// Query strings are ignored.
		{"http://example.com/page?file=x.pdf", false},
		{"http://exa mple.com/x", true}, // malformed, fail closed
	}

	for _, tt := range tests {
		if got := f.IsExtensionSkippable(tt.url); got != tt.want {
			t.Errorf("IsExtensionSkippable(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

// TestResolveAndFilter tests link resolution and acceptance.
func TestResolveAndFilter(t *testing.T) {
	t.Parallel()

	f, err := NewFilter("http://www.a.com")
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	base := "http://a.com/dir/page"

	tests := []struct {
		name     string
		link     string
		want     string
		accepted bool
	}{
		{
			name:     "relative link resolves against base",
			link:     "other",
			want:     "http://a.com/dir/other",
			accepted: true,
		},
		{
			name:     "root-relative link",
			link:     "/about/",
			want:     "http://a.com/about",
			accepted: true,
		},
		{
			name:     "absolute in-domain link with www",
			link:     "http://www.a.com/contact",
			want:     "http://a.com/contact",
			accepted: true,
		},
		{
			name:     "external domain rejected",
			link:     "http://other.com/page",
			accepted: false,
		},
		{
			name:     "https external domain rejected",
			link:     "https://other.com/",
			accepted: false,
		},
		{
			name:     "skippable extension rejected",
			link:     "report.PDF",
			accepted: false,
		},
		{
			name:     "dot in non-final segment accepted",
			link:     "/v1.2/page",
			want:     "http://a.com/v1.2/page",
			accepted: true,
		},
		{
			name:     "mailto rejected",
			link:     "mailto:x@a.com",
			accepted: false,
		},
		{
			name:     "ftp scheme rejected",
			link:     "ftp://a.com/file",
			accepted: false,
		},
		{
			name:     "non-http scheme rejected after resolution",
			link:     "file:///etc/passwd",
			accepted: false,
		},
		{
			name:     "fragment-only link collapses to the page itself",
			link:     "#top",
			want:     "http://a.com/dir/page",
			accepted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := f.ResolveAndFilter(tt.link, base)
			if ok != tt.accepted {
				t.Fatalf("ResolveAndFilter(%q) accepted = %v, want %v", tt.link, ok, tt.accepted)
			}
			if tt.accepted && got != tt.want {
				t.Errorf("ResolveAndFilter(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}

// TestFilterCustomTables verifies that config-provided tables replace
// the defaults.
func TestFilterCustomTables(t *testing.T) {
	t.Parallel()

	f, err := NewFilter("http://a.com",
		WithSkipExtensions([]string{".wasm"}),
		WithSkipProtocols([]string{"gopher:"}),
	)
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	if !f.IsExtensionSkippable("http://a.com/app.wasm") {
		t.Error("expected .wasm to be skippable with custom table")
	}
	if f.IsExtensionSkippable("http://a.com/report.pdf") {
		t.Error("expected .pdf to be allowed once the default table is replaced")
	}
	if !f.IsProtocolSkippable("gopher://a.com/x") {
		t.Error("expected gopher: to be skippable with custom table")
	}
	if f.IsProtocolSkippable("mailto:x@a.com") {
		t.Error("expected mailto: to be allowed once the default table is replaced")
	}
}
