package fetcher

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/html/charset"
)

// Kind identifies the outcome band of one fetch attempt.
type Kind int

// Fetch outcome kinds, one per status-code band the worker distinguishes.
const (
	// KindSuccess is any 2xx response. Body and content type are populated.
	KindSuccess Kind = iota

	// KindRedirect is any 3xx response. Location carries the raw
	// Location header, possibly empty if the server omitted it.
	KindRedirect

	// KindRetryable is a 429 or any 5xx response. RetryAfter carries the
	// server-requested wait, or the configured default.
	KindRetryable

	// KindClientError is any other 4xx response. Terminal for the URL.
	KindClientError

	// KindTransportError is any failure to connect, read, or decode.
	// Err carries the cause; no fault is ever propagated as a panic.
	KindTransportError
)

// String returns a human-readable name for the outcome kind.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindRedirect:
		return "redirect"
	case KindRetryable:
		return "retryable"
	case KindClientError:
		return "client error"
	case KindTransportError:
		return "transport error"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of one fetch attempt.
type Outcome struct {
	// Kind selects which of the remaining fields are meaningful.
	Kind Kind

	// StatusCode is the HTTP status, zero for transport errors.
	StatusCode int

	// Location is the raw Location header of a redirect.
	Location string

	// RetryAfter is the wait before retrying a retryable outcome.
	RetryAfter time.Duration

	// ContentType is the Content-Type header of a success.
	ContentType string

	// Body is the decoded response body of a success, as UTF-8 text.
	Body string

	// Err is the cause of a transport error.
	Err error
}

// Fetcher performs GET requests with the crawler's timeouts and headers.
// It is safe for concurrent use; all state is read-only after creation.
type Fetcher struct {
	client     *http.Client
	userAgent  string
	maxBody    int64
	retryDelay time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps how many body bytes are read per response.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// WithRetryDelay sets the fallback wait for retryable outcomes whose
// Retry-After header is absent or not a plain number of seconds.
func WithRetryDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelay = d
	}
}

// WithClient replaces the HTTP client entirely. Used by tests to point
// the fetcher at an httptest server; the replacement client must not
// follow redirects itself.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// New creates a Fetcher with the given per-phase timeout.
//
// Design decision: Redirects are never followed by the client.
// The worker state machine treats a 3xx as its own terminal outcome and
// resubmits the target as new work, so the transport must surface the
// redirect rather than chase it. Compression is left to net/http, which
// negotiates gzip transparently when the Accept-Encoding header is not
// set by hand.
func New(timeout time.Duration, opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: timeout,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				MaxIdleConnsPerHost:   16,
				IdleConnTimeout:       30 * time.Second,
			},
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxBody:    10 * 1024 * 1024,
		retryDelay: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs one GET and classifies the result. Faults of any sort
// surface as a KindTransportError outcome, never as a panic or a
// partially filled result.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Outcome{Kind: KindTransportError, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return Outcome{Kind: KindTransportError, Err: err}
	}
	defer resp.Body.Close()

	code := resp.StatusCode
	switch {
	case code >= 300 && code <= 399:
		return Outcome{
			Kind:       KindRedirect,
			StatusCode: code,
			Location:   resp.Header.Get("Location"),
		}

	case code == http.StatusTooManyRequests || code >= 500:
		return Outcome{
			Kind:       KindRetryable,
			StatusCode: code,
			RetryAfter: f.retryAfter(resp.Header.Get("Retry-After")),
		}

	case code >= 400:
		return Outcome{Kind: KindClientError, StatusCode: code}
	}

	contentType := resp.Header.Get("Content-Type")

	// Decode the body to UTF-8 using whatever charset the headers or a
	// leading meta tag declare. Reading is capped so a runaway response
	// cannot exhaust memory.
	limited := io.LimitReader(resp.Body, f.maxBody)
	decoded, err := charset.NewReader(limited, contentType)
	if err != nil {
		return Outcome{Kind: KindTransportError, Err: err}
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return Outcome{Kind: KindTransportError, Err: err}
	}

	return Outcome{
		Kind:        KindSuccess,
		StatusCode:  code,
		ContentType: contentType,
		Body:        string(body),
	}
}

// retryAfter parses a Retry-After header holding a plain number of
// seconds. HTTP-date values and garbage fall back to the default delay.
func (f *Fetcher) retryAfter(header string) time.Duration {
	if header != "" {
		if secs, err := strconv.ParseInt(header, 10, 64); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return f.retryDelay
}
