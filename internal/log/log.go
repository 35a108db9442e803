package log

import (
	"io"
	"log/slog"
	"net/url"
	"strings"
)

// MaskValue replaces redacted URL components in log output. It is
// plain alphanumeric so url.URL.String never percent-encodes it.
const MaskValue = "REDACTED"

// sensitiveParams lists query parameter names whose values are always
// masked before a URL is logged. Matching is case-insensitive.
var sensitiveParams = map[string]bool{
	"token":         true,
	"access_token":  true,
	"refresh_token": true,
	"api_key":       true,
	"apikey":        true,
	"key":           true,
	"secret":        true,
	"password":      true,
	"passwd":        true,
	"auth":          true,
	"session":       true,
	"session_id":    true,
	"sid":           true,
}

// New returns a logger writing human-readable lines to w. Verbose mode
// lowers the level to debug, which surfaces per-URL crawl decisions.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	})
	return slog.New(handler)
}

// redactAttr sanitizes URL-bearing attributes. Attribute keys are a
// closed set chosen by this codebase, so matching on the key name is
// reliable.
func redactAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString {
		return a
	}
	switch strings.ToLower(a.Key) {
	case "url", "seed", "target", "location", "link":
		a.Value = slog.StringValue(RedactURL(a.Value.String()))
	}
	return a
}

// RedactURL strips userinfo and masks sensitive query parameter values
// in a URL. Unparseable input is returned unchanged; a string that is
// not a URL carries no URL-shaped secrets to leak.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	changed := false
	if u.User != nil {
		u.User = url.User(MaskValue)
		changed = true
	}

	if u.RawQuery != "" {
		query := u.Query()
		for name := range query {
			if sensitiveParams[strings.ToLower(name)] {
				query.Set(name, MaskValue)
				changed = true
			}
		}
		if changed {
			u.RawQuery = query.Encode()
		}
	}

	if !changed {
		return raw
	}
	return u.String()
}
