// Package log configures the application's structured logger.
//
// The logger wraps log/slog with a handler that redacts credentials
// from logged URLs. A crawler logs URLs constantly, and URLs routinely
// carry secrets in userinfo and query parameters; redaction at the
// handler level means no call site can forget to sanitize.
package log
