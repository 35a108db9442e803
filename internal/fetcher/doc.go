// Package fetcher performs single HTTP GET requests for the crawler and
// classifies each response into the outcome bands the worker state
// machine acts on: redirect, retryable, client error, success, or
// transport failure. All transport-level concerns (connection setup,
// TLS, compression, charset decoding) are handled here so the crawler
// only ever sees decoded text and a classified outcome.
package fetcher
