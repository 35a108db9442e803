// Package main provides the entry point for the linkhound CLI.
//
// Linkhound is a concurrent same-domain web crawler. Starting from a
// seed URL it enumerates every reachable HTML page on that domain and
// prints the sorted collection when the crawl completes.
//
// Usage:
//
//	linkhound run <startUrl> [maxThreads] [crawlLimit]
//	linkhound history
//
// See --help for all available options.
package main

// main is the entry point for linkhound.
func main() {
	Execute()
}
