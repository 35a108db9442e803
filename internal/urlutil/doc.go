// Package urlutil provides URL canonicalization and link filtering for the
// crawler. It decides which discovered links identify crawlable in-domain
// pages and reduces every URL to a single canonical string used as the
// deduplication key.
package urlutil
