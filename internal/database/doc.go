// Package database provides SQLite-based persistence for crawl run
// history.
//
// Each saved run stores its configuration and summary counters in the
// runs table and the collected links in run_links. Persistence is
// opt-in: the engine itself never touches the database, the CLI saves
// a finished result when asked to.
package database
