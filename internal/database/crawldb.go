package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/linkhound/linkhound/internal/model"
)

// CrawlDB provides SQLite-based storage for crawl run history.
// It manages connection pooling and provides methods for saving and
// listing runs.
//
// Design decision: We use a single database file for all runs rather
// than one file per run. This keeps history queries a plain SELECT and
// makes backup/restore a one-file operation.
type CrawlDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CrawlDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, "linkhound.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection
	// avoids lock contention entirely.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// Path returns the path to the underlying database file.
func (cdb *CrawlDB) Path() string {
	return cdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	-- Runs store one row per completed crawl
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed_url TEXT NOT NULL,
		base_domain TEXT NOT NULL,
		workers INTEGER NOT NULL,
		visited INTEGER NOT NULL,
		submitted INTEGER NOT NULL,
		collected INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		elapsed_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_domain ON runs(base_domain);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Run links store the collected URLs of each run
	CREATE TABLE IF NOT EXISTS run_links (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		PRIMARY KEY (run_id, url)
	);

	CREATE INDEX IF NOT EXISTS idx_run_links_run ON run_links(run_id);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is a stored crawl run summary.
type RunRecord struct {
	ID         int64
	SeedURL    string
	BaseDomain string
	Workers    int
	Visited    int
	Submitted  int64
	Collected  int
	StartedAt  time.Time
	Elapsed    time.Duration
}

// SaveRun persists a finished crawl result and its collected links in
// one transaction. Returns the new run's ID.
func (cdb *CrawlDB) SaveRun(ctx context.Context, result *model.CrawlResult) (int64, error) {
	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (seed_url, base_domain, workers, visited, submitted, collected, started_at, elapsed_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.SeedURL,
		result.BaseDomain,
		result.Workers,
		result.Visited,
		result.Submitted,
		len(result.Links),
		result.StartedAt.UTC().Format(time.RFC3339Nano),
		result.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_links (run_id, url) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare link insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, link := range result.Links {
		if _, err := stmt.ExecContext(ctx, runID, link); err != nil {
			return 0, fmt.Errorf("failed to insert link %q: %w", link, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns run summaries, newest first, up to limit rows.
// A limit of zero or less returns all runs.
func (cdb *CrawlDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
	SELECT id, seed_url, base_domain, workers, visited, submitted, collected, started_at, elapsed_ms
	FROM runs
	ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := cdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []RunRecord
	for rows.Next() {
		var (
			rec       RunRecord
			startedAt string
			elapsedMS int64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.SeedURL,
			&rec.BaseDomain,
			&rec.Workers,
			&rec.Visited,
			&rec.Submitted,
			&rec.Collected,
			&startedAt,
			&elapsedMS,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			rec.StartedAt = ts
		}
		rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RunLinks returns the collected links of a run in sorted order.
func (cdb *CrawlDB) RunLinks(ctx context.Context, runID int64) ([]string, error) {
	rows, err := cdb.db.QueryContext(ctx,
		`SELECT url FROM run_links WHERE run_id = ? ORDER BY url`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run links: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var links []string
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}
