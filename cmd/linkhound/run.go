package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/linkhound/linkhound/internal/config"
	"github.com/linkhound/linkhound/internal/crawler"
	"github.com/linkhound/linkhound/internal/database"
	"github.com/linkhound/linkhound/internal/log"
	"github.com/linkhound/linkhound/internal/model"
	"github.com/linkhound/linkhound/internal/report"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <startUrl> [maxThreads] [crawlLimit]",
		Short: "Crawl a website and list every same-domain HTML page",
		Long: `Run crawls a website starting from the seed URL and prints the sorted
set of same-domain HTML pages it found.

The optional positional arguments mirror the crawler's two knobs:
maxThreads is the worker pool size (default 10) and crawlLimit caps
how many fetches are dispatched (default unbounded). Invalid values
fall back to their defaults with a warning; only a malformed seed URL
aborts the run.

Examples:
  # Crawl with the defaults
  linkhound run https://example.com

  # Crawl with 20 workers, at most 500 fetches
  linkhound run https://example.com 20 500

  # Output a JSON report and save the run to history
  linkhound run --json --save https://example.com

  # Use a custom configuration file
  linkhound run -c myconfig.yaml https://example.com

Configuration file (.linkhound) example:
  workers: 20
  userAgent: "my-crawler/1.0"
  skipExtensions:
    - pdf
    - zip`,
		Args: cobra.RangeArgs(1, 3),
		RunE: runRunCmd,
	}

	// Crawl behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Connection timeout for each request")
	cmd.Flags().IntP("max-collected", "p", config.DefaultMaxCollected,
		"Hard cap on the number of collected links")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .linkhound in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().BoolP("save", "s", false,
		"Save the finished run to the crawl history database")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrInvalidSeedURL) || errors.Is(err, config.ErrNoSeedURL) {
			return fmt.Errorf("the provided URL is invalid: %s", cfg.SeedURL)
		}
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.New(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// An interrupt stops the completion wait; in-flight work still
	// drains before the report is printed.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, finishing up...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the
// positional arguments.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.SeedURL = args[0]

	// Bad optional numeric arguments are recoverable: warn and fall
	// back to the default rather than aborting the run.
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
			cfg.Workers = n
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Invalid thread number provided. Defaulting to %d threads.\n", config.DefaultWorkers)
		}
	}
	if len(args) > 2 {
		if n, err := strconv.Atoi(args[2]); err == nil && n > 0 {
			cfg.CrawlLimit = n
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "Invalid crawl limit provided. Continuing with no limit default.")
		}
	}

	var err error

	cfg.FetchTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.MaxCollected, err = cmd.Flags().GetInt("max-collected")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, a missing file is not an error.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.SaveRun, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runCrawl executes the crawl and emits the report.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	orch, err := crawler.New(cfg, crawler.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to set up crawler: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Crawling %s with %d threads ...\n", cfg.SeedURL, cfg.Workers)
	logger.Debug("starting crawl",
		"seed", cfg.SeedURL,
		"workers", cfg.Workers,
		"crawlLimit", cfg.CrawlLimit,
	)

	result := orch.Run(ctx)

	if err := writeReport(cfg, result); err != nil {
		return err
	}

	if cfg.SaveRun {
		if err := saveRun(ctx, cfg, result, logger); err != nil {
			return err
		}
	}
	return nil
}

// writeReport renders the result in the configured format to stdout or
// the --output file.
func writeReport(cfg *config.Config, result *model.CrawlResult) error {
	dest := os.Stdout
	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.Create(cfg.ReportFile)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer func() { _ = f.Close() }()
		dest = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(dest, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(dest)
	default:
		w = report.NewSimpleWriter(dest, report.WithVerbose(cfg.Verbose))
	}

	if _, err := w.Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if cfg.ReportFile != "" {
		fmt.Fprintf(os.Stdout, "Report written to %s\n", cfg.ReportFile)
	}
	return nil
}

// saveRun persists the finished result to the history database.
func saveRun(ctx context.Context, cfg *config.Config, result *model.CrawlResult, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer func() { _ = db.Close() }()

	runID, err := db.SaveRun(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	logger.Info("run saved to history", "id", runID, "db", db.Path())
	return nil
}
