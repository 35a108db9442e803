package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/linkhound/linkhound/internal/config"
	"github.com/linkhound/linkhound/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [runID]",
		Short: "List saved crawl runs",
		Long: `History lists crawl runs previously saved with "run --save".

Without arguments it prints a summary table of recent runs. With a run
ID it prints that run's collected links, one per line, in sorted order.

Examples:
  # List the 20 most recent runs
  linkhound history

  # List all runs
  linkhound history -n 0

  # Show the links collected by run 3
  linkhound history 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory holding the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	// Read-only: a missing database just means nothing was saved yet.
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false})
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No crawl history found.")
		return nil
	}
	defer func() { _ = db.Close() }()

	if len(args) == 1 {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID: %s", args[0])
		}
		return printRunLinks(cmd, db, runID)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	return printRuns(cmd, db, limit)
}

// printRuns writes the run summary table.
func printRuns(cmd *cobra.Command, db *database.CrawlDB, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No crawl history found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEED\tLINKS\tVISITED\tSUBMITTED\tELAPSED\tSTARTED")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.SeedURL,
			run.Collected,
			run.Visited,
			run.Submitted,
			run.Elapsed.Round(time.Millisecond),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

// printRunLinks writes one run's collected links.
func printRunLinks(cmd *cobra.Command, db *database.CrawlDB, runID int64) error {
	links, err := db.RunLinks(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", runID, err)
	}
	if len(links) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No links recorded for run %d.\n", runID)
		return nil
	}
	for _, link := range links {
		fmt.Fprintln(cmd.OutOrStdout(), link)
	}
	return nil
}
