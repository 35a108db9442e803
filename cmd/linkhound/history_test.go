package main

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/linkhound/linkhound/internal/database"
	"github.com/linkhound/linkhound/internal/model"
)

func seedHistory(t *testing.T, dir string) int64 {
	t.Helper()

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	result := model.NewCrawlResult("http://example.com", "example.com",
		[]string{"http://example.com", "http://example.com/a"})
	result.Workers = 4
	result.Visited = 3
	result.Submitted = 3
	result.StartedAt = time.Now().UTC()
	result.Elapsed = time.Second

	runID, err := db.SaveRun(context.Background(), result)
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	return runID
}

// TestRunHistoryCmd tests the history command against a real database.
func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("missing database reports no history", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&out)
		if err := cmd.Flags().Set("db-dir", t.TempDir()); err != nil {
			t.Fatal(err)
		}

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(out.String(), "No crawl history found.") {
			t.Errorf("unexpected output: %q", out.String())
		}
	})

	t.Run("lists saved runs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir)

		var out bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&out)
		if err := cmd.Flags().Set("db-dir", dir); err != nil {
			t.Fatal(err)
		}

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		got := out.String()
		if !strings.Contains(got, "http://example.com") {
			t.Errorf("run summary missing from output: %q", got)
		}
		if !strings.Contains(got, "SEED") {
			t.Errorf("table header missing from output: %q", got)
		}
	})

	t.Run("prints the links of a single run", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		runID := seedHistory(t, dir)

		var out bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{strconv.FormatInt(runID, 10)})
		if err := cmd.Flags().Set("db-dir", dir); err != nil {
			t.Fatal(err)
		}

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		got := out.String()
		if !strings.Contains(got, "http://example.com/a") {
			t.Errorf("run links missing from output: %q", got)
		}
	})

	t.Run("rejects a non-numeric run ID", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir)

		cmd := NewHistoryCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"abc"})
		if err := cmd.Flags().Set("db-dir", dir); err != nil {
			t.Fatal(err)
		}

		if err := cmd.Execute(); err == nil {
			t.Error("Execute() succeeded with a non-numeric run ID")
		}
	})
}
