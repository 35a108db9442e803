// Package main provides the entry point for the linkhound CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for linkhound.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkhound",
		Short: "Concurrent same-domain web crawler",
		Long: `Linkhound crawls a website starting from a seed URL, following only
links that stay on the seed's domain, and prints the sorted set of
HTML pages it found.

Asset links, external domains, and non-HTML responses are filtered
out; redirects are followed and rate-limited requests are retried.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
