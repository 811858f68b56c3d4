// Package cmd implements the CLI commands for dailybrief using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/dailybrief/core/pipeline"
)

// Exit codes.
const (
	exitError    = 1
	exitDegraded = 2
)

var rootCmd = &cobra.Command{
	Use:   "dailybrief",
	Short: "dailybrief builds a one-page daily dashboard from public data",
	Long: `dailybrief fetches headlines, energy prices, market caps, stock indices
and a weather forecast, and renders them into a single static HTML report.

Usage:
  dailybrief generate [flags]`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, pipeline.ErrDegraded) {
			os.Exit(exitDegraded)
		}
		os.Exit(exitError)
	}
}
