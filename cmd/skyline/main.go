package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/internal/cli"
	skyerr "github.com/matzehuels/skyline/pkg/errors"
)

// Exit codes. Bad configs, specs and flags exit with exitUsage so scripts
// can tell them apart from failures while laying out or writing output.
const (
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log cache lookups and layout timings")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
	}

	return root.ExecuteContext(ctx)
}

func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	switch skyerr.GetCode(err) {
	case skyerr.ErrCodeInvalidInput, skyerr.ErrCodeInvalidConfig, skyerr.ErrCodeInvalidVariant,
		skyerr.ErrCodeInvalidFormat, skyerr.ErrCodeInvalidExtent, skyerr.ErrCodeInvalidSeed,
		skyerr.ErrCodeInvalidPath, skyerr.ErrCodeFileNotFound:
		return exitUsage
	default:
		return exitFailure
	}
}
