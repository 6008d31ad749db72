package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/internal/api"
)

const (
	defaultAddr          = ":8080"
	defaultShutdownGrace = 10 * time.Second
)

// serveCommand creates the command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		cf   cacheFlags
		opts api.Options
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and buildings over HTTP",
		Long: `Serve layouts and buildings over HTTP.

Layouts are cached in the local cache directory, or in Redis when --redis (or
` + envRedisAddr + `) is set so several servers share results. Planned
buildings are kept in memory and addressed by id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, opts, cf)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", api.DefaultTimeout, "per-request timeout")
	cmd.Flags().IntVar(&opts.MaxPlans, "max-plans", api.DefaultMaxPlans, "planned buildings kept in memory")
	cf.register(cmd)

	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, addr string, opts api.Options, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Runner = runner
	opts.Logger = c.Logger
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.New(opts).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	printSuccess("Server stopped")
	return nil
}
