// Package cli implements the skyline command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/buildinfo"
	"github.com/matzehuels/skyline/pkg/cache"
	"github.com/matzehuels/skyline/pkg/observability"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "skyline"

	// envRedisAddr selects the Redis cache when --redis is not given.
	envRedisAddr = "SKYLINE_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Skyline lays out procedural grids, lattices and stacks",
		Long:         `Skyline is a CLI tool for generating seeded, deterministic layouts of windows, framing lattices and stacked building segments, and for composing them into whole buildings.`,
		Version:      buildinfo.Current().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand(pipeline.VariantGrid, "Lay out openings on a face"))
	root.AddCommand(c.layoutCommand(pipeline.VariantLattice, "Lay out a framing lattice on a face"))
	root.AddCommand(c.layoutCommand(pipeline.VariantStack, "Stack segments along a length"))
	root.AddCommand(c.buildingCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand prints the build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(appName + " " + buildinfo.String())
		},
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backend of a command.
type cacheFlags struct {
	noCache bool
	redis   string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redis, "redis", "", "redis address for a shared cache (env "+envRedisAddr+")")
}

// redisAddr returns the flag value, falling back to the environment.
func (f cacheFlags) redisAddr() string {
	if f.redis != "" {
		return f.redis
	}
	return os.Getenv(envRedisAddr)
}

// newRunner creates a pipeline runner for CLI use. Layout and cache events
// are logged at debug level.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	store, err := newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetLayoutHooks(hooks)
	observability.SetCacheHooks(hooks)
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if addr := f.redisAddr(); addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: addr, Prefix: appName + ":"})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/skyline/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// outputPaths maps each format to the file it is written to. A single format
// goes to output as given; several formats share output's base name.
func outputPaths(formats []string, output, fallback string) map[string]string {
	base := output
	if base == "" {
		base = fallback
	}
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base = strings.TrimSuffix(base, render.Ext(strings.TrimPrefix(filepath.Ext(base), ".")))
	for _, f := range formats {
		paths[f] = base + render.Ext(f)
	}
	return paths
}

// writeArtifacts writes each artifact to its path and returns the paths in
// format order. The path "-" writes to stdout.
func writeArtifacts(w io.Writer, artifacts map[string][]byte, formats []string, paths map[string]string) ([]string, error) {
	var written []string
	for _, f := range formats {
		path := paths[f]
		if path == "-" {
			if _, err := w.Write(artifacts[f]); err != nil {
				return written, err
			}
			continue
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
