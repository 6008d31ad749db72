package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/pipeline"
)

// buildingCommand creates the command composing a whole building.
func (c *CLI) buildingCommand() *cobra.Command {
	var (
		output  string
		formats string
		side    string
		seed    uint64
		cf      cacheFlags
		opts    pipeline.BuildingOptions
	)

	cmd := &cobra.Command{
		Use:   "building [spec.toml]",
		Short: "Compose a building from stacked segments, panels and windows",
		Long: `Compose a building from stacked segments, panels and windows.

The building spec is a TOML file; keys not given keep their defaults. Without
a spec file the default building is planned. The SVG output is an elevation
drawn from --side; the JSON output holds the plan and its composed mesh.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTOML,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := building.DefaultSpec()
			name := "building"
			if len(args) == 1 {
				var err error
				if spec, err = building.LoadSpecFile(args[0]); err != nil {
					return err
				}
				name = trimExt(args[0])
			}
			if cmd.Flags().Changed("seed") {
				spec.Seed = seed
			}
			view, err := building.ParseSide(side)
			if err != nil {
				return err
			}
			opts.Spec = spec
			opts.View = view
			opts.Formats = parseFormats(formats)
			return c.runBuilding(cmd.Context(), opts, output, name, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <spec>.<format>, - for stdout)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), json, txt (comma-separated)")
	cmd.Flags().StringVar(&side, "side", building.South.String(), "side the elevation is drawn from: north, east, south, west")
	cmd.Flags().Uint64Var(&seed, "seed", building.DefaultSeed, "root seed (overrides the spec file)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cf.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("side", completeSides)

	return cmd
}

// runBuilding plans the building, renders it and writes every artifact.
func (c *CLI) runBuilding(ctx context.Context, opts pipeline.BuildingOptions, output, name string, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinner(ctx, os.Stderr, "Planning building...")
	spinner.Start()

	result, err := runner.Build(ctx, opts)
	if err != nil {
		spinner.StopWithError("Building failed")
		return err
	}
	spinner.Stop()
	prog.done("Planned building")

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(opts.Formats, output, name)
	written, err := writeArtifacts(os.Stdout, result.Artifacts, opts.Formats, paths)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if len(written) == 0 {
		return nil
	}

	stats := result.Stats.Building
	printSuccess("Building complete")
	for _, p := range written {
		printFile(p)
	}
	printStats([]string{
		fmt.Sprintf("%d segments", stats.Segments),
		fmt.Sprintf("%d floors", stats.Floors),
	}, result.CacheInfo.ComputeHit)
	printNewline()
	printKeyValue("Seed", strconv.FormatUint(opts.Spec.Seed, 10))
	printKeyValue("Panels", strconv.Itoa(stats.Panels))
	printKeyValue("Windows", strconv.Itoa(stats.Windows))
	printKeyValue("Members", strconv.Itoa(stats.Members))
	printKeyValue("View", opts.View.String())

	return nil
}

// trimExt strips the extension from a file name.
func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
