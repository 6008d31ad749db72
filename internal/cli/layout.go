package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/pipeline"
)

// layoutCommand creates the command running one layout variant.
func (c *CLI) layoutCommand(variant, short string) *cobra.Command {
	var (
		configPath string
		output     string
		formats    string
		showRows   bool
		cf         cacheFlags
	)
	opts := pipeline.Options{Variant: variant}

	cmd := &cobra.Command{
		Use:   variant,
		Short: short,
		Long: fmt.Sprintf(`%s.

The %[2]s layout reads its configuration from a TOML file (--config); keys not
given keep their defaults. Extents and the seed come from flags. The same seed
and configuration always produce the same layout.

Results are cached locally for faster subsequent runs.`, short, variant),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				f, err := os.Open(configPath)
				if err != nil {
					return fmt.Errorf("open config: %w", err)
				}
				err = opts.DecodeConfig(f)
				f.Close()
				if err != nil {
					return err
				}
			}
			opts.Formats = parseFormats(formats)
			return c.runLayout(cmd.Context(), opts, output, showRows, cf)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML file with the "+variant+" config")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: "+variant+".<format>, - for stdout)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), json, txt (comma-separated)")
	cmd.Flags().BoolVar(&showRows, "rows", false, "print a table of elements per row")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cf.register(cmd)

	cmd.Flags().Uint64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "face width (stack: footprint width)")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "face height (stack: footprint depth)")
	cmd.Flags().Float64Var(&opts.Depth, "depth", pipeline.DefaultDepth, "face depth")
	if variant == pipeline.VariantStack {
		cmd.Flags().Float64Var(&opts.Length, "length", pipeline.DefaultLength, "parent length to stack along")
	}
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("config", completeTOML)

	return cmd
}

// runLayout computes the layout, renders it and writes every artifact.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, showRows bool, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Computing %s layout...", opts.Variant))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(opts.Formats, output, opts.Variant)
	written, err := writeArtifacts(os.Stdout, result.Artifacts, opts.Formats, paths)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if len(written) == 0 {
		return nil
	}

	res := result.Layout
	printSuccess("%s layout complete", opts.Variant)
	for _, p := range written {
		printFile(p)
	}
	counts := []string{fmt.Sprintf("%d elements", len(res.Elements))}
	switch {
	case res.Segments > 0:
		counts = append(counts, fmt.Sprintf("%d segments", res.Segments))
	case res.Rows > 0:
		counts = append(counts, fmt.Sprintf("%d rows", res.Rows))
	}
	printStats(counts, result.CacheInfo.ComputeHit)
	if res.Empty() {
		printWarning("Nothing fits the given extents")
	}
	if showRows && !res.Empty() {
		fmt.Println(rowTable(res))
	}
	printNewline()
	printNextStep("Explore seeds", fmt.Sprintf("%s explore %s --seed %d", appName, opts.Variant, opts.Seed))

	return nil
}
