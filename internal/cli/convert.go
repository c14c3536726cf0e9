package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/c4dgml/pkg/errors"
	"github.com/matzehuels/c4dgml/pkg/pipeline"
	"github.com/matzehuels/c4dgml/pkg/render"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		viewsStr   string
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "convert [workspace]",
		Short: "Convert a C4 workspace to DGML",
		Long: `Convert a C4 workspace to DGML.

The workspace document (JSON or YAML) is loaded, its views are projected onto
a DGML directed graph and the graph is written in each requested format:

  dgml   DGML XML for Visual Studio's graph viewer (default)
  json   the same graph as JSON
  dot    Graphviz source
  svg    node-link diagram (Graphviz)
  png    node-link diagram (needs rsvg-convert)
  pdf    node-link diagram (needs rsvg-convert)

Projections and rendered files are cached locally; --no-cache disables the
cache and --refresh recomputes while still updating it.`,
		Example: `  c4dgml convert workspace.json
  c4dgml convert workspace.yaml -f dgml,svg -o out/shop
  c4dgml convert workspace.json --views container,component --default-background White`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyConfig(cmd, cfg, &opts)
			if cmd.Flags().Changed("views") {
				opts.Views = parseList(viewsStr)
			}
			if cmd.Flags().Changed("format") {
				opts.Formats = parseList(formatsStr)
			}
			opts.Path = args[0]
			return c.runConvert(cmd, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dgml (default), json, dot, svg, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addProjectionFlags(cmd, &opts, &viewsStr)
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show category chains in rendered diagrams")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "workspace format: json or yaml (default: from extension)")

	return cmd
}

// addProjectionFlags registers the flags shared by convert and inspect.
func addProjectionFlags(cmd *cobra.Command, opts *pipeline.Options, views *string) {
	cmd.Flags().StringVar(views, "views", "", "view kinds to project: context, container, component (comma-separated, default all)")
	cmd.Flags().IntVar(&opts.MaxLabelLength, "max-label-length", 0, "maximum link label length (default 20)")
	cmd.Flags().StringVar(&opts.DefaultBackground, "default-background", "", "background for every style, e.g. White")
	cmd.Flags().StringVar(&opts.ShapesURI, "shapes-uri", "", "base URI of shape icons")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent style resolution workers")
}

// runConvert executes the pipeline and writes the artifacts.
func (c *CLI) runConvert(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if err := checkConverter(opts.Formats); err != nil {
		return err
	}
	if output == "-" && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(opts.Formats))
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := c.execute(ctx, cmd, runner, opts, fmt.Sprintf("Converting %s...", opts.Path))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output == "-" {
		_, err := out.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Path,
		output:    output,
	})
	if err != nil {
		return err
	}

	printSuccess(out, "Converted %s", opts.Path)
	printStats(out, result.Stats.Nodes, result.Stats.Links, result.Stats.Styles, result.CacheInfo.ProjectHit)
	for _, p := range paths {
		printFile(out, p)
	}
	printNextStep(out, "Inspect the projection", appName+" inspect "+opts.Path)
	return nil
}

// execute runs the pipeline behind a spinner.
func (c *CLI) execute(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner, opts pipeline.Options, message string) (*pipeline.Result, error) {
	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), message)
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Conversion failed")
		return nil, err
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Projected %d nodes", result.Stats.Nodes))
	return result, nil
}

// checkConverter fails early when a format needs rsvg-convert and it is not
// installed.
func checkConverter(formats []string) error {
	if !slices.Contains(formats, pipeline.FormatPNG) && !slices.Contains(formats, pipeline.FormatPDF) {
		return nil
	}
	if !render.Available() {
		return errors.New(errors.ErrCodeUnsupported, "png and pdf output need %s on PATH", render.ConverterBinary)
	}
	return nil
}
