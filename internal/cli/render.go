package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/pkg/config"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	layoutFlags
	output   string   // output file path (or base path for multiple outputs)
	formats  []string // output formats: "json", "dot", "svg"
	detailed bool     // show class, sector and attributes in node labels
	fromViz  bool     // input is an exported visualization, not a portfolio
}

// renderCommand creates the render command for generating visualizations.
// It supports the JSON payload and node-link diagrams (DOT, SVG).
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a portfolio to JSON, DOT or SVG",
		Long: `Render runs the full pipeline on a portfolio and writes one file per format.

With --from-viz the input is a visualization previously written by export;
discovery and layout are skipped and the stored payload is rendered as is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, args[0], &opts)
		},
	}

	opts.layoutFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show asset details in node labels (dot, svg)")
	cmd.Flags().BoolVar(&opts.fromViz, "from-viz", false, "input is an exported visualization JSON file")

	return cmd
}

// runRender produces every requested format and writes it to disk.
func (c *CLI) runRender(ctx context.Context, cfg config.Config, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.pipelineOptions(cfg, input)
	popts.Formats = opts.formats
	popts.Detailed = opts.detailed

	var artifacts map[string][]byte
	if opts.fromViz {
		v, err := readVisualization(input)
		if err != nil {
			return err
		}
		logger.Infof("Loaded visualization: %d nodes, %d edges", len(v.Nodes), len(v.Edges))
		artifacts, err = runner.Render(ctx, v, popts)
		if err != nil {
			return err
		}
	} else {
		res, err := runner.Execute(ctx, popts)
		if err != nil {
			return err
		}
		printStats(res.Stats.AssetCount, res.Stats.RelationshipCount, res.CacheInfo.RenderHit)
		artifacts = res.Artifacts
	}

	printSuccess("Rendered %s", strings.Join(opts.formats, ", "))
	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .dot, .json), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".viz")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return strings.TrimSuffix(output, ".viz")
}

// outputPath returns the file for one format. A single format with an
// explicit output is written to that exact path.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	base := basePath(output, input)
	if format == pipeline.FormatJSON {
		return base + ".viz.json"
	}
	return base + "." + format
}
