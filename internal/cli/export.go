package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/pkg/graph"
	"github.com/matzehuels/assetgraph/pkg/network"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
)

// exportCommand creates the export command, which writes the 3-D
// visualization payload of a portfolio as JSON.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [portfolio]",
		Short: "Export the 3-D visualization payload as JSON",
		Long: `Export loads a portfolio, discovers relationships, lays the graph out in
3-D and writes nodes, edges, directional arrows and metrics as JSON.

The layout is deterministic: the same portfolio, seed and layout options
always produce the same file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.pipelineOptions(cfg, args[0])
			opts.Formats = []string{pipeline.FormatJSON}

			runner, err := c.newRunner(cmd.Context(), cfg, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".viz.json"
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(res.Artifacts[pipeline.FormatJSON])
				return err
			}
			if err := os.WriteFile(output, res.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Exported visualization")
			printStats(res.Stats.AssetCount, res.Stats.RelationshipCount, res.CacheInfo.LayoutHit)
			printFile(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <portfolio>.viz.json, - for stdout)")
	return cmd
}

// pipelineRunnerNoCache returns an uncached runner logging to the options'
// logger.
func pipelineRunnerNoCache(opts pipeline.Options) *pipeline.Runner {
	return pipeline.NewRunner(nil, nil, opts.Logger)
}

// loadAndDiscover loads the portfolio named by validated opts and runs
// discovery unless opts.SkipDiscovery is set.
func loadAndDiscover(cmd *cobra.Command, runner *pipeline.Runner, opts pipeline.Options) (*network.Network, error) {
	nw, err := pipeline.Load(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	if opts.SkipDiscovery {
		return nw, nil
	}
	if _, err := runner.Discover(cmd.Context(), nw); err != nil {
		return nil, err
	}
	return nw, nil
}

// readVisualization loads a previously exported payload.
func readVisualization(path string) (graph.Visualization, error) {
	return graph.ReadVisualizationFile(path)
}
