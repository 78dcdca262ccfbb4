package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/pkg/discovery"
	assetio "github.com/matzehuels/assetgraph/pkg/io"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
)

// discoverCommand creates the discover command. It loads a portfolio, runs
// the discovery rules, prints per-type counts and optionally writes the
// portfolio back out with the discovered relationships included.
func (c *CLI) discoverCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "discover [portfolio]",
		Short: "Discover relationships between the assets of a portfolio",
		Long: `Discover loads a portfolio file (.json or .toml), evaluates every pair of
assets against the discovery rules and reports the relationships found.

With --output, the portfolio is written back including every relationship,
so later runs can use --skip-discovery.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			params := cfg.Discovery
			opts := pipeline.Options{PortfolioPath: args[0], Discovery: &params, Logger: logger}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			nw, err := pipeline.Load(cmd.Context(), opts)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(nil, nil, logger)

			n := nw.Graph().Len()
			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Loaded %d assets", n))
			spinner.Start()
			spinner.SetMessage(fmt.Sprintf("Evaluating %d pairs...", n*(n-1)/2))
			prog := newProgress(logger)
			res, err := runner.Discover(cmd.Context(), nw)
			if err != nil {
				spinner.StopWithError("Discovery failed")
				return err
			}
			spinner.Stop()
			prog.done(fmt.Sprintf("Discovered %d relationships", res.Added))

			printSuccess("Evaluated %d pairs, %d rules fired", res.Pairs, res.Fired)
			printStats(nw.Graph().Len(), len(nw.Graph().UniqueRelationships()), false)
			printDiscoveryResult(res)

			if output == "" {
				printNextStep("Export the 3-D payload", fmt.Sprintf("%s export %s", appName, args[0]))
				return nil
			}
			if err := assetio.ExportPortfolio(assetio.FromGraph(nw.Graph()), output); err != nil {
				return err
			}
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the portfolio with discovered relationships (.json or .toml)")
	return cmd
}

func printDiscoveryResult(res discovery.Result) {
	if len(res.ByType) == 0 {
		printInfo("No new relationships")
		return
	}
	rows := make([][]string, 0, len(res.ByType))
	for _, t := range slices.Sorted(maps.Keys(res.ByType)) {
		rows = append(rows, []string{string(t), strconv.Itoa(res.ByType[t])})
	}
	fmt.Println(renderTable([]string{"Relationship type", "Added"}, rows))
}
