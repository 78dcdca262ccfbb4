package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// metricsCommand creates the metrics command.
func (c *CLI) metricsCommand() *cobra.Command {
	var (
		flags  layoutFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "metrics [portfolio]",
		Short: "Print network metrics of a portfolio",
		Long: `Metrics loads a portfolio, runs discovery (unless --skip-discovery) and
prints asset and relationship counts, per-asset degree, average strength,
relationship type distribution and network density.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.pipelineOptions(cfg, args[0])
			opts.Logger = loggerFromContext(cmd.Context())
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner := pipelineRunnerNoCache(opts)
			nw, err := loadAndDiscover(cmd, runner, opts)
			if err != nil {
				return err
			}
			report, err := nw.CalculateMetrics()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printMetrics(report)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
