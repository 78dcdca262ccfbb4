package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/internal/server"
	"github.com/matzehuels/assetgraph/pkg/network"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags layoutFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve [portfolio]",
		Short: "Serve the asset network over an HTTP JSON API",
		Long: `Serve an asset network over HTTP.

With a portfolio argument the network starts from that file (and runs
discovery unless --skip-discovery is set); otherwise it starts empty and is
populated through POST /api/v1/assets, /events and /relationships.`,
		Example: `  assetgraph serve
  assetgraph serve portfolio.toml --addr :9090
  assetgraph serve portfolio.json --config assetgraph.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			var portfolio string
			if len(args) == 1 {
				portfolio = args[0]
			}
			opts := flags.pipelineOptions(cfg, portfolio)
			opts.Logger = c.Logger

			runner, err := c.newRunner(ctx, cfg, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			lazy := network.NewLazy(func() (*network.Network, error) {
				if portfolio == "" {
					return network.New(network.Options{
						Discovery: cfg.Discovery,
						Layout:    opts.LayoutOptions(),
						Logger:    c.Logger,
					})
				}
				loadOpts := opts
				if err := loadOpts.ValidateForLoad(); err != nil {
					return nil, err
				}
				nw, err := pipeline.Load(ctx, loadOpts)
				if err != nil {
					return nil, err
				}
				if !opts.SkipDiscovery {
					if _, err := runner.Discover(ctx, nw); err != nil {
						return nil, err
					}
				}
				return nw, nil
			})

			// Build eagerly so a bad portfolio fails at startup.
			nw, err := lazy.Get()
			if err != nil {
				return err
			}
			printSuccess("Serving %d assets on %s", nw.Graph().Len(), cfg.Server.Addr)

			srv := server.New(server.Options{
				Config:   cfg.Server,
				Network:  lazy,
				Runner:   runner,
				Pipeline: opts,
				Logger:   c.Logger,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
