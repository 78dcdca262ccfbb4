package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/pkg/buildinfo"
	"github.com/matzehuels/assetgraph/pkg/cache"
	"github.com/matzehuels/assetgraph/pkg/config"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "assetgraph"

	// configEnv names the environment variable consulted when --config is unset.
	configEnv = "ASSETGRAPH_CONFIG"
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

	configPath string
	config     *config.Config
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
		Use:   appName,
		Short: "assetgraph discovers and visualizes relationships between financial assets",
		Long: `assetgraph builds a relationship graph over a portfolio of equities, bonds,
commodities and currencies, discovers links between them with a fixed rule set,
and exports deterministic 3-D visualizations and graph metrics.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (TOML); defaults to $"+configEnv)

	// Register all subcommands
	root.AddCommand(c.discoverCommand())
	root.AddCommand(c.metricsCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file once per process. The --config flag
// takes precedence over the environment.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.config != nil {
		return *c.config, nil
	}
	path := c.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	c.config = &cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.Cache.TTLDuration()
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.KeyPrefix)
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.TTL = ttl
	return r, nil
}

// newCache opens the configured cache backend. An unreachable Redis falls
// back to no caching rather than failing the command.
func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc := cache.NewRedisCache(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			loggerFromContext(ctx).Warn("redis cache unavailable, caching disabled", "addr", cfg.RedisAddr, "error", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	}

	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/assetgraph/).
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

// layoutFlags are the layout overrides shared by export, render and inspect.
type layoutFlags struct {
	seed          uint64
	iterations    int
	radius        float64
	noCache       bool
	refresh       bool
	skipDiscovery bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "layout random seed (default from config, 42)")
	cmd.Flags().IntVar(&f.iterations, "iterations", 0, "force-directed iterations (default from config, 100)")
	cmd.Flags().Float64Var(&f.radius, "radius", 0, "radius of the bounding sphere (default from config, 10)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the visualization cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().BoolVar(&f.skipDiscovery, "skip-discovery", false, "use only the relationships listed in the portfolio")
}

// pipelineOptions builds pipeline options from config with flag overrides.
func (f *layoutFlags) pipelineOptions(cfg config.Config, portfolio string) pipeline.Options {
	params := cfg.Discovery
	opts := pipeline.Options{
		PortfolioPath: portfolio,
		SkipDiscovery: f.skipDiscovery,
		Seed:          cfg.Layout.Seed,
		Iterations:    cfg.Layout.Iterations,
		Radius:        cfg.Layout.Radius,
		Repulsion:     cfg.Layout.Repulsion,
		Attraction:    cfg.Layout.Attraction,
		Refresh:       f.refresh,
		Discovery:     &params,
	}
	if f.seed != 0 {
		opts.Seed = f.seed
	}
	if f.iterations != 0 {
		opts.Iterations = f.iterations
	}
	if f.radius != 0 {
		opts.Radius = f.radius
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	formats := strings.Split(s, ",")
	for i, f := range formats {
		formats[i] = strings.TrimSpace(f)
	}
	return formats
}

