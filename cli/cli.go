// Package cli implements the springgraph command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/TFMV/springgraph/config"
	"github.com/TFMV/springgraph/ingest"
	"github.com/TFMV/springgraph/sim"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Version is set via ldflags: -X github.com/TFMV/springgraph/cli.Version=...
var Version = "dev"

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "springgraph",
		Short:        "springgraph lays out graphs with a spring and repulsion simulation",
		Long:         `springgraph reads a graph as an adjacency list (or JSON), moves its nodes with a pairwise force simulation and writes or displays the resulting layout.`,
		Version:      Version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML configuration file")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// loadConfig reads the configuration file named by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	return cfg, nil
}

// simFlags are the simulation flags shared by layout and watch.
type simFlags struct {
	width   float64
	height  float64
	noClamp bool
	strict  bool
	scatter float64
	seed    int64
}

func (f *simFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "viewport height (default from config)")
	cmd.Flags().BoolVar(&f.noClamp, "no-clamp", false, "do not confine nodes to the viewport")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "reject an incomplete trailing link pair")
	cmd.Flags().Float64Var(&f.scatter, "scatter", 0, "separate coincident nodes by up to this distance")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "noise seed for --scatter")
}

// apply overrides cfg with the flags the user actually set.
func (f *simFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Viewport.Width = f.width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = f.height
	}
	if f.noClamp {
		cfg.Viewport.Clamp = false
	}
	if f.strict {
		cfg.Run.Strict = true
	}
	if flags.Changed("scatter") {
		cfg.Run.Scatter = f.scatter
	}
	if flags.Changed("seed") {
		cfg.Run.Seed = f.seed
	}
	return cfg.Validate()
}

// load reads the input graph and prepares it for simulation.
func (c *CLI) load(path string, cfg config.Config) (*ingest.Result, error) {
	res, err := ingest.LoadFile(path, ingest.Options{
		Strict:   cfg.Run.Strict,
		Params:   cfg.Simulation.Params(),
		MaxSpeed: cfg.Simulation.MaxSpeed,
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	c.Logger.Info("loaded graph",
		"file", path,
		"nodes", res.Graph.NodeCount(),
		"links", res.Graph.LinkCount())

	if cfg.Run.Scatter > 0 {
		if n := sim.Scatter(res.Graph, cfg.Run.Scatter, cfg.Run.Seed); n > 0 {
			c.Logger.Debug("scattered coincident nodes", "count", n)
		}
	}
	return res, nil
}

func viewportFor(cfg config.Config) sim.Viewport {
	if !cfg.Viewport.Clamp {
		return sim.Viewport{}
	}
	return sim.Viewport{
		Width:   cfg.Viewport.Width,
		Height:  cfg.Viewport.Height,
		Padding: cfg.Viewport.Padding,
	}
}
