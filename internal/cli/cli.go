// Package cli implements the c4dgml command-line interface.
//
// # Commands
//
//   - convert: project a workspace into DGML and other formats
//   - inspect: show the projected nodes and their resolved styles
//   - serve: run the HTTP API
//   - cache: manage the local projection cache
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Every command reads the TOML config found by [config.Find]; command-line
// flags override the file. See the config package for the lookup order.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context and handed to the pipeline runner.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/c4dgml/pkg/buildinfo"
	"github.com/matzehuels/c4dgml/pkg/cache"
	"github.com/matzehuels/c4dgml/pkg/config"
	"github.com/matzehuels/c4dgml/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "c4dgml"
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
	cfg        *config.Config
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
		Use:          appName,
		Short:        "c4dgml converts C4 architecture workspaces to DGML graphs",
		Long:         `c4dgml projects the views of a C4 architecture workspace onto a DGML directed graph, resolving element styles into conditional DGML styles. The result opens in Visual Studio's graph viewer or renders to SVG, PNG and PDF through Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $"+config.EnvPath+", ./"+config.LocalFile+", ~/.config/"+appName+"/config.toml)")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configuration once per CLI instance.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	ch, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}

	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
	}
	return pipeline.NewRunner(cache.WithTTL(ch, cfg.Cache.TTL), keyer, c.Logger), nil
}

// newCache opens the configured cache backend.
func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/c4dgml/).
func cacheDir(cfg config.CacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
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

// applyConfig fills pipeline options from the config file. Flags set on the
// command line keep their values.
func applyConfig(cmd *cobra.Command, cfg *config.Config, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if !changed("views") {
		opts.Views = cfg.Projection.Views
	}
	if !changed("max-label-length") {
		opts.MaxLabelLength = cfg.Projection.MaxLabelLength
	}
	if !changed("default-background") {
		opts.DefaultBackground = cfg.Projection.DefaultBackground
	}
	if !changed("shapes-uri") {
		opts.ShapesURI = cfg.Projection.ShapesURI
	}
	if !changed("workers") {
		opts.Workers = cfg.Projection.Workers
	}
	if !changed("format") {
		opts.Formats = cfg.Render.Formats
	}
	if !changed("detailed") {
		opts.Detailed = cfg.Render.Detailed
	}
}

// parseList parses a comma-separated flag value into a slice.
func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
