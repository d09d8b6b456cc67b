package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/artwork/pkg/buildinfo"
	"github.com/matzehuels/artwork/pkg/cache"
	"github.com/matzehuels/artwork/pkg/observability"
	"github.com/matzehuels/artwork/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "artwork"

	// envPrefix prefixes environment overrides, e.g. ARTWORK_CACHE_BACKEND.
	envPrefix = "ARTWORK"
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
	Config *viper.Viper

	verbose    bool
	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: newConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Artwork composes vector shapes into artboards and exports them",
		Long:         `Artwork builds artboards from declarative descriptions of shapes and exports them as SVG, PNG, JPEG, WEBP, PDF or JSON, optionally rendering one variant per config.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(c.configFile); err != nil {
				return err
			}
			if err := setLogFormat(c.Logger, c.Config.GetString(cfgLogFormat)); err != nil {
				return err
			}
			if c.verbose {
				observability.NewLogHooks(c.Logger).Register()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/artwork/config.yaml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.methodsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, newKeyer(), c.Logger), nil
}

// newCache opens the backend named by cache.backend.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch backend := c.Config.GetString(cfgCacheBackend); backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		url := c.Config.GetString(cfgCacheRedisURL)
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		c.Logger.Debug("using redis cache", "url", url)
		return rc, nil
	case "file", "":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be file, redis or none)", backend)
	}
}

// newKeyer scopes cache keys by build version.
func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns $XDG_CACHE_HOME/artwork, or ~/.cache/artwork.
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir returns $XDG_CONFIG_HOME/artwork, or ~/.config/artwork.
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
