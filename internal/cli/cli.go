// Package cli implements the stressmap command-line interface.
//
// # Commands
//
//   - render: draw a scene to SVG, PNG, PDF or a JSON frame report
//   - palettes: list the built-in colour schemes with terminal swatches
//   - cache: inspect or clear the artifact cache
//   - completion: generate shell completion scripts
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stressmap/pkg/buildinfo"
	"github.com/matzehuels/stressmap/pkg/cache"
	"github.com/matzehuels/stressmap/pkg/errors"
	"github.com/matzehuels/stressmap/pkg/observability"
	"github.com/matzehuels/stressmap/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "stressmap"

	// redisURLEnv names the environment variable read when --redis-url is unset.
	redisURLEnv = "STRESSMAP_REDIS_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
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
		Short:        "Stressmap draws fault-regime stress heatmaps",
		Long:         `Stressmap renders the stress-ratio (R) versus orientation (θ) plane as a coloured heatmap, with annotated points labelled by fault regime.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	hooks := logHooks{}
	observability.SetRenderHooks(hooks)
	observability.SetCacheHooks(hooks)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.palettesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisURL string) (*pipeline.Runner, error) {
	store, keyer, err := c.openCache(ctx, noCache, redisURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// openCache picks the artifact cache: none, redis when a URL is given, or the
// file cache under the user cache directory.
func (c *CLI) openCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, cache.Keyer, error) {
	if noCache {
		return cache.NewNullCache(), nil, nil
	}
	if redisURL == "" {
		redisURL = os.Getenv(redisURLEnv)
	}
	if redisURL != "" {
		if err := errors.ValidateRedisURL(redisURL); err != nil {
			return nil, nil, err
		}
		rc, err := cache.NewRedisCache(redisURL, redisPrefix)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "redis")
		}
		if err := rc.Ping(ctx); err != nil {
			c.Logger.Warn("redis unreachable, caching disabled", "error", err)
			rc.Close()
			return cache.NewNullCache(), nil, nil
		}
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisPrefix), nil
	}

	dir, err := cache.DefaultDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// redisPrefix namespaces stressmap keys on a shared redis server.
const redisPrefix = appName + ":"
