// Package cli implements the taggraph command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taggraph/internal/config"
	"github.com/matzehuels/taggraph/pkg/buildinfo"
	"github.com/matzehuels/taggraph/pkg/cache"
	"github.com/matzehuels/taggraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "taggraph"

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

	// ConfigPath is the value of the --config flag.
	ConfigPath string
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
// Invoked without a subcommand, it runs a build with default options.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Taggraph turns a tagged CSV table into a node-link graph",
		Long: `Taggraph reads a table of tagged entries (Name, Tag, Link) and writes a
JSON graph of entry and tag nodes. Slash-delimited tags form a hierarchy:
every entry links to each level of its tag, and child tags link to parents.

Run without a subcommand to convert ./data.csv into ./output_graph.json.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), pipeline.Options{}, false)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $"+config.EnvPath+" or ./"+config.DefaultPath+")")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.tagsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options Helpers
// =============================================================================

// resolveOptions merges the config file into opts and applies pipeline defaults.
// Values already present in opts came from flags and win over the file.
func (c *CLI) resolveOptions(ctx context.Context, opts pipeline.Options) (pipeline.Options, error) {
	logger := loggerFromContext(ctx)

	path := config.Path(c.ConfigPath)
	cfg, err := config.Load(path)
	if err != nil {
		return opts, err
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	cfg.Apply(&opts)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// =============================================================================
// Render Cache
// =============================================================================

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NullCache{}
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NullCache{}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NullCache{}
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/taggraph/).
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
