// Package cli implements the burst command-line interface.
//
// The commands render radial burst charts from data files:
//   - render: write a chart as SVG, DOT or PNG
//   - serve: host a live chart over HTTP with debounced resizes
//   - watch: draw a chart in the terminal and re-render on file changes
//   - cache: manage the rasterization cache
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so progress can be reported from anywhere.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/burst/pkg/buildinfo"
	"github.com/matzehuels/burst/pkg/cache"
	"github.com/matzehuels/burst/pkg/export"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "burst"

	// defaultWidth is the container width used when none is given.
	defaultWidth = 400

	// artifactTTL is how long rasterized charts stay in the cache.
	artifactTTL = 7 * 24 * time.Hour
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
		Use:          "burst",
		Short:        "Burst draws items as a radial chart",
		Long:         `Burst renders a list of items as nodes on a circle, each joined to the center by a spoke. Charts are rendered to files, served over HTTP, or drawn live in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Exporter Factory
// =============================================================================

// newExporter creates an exporter whose rasterized output is cached on disk
// unless noCache is set.
func (c *CLI) newExporter(noCache bool) (*export.Exporter, error) {
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return export.New(
		export.WithCache(cache.Scoped(cc, buildinfo.CacheScope())),
		export.WithTTL(artifactTTL),
		export.WithLogger(c.Logger),
	), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/burst/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{string(export.FormatSVG)}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
