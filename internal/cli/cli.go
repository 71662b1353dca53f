// Package cli implements the panelstitch command-line interface.
//
// This package provides commands for composing panel SVGs into publication
// figures, extracting panels back out of composites, listing publisher
// presets, and serving an HTTP preview endpoint. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - compose: Arrange panel SVGs into a labeled multi-panel figure
//   - extract: Pull a single panel back out of a composed figure
//   - publishers: List the known publisher width presets
//   - serve: Run the HTTP preview server
//   - cache: Manage the panel analysis cache
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/panelstitch/panelstitch/pkg/buildinfo"
	"github.com/panelstitch/panelstitch/pkg/cache"
	"github.com/panelstitch/panelstitch/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "panelstitch"

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
		Use:          "panelstitch",
		Short:        "Panelstitch composes panel SVGs into publication figures",
		Long:         `Panelstitch is a CLI tool for arranging individual plot SVGs into multi-panel publication figures, with grid layout, panel labels, baseline alignment, and publisher width presets.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.composeCommand())
	root.AddCommand(c.alignCommand())
	root.AddCommand(c.frameCommand())
	root.AddCommand(c.extractCommand())
	root.AddCommand(c.publishersCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
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

// cacheDir returns the cache directory using XDG standard (~/.cache/panelstitch/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
