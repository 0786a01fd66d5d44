// Package cli implements the vouch-js command-line interface.
//
// The commands drive the npm extension directly: resolving the dependencies
// of a published package, scanning a project's lockfile, and locating a
// package version on the registry. Results print as styled text, JSON or
// YAML (--format). Settings come from a TOML file (see pkg/config).
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context and handed to the extension.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vouchjs/pkg/buildinfo"
	"github.com/matzehuels/vouchjs/pkg/deps/javascript"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the binary name used in help and version output.
const appName = "vouch-js"

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
	format     string

	// materializer overrides the npm subprocess; nil runs npm.
	materializer javascript.LockfileMaterializer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		format: formatText,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "vouch-js resolves npm package dependencies and registry metadata",
		Long:          `vouch-js inspects the npm ecosystem: it lists the packages a published package pulls in, the dependencies recorded in a project's package-lock.json, and where a package version lives on the registry.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(c.format); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./.vouch-js.toml, then $XDG_CONFIG_HOME/vouch-js/config.toml)")
	root.PersistentFlags().StringVarP(&c.format, "format", "f", formatText, "output format: text, json or yaml")

	root.AddCommand(c.infoCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.metadataCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
