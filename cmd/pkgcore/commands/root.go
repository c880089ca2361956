// Package commands implements the CLI commands for pkgcore.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pkgcore/internal/app"
	"go.trai.ch/pkgcore/internal/build"
)

// Loader builds the application components for the config file at configPath.
type Loader func(ctx context.Context, configPath string) (*app.Components, error)

// CLI represents the command line interface for pkgcore.
type CLI struct {
	load       Loader
	components *app.Components
	rootCmd    *cobra.Command
}

// New creates a new CLI instance. Components are built by load on the first
// command that needs them.
func New(load Loader) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pkgcore",
		Short:         "Resolve, fetch and audit npm packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.PersistentFlags().StringP("config", "c", "pkgcore.yaml", "Path to configuration file")

	c := &CLI{
		load:    load,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newAuditCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context and flushes telemetry
// of the components it built.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()
	if c.components != nil {
		if cerr := c.components.App.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// GetConfigPath returns the value of the config flag.
func (c *CLI) GetConfigPath() string {
	config, _ := c.rootCmd.PersistentFlags().GetString("config")
	return config
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func (c *CLI) application(cmd *cobra.Command) (*app.App, error) {
	if c.components != nil {
		return c.components.App, nil
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	components, err := c.load(cmd.Context(), configPath)
	if err != nil {
		return nil, err
	}
	c.components = components
	return components.App, nil
}
