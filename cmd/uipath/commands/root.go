// Package commands implements the uipath CLI commands.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/leonardcser/uipath-mcp/internal/config"
	"github.com/leonardcser/uipath-mcp/internal/logger"
	"github.com/leonardcser/uipath-mcp/internal/snapshot"
)

// CLI represents the command line interface for uipath.
type CLI struct {
	rootCmd    *cobra.Command
	configPath string
	dbPath     string
	cfg        *config.Config
}

// New creates a new CLI instance.
func New() *CLI {
	c := &CLI{}
	rootCmd := &cobra.Command{
		Use:           "uipath",
		Short:         "Inspect, encode and resolve macOS UI element paths",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadConfig()
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&c.dbPath, "db", "", "Snapshot database (overrides configuration)")

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newParseCmd())
	rootCmd.AddCommand(c.newEncodeCmd())
	rootCmd.AddCommand(c.newDecodeCmd())
	rootCmd.AddCommand(c.newImportCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newMenusCmd())
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.Snapshot.DB = c.dbPath
	}
	if lvl, ok := logger.ParseLevel(cfg.Log.Level); ok {
		logger.SetLevel(lvl)
	}
	if cfg.Log.Path != "" {
		if err := logger.Init(cfg.Log.Path); err != nil {
			return err
		}
	}
	c.cfg = cfg
	return nil
}

// openStore opens the configured snapshot database. The caller closes it.
func (c *CLI) openStore() (*snapshot.Store, error) {
	return snapshot.Open(c.cfg.Snapshot.DB, snapshot.Options{Bucket: c.cfg.Snapshot.Bucket})
}
