// Package cli wires configuration, logging and the dashboard components into
// the anacreon command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexusriot/anacreon/internal/api"
	"github.com/nexusriot/anacreon/internal/config"
	"github.com/nexusriot/anacreon/internal/logger"
	"github.com/nexusriot/anacreon/internal/probe"
	"github.com/nexusriot/anacreon/internal/theme"
)

var (
	cfgFile string
	demo    bool
	verbose bool
	cfg     *config.Config
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "anacreon",
	Short: "Small-business dashboard",
	Long: `anacreon shows revenue, orders, stock and expenditures for a small
business, either in the terminal or as SVG charts over HTTP.

Example usage:
  anacreon                       # terminal dashboard
  anacreon --demo                # terminal dashboard with built-in figures
  anacreon serve                 # HTTP chart and settings service
  anacreon render donut -o d.svg # write a chart to a file
  anacreon settings list businesses`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runDashboard,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .anacreon.yaml)")
	rootCmd.PersistentFlags().BoolVar(&demo, "demo", false, "use built-in demo figures instead of the backend")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd, renderCmd, settingsCmd, expenseCmd, versionCmd)
}

func initConfig() error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if demo {
		c.Dashboard.Demo = true
	}
	if verbose {
		c.Logging.Level = "debug"
	}
	cfg = c
	return nil
}

func newLogger(c *config.Config) (*zap.Logger, error) {
	return logger.New(logger.Config{
		Level: c.Logging.Level,
		File:  c.Logging.File,
		JSON:  c.Logging.JSON,
	})
}

func newClient(c *config.Config, log *zap.Logger) *api.Client {
	return api.New(c.API.BaseURL, api.WithTimeout(c.API.Timeout), api.WithLogger(log))
}

func newSampler(c *config.Config, log *zap.Logger) probe.Sampler {
	if c.Dashboard.Demo {
		log.Info("using demo figures")
		return probe.NewDemoSampler()
	}
	return probe.NewAPISampler(newClient(c, log), c.Dashboard.LowStockThreshold, log)
}

func newThemeProvider(c *config.Config, log *zap.Logger) *theme.Provider {
	return theme.NewProvider(theme.FileStorage{Path: c.Theme.File}, log)
}
