// Package main provides the CLI entrypoint for traypos.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/traypos/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		provider   string
		layoutFile string
		platform   string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "traypos",
	Short: "Place popup windows next to tray icons",
	Long: `traypos computes where a borderless popup should appear so that it sits
next to a tray icon, on the taskbar side of the screen, without leaving the
display.

Display geometry comes from GDK (the default) or from a static YAML layout,
which is useful for scripting and for trying out arrangements you do not have.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/traypos/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.provider, "provider", "",
		"Display provider (gdk, static; overrides config)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.layoutFile, "layout", "",
		"Display layout file for the static provider (implies --provider static)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.platform, "platform", "",
		"Platform to position for (e.g. linux, windows, darwin; default: this system)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	c, err := config.LoadConfig(globalOpts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyOverrides(c); err != nil {
		return nil, err
	}
	return c, nil
}

// applyOverrides applies global flags on top of a loaded config.
// It is also used after a hot reload so flags keep winning.
func applyOverrides(c *config.Config) error {
	if globalOpts.layoutFile != "" {
		c.Display.LayoutFile = globalOpts.layoutFile
		c.Display.Provider = config.ProviderStatic
	}
	if globalOpts.provider != "" {
		c.Display.Provider = globalOpts.provider
	}
	if globalOpts.platform != "" {
		c.Positioner.Platform = globalOpts.platform
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}
