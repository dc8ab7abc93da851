// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/traypos/internal/positioner"
)

// Default configuration values.
const (
	DefaultProvider        = ProviderGDK
	DefaultCursorCommand   = "xdotool getmouselocation --shell"
	DefaultWindowWidth     = 360
	DefaultWindowHeight    = 480
	DefaultBusName         = "io.github.jmylchreest.traypos"
	DefaultObjectPath      = "/io/github/jmylchreest/traypos"
	DefaultReloadDebounce  = 250 * time.Millisecond
	DefaultLayoutFileName  = "displays.yaml"
	DefaultStyleFileName   = "style.css"
	DefaultConfigFileName  = "config.toml"
	applicationDirectoryID = "traypos"
)

// Display provider names.
const (
	ProviderGDK    = "gdk"
	ProviderStatic = "static"
)

// ValidProviders returns all valid display provider names.
func ValidProviders() []string {
	return []string{ProviderGDK, ProviderStatic}
}

// Config represents the traypos configuration.
type Config struct {
	Positioner PositionerConfig `toml:"positioner"`
	Display    DisplayConfig    `toml:"display"`
	Window     WindowConfig     `toml:"window"`
	Service    ServiceConfig    `toml:"service"`
}

// PositionerConfig holds default placement options.
type PositionerConfig struct {
	Platform string `toml:"platform"` // Empty = runtime platform
	AlignX   string `toml:"align_x"`  // left, center, right (empty = center)
	AlignY   string `toml:"align_y"`  // up, middle, down (empty = down)
}

// DisplayConfig selects where display geometry comes from.
type DisplayConfig struct {
	Provider      string        `toml:"provider"`       // gdk, static
	LayoutFile    string        `toml:"layout_file"`    // YAML display layout for the static provider
	CursorCommand string        `toml:"cursor_command"` // Prints X=/Y= lines
	Taskbar       TaskbarConfig `toml:"taskbar"`
}

// TaskbarConfig describes the panel the GDK provider subtracts from each
// monitor to derive its work area. GTK4 has no portable work area query.
type TaskbarConfig struct {
	Edge string `toml:"edge"` // top, left, bottom, right (empty = none)
	Size int    `toml:"size"` // Thickness in pixels
}

// WindowConfig holds the default popup size and look.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Style  string `toml:"style"` // GTK CSS file for traypos show
}

// ServiceConfig holds D-Bus service settings.
type ServiceConfig struct {
	BusName        string   `toml:"bus_name"`
	ObjectPath     string   `toml:"object_path"`
	ReloadDebounce Duration `toml:"reload_debounce"` // e.g. "250ms"
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Positioner: PositionerConfig{
			Platform: "",
			AlignX:   "",
			AlignY:   "",
		},
		Display: DisplayConfig{
			Provider:      DefaultProvider,
			LayoutFile:    "", // Resolved by LayoutPath
			CursorCommand: DefaultCursorCommand,
		},
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Service: ServiceConfig{
			BusName:        DefaultBusName,
			ObjectPath:     DefaultObjectPath,
			ReloadDebounce: Duration(DefaultReloadDebounce),
		},
	}
}

// configDir returns the traypos config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func configDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, applicationDirectoryID)
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(configDir(), DefaultConfigFileName)
}

// LayoutPath returns the display layout file used by the static provider.
func (c *Config) LayoutPath() string {
	if c.Display.LayoutFile != "" {
		return expandPath(c.Display.LayoutFile)
	}
	return filepath.Join(configDir(), DefaultLayoutFileName)
}

// StylePath returns the CSS file that styles the popup of traypos show.
func (c *Config) StylePath() string {
	if c.Window.Style != "" {
		return expandPath(c.Window.Style)
	}
	return filepath.Join(configDir(), DefaultStyleFileName)
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := positioner.ParseXAlign(c.Positioner.AlignX); err != nil {
		return err
	}
	if _, err := positioner.ParseYAlign(c.Positioner.AlignY); err != nil {
		return err
	}

	validProvider := false
	for _, p := range ValidProviders() {
		if c.Display.Provider == p {
			validProvider = true
			break
		}
	}
	if !validProvider {
		return fmt.Errorf("invalid provider %q, must be one of: %v", c.Display.Provider, ValidProviders())
	}

	if c.Display.Taskbar.Edge != "" {
		if _, err := positioner.ParseTaskbarPosition(c.Display.Taskbar.Edge); err != nil {
			return err
		}
	}
	if c.Display.Taskbar.Size < 0 {
		return fmt.Errorf("taskbar size must not be negative, got %d", c.Display.Taskbar.Size)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Service.BusName == "" || !strings.HasPrefix(c.Service.ObjectPath, "/") {
		return fmt.Errorf("service needs a bus name and an absolute object path")
	}

	return nil
}

// Alignment returns the configured default alignment.
// Validate must have succeeded for the values to be meaningful.
func (c *Config) Alignment() *positioner.Alignment {
	return &positioner.Alignment{
		X: positioner.XAlign(c.Positioner.AlignX),
		Y: positioner.YAlign(c.Positioner.AlignY),
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
