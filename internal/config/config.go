package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Built-in defaults.
const (
	DefaultProjectPath   = "ios"
	DefaultSimulator     = "iPhone 6"
	DefaultConfiguration = "Debug"
)

// Environment variables that override config file values.
const (
	EnvSimulator   = "RUNIOS_SIMULATOR"
	EnvProjectPath = "RUNIOS_PROJECT_PATH"
)

// ThemeConfig holds UI theme configuration
type ThemeConfig struct {
	Name    string `toml:"name" json:"name,omitempty"` // preset name: "default", "dracula", "nord", "gruvbox", "catppuccin", "none"
	Mode    string `toml:"mode" json:"mode,omitempty"` // "auto", "light" or "dark"
	Primary string `toml:"primary" json:"primary,omitempty"`
	Accent  string `toml:"accent" json:"accent,omitempty"`
	Success string `toml:"success" json:"success,omitempty"`
	Error   string `toml:"error" json:"error,omitempty"`
	Muted   string `toml:"muted" json:"muted,omitempty"`
	Warning string `toml:"warning" json:"warning,omitempty"`
}

// Config holds the runios configuration
type Config struct {
	ProjectPath   string      `toml:"project_path" json:"project_path"`
	Simulator     string      `toml:"simulator" json:"simulator"`
	Configuration string      `toml:"configuration" json:"configuration"`
	Scheme        string      `toml:"scheme" json:"scheme,omitempty"` // empty: inferred from the project file
	Packager      bool        `toml:"packager" json:"packager"`
	Theme         ThemeConfig `toml:"theme" json:"theme"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		ProjectPath:   DefaultProjectPath,
		Simulator:     DefaultSimulator,
		Configuration: DefaultConfiguration,
		Packager:      true,
	}
}

// Path returns the path to the global config file
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "runios", "config.toml"), nil
}

// Load reads config from ~/.config/runios/config.toml and applies
// environment overrides.
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default().WithEnv(), nil
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.WithEnv(), nil
		}
		return Default().WithEnv(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Decoding onto the defaults keeps keys the file leaves out.
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default().WithEnv(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Default().WithEnv(), fmt.Errorf("%s: %w", path, err)
	}

	// Empty strings in the file mean "use the default"
	if cfg.ProjectPath == "" {
		cfg.ProjectPath = DefaultProjectPath
	}
	if cfg.Simulator == "" {
		cfg.Simulator = DefaultSimulator
	}
	if cfg.Configuration == "" {
		cfg.Configuration = DefaultConfiguration
	}

	return cfg.WithEnv(), nil
}

// WithEnv returns c with RUNIOS_* environment variables applied.
func (c Config) WithEnv() Config {
	if v := os.Getenv(EnvSimulator); v != "" {
		c.Simulator = v
	}
	if v := os.Getenv(EnvProjectPath); v != "" {
		c.ProjectPath = v
	}
	return c
}

const defaultConfig = `# runios configuration

# Directory containing the Xcode project, relative to where runios runs
# project_path = "ios"

# Simulator used when neither --device nor --udid is given
# simulator = "iPhone 6"

# Build configuration passed to xcodebuild
# configuration = "Debug"

# Scheme to build. Empty means the project file name without extension.
# scheme = ""

# Let the build start the JS packager. --no-packager turns it off per run.
# packager = true

# Environment overrides (take precedence over this file):
#   RUNIOS_SIMULATOR     - simulator name
#   RUNIOS_PROJECT_PATH  - project directory

# Per-project overrides live in .runios.toml next to package.json
# (see "runios config init --local").

# UI colors
# [theme]
# name = "default"  # default, dracula, nord, gruvbox, catppuccin, none
# mode = "auto"     # auto, light, dark
# accent = "#ff79c6"
`

// DefaultConfig returns the default global configuration template content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at path.
// If force is true, overwrites existing file
func Init(path string, force bool) error {
	return writeTemplate(path, defaultConfig, force)
}

func writeTemplate(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
