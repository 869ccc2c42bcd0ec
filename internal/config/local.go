package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-project config file, read from the
// directory runios is started in.
const LocalConfigFileName = ".runios.toml"

// LocalConfig holds per-project overrides from .runios.toml.
// Pointer fields and zero-value strings indicate "not set" (inherit from global).
type LocalConfig struct {
	ProjectPath   string `toml:"project_path"`
	Simulator     string `toml:"simulator"`
	Configuration string `toml:"configuration"`
	Scheme        string `toml:"scheme"`
	Packager      *bool  `toml:"packager"`
}

// LoadLocal reads .runios.toml from dir.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse failure.
func LoadLocal(dir string) (*LocalConfig, error) {
	configFile := filepath.Join(dir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}
	return &local, nil
}

const defaultLocalConfig = `# runios local config (per-project overrides)
# Place this file where you run runios, usually next to package.json.
# Settings here override ~/.config/runios/config.toml for this project only.

# project_path = "ios"
# simulator = "iPhone 15"
# configuration = "Debug"
# scheme = "MyApp"
# packager = false
`

// DefaultLocalConfig returns the default local configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}

// InitLocal creates a default .runios.toml in dir and returns its path.
func InitLocal(dir string, force bool) (string, error) {
	path := filepath.Join(dir, LocalConfigFileName)
	return path, writeTemplate(path, defaultLocalConfig, force)
}
