// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds stm32bind configuration
type Config struct {
	BindgenPath     string `yaml:"bindgen_path"`
	LocalIncludeDir string `yaml:"local_include_dir"` // Resolved against the working directory, not the crate
	DefaultTarget   string `yaml:"default_target"`
	Debug           bool   `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		BindgenPath:     getDefaultBindgenPath(),
		LocalIncludeDir: "inc",
		DefaultTarget:   "thumbv8m.main-none-eabihf",
		Debug:           false,
	}
}

// LoadConfig loads configuration from file. Fields left empty in the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "stm32bind", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

func getDefaultBindgenPath() string {
	if path := os.Getenv("STM32BIND_BINDGEN"); path != "" {
		return path
	}
	return "bindgen"
}
