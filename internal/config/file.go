package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Durations are written as strings such as
// "3s" so viper reads them back unchanged.
type fileConfig struct {
	Capture struct {
		Cooldown        string `yaml:"cooldown"`
		Timeout         string `yaml:"timeout"`
		TimestampLayout string `yaml:"timestamp_layout"`
		MaxDepth        int    `yaml:"max_depth"`
		MaxNodes        int    `yaml:"max_nodes"`
	} `yaml:"capture"`
	Database struct {
		Path      string `yaml:"path"`
		QueueSize int    `yaml:"queue_size"`
	} `yaml:"database"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// YAML renders c in the config file format.
func (c Config) YAML() ([]byte, error) {
	var f fileConfig
	f.Capture.Cooldown = c.Capture.Cooldown.String()
	f.Capture.Timeout = c.Capture.Timeout.String()
	f.Capture.TimestampLayout = c.Capture.TimestampLayout
	f.Capture.MaxDepth = c.Capture.MaxDepth
	f.Capture.MaxNodes = c.Capture.MaxNodes
	f.Database.Path = c.Database.Path
	f.Database.QueueSize = c.Database.QueueSize
	f.Logging.Level = c.Logging.Level
	f.Logging.Format = c.Logging.Format

	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// WriteFile writes c to path, creating parent directories. An existing file
// is only replaced when overwrite is set.
func (c Config) WriteFile(path string, overwrite bool) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
