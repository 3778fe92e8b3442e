package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/paysnap/internal/common"
)

// Config holds the runtime settings of the capture core.
type Config struct {
	Capture  CaptureConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// CaptureConfig tunes detection and the confirmation card.
type CaptureConfig struct {
	TimestampLayout string
	Cooldown        time.Duration
	Timeout         time.Duration
	MaxDepth        int
	MaxNodes        int
}

// DatabaseConfig locates the ledger.
type DatabaseConfig struct {
	Path      string
	QueueSize int
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Capture: CaptureConfig{
			Cooldown:        3 * time.Second,
			Timeout:         10 * time.Second,
			MaxDepth:        64,
			MaxNodes:        2048,
			TimestampLayout: "2006-01-02 15:04",
		},
		Database: DatabaseConfig{
			Path:      DefaultDatabasePath(),
			QueueSize: 16,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// SetDefaults registers the built-in values with viper so config files and
// environment variables only need to name what they change.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("capture.cooldown", d.Capture.Cooldown)
	v.SetDefault("capture.timeout", d.Capture.Timeout)
	v.SetDefault("capture.max_depth", d.Capture.MaxDepth)
	v.SetDefault("capture.max_nodes", d.Capture.MaxNodes)
	v.SetDefault("capture.timestamp_layout", d.Capture.TimestampLayout)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.queue_size", d.Database.QueueSize)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Load reads and validates the configuration from viper.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		Capture: CaptureConfig{
			Cooldown:        v.GetDuration("capture.cooldown"),
			Timeout:         v.GetDuration("capture.timeout"),
			MaxDepth:        v.GetInt("capture.max_depth"),
			MaxNodes:        v.GetInt("capture.max_nodes"),
			TimestampLayout: v.GetString("capture.timestamp_layout"),
		},
		Database: DatabaseConfig{
			Path:      ExpandPath(v.GetString("database.path")),
			QueueSize: v.GetInt("database.queue_size"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	switch {
	case c.Capture.Cooldown < 0:
		return fmt.Errorf("%w: capture.cooldown must not be negative", common.ErrInvalidConfig)
	case c.Capture.Timeout <= 0:
		return fmt.Errorf("%w: capture.timeout must be positive", common.ErrInvalidConfig)
	case c.Capture.MaxDepth <= 0:
		return fmt.Errorf("%w: capture.max_depth must be positive", common.ErrInvalidConfig)
	case c.Capture.MaxNodes <= 0:
		return fmt.Errorf("%w: capture.max_nodes must be positive", common.ErrInvalidConfig)
	case c.Capture.TimestampLayout == "":
		return fmt.Errorf("%w: capture.timestamp_layout", common.ErrMissingConfig)
	case c.Database.Path == "":
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	case c.Database.QueueSize <= 0:
		return fmt.Errorf("%w: database.queue_size must be positive", common.ErrInvalidConfig)
	}
	return nil
}
