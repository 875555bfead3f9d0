// Package config provides configuration loading for the study assistant.
package config

import (
	"fmt"
	"time"
)

// Config is the immutable top-level configuration, passed by value into each
// service constructor.
type Config struct {
	Canvas        CanvasConfig       `koanf:"canvas"`
	Gemini        GeminiConfig       `koanf:"gemini"`
	Firestore     FirestoreConfig    `koanf:"firestore"`
	Import        ImportConfig       `koanf:"import"`
	Sync          SyncConfig         `koanf:"sync"`
	Notifications NotificationConfig `koanf:"notifications"`
	Storage       StorageConfig      `koanf:"storage"`
	Logging       LoggingConfig      `koanf:"logging"`
}

// CanvasConfig configures the roster client.
type CanvasConfig struct {
	// BaseURL overrides the hosted Canvas API root.
	BaseURL string `koanf:"base_url"`

	// Token is the bearer credential for roster access.
	Token Secret `koanf:"token"`

	// Timeout bounds each roster request.
	Timeout Duration `koanf:"timeout"`
}

// GeminiConfig configures the AI analysis client.
type GeminiConfig struct {
	APIKey  Secret   `koanf:"api_key"`
	Model   string   `koanf:"model"`
	BaseURL string   `koanf:"base_url"`
	Timeout Duration `koanf:"timeout"`
}

// FirestoreConfig configures the remote backup store.
type FirestoreConfig struct {
	ProjectID string   `koanf:"project_id"`
	APIKey    Secret   `koanf:"api_key"`
	BaseURL   string   `koanf:"base_url"`
	Timeout   Duration `koanf:"timeout"`
}

// ImportConfig configures course imports.
type ImportConfig struct {
	// Parallelism caps concurrent assignment fetches.
	Parallelism int `koanf:"parallelism"`
}

// SyncConfig configures backup pushes.
type SyncConfig struct {
	// Parallelism caps concurrent task writes.
	Parallelism int `koanf:"parallelism"`
}

// NotificationConfig configures the delivery scheduler.
type NotificationConfig struct {
	// Interval is how often the scheduler scans for due notifications.
	Interval Duration `koanf:"interval"`
}

// StorageConfig configures local persistence.
type StorageConfig struct {
	// Dir is the directory holding the persisted collection blobs.
	Dir string `koanf:"dir"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{
			Timeout: Duration(30 * time.Second),
		},
		Gemini: GeminiConfig{
			Model:   "gemini-pro",
			Timeout: Duration(60 * time.Second),
		},
		Firestore: FirestoreConfig{
			Timeout: Duration(30 * time.Second),
		},
		Import: ImportConfig{
			Parallelism: 4,
		},
		Sync: SyncConfig{
			Parallelism: 4,
		},
		Notifications: NotificationConfig{
			Interval: Duration(5 * time.Minute),
		},
		Storage: StorageConfig{
			Dir: "data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks invariants that would otherwise surface as runtime faults.
func (c Config) Validate() error {
	if c.Import.Parallelism <= 0 {
		return fmt.Errorf("import.parallelism must be positive, got %d", c.Import.Parallelism)
	}
	if c.Sync.Parallelism <= 0 {
		return fmt.Errorf("sync.parallelism must be positive, got %d", c.Sync.Parallelism)
	}
	if c.Notifications.Interval.Duration() <= 0 {
		return fmt.Errorf("notifications.interval must be positive, got %s", c.Notifications.Interval.Duration())
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir must not be empty")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
