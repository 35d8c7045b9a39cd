// Package config loads the stickerbot configuration from defaults, an optional
// YAML file, a .env file and STICKERBOT_* environment variables.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration wraps every load or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration.
type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
}

// TelegramConfig configures the Bot API client.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
	// Mode selects how updates arrive: "webhook" (HTTP server) or "polling".
	Mode       string `mapstructure:"mode"        validate:"oneof=webhook polling"`
	WebhookURL string `mapstructure:"webhook_url" validate:"required_if=Mode webhook"`
	// Reply threads sticker answers under the triggering message.
	Reply            bool     `mapstructure:"reply"`
	StandardStickers []string `mapstructure:"standard_stickers"`
	DefaultLanguage  string   `mapstructure:"default_language"  validate:"oneof=english russian"`
	RegisterCommands bool     `mapstructure:"register_commands"`
}

// HTTPConfig configures the webhook and probe server.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"             validate:"required"`
	WebhookPath     string        `mapstructure:"webhook_path"     validate:"required,startswith=/"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"min=1s"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"min=1s"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=1s"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LoggerConfig configures slog output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// SchedulerConfig lists scheduled tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures one scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// EngineConfig tunes the reply engine.
type EngineConfig struct {
	StaleAfter         time.Duration `mapstructure:"stale_after"          validate:"min=0"`
	ChanceMin          int           `mapstructure:"chance_min"           validate:"min=0,max=100"`
	ChanceMax          int           `mapstructure:"chance_max"           validate:"min=0,max=100,gtefield=ChanceMin"`
	LocalPoolThreshold int           `mapstructure:"local_pool_threshold" validate:"min=0"`
}

// SentryConfig configures error reporting. An empty DSN disables it.
type SentryConfig struct {
	DSN         string  `mapstructure:"dsn"         validate:"omitempty,url"`
	Environment string  `mapstructure:"environment"`
	Release     string  `mapstructure:"release"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"min=0,max=1"`
	Debug       bool    `mapstructure:"debug"`
}
