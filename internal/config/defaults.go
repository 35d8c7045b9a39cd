package config

import "time"

// Default values for configuration
const (
	DefaultTelegramMode  = "webhook"
	DefaultTelegramReply = true
	DefaultLanguage      = "english"

	DefaultHTTPAddr            = ":8080"
	DefaultHTTPWebhookPath     = "/webhook"
	DefaultHTTPReadTimeout     = 10 * time.Second
	DefaultHTTPWriteTimeout    = 30 * time.Second
	DefaultHTTPShutdownTimeout = 10 * time.Second

	DefaultDBPath = "data/stickerbot.db"

	DefaultLogLevel = "info"

	DefaultStaleAfter         = 300 * time.Second
	DefaultChanceMin          = 0
	DefaultChanceMax          = 50
	DefaultLocalPoolThreshold = 25

	DefaultSentrySampleRate = 1.0
)

// Scheduled task names.
const (
	TaskSQLMaintenance = "sql_maintenance"
	TaskCatalogMetrics = "catalog_metrics"
)

var defaults = map[string]any{
	"telegram.token":             "",
	"telegram.mode":              DefaultTelegramMode,
	"telegram.webhook_url":       "",
	"telegram.reply":             DefaultTelegramReply,
	"telegram.standard_stickers": []string{},
	"telegram.default_language":  DefaultLanguage,
	"telegram.register_commands": true,

	"http.addr":             DefaultHTTPAddr,
	"http.webhook_path":     DefaultHTTPWebhookPath,
	"http.read_timeout":     DefaultHTTPReadTimeout,
	"http.write_timeout":    DefaultHTTPWriteTimeout,
	"http.shutdown_timeout": DefaultHTTPShutdownTimeout,

	"database.path": DefaultDBPath,

	"logger.level": DefaultLogLevel,
	"logger.json":  false,

	"scheduler.tasks.sql_maintenance.enabled":  true,
	"scheduler.tasks.sql_maintenance.schedule": "0 0 4 * * *",
	"scheduler.tasks.catalog_metrics.enabled":  true,
	"scheduler.tasks.catalog_metrics.schedule": "0 */5 * * * *",

	"engine.stale_after":          DefaultStaleAfter,
	"engine.chance_min":           DefaultChanceMin,
	"engine.chance_max":           DefaultChanceMax,
	"engine.local_pool_threshold": DefaultLocalPoolThreshold,

	"sentry.dsn":         "",
	"sentry.environment": "",
	"sentry.release":     "",
	"sentry.sample_rate": DefaultSentrySampleRate,
	"sentry.debug":       false,
}
