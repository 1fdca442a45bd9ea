package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Scheduler SchedulerConfig
	Notifier  NotifierConfig
	Azure     AzureConfig
	Profile   ProfileConfig
	Logging   LoggingConfig

	// ConfigFile is the file the values were read from, empty when none was found
	ConfigFile string `mapstructure:"-"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// StorageConfig selects the key-value backend
type StorageConfig struct {
	Backend       string
	DatabaseURL   string
	EncryptionKey string
}

// SchedulerConfig controls the reminder scheduler
type SchedulerConfig struct {
	Enabled    bool
	ResyncSpec string
}

// NotifierConfig holds notification channel configuration
type NotifierConfig struct {
	Telegram TelegramConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	Token  string
	ChatID int64
}

// Enabled reports whether both a token and a chat are configured
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// AzureConfig holds Azure service configuration
type AzureConfig struct {
	Storage BlobConfig
}

// BlobConfig holds Azure Blob Storage configuration
type BlobConfig struct {
	AccountName     string
	AccountKey      string
	ReportContainer string
	BackupContainer string
}

// Enabled reports whether account credentials are present
func (b BlobConfig) Enabled() bool {
	return b.AccountName != "" && b.AccountKey != ""
}

// ProfileConfig holds profile log behaviour
type ProfileConfig struct {
	ActivitySnapshots bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and an optional fitflow.yaml
func Load() (*Config, error) {
	cfg, _, err := load(viper.New())
	return cfg, err
}

// LoadWithViper is Load but also returns the viper instance so callers can watch the file
func LoadWithViper() (*Config, *viper.Viper, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, *viper.Viper, error) {
	setDefaults(v)

	v.SetConfigName("fitflow")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/fitflow")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, v, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Storage defaults
	v.SetDefault("storage.backend", BackendMemory)

	// Scheduler defaults
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.resyncspec", "@every 15m")

	// Azure Storage defaults
	v.SetDefault("azure.storage.reportcontainer", "fitflow-reports")
	v.SetDefault("azure.storage.backupcontainer", "fitflow-backups")

	v.SetDefault("profile.activitysnapshots", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")

	// Storage
	v.BindEnv("storage.backend", "STORAGE_BACKEND")
	v.BindEnv("storage.databaseurl", "DATABASE_URL")
	v.BindEnv("storage.encryptionkey", "ENCRYPTION_KEY")

	// Scheduler
	v.BindEnv("scheduler.enabled", "SCHEDULER_ENABLED")
	v.BindEnv("scheduler.resyncspec", "SCHEDULER_RESYNC_SPEC")

	// Telegram
	v.BindEnv("notifier.telegram.token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("notifier.telegram.chatid", "TELEGRAM_CHAT_ID")

	// Azure Storage
	v.BindEnv("azure.storage.accountname", "AZURE_STORAGE_ACCOUNT_NAME")
	v.BindEnv("azure.storage.accountkey", "AZURE_STORAGE_ACCOUNT_KEY")
	v.BindEnv("azure.storage.reportcontainer", "AZURE_STORAGE_REPORT_CONTAINER")
	v.BindEnv("azure.storage.backupcontainer", "AZURE_STORAGE_BACKUP_CONTAINER")

	v.BindEnv("profile.activitysnapshots", "PROFILE_ACTIVITY_SNAPSHOTS")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage.databaseurl is required for the postgres backend")
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendMemory, BackendPostgres, c.Storage.Backend)
	}

	if c.Scheduler.Enabled && strings.TrimSpace(c.Scheduler.ResyncSpec) == "" {
		return fmt.Errorf("scheduler.resyncspec is required when the scheduler is enabled")
	}

	if (c.Notifier.Telegram.Token == "") != (c.Notifier.Telegram.ChatID == 0) {
		return fmt.Errorf("telegram requires both a bot token and a chat id")
	}

	if (c.Azure.Storage.AccountName == "") != (c.Azure.Storage.AccountKey == "") {
		return fmt.Errorf("azure storage requires both account name and account key")
	}

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// ParseLevel converts a configured level name into a zap level
func ParseLevel(level string) (zapcore.Level, error) {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid logging.level %q: %w", level, err)
	}
	return l, nil
}

// WatchLogLevel re-reads logging.level whenever the config file changes
// and applies it to the given atomic level. Invalid values are ignored.
func WatchLogLevel(v *viper.Viper, level zap.AtomicLevel, logger *zap.Logger) {
	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		applyLogLevel(v.GetString("logging.level"), level, logger, e.Name)
	})
	v.WatchConfig()

	logger.Info("watching config file", zap.String("file", v.ConfigFileUsed()))
}

func applyLogLevel(name string, level zap.AtomicLevel, logger *zap.Logger, file string) {
	l, err := ParseLevel(name)
	if err != nil {
		logger.Warn("ignoring invalid log level from config file",
			zap.String("file", file),
			zap.Error(err),
		)
		return
	}
	if l == level.Level() {
		return
	}
	level.SetLevel(l)
	logger.Info("log level changed", zap.String("file", file), zap.String("level", l.String()))
}
