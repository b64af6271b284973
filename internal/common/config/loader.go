// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "deal-pulse/internal/common/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultThinkingDelayMs = 700
	DefaultGreeting        = "👋 Hey! I'm your AI Deal Intelligence assistant.\n" +
		"Try asking me something like:\n" +
		"• \"Show me companies raising in AI infra next quarter\"\n" +
		"• \"Which startups are likely to succeed?\""
)

// Load reads configs/config.yaml, overlays config.<APP_ENVIRONMENT>.yaml and
// applies environment overrides. A missing base file is not an error.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)
	return v
}

// AutomaticEnv only applies to keys viper already knows about, so keys that
// may be absent from the yaml are bound explicitly.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"logging.level", "logging.format",
		"session.thinking_delay_ms", "session.greeting",
		"dataset.source", "dataset.path", "dataset.index", "dataset.cache_enabled", "dataset.cache_ttl_seconds",
		"database.postgres.host", "database.postgres.port", "database.postgres.database",
		"database.postgres.user", "database.postgres.password",
		"database.redis.address", "database.redis.password",
		"database.elasticsearch.url",
		"metrics.enabled", "metrics.address",
	} {
		_ = v.BindEnv(key)
	}
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "deal-pulse"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if cfg.Session.ThinkingDelay == 0 {
		cfg.Session.ThinkingDelay = DefaultThinkingDelayMs
	}
	if cfg.Session.Greeting == "" {
		cfg.Session.Greeting = DefaultGreeting
	}

	if cfg.Dataset.Source == "" {
		cfg.Dataset.Source = SourceBuiltin
	}
	if cfg.Dataset.Index == "" {
		cfg.Dataset.Index = "startups"
	}
	if cfg.Dataset.CacheTTL == 0 {
		cfg.Dataset.CacheTTL = 300
	}
	if cfg.Dataset.Timeout == 0 {
		cfg.Dataset.Timeout = 10000
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 2
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9464"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Session.ThinkingDelay < 0 {
		return apperrors.NewConfigInvalidError("session.thinking_delay_ms must not be negative")
	}

	switch cfg.Dataset.Source {
	case SourceBuiltin:
	case SourceFile:
		if cfg.Dataset.Path == "" {
			return apperrors.NewConfigInvalidError("dataset.path is required for the file source")
		}
	case SourcePostgres:
		if cfg.Database.Postgres.Host == "" {
			return apperrors.NewConfigInvalidError("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return apperrors.NewConfigInvalidError("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return apperrors.NewConfigInvalidError("database.postgres.user is required")
		}
	case SourceElasticsearch:
		if cfg.Database.Elasticsearch.GetURL() == "" {
			return apperrors.NewConfigInvalidError("database.elasticsearch.addresses or url is required")
		}
	default:
		return apperrors.NewConfigInvalidError(fmt.Sprintf("unknown dataset.source %q", cfg.Dataset.Source))
	}

	if cfg.Dataset.CacheEnabled && cfg.Database.Redis.Address == "" {
		return apperrors.NewConfigInvalidError("database.redis.address is required when dataset.cache_enabled is set")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
