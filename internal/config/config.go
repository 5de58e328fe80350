package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	AuthToken             string        `mapstructure:"auth_token"`
	EndpointURL           string        `mapstructure:"endpoint_url"`
	GlobalRequestID       string        `mapstructure:"global_request_id"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	TraceEnabled bool   `mapstructure:"trace_enabled"`
	TraceState   string `mapstructure:"trace_state"`

	CacheType            string        `mapstructure:"cache_type"`
	CachePath            string        `mapstructure:"cache_path"`
	CacheTTLSeconds      int64         `mapstructure:"cache_ttl_seconds"`
	CacheCleanupSeconds  int64         `mapstructure:"cache_cleanup_interval_seconds"`
	CacheTTL             time.Duration `mapstructure:"-"`
	CacheCleanupInterval time.Duration `mapstructure:"-"`

	AuditFile string `mapstructure:"audit_file"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "vayudoot-netclient")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	// Empty defaults keep env-only keys visible to Unmarshal.
	v.SetDefault("auth_token", "")
	v.SetDefault("endpoint_url", "")
	v.SetDefault("global_request_id", "")
	v.SetDefault("request_timeout", 30) // seconds
	v.SetDefault("trace_enabled", false)
	v.SetDefault("trace_state", "")
	v.SetDefault("cache_type", "none")
	v.SetDefault("cache_path", "./data/responses.db")
	v.SetDefault("cache_ttl_seconds", int64((5*time.Minute)/time.Second))
	v.SetDefault("cache_cleanup_interval_seconds", int64(time.Hour/time.Second))
	v.SetDefault("audit_file", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.EndpointURL) == "" {
		return nil, fmt.Errorf("endpoint_url is required")
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.CacheTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_ttl_seconds (must be positive seconds)")
	}
	if cfg.CacheCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.CacheTTL = time.Duration(cfg.CacheTTLSeconds) * time.Second
	cfg.CacheCleanupInterval = time.Duration(cfg.CacheCleanupSeconds) * time.Second

	if id := strings.TrimSpace(cfg.GlobalRequestID); id != "" && !strings.HasPrefix(id, "req-") {
		return nil, fmt.Errorf("invalid global_request_id %q (expected req-<uuid>)", id)
	}

	return &cfg, nil
}
