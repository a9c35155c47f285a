package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*ServerConfig, error) {
	v := viper.New()

	// Set defaults matching DefaultServerConfig
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.cache_backend", CacheBackendMemory)
	v.SetDefault("server.cache_namespace", "menukeeper")
	v.SetDefault("server.menu_path", "./menu.yaml")
	v.SetDefault("server.badge_queries_path", "")
	v.SetDefault("server.cors_origins", "*")

	// Bind environment variables with MK_ prefix
	v.SetEnvPrefix("MK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Security check: reject secrets in config files
	// Secrets must be environment-only per 12-factor principles
	if err := validateNoSecretsInConfig(v); err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Host:             v.GetString("server.host"),
		Port:             v.GetInt("server.port"),
		RequestTimeout:   v.GetDuration("server.request_timeout"),
		CacheBackend:     v.GetString("server.cache_backend"),
		CacheNamespace:   v.GetString("server.cache_namespace"),
		MenuPath:         v.GetString("server.menu_path"),
		BadgeQueriesPath: v.GetString("server.badge_queries_path"),
		CORSOrigins:      v.GetString("server.cors_origins"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks port range, positive timeout, known cache backend.
func validateConfig(cfg *ServerConfig) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.RequestTimeout)
	}
	switch cfg.CacheBackend {
	case CacheBackendMemory, CacheBackendDatabase:
	default:
		return fmt.Errorf("cache_backend must be %q or %q, got %q", CacheBackendMemory, CacheBackendDatabase, cfg.CacheBackend)
	}
	if cfg.CacheNamespace == "" {
		return fmt.Errorf("cache_namespace must not be empty")
	}
	if cfg.MenuPath == "" {
		return fmt.Errorf("menu_path must not be empty")
	}
	return nil
}

// validateNoSecretsInConfig enforces environment-only secrets (12-factor principle).
func validateNoSecretsInConfig(v *viper.Viper) error {
	if v.IsSet("hmac_secret") || v.IsSet("server.hmac_secret") {
		return fmt.Errorf("HMAC secrets not allowed in config files (use MK_HMAC_SECRET environment variable)")
	}
	if v.IsSet("jwt_secret") || v.IsSet("server.jwt_secret") {
		return fmt.Errorf("JWT secrets not allowed in config files (use MK_JWT_SECRET environment variable)")
	}
	return nil
}
