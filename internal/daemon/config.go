// Package daemon manages the NoSmoke service lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Auth      AuthConfig      `toml:"auth"`
	Billing   BillingConfig   `toml:"billing"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// DatabaseConfig controls SQLite storage.
type DatabaseConfig struct {
	Dir string `toml:"dir"`
}

// AuthConfig controls token issuance and Telegram login.
type AuthConfig struct {
	JWTSecret        string `toml:"jwt_secret"`
	TokenTTLHours    int    `toml:"token_ttl_hours"`
	TelegramBotToken string `toml:"telegram_bot_token"`
}

// BillingConfig controls the payment provider.
type BillingConfig struct {
	StripeAPIKey string `toml:"stripe_api_key"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := nosmokeHome()
	return Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Dir: homeDir,
		},
		Auth: AuthConfig{
			JWTSecret:     "nosmoke_secret",
			TokenTTLHours: 720, // 30 days
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "nosmoke.log"),
		},
	}
}

// LoadConfig reads config from ~/.nosmoke/config.toml, falling back to
// defaults. Secrets may be overridden via environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(nosmokeHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		applyEnv(&cfg)
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// SaveConfig writes the config to ~/.nosmoke/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(nosmokeHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NOSMOKE_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("NOSMOKE_TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Auth.TelegramBotToken = v
	}
	if v := os.Getenv("NOSMOKE_STRIPE_API_KEY"); v != "" {
		cfg.Billing.StripeAPIKey = v
	}
}

// nosmokeHome returns the NoSmoke data directory.
func nosmokeHome() string {
	if env := os.Getenv("NOSMOKE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".nosmoke")
}

// Home is exported for use by other packages.
func Home() string {
	return nosmokeHome()
}
