package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults wrong: %+v", cfg.Server)
	}
	if cfg.Auth.JWTSecret == "" || cfg.Auth.TokenTTLHours != 720 {
		t.Errorf("auth defaults wrong: %+v", cfg.Auth)
	}
	if !cfg.Telemetry.Prometheus {
		t.Error("prometheus should default on")
	}
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("NOSMOKE_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("NOSMOKE_HOME", home)

	content := "[server]\nhost = \"0.0.0.0\"\nport = 9000\n\n[auth]\njwt_secret = \"from-file\"\n"
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9000 {
		t.Errorf("file values not applied: %+v", cfg.Server)
	}
	if cfg.Auth.JWTSecret != "from-file" {
		t.Errorf("jwt_secret: expected from-file, got %s", cfg.Auth.JWTSecret)
	}
}

func TestLoadConfig_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("NOSMOKE_HOME", t.TempDir())
	t.Setenv("NOSMOKE_JWT_SECRET", "env-secret")
	t.Setenv("NOSMOKE_STRIPE_API_KEY", "sk_test_env")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("jwt_secret: expected env-secret, got %s", cfg.Auth.JWTSecret)
	}
	if cfg.Billing.StripeAPIKey != "sk_test_env" {
		t.Errorf("stripe key: expected sk_test_env, got %s", cfg.Billing.StripeAPIKey)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv("NOSMOKE_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Server.Port = 9999
	cfg.Auth.TelegramBotToken = "bot-token"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("port: expected 9999, got %d", loaded.Server.Port)
	}
	if loaded.Auth.TelegramBotToken != "bot-token" {
		t.Errorf("bot token: expected bot-token, got %s", loaded.Auth.TelegramBotToken)
	}
}
