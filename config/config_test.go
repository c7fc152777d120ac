package config

import "testing"

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg := LoadFromEnv()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.StateDir != "./data" {
		t.Errorf("StateDir = %q", cfg.StateDir)
	}
	if cfg.RedisEnabled || cfg.Database.Enabled || cfg.Assistant.Enabled {
		t.Error("optional backends should default to disabled")
	}
	if cfg.Dashboard.HistoryDays != 30 {
		t.Errorf("HistoryDays = %d", cfg.Dashboard.HistoryDays)
	}
	if cfg.Assistant.Model == "" || cfg.Assistant.Endpoint == "" {
		t.Error("assistant defaults missing")
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("ASSISTANT_ENABLED", "true")
	t.Setenv("ASSISTANT_API_KEY", "secret")
	t.Setenv("DASHBOARD_HISTORY_DAYS", "7")

	cfg := LoadFromEnv()
	if cfg.Port != 9090 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if !cfg.RedisEnabled {
		t.Error("RedisEnabled not picked up")
	}
	if !cfg.Assistant.Enabled || cfg.Assistant.APIKey != "secret" {
		t.Errorf("assistant config: %+v", cfg.Assistant)
	}
	if cfg.Dashboard.HistoryDays != 7 {
		t.Errorf("HistoryDays = %d", cfg.Dashboard.HistoryDays)
	}
}

func TestGetEnvIntInvalid(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	cfg := LoadFromEnv()
	if cfg.Port != 8080 {
		t.Errorf("invalid int should fall back to default, got %d", cfg.Port)
	}
}
