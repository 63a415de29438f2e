package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Signal.CLICommand != "signal-cli" {
		t.Errorf("expected default cli_command signal-cli, got %s", cfg.Signal.CLICommand)
	}
	if cfg.GetPollingInterval() != 2*time.Second {
		t.Errorf("expected default polling interval 2s, got %v", cfg.GetPollingInterval())
	}
	if cfg.GetCommandTimeout() != 30*time.Second {
		t.Errorf("expected default command timeout 30s, got %v", cfg.GetCommandTimeout())
	}
	if cfg.Extras.Discord.Enabled {
		t.Error("discord should be disabled by default")
	}
	if cfg.Backup.RetentionCount != 10 {
		t.Errorf("expected default retention 10, got %d", cfg.Backup.RetentionCount)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file failed: %v", err)
	}
	if cfg.Storage.DatabasePath != "data/bot_data.db" {
		t.Errorf("expected default db path, got %s", cfg.Storage.DatabasePath)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Signal.BotNumber = "+15551234567"
	cfg.Signal.PollingInterval = "500ms"
	cfg.Backup.RetentionCount = 3
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Signal.BotNumber != "+15551234567" {
		t.Errorf("expected bot number round-trip, got %s", loaded.Signal.BotNumber)
	}
	if loaded.GetPollingInterval() != 500*time.Millisecond {
		t.Errorf("expected polling interval 500ms, got %v", loaded.GetPollingInterval())
	}
	if loaded.Backup.RetentionCount != 3 {
		t.Errorf("expected retention 3, got %d", loaded.Backup.RetentionCount)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BOT_NUMBER", "+15559990000")
	t.Setenv("SIGNALBOT_DB", "/tmp/override.db")
	t.Setenv("DISCORD_TOKEN", "tok-abc")
	t.Setenv("DISCORD_ENABLED", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Signal.BotNumber != "+15559990000" {
		t.Errorf("BOT_NUMBER override not applied: %s", cfg.Signal.BotNumber)
	}
	if cfg.Storage.DatabasePath != "/tmp/override.db" {
		t.Errorf("SIGNALBOT_DB override not applied: %s", cfg.Storage.DatabasePath)
	}
	if !cfg.Extras.Discord.Enabled || cfg.Extras.Discord.Token != "tok-abc" {
		t.Errorf("discord env overrides not applied: %+v", cfg.Extras.Discord)
	}
}

func TestValidateDiscordNeedsToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Extras.Discord.Enabled = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	os.Unsetenv("DISCORD_TOKEN")
	os.Unsetenv("DISCORD_ENABLED")
	if _, err := Load(path); err == nil {
		t.Error("expected error for discord enabled without token")
	}
}

func TestDurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Signal.PollingInterval = "garbage"
	cfg.Backup.Interval = ""
	if cfg.GetPollingInterval() != 2*time.Second {
		t.Errorf("expected fallback polling interval, got %v", cfg.GetPollingInterval())
	}
	if cfg.GetBackupInterval() != time.Hour {
		t.Errorf("expected fallback backup interval, got %v", cfg.GetBackupInterval())
	}
}
