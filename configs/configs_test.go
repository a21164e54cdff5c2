package configs

import (
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Setenv("SETTINGS_API_HOST", "localhost")
	t.Setenv("SETTINGS_API_PORT", "4000")
	t.Setenv("SETTINGS_API_SETTINGS_FILE", "/var/lib/settings-api/user.conf")
	t.Setenv("SETTINGS_API_CREATE_MISSING", "false")
	t.Setenv("SETTINGS_API_LOG_LEVEL", "debug")
	t.Setenv("SETTINGS_API_REQUEST_TIMEOUT", "30s")
	t.Setenv("SETTINGS_API_SAVE_RATE_LIMIT", "5")

	cfg := ParseTestConfig(t)

	if cfg.Host != "localhost" {
		t.Errorf(`expected "Host" to equal "localhost", got "%s"`, cfg.Host)
	}

	if cfg.Port != 4000 {
		t.Errorf(`expected "Port" to equal 4000, got %d`, cfg.Port)
	}

	if cfg.SettingsFile != "/var/lib/settings-api/user.conf" {
		t.Errorf(`expected "SettingsFile" to equal "/var/lib/settings-api/user.conf", got "%s"`, cfg.SettingsFile)
	}

	if cfg.CreateMissing {
		t.Error(`expected "CreateMissing" to equal false`)
	}

	if cfg.ServerRequestTimeout != 30*time.Second {
		t.Errorf(`expected "ServerRequestTimeout" to equal 30s, got %s`, cfg.ServerRequestTimeout)
	}

	if cfg.SaveRateLimit != 5 {
		t.Errorf(`expected "SaveRateLimit" to equal 5, got %d`, cfg.SaveRateLimit)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg := ParseTestConfig(t)

	if cfg.Port != 3000 {
		t.Errorf(`expected "Port" to default to 3000, got %d`, cfg.Port)
	}

	if cfg.SettingsFile != "settings.conf" {
		t.Errorf(`expected "SettingsFile" to default to "settings.conf", got "%s"`, cfg.SettingsFile)
	}

	if !cfg.CreateMissing {
		t.Error(`expected "CreateMissing" to default to true`)
	}

	if cfg.LogLevel != "info" {
		t.Errorf(`expected "LogLevel" to default to "info", got "%s"`, cfg.LogLevel)
	}
}
