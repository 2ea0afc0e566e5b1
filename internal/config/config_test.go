package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "configs/debts.yaml", cfg.Source.DebtsFile)
	assert.Equal(t, 90, cfg.Planning.HorizonDays)
	assert.Equal(t, "Local", cfg.Planning.Timezone)
	assert.Equal(t, "0 0 8 * * *", cfg.Schedule.DailyCron)
	assert.Equal(t, "data/plan_state.json", cfg.State.StateFile)
	assert.Equal(t, "data/debt_sentinel.db", cfg.Database.SQLitePath)
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: file-token
  chat_id: "42"
source:
  base_url: https://dash.example.com
planning:
  surplus_cash: 250
  horizon_days: 60
  timezone: UTC
cache:
  ttl: 30m
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("SURPLUS_CASH", "400.5")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "42", cfg.Telegram.ChatID)
	assert.Equal(t, "https://dash.example.com", cfg.Source.BaseURL)
	assert.Empty(t, cfg.Source.DebtsFile, "dashboard source set, no file default expected")
	assert.InDelta(t, 400.5, cfg.Planning.SurplusCash, 1e-9)
	assert.Equal(t, 60, cfg.Planning.HorizonDays)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadEnvNumber(t *testing.T) {
	t.Setenv("HORIZON_DAYS", "ninety")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "telegram: ["))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		cfg.Telegram.BotToken = "t"
		cfg.Telegram.ChatID = "1"
		cfg.Planning.Timezone = "UTC"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing token", func(c *Config) { c.Telegram.BotToken = "" }},
		{"missing chat", func(c *Config) { c.Telegram.ChatID = "" }},
		{"no source", func(c *Config) { c.Source.DebtsFile = "" }},
		{"negative surplus", func(c *Config) { c.Planning.SurplusCash = -1 }},
		{"negative horizon", func(c *Config) { c.Planning.HorizonDays = -5 }},
		{"bad timezone", func(c *Config) { c.Planning.Timezone = "Mars/Olympus" }},
		{"bad cron", func(c *Config) { c.Schedule.WeeklyCron = "every monday" }},
		{"five-field cron", func(c *Config) { c.Schedule.DailyCron = "0 8 * * *" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
