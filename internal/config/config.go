package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Source struct {
		DebtsFile string `yaml:"debts_file"`
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
	} `yaml:"source"`
	Planning struct {
		SurplusCash float64 `yaml:"surplus_cash"`
		HorizonDays int     `yaml:"horizon_days"`
		Timezone    string  `yaml:"timezone"`
	} `yaml:"planning"`
	Schedule struct {
		DailyCron   string `yaml:"daily_cron"`
		WeeklyCron  string `yaml:"weekly_cron"`
		MonthlyCron string `yaml:"monthly_cron"`
	} `yaml:"schedule"`
	State struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"state"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Cache struct {
		RedisAddr string        `yaml:"redis_addr"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := []struct {
		key string
		dst *string
	}{
		{"TELEGRAM_BOT_TOKEN", &c.Telegram.BotToken},
		{"TELEGRAM_CHAT_ID", &c.Telegram.ChatID},
		{"DEBTS_FILE", &c.Source.DebtsFile},
		{"DASHBOARD_BASE_URL", &c.Source.BaseURL},
		{"DASHBOARD_API_KEY", &c.Source.APIKey},
		{"TIMEZONE", &c.Planning.Timezone},
		{"SQLITE_PATH", &c.Database.SQLitePath},
		{"REDIS_ADDR", &c.Cache.RedisAddr},
		{"HTTPS_PROXY", &c.Proxy},
		{"CRON_DAILY", &c.Schedule.DailyCron},
	}
	for _, s := range strs {
		if v := os.Getenv(s.key); v != "" {
			*s.dst = v
		}
	}

	if v := os.Getenv("SURPLUS_CASH"); v != "" {
		surplus, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse SURPLUS_CASH: %w", err)
		}
		c.Planning.SurplusCash = surplus
	}
	if v := os.Getenv("HORIZON_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse HORIZON_DAYS: %w", err)
		}
		c.Planning.HorizonDays = days
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Source.DebtsFile == "" && c.Source.BaseURL == "" {
		c.Source.DebtsFile = "configs/debts.yaml"
	}
	if c.Planning.HorizonDays == 0 {
		c.Planning.HorizonDays = 90
	}
	if c.Planning.Timezone == "" {
		c.Planning.Timezone = "Local"
	}
	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = "0 0 8 * * *"
	}
	if c.Schedule.WeeklyCron == "" {
		c.Schedule.WeeklyCron = "0 0 9 * * 1"
	}
	if c.Schedule.MonthlyCron == "" {
		c.Schedule.MonthlyCron = "0 0 9 1 * *"
	}
	if c.State.StateFile == "" {
		c.State.StateFile = "data/plan_state.json"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/debt_sentinel.db"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 6 * time.Hour
	}
}

// Location resolves the planning timezone used to decide what "today" is.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Planning.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Planning.Timezone, err)
	}
	return loc, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Source.DebtsFile == "" && c.Source.BaseURL == "" {
		return fmt.Errorf("source.debts_file or source.base_url is required")
	}
	if c.Planning.SurplusCash < 0 {
		return fmt.Errorf("planning.surplus_cash must not be negative")
	}
	if c.Planning.HorizonDays < 0 {
		return fmt.Errorf("planning.horizon_days must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, spec := range map[string]string{
		"schedule.daily_cron":   c.Schedule.DailyCron,
		"schedule.weekly_cron":  c.Schedule.WeeklyCron,
		"schedule.monthly_cron": c.Schedule.MonthlyCron,
	} {
		if _, err := parser.Parse(spec); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	return nil
}
