package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. HUB_HTTP__ADDR.
const EnvPrefix = "HUB_"

// Config keeps runtime settings for the hub.
type Config struct {
	HTTP      HTTPConfig      `koanf:"http"`
	Database  DatabaseConfig  `koanf:"database"`
	Reminders RemindersConfig `koanf:"reminders"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Telegram  TelegramConfig  `koanf:"telegram"`
	Email     EmailConfig     `koanf:"email"`
}

type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	CORSOrigins string `koanf:"cors_origins"` // comma separated
	ReleaseMode bool   `koanf:"release_mode"`
}

type DatabaseConfig struct {
	URL      string `koanf:"url"`
	LogLevel string `koanf:"log_level"`
}

type RemindersConfig struct {
	WindowDays    int    `koanf:"window_days"`
	LookaheadDays int    `koanf:"lookahead_days"`
	Timezone      string `koanf:"timezone"`
}

type SchedulerConfig struct {
	Enabled  bool   `koanf:"enabled"`
	SyncAt   string `koanf:"sync_at"`   // HH:MM
	DigestAt string `koanf:"digest_at"` // HH:MM, empty disables digests
}

type TelegramConfig struct {
	Token string `koanf:"token"`
}

type EmailConfig struct {
	SendGridAPIKey string `koanf:"sendgrid_api_key"`
	FromEmail      string `koanf:"from_email"`
	FromName       string `koanf:"from_name"`
	Recipients     string `koanf:"recipients"` // comma separated
}

// Load reads defaults, then the optional YAML file, then the environment.
// A .env file in the working directory is loaded into the environment first.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("stat config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env vars: %w", err)
	}

	// Variables understood by earlier deployments.
	legacy := map[string]string{
		"DATABASE_URL":   "database.url",
		"TELEGRAM_TOKEN": "telegram.token",
	}
	for name, key := range legacy {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" || os.Getenv(EnvPrefix+strings.ToUpper(strings.ReplaceAll(key, ".", "__"))) != "" {
			continue
		}
		if err := k.Set(key, v); err != nil {
			return Config{}, fmt.Errorf("apply %s: %w", name, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// envKey maps HUB_REMINDERS__WINDOW_DAYS to reminders.window_days.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks ranges and clock formats.
func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.Reminders.WindowDays <= 0 {
		return fmt.Errorf("reminders.window_days must be positive")
	}
	if c.Reminders.LookaheadDays <= 0 {
		return fmt.Errorf("reminders.lookahead_days must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := ParseClock(c.Scheduler.SyncAt); err != nil {
		return fmt.Errorf("scheduler.sync_at: %w", err)
	}
	if c.Scheduler.DigestAt != "" {
		if _, err := ParseClock(c.Scheduler.DigestAt); err != nil {
			return fmt.Errorf("scheduler.digest_at: %w", err)
		}
	}
	if c.Email.SendGridAPIKey != "" && c.Email.FromEmail == "" {
		return fmt.Errorf("email.from_email is required when sendgrid is configured")
	}
	return nil
}

// Location resolves the configured timezone; "Local" and empty mean the host zone.
func (c Config) Location() (*time.Location, error) {
	switch c.Reminders.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Reminders.Timezone)
	if err != nil {
		return nil, fmt.Errorf("reminders.timezone: %w", err)
	}
	return loc, nil
}

// CORSOrigins splits the configured origin list.
func (c Config) CORSOrigins() []string {
	return splitList(c.HTTP.CORSOrigins)
}

// EmailRecipients splits the configured recipient list.
func (c Config) EmailRecipients() []string {
	return splitList(c.Email.Recipients)
}

// Clock is a time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an HH:MM string.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
