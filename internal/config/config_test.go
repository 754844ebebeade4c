package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.Reminders.WindowDays != 7 || cfg.Reminders.LookaheadDays != 30 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Database.URL != "household_hub.db" {
		t.Fatalf("database url = %q", cfg.Database.URL)
	}
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "hub.yaml")
	yaml := "reminders:\n  window_days: 10\n  lookahead_days: 60\nscheduler:\n  digest_at: \"07:30\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HUB_REMINDERS__LOOKAHEAD_DAYS", "90")
	t.Setenv("HUB_EMAIL__RECIPIENTS", "a@example.com, b@example.com")
	t.Setenv("TELEGRAM_TOKEN", "legacy-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Reminders.WindowDays != 10 {
		t.Fatalf("window_days = %d, want file value 10", cfg.Reminders.WindowDays)
	}
	if cfg.Reminders.LookaheadDays != 90 {
		t.Fatalf("lookahead_days = %d, want env value 90", cfg.Reminders.LookaheadDays)
	}
	if cfg.Scheduler.DigestAt != "07:30" {
		t.Fatalf("digest_at = %q", cfg.Scheduler.DigestAt)
	}
	if cfg.Telegram.Token != "legacy-token" {
		t.Fatalf("telegram token = %q", cfg.Telegram.Token)
	}
	if got := cfg.EmailRecipients(); len(got) != 2 || got[1] != "b@example.com" {
		t.Fatalf("recipients = %v", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HUB_HTTP__ADDR=:9090\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("HUB_HTTP__ADDR") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.HTTP.Addr)
	}
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero window", func(c *Config) { c.Reminders.WindowDays = 0 }},
		{"negative lookahead", func(c *Config) { c.Reminders.LookaheadDays = -1 }},
		{"bad sync time", func(c *Config) { c.Scheduler.SyncAt = "25:00" }},
		{"bad digest time", func(c *Config) { c.Scheduler.DigestAt = "8am" }},
		{"unknown timezone", func(c *Config) { c.Reminders.Timezone = "Mars/Olympus" }},
		{"sendgrid without sender", func(c *Config) { c.Email.SendGridAPIKey = "key" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("06:45")
	if err != nil || c.Hour != 6 || c.Minute != 45 {
		t.Fatalf("ParseClock = %+v, %v", c, err)
	}
}
