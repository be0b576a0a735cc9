package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	t.Setenv("RETURN_THRESHOLD", "-5.0")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Threshold != -5.0 {
		t.Errorf("Threshold = %v", cfg.Threshold)
	}
	if cfg.TelegramChatID != -100200300 {
		t.Errorf("TelegramChatID = %v", cfg.TelegramChatID)
	}
	if cfg.WeightConvention != "auto" {
		t.Errorf("WeightConvention = %q", cfg.WeightConvention)
	}
	if cfg.WatchSchedule != "" {
		t.Errorf("WatchSchedule = %q, want one-shot default", cfg.WatchSchedule)
	}
	if cfg.AlertCooldown != 0 {
		t.Errorf("AlertCooldown = %v", cfg.AlertCooldown)
	}
	if cfg.MarketHoursOnly {
		t.Error("MarketHoursOnly should default off")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("WEIGHT_CONVENTION", "percent")
	t.Setenv("WATCH_SCHEDULE", "@every 5m")
	t.Setenv("ALERT_COOLDOWN", "45m")
	t.Setenv("MARKET_HOURS_ONLY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WeightConvention != "percent" {
		t.Errorf("WeightConvention = %q", cfg.WeightConvention)
	}
	if cfg.WatchSchedule != "@every 5m" {
		t.Errorf("WatchSchedule = %q", cfg.WatchSchedule)
	}
	if cfg.AlertCooldown != 45*time.Minute {
		t.Errorf("AlertCooldown = %v", cfg.AlertCooldown)
	}
	if !cfg.MarketHoursOnly {
		t.Error("MarketHoursOnly not set")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		want  string
	}{
		{name: "threshold", unset: "RETURN_THRESHOLD", want: "RETURN_THRESHOLD"},
		{name: "token", unset: "TELEGRAM_TOKEN", want: "TELEGRAM_TOKEN"},
		{name: "chat id", unset: "TELEGRAM_CHAT_ID", want: "TELEGRAM_CHAT_ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("want error naming %s, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadInvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("RETURN_THRESHOLD", "five")
	if _, err := Load(); err == nil {
		t.Error("non-numeric threshold must fail")
	}

	setRequired(t)
	t.Setenv("WEIGHT_CONVENTION", "grams")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "WEIGHT_CONVENTION") {
		t.Errorf("invalid convention must fail, got %v", err)
	}
}
