package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the tracker needs. Core packages receive plain
// values from here and never read the environment themselves.
type Config struct {
	TelegramToken  string
	TelegramChatID int64

	// Threshold is the weighted-return level (percent, typically negative)
	// below which an alert fires.
	Threshold float64

	PortfolioFile string

	// WeightConvention is "percent", "fraction" or "auto".
	WeightConvention string

	// WatchSchedule is a cron expression; empty means run one pass and exit.
	WatchSchedule string

	// AlertCooldown suppresses repeat alerts within the window; 0 disables.
	AlertCooldown time.Duration

	MarketHoursOnly bool

	DBPath   string
	Port     int
	LogLevel string
	LogPretty bool
}

// Load reads configuration from the environment, honoring a .env file when
// one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		PortfolioFile:    getEnv("PORTFOLIO_FILE", "./portfolio_files/portfolio.csv"),
		WeightConvention: getEnv("WEIGHT_CONVENTION", "auto"),
		WatchSchedule:    os.Getenv("WATCH_SCHEDULE"),
		AlertCooldown:    getEnvAsDuration("ALERT_COOLDOWN", 0),
		MarketHoursOnly:  getEnvAsBool("MARKET_HOURS_ONLY", false),
		DBPath:           getEnv("DB_PATH", "./data/fundwatch.db"),
		Port:             getEnvAsInt("PORT", 9095),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPretty:        getEnvAsBool("LOG_PRETTY", false),
	}

	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", chatID, err)
		}
		cfg.TelegramChatID = id
	}

	threshold := os.Getenv("RETURN_THRESHOLD")
	if threshold == "" {
		return nil, fmt.Errorf("missing env RETURN_THRESHOLD")
	}
	v, err := strconv.ParseFloat(threshold, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RETURN_THRESHOLD %q: %w", threshold, err)
	}
	cfg.Threshold = v

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and enum values.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("missing env TELEGRAM_TOKEN")
	}
	if c.TelegramChatID == 0 {
		return fmt.Errorf("missing env TELEGRAM_CHAT_ID")
	}
	if c.PortfolioFile == "" {
		return fmt.Errorf("missing env PORTFOLIO_FILE")
	}
	switch c.WeightConvention {
	case "percent", "fraction", "auto":
	default:
		return fmt.Errorf("invalid WEIGHT_CONVENTION %q (want percent, fraction or auto)", c.WeightConvention)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
