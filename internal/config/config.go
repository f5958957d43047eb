package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/diegoclair/availability-bot/internal/domain"
)

const (
	PlatformDiscord = "discord"
	PlatformSlack   = "slack"
)

type Config struct {
	Platform string

	// BotToken authenticates the Discord bot
	BotToken      string
	SlackBotToken string
	SlackAppToken string

	// NotifyChannel is the platform id of the channel polls are posted to
	NotifyChannel string
	// PollDay is the exact English weekday name the poll is published on
	PollDay    string
	TaskHour   int
	TaskMinute int
	TaskSecond int

	DatabaseURL string
	Port        string
	LogLevel    string
	LogFormat   string
}

func Load() (*Config, error) {
	cfg := &Config{
		Platform:      getEnv("PLATFORM", PlatformDiscord),
		BotToken:      getEnv("BOT_TOKEN", ""),
		SlackBotToken: getEnv("SLACK_BOT_TOKEN", ""),
		SlackAppToken: getEnv("SLACK_APP_TOKEN", ""),
		NotifyChannel: getEnv("NOTIFY_CHANNEL", ""),
		PollDay:       getEnv("POLL_DAY", domain.DefaultPollDay),
		DatabaseURL:   getEnv("DATABASE_URL", "./availability.db"),
		Port:          getEnv("PORT", "3000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.TaskHour, err = getEnvInt("TASK_HOUR", 0, 0, 23); err != nil {
		return nil, err
	}
	if cfg.TaskMinute, err = getEnvInt("TASK_MINUTE", 0, 0, 59); err != nil {
		return nil, err
	}
	if cfg.TaskSecond, err = getEnvInt("TASK_SECOND", 0, 0, 59); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Platform {
	case PlatformDiscord:
		if c.BotToken == "" {
			return fmt.Errorf("BOT_TOKEN is required for platform %s", c.Platform)
		}
	case PlatformSlack:
		if c.SlackBotToken == "" || c.SlackAppToken == "" {
			return fmt.Errorf("SLACK_BOT_TOKEN and SLACK_APP_TOKEN are required for platform %s", c.Platform)
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownPlatform, c.Platform)
	}

	if c.NotifyChannel == "" {
		return fmt.Errorf("NOTIFY_CHANNEL is required")
	}

	if !isWeekday(c.PollDay) {
		return fmt.Errorf("POLL_DAY: %w: %q", domain.ErrInvalidWeekday, c.PollDay)
	}
	return nil
}

func isWeekday(name string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue, min, max int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", key, min, max, n)
	}
	return n, nil
}
