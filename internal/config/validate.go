package config

import (
	"errors"
	"fmt"
	"net"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTimer(); err != nil {
		return err
	}
	if err := c.validateGoals(); err != nil {
		return err
	}
	if err := c.validateAI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.APIBind != "" {
		if _, _, err := net.SplitHostPort(c.Paths.APIBind); err != nil {
			return fmt.Errorf("paths.api_bind must be host:port: %w", err)
		}
	}
	return nil
}

func (c *Config) validateTimer() error {
	if c.Timer.TickSeconds <= 0 {
		return errors.New("timer.tick_seconds must be positive")
	}
	if c.Timer.MinLoggedMinutes < 0 {
		return errors.New("timer.min_logged_minutes must not be negative")
	}
	return nil
}

func (c *Config) validateGoals() error {
	if c.Goals.DailyGoalMinutes <= 0 {
		return errors.New("goals.daily_goal_minutes must be positive")
	}
	return nil
}

func (c *Config) validateAI() error {
	switch c.AI.Provider {
	case ProviderDisabled, ProviderOllama:
	case ProviderDeepSeek:
		if c.AI.DeepSeekAPIKey == "" {
			defaultPath, err := DefaultConfigPath()
			if err != nil {
				defaultPath = "~/.config/lockin/config.toml"
			}
			return fmt.Errorf("ai.deepseek_api_key is required when ai.provider is %q. Set DEEPSEEK_API_KEY env var or edit %s (create with 'lockin config init')", ProviderDeepSeek, defaultPath)
		}
	default:
		return fmt.Errorf("ai.provider must be one of %q, %q, %q", ProviderDisabled, ProviderDeepSeek, ProviderOllama)
	}
	if c.AI.TimeoutSeconds <= 0 {
		return errors.New("ai.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
