// Package config handles YAML configuration parsing and hot-reload.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Scores       ScoresConfig       `yaml:"scores,omitempty"`
	Display      DisplayConfig      `yaml:"display,omitempty"`
	Notification NotificationConfig `yaml:"notification,omitempty"`
}

// ScoresConfig assigns relevance scores to suggestion families.
// Higher means ranked earlier.
type ScoresConfig struct {
	StartTimer       int `yaml:"start_timer"`
	CancelTimer      int `yaml:"cancel_timer"`
	StopwatchControl int `yaml:"stopwatch_control"`
	Reset            int `yaml:"reset"`
}

// DisplayConfig controls the live status line.
type DisplayConfig struct {
	Refresh time.Duration `yaml:"refresh"`
}

// NotificationConfig controls where countdown completions are delivered.
type NotificationConfig struct {
	Title         string `yaml:"title"`
	WebhookURL    string `yaml:"webhook_url"`
	RatePerMinute int    `yaml:"rate_per_minute"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Scores: ScoresConfig{
			StartTimer:       100,
			CancelTimer:      90,
			StopwatchControl: 100,
			Reset:            80,
		},
		Display: DisplayConfig{
			Refresh: 100 * time.Millisecond,
		},
		Notification: NotificationConfig{
			Title: "Timer",
		},
	}
}

// Load reads and parses a YAML configuration file. Absent fields keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the runtime cannot operate with.
func (c *Config) Validate() error {
	if c.Display.Refresh <= 0 {
		return fmt.Errorf("display.refresh must be positive, got %v", c.Display.Refresh)
	}
	if c.Scores.StartTimer < 0 || c.Scores.CancelTimer < 0 ||
		c.Scores.StopwatchControl < 0 || c.Scores.Reset < 0 {
		return fmt.Errorf("scores must be non-negative")
	}
	if c.Notification.RatePerMinute < 0 {
		return fmt.Errorf("notification.rate_per_minute must be non-negative, got %d", c.Notification.RatePerMinute)
	}
	if c.Notification.Title == "" {
		return fmt.Errorf("notification.title must not be empty")
	}
	return nil
}
