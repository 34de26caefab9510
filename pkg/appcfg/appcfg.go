package appcfg

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Language             string        `yaml:"language"`  // "en" | "ru"
	LogLevel             string        `yaml:"log_level"` // "debug"|"info"|"warn"|"error"
	LogFile              string        `yaml:"log_file"`  // may contain {start} and {pid}
	HideSecretsInConsole bool          `yaml:"hide_secrets_in_console"`
	ProgressInterval     time.Duration `yaml:"progress_interval"` // 0 disables
	WebhookTimeout       time.Duration `yaml:"webhook_timeout"`
	MetricsAddr          string        `yaml:"metrics_addr"` // e.g. ":9100", empty disables
}

// Defaults is used when no app config file is present.
func Defaults() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open app config %q: %w", path, err)
	}
	defer f.Close()

	var c Config
	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode app yaml %q: %w", path, err)
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Language == "" {
		c.Language = "en"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.WebhookTimeout <= 0 {
		c.WebhookTimeout = 10 * time.Second
	}
	if c.ProgressInterval < 0 {
		c.ProgressInterval = 0
	}
}
