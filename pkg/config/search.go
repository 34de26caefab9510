package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"VanityEth/internal/patterns"
)

var (
	ErrThreads = errors.New("threads must be >= 1")
	ErrWords   = errors.New("words must be 0 (auto), 12 or 24")
	ErrWebhook = errors.New("webhook must be an absolute http(s) URL")
)

// SearchConfig is built once at startup and only read afterwards.
type SearchConfig struct {
	Pattern     string `yaml:"regex"`
	Words       int    `yaml:"words"` // 0 = alternate 24/12 by worker index
	Threads     int    `yaml:"threads"`
	Benchmark   bool   `yaml:"benchmark"`
	Webhook     string `yaml:"webhook"`
	GPU         bool   `yaml:"gpu"`
	GPUPlatform int    `yaml:"gpu_platform"`
}

// Default returns a config searching with one worker per CPU.
func Default() SearchConfig {
	return SearchConfig{Threads: runtime.NumCPU()}
}

// Load reads a search config file over the defaults.
func Load(path string) (SearchConfig, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode yaml %q: %w", path, err)
	}
	return cfg, nil
}

func (c SearchConfig) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("%w: got %d", ErrThreads, c.Threads)
	}
	switch c.Words {
	case 0, 12, 24:
	default:
		return fmt.Errorf("%w: got %d", ErrWords, c.Words)
	}
	if c.Webhook != "" {
		u, err := url.Parse(c.Webhook)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrWebhook, c.Webhook)
		}
	}
	if _, err := patterns.Compile(c.Pattern); err != nil {
		return err
	}
	return nil
}

// WordsFor is the mnemonic length worker index searches. An explicit
// 12 or 24 pins every worker; auto sends odd indices to the 12-word space
// and even ones to the 24-word space.
func WordsFor(words, index int) int {
	if words == 12 || words == 24 {
		return words
	}
	if index%2 == 1 {
		return 12
	}
	return 24
}
