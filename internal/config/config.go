package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Challenge behavior defaults, matching the bot's tuned values.
const (
	DefaultChallengeTimeout = 90 * time.Second
	DefaultSweepInterval    = 10 * time.Second
	DefaultThreshold        = 0.50
	DefaultPointsPerAnswer  = 5
	DefaultHistorySize      = 5
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Embedding struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"embedding"`
	Challenge struct {
		Timeout       string  `yaml:"timeout"`
		SweepInterval string  `yaml:"sweep_interval"`
		Threshold     float64 `yaml:"threshold"`
		Points        int64   `yaml:"points"`
		HistorySize   int     `yaml:"history_size"`
	} `yaml:"challenge"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or bad.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// SimilarityThreshold returns the configured pass threshold or the default.
func (c Config) SimilarityThreshold() float64 {
	if c.Challenge.Threshold > 0 {
		return c.Challenge.Threshold
	}
	return DefaultThreshold
}

// PointsPerAnswer returns the configured award amount or the default.
func (c Config) PointsPerAnswer() int64 {
	if c.Challenge.Points > 0 {
		return c.Challenge.Points
	}
	return DefaultPointsPerAnswer
}
