package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/ncalf/draftboard/go/internal/aggregates"
	"github.com/ncalf/draftboard/go/internal/draft/rules"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the draft.yaml file. Missing keys keep their defaults.
type Config struct {
	Rules struct {
		Budget           string         `yaml:"budget"`
		RosterSize       int            `yaml:"roster_size"`
		MinimumIncrement string         `yaml:"minimum_increment"`
		Capacity         map[string]int `yaml:"capacity"`
	} `yaml:"rules"`
	Views   aggregates.Config `yaml:"views"`
	Session struct {
		Backend   string        `yaml:"backend"` // memory or redis
		RedisAddr string        `yaml:"redis_addr"`
		RedisDB   int           `yaml:"redis_db"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"session"`
}

func defaultConfig() *Config {
	var c Config
	c.Views = aggregates.DefaultConfig()
	c.Session.Backend = "memory"
	c.Session.TTL = 24 * time.Hour
	return &c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// loadConfig reads path over the defaults, then applies environment
// overrides. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn().Str("path", path).Msg("config file not found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.Session.Backend = getEnv("SESSION_BACKEND", config.Session.Backend)
	config.Session.RedisAddr = getEnv("REDIS_ADDR", config.Session.RedisAddr)
	config.Session.RedisDB = getEnvAsInt("REDIS_DB", config.Session.RedisDB)
	config.Views.PictureDirectory = getEnv("PICTURE_DIRECTORY", config.Views.PictureDirectory)

	if config.Session.Backend != "memory" && config.Session.Backend != "redis" {
		return nil, fmt.Errorf("unknown session backend %q", config.Session.Backend)
	}
	return config, nil
}

// rulesConfig overlays the file's rules on the league defaults
func (c *Config) rulesConfig() (rules.Config, error) {
	out := rules.DefaultConfig()

	if c.Rules.Budget != "" {
		d, err := decimal.NewFromString(c.Rules.Budget)
		if err != nil {
			return out, fmt.Errorf("invalid rules.budget: %w", err)
		}
		out.Budget = d
	}
	if c.Rules.MinimumIncrement != "" {
		d, err := decimal.NewFromString(c.Rules.MinimumIncrement)
		if err != nil {
			return out, fmt.Errorf("invalid rules.minimum_increment: %w", err)
		}
		out.MinimumIncrement = d
	}
	if c.Rules.RosterSize > 0 {
		out.RosterSize = c.Rules.RosterSize
	}
	for raw, n := range c.Rules.Capacity {
		pos, err := models.ParsePosition(raw)
		if err != nil || !pos.IsField() {
			return out, fmt.Errorf("invalid rules.capacity position %q", raw)
		}
		out.Capacity[pos] = n
	}
	return out, nil
}
