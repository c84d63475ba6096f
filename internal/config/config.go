// Package config loads the application configuration from an optional
// YAML file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SCENERY_"

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Data    DataConfig    `koanf:"data"`
	Chart   ChartConfig   `koanf:"chart"`
	Logging LoggingConfig `koanf:"logging"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

type DataConfig struct {
	// Source is a local CSV path or an http(s) URL.
	Source string `koanf:"source"`
	// Metric is the metric the explore scene starts on.
	Metric string `koanf:"metric"`
}

type ChartConfig struct {
	Width   float64       `koanf:"width"`
	Height  float64       `koanf:"height"`
	Padding PaddingConfig `koanf:"padding"`
}

type PaddingConfig struct {
	Top    float64 `koanf:"top"`
	Right  float64 `koanf:"right"`
	Bottom float64 `koanf:"bottom"`
	Left   float64 `koanf:"left"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Data: DataConfig{
			Source: "data/global_trends.csv",
			Metric: "urban",
		},
		Chart: ChartConfig{
			Width:  800,
			Height: 600,
			Padding: PaddingConfig{
				Top:    40,
				Right:  30,
				Bottom: 60,
				Left:   80,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path (if not empty) and applies SCENERY_* environment
// overrides on top of the defaults. SCENERY_SERVER_PORT maps to
// server.port, and so on.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(raw), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}), nil)
	if err != nil {
		return cfg, fmt.Errorf("load env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Chart.Width <= c.Chart.Padding.Left+c.Chart.Padding.Right {
		return fmt.Errorf("chart.width %.0f leaves no plotting area", c.Chart.Width)
	}
	if c.Chart.Height <= c.Chart.Padding.Top+c.Chart.Padding.Bottom {
		return fmt.Errorf("chart.height %.0f leaves no plotting area", c.Chart.Height)
	}
	if c.Data.Source == "" {
		return fmt.Errorf("data.source is required")
	}
	return nil
}
