package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
)

// Config is the effective configuration of a run.
type Config struct {
	Legs   int           `mapstructure:"legs" yaml:"legs"`
	Buffer int           `mapstructure:"buffer" yaml:"buffer"`
	Count  int           `mapstructure:"count" yaml:"count"`
	Filter string        `mapstructure:"filter" yaml:"filter"`
	Scale  int           `mapstructure:"scale" yaml:"scale"`
	Rate   int           `mapstructure:"rate" yaml:"rate"`
	Idle   time.Duration `mapstructure:"idle" yaml:"-"`

	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr      string `mapstructure:"addr" yaml:"addr"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("legs", 2)
	v.SetDefault("buffer", 8)
	v.SetDefault("count", 20)
	v.SetDefault("filter", "all")
	v.SetDefault("scale", 1)
	v.SetDefault("rate", 0)
	v.SetDefault("idle", "200ms")

	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)

	v.SetDefault("metrics.addr", "")
	v.SetDefault("metrics.namespace", "asynch")
}

// loadConfig decodes and validates the settings held by v.
func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Legs < 2:
		return fmt.Errorf("config: legs must be at least 2, got %d", c.Legs)
	case c.Buffer < 0:
		return fmt.Errorf("config: buffer must not be negative, got %d", c.Buffer)
	case c.Count < 0:
		return fmt.Errorf("config: count must not be negative, got %d", c.Count)
	case c.Scale == 0:
		return fmt.Errorf("config: scale must not be zero")
	case c.Rate < 0:
		return fmt.Errorf("config: rate must not be negative, got %d", c.Rate)
	case c.Idle <= 0:
		return fmt.Errorf("config: idle must be positive, got %s", c.Idle)
	}

	if _, err := valueFilter(c.Filter, c.Scale); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}
