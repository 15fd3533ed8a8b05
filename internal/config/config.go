package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"justapengu.in/racetelemetry/internal/livefeed"
	"justapengu.in/racetelemetry/internal/telemetry"
	"justapengu.in/racetelemetry/pkg/f1udp"
)

const EnvPrefix = "RACETELEMETRY_"

type Config struct {
	Listener    telemetry.ListenerConfig `yaml:"listener" envPrefix:"LISTENER_"`
	HTTP        livefeed.Config          `yaml:"http" envPrefix:"HTTP_"`
	Log         LogConfig                `yaml:"log" envPrefix:"LOG_"`
	Leaderboard LeaderboardConfig        `yaml:"leaderboard" envPrefix:"LEADERBOARD_"`
	Sentry      SentryConfig             `yaml:"sentry" envPrefix:"SENTRY_"`

	// DriverCodes extends the built-in name to code table, e.g.
	// "Jane Doeson": "DOE".
	DriverCodes map[string]string `yaml:"driver_codes" env:"DRIVER_CODES"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

type LeaderboardConfig struct {
	// PrintInterval logs the leaderboard table periodically. Zero disables it.
	PrintInterval time.Duration `yaml:"print_interval" env:"PRINT_INTERVAL"`
}

// SentryConfig enables reporting of fatal errors. An empty DSN disables it.
type SentryConfig struct {
	DSN string `yaml:"dsn" env:"DSN"`
}

func Default() *Config {
	return &Config{
		Listener: telemetry.DefaultListenerConfig(),
		HTTP:     livefeed.DefaultConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// RACETELEMETRY_* environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	return load(path, env.Options{Prefix: EnvPrefix})
}

func load(path string, opts env.Options) (*Config, error) {
	config := Default()

	if path != "" {
		f, err := os.Open(path)

		if err != nil {
			return nil, errors.Wrap(err, "config")
		}

		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(config); err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "config: could not decode %s", path)
		}
	}

	if err := env.ParseWithOptions(config, opts); err != nil {
		return nil, errors.Wrap(err, "config: environment")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if err := c.Listener.Validate(); err != nil {
		return err
	}

	if err := c.HTTP.Validate(); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.Errorf("log: unknown format %q", c.Log.Format)
	}

	if c.Leaderboard.PrintInterval < 0 {
		return errors.Errorf("leaderboard: print_interval must not be negative, got %s", c.Leaderboard.PrintInterval)
	}

	for name, code := range c.DriverCodes {
		if strings.TrimSpace(code) == "" {
			return errors.Errorf("driver_codes: empty code for %q", name)
		}
	}

	return nil
}

// NameCodes is the built-in code table extended by DriverCodes.
func (c *Config) NameCodes() f1udp.NameCodes {
	return f1udp.DefaultNameCodes.With(c.DriverCodes)
}

func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()

	if strings.ToLower(c.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if level, err := logrus.ParseLevel(c.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	return logger
}
