package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")

	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func loadWith(path string, environment map[string]string) (*Config, error) {
	return load(path, env.Options{Prefix: EnvPrefix, Environment: environment})
}

func TestLoadDefaults(t *testing.T) {
	config, err := loadWith("", map[string]string{})

	if err != nil {
		t.Fatal(err)
	}

	if config.Listener.Port != 20777 || config.Listener.MaxDatagramSize != 4096 || config.Listener.ReadTimeout != time.Second {
		t.Errorf("unexpected listener defaults: %+v", config.Listener)
	}

	if !config.HTTP.Enabled || config.Log.Level != "info" {
		t.Errorf("unexpected defaults: %+v", config)
	}
}

func TestLoadYAMLAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
listener:
  port: 20778
  read_timeout: 250ms
  queue_size: 64
http:
  address: ":9000"
log:
  level: debug
leaderboard:
  print_interval: 10s
driver_codes:
  Jane Doeson: JDN
`)

	tests := []struct {
		name        string
		environment map[string]string
		port        int
		address     string
	}{
		{"file only", map[string]string{}, 20778, ":9000"},
		{"environment wins", map[string]string{
			"RACETELEMETRY_LISTENER_PORT":  "30000",
			"RACETELEMETRY_HTTP_ADDRESS":   ":9100",
			"LISTENER_PORT":                "1",
			"RACETELEMETRY_LOG_FORMAT":     "json",
			"RACETELEMETRY_LISTENER_QUEUE": "ignored",
		}, 30000, ":9100"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config, err := loadWith(path, test.environment)

			if err != nil {
				t.Fatal(err)
			}

			if config.Listener.Port != test.port || config.HTTP.Address != test.address {
				t.Errorf("expected port %d and address %s, got %d and %s", test.port, test.address, config.Listener.Port, config.HTTP.Address)
			}

			if config.Listener.ReadTimeout != 250*time.Millisecond || config.Listener.QueueSize != 64 {
				t.Errorf("file values lost: %+v", config.Listener)
			}

			if config.Listener.MaxDatagramSize != 4096 {
				t.Errorf("default not kept for unset field, got %d", config.Listener.MaxDatagramSize)
			}

			if config.Leaderboard.PrintInterval != 10*time.Second {
				t.Errorf("expected 10s print interval, got %s", config.Leaderboard.PrintInterval)
			}

			if code := config.NameCodes().Code("Jane Doeson", 0); code != "JDN" {
				t.Errorf("expected driver code override, got %q", code)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		environment map[string]string
	}{
		{"tiny datagram", "listener:\n  max_datagram_size: 10\n", nil},
		{"bad log level", "log:\n  level: loud\n", nil},
		{"bad log format", "log:\n  format: xml\n", nil},
		{"negative port from env", "", map[string]string{"RACETELEMETRY_LISTENER_PORT": "-1"}},
		{"unparsable env", "", map[string]string{"RACETELEMETRY_LISTENER_READ_TIMEOUT": "soon"}},
		{"broken yaml", "listener: [", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.environment == nil {
				test.environment = map[string]string{}
			}

			if _, err := loadWith(writeConfig(t, test.yaml), test.environment); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := loadWith(filepath.Join(t.TempDir(), "missing.yml"), map[string]string{}); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	config, err := loadWith(writeConfig(t, ""), map[string]string{})

	if err != nil {
		t.Fatal(err)
	}

	if config.Listener.Port != 20777 {
		t.Errorf("expected defaults from an empty file, got port %d", config.Listener.Port)
	}
}

func TestNewLogger(t *testing.T) {
	config := Default()
	config.Log = LogConfig{Level: "warn", Format: "json"}

	logger := config.NewLogger()

	if logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("expected warn level, got %s", logger.GetLevel())
	}

	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("expected JSON formatter, got %T", logger.Formatter)
	}
}
