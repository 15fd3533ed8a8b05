package livefeed

import (
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	Enabled      bool          `yaml:"enabled" env:"ENABLED"`
	Address      string        `yaml:"address" env:"ADDRESS"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`

	// MaxConnections caps concurrent HTTP and websocket connections. Zero
	// means no limit.
	MaxConnections int `yaml:"max_connections" env:"MAX_CONNECTIONS"`
}

func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		Address:        "127.0.0.1:8077",
		WriteTimeout:   5 * time.Second,
		MaxConnections: 64,
	}
}

func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Address == "" {
		return errors.New("http: address is required when enabled")
	}

	if c.WriteTimeout <= 0 {
		return errors.Errorf("http: write_timeout must be positive, got %s", c.WriteTimeout)
	}

	if c.MaxConnections < 0 {
		return errors.Errorf("http: max_connections must not be negative, got %d", c.MaxConnections)
	}

	return nil
}
