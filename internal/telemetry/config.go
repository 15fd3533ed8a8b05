package telemetry

import (
	"time"

	"github.com/pkg/errors"

	"justapengu.in/racetelemetry/pkg/f1udp"
)

const (
	DefaultPort            = 20777
	DefaultReadTimeout     = time.Second
	DefaultMaxDatagramSize = 4096
	DefaultQueueSize       = 1024
)

type ListenerConfig struct {
	BindAddress       string        `yaml:"bind_address" env:"BIND_ADDRESS"`
	Port              int           `yaml:"port" env:"PORT"`
	ReadTimeout       time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	MaxDatagramSize   int           `yaml:"max_datagram_size" env:"MAX_DATAGRAM_SIZE"`
	QueueSize         int           `yaml:"queue_size" env:"QUEUE_SIZE"`
	ReceiveBufferSize int           `yaml:"receive_buffer_size" env:"RECEIVE_BUFFER_SIZE"`
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		BindAddress:     "0.0.0.0",
		Port:            DefaultPort,
		ReadTimeout:     DefaultReadTimeout,
		MaxDatagramSize: DefaultMaxDatagramSize,
		QueueSize:       DefaultQueueSize,
	}
}

// Validate checks the config. Port 0 is allowed and binds an ephemeral port.
func (c ListenerConfig) Validate() error {
	var errs groupedError

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, errors.Errorf("listener: port %d out of range", c.Port))
	}

	if c.ReadTimeout <= 0 {
		errs = append(errs, errors.Errorf("listener: read_timeout must be positive, got %s", c.ReadTimeout))
	}

	if c.MaxDatagramSize < f1udp.EnvelopeSize {
		errs = append(errs, errors.Errorf("listener: max_datagram_size %d is smaller than the %d byte header", c.MaxDatagramSize, f1udp.EnvelopeSize))
	}

	if c.QueueSize < 1 {
		errs = append(errs, errors.Errorf("listener: queue_size must be at least 1, got %d", c.QueueSize))
	}

	if c.ReceiveBufferSize < 0 {
		errs = append(errs, errors.Errorf("listener: receive_buffer_size must not be negative, got %d", c.ReceiveBufferSize))
	}

	return errs.Err()
}
