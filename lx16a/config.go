package lx16a

import (
	"fmt"
	"time"

	"github.com/arloliu/go-lx16a/logger"
)

// Default configuration values.
const (
	// DefaultBaudRate is the LX-16A bus signaling rate.
	DefaultBaudRate = 115200

	// DefaultReadTimeout is the per-read deadline applied to the transport.
	DefaultReadTimeout = 1 * time.Second
)

// Read-timeout range limits.
const (
	MinReadTimeout = 10 * time.Millisecond
	MaxReadTimeout = 30 * time.Second
)

// BusConfig holds all configuration for an LX-16A bus.
type BusConfig struct {
	// baudRate is the serial signaling rate used when opening a real port.
	baudRate int

	// readTimeout is the per-read deadline. A read that fails to complete
	// within this duration returns ErrTimeout.
	readTimeout time.Duration

	// checksumCheck enables checksum verification of received frames.
	// A frame failing verification is skipped like a malformed frame.
	checksumCheck bool

	// strictReply enables reply correlation: frames whose servo ID or
	// command echo does not match the outstanding query are discarded.
	strictReply bool

	logger logger.Logger
}

// Option configures a Bus. Options are applied in order; see the With*
// functions.
type Option func(*BusConfig) error

// newBusConfig builds a BusConfig from defaults plus the given options.
func newBusConfig(opts ...Option) (*BusConfig, error) {
	cfg := &BusConfig{
		baudRate:      DefaultBaudRate,
		readTimeout:   DefaultReadTimeout,
		checksumCheck: true,
		strictReply:   true,
		logger:        logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// WithBaudRate sets the serial baud rate used by Open.
// It has no effect on a Bus constructed over an injected Transport.
func WithBaudRate(rate int) Option {
	return func(cfg *BusConfig) error {
		if rate <= 0 {
			return fmt.Errorf("lx16a: invalid baud rate %d", rate)
		}
		cfg.baudRate = rate

		return nil
	}
}

// WithReadTimeout sets the per-read deadline for response reads.
// The duration must be within [MinReadTimeout, MaxReadTimeout].
func WithReadTimeout(d time.Duration) Option {
	return func(cfg *BusConfig) error {
		if d < MinReadTimeout || d > MaxReadTimeout {
			return fmt.Errorf("lx16a: read timeout %v out of range [%v, %v]", d, MinReadTimeout, MaxReadTimeout)
		}
		cfg.readTimeout = d

		return nil
	}
}

// WithChecksumCheck enables or disables checksum verification of received
// frames. Enabled by default; disabling restores the loose behavior of
// accepting frames without verifying the trailing checksum.
func WithChecksumCheck(enabled bool) Option {
	return func(cfg *BusConfig) error {
		cfg.checksumCheck = enabled

		return nil
	}
}

// WithStrictReply enables or disables reply correlation by servo ID and
// command echo. Enabled by default. When disabled, a query returns the first
// well-formed frame found on the wire regardless of its origin.
func WithStrictReply(enabled bool) Option {
	return func(cfg *BusConfig) error {
		cfg.strictReply = enabled

		return nil
	}
}

// WithLogger sets the logger for the bus.
func WithLogger(l logger.Logger) Option {
	return func(cfg *BusConfig) error {
		if l == nil {
			return fmt.Errorf("lx16a: logger is nil")
		}
		cfg.logger = l

		return nil
	}
}
