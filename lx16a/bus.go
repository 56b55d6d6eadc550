package lx16a

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/arloliu/go-lx16a/logger"
)

// Bus represents one LX-16A servo bus over a shared half-duplex transport.
//
// The serial medium cannot be read and written concurrently without
// interleaving byte streams, and the wire format carries no request ID, so
// the bus enforces exclusive access with two nested critical sections:
//
//   - writeMutex serializes raw frame writes. Fire-and-forget commands only
//     need this level, since no response is expected.
//   - exchangeMutex spans a full query (write request, then block reading
//     the response), so that two goroutines cannot issue overlapping queries
//     whose responses could be misattributed.
//
// Lock order is exchangeMutex before writeMutex.
//
// All methods are safe for concurrent use.
type Bus struct {
	transport Transport
	cfg       *BusConfig
	logger    logger.Logger

	writeMutex    sync.Mutex
	exchangeMutex sync.Mutex

	reader *frameReader
	servos *xsync.MapOf[uint8, *Servo]

	metrics BusMetrics
	closed  atomic.Bool
}

// Open opens the named serial device at the configured baud rate (8N1) and
// returns a Bus over it.
func Open(device string, opts ...Option) (*Bus, error) {
	cfg, err := newBusConfig(opts...)
	if err != nil {
		return nil, err
	}

	transport, err := openSerial(device, cfg.baudRate, cfg.readTimeout)
	if err != nil {
		return nil, err
	}

	return newBus(transport, cfg), nil
}

// NewBus creates a Bus over an injected transport. The transport is assumed
// to already apply the read-timeout discipline described by [Transport].
func NewBus(t Transport, opts ...Option) (*Bus, error) {
	cfg, err := newBusConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newBus(t, cfg), nil
}

func newBus(t Transport, cfg *BusConfig) *Bus {
	b := &Bus{
		transport: t,
		cfg:       cfg,
		logger:    cfg.logger,
		servos:    xsync.NewMapOf[uint8, *Servo](),
	}
	b.reader = newFrameReader(t, cfg, &b.metrics)

	return b
}

// Servo returns the facade for the servo with the given ID.
// Handles are cached; calling Servo twice with the same ID returns the same
// handle.
func (b *Bus) Servo(id uint8) *Servo {
	s, _ := b.servos.LoadOrCompute(id, func() *Servo {
		return &Servo{bus: b, id: id}
	})

	return s
}

// Broadcast returns the facade addressing all servos on the bus.
// Query methods on the broadcast facade return [ErrBroadcastQuery].
func (b *Bus) Broadcast() *Servo {
	return b.Servo(BroadcastID)
}

// Metrics returns the bus metrics.
func (b *Bus) Metrics() *BusMetrics {
	return &b.metrics
}

// Close closes the underlying transport. Subsequent operations return
// ErrBusClosed.
func (b *Bus) Close() error {
	if b.closed.Swap(true) {
		return nil
	}

	return b.transport.Close()
}

// Command encodes and writes one fire-and-forget frame.
//
// It acquires only the write-level lock: no response is expected, so the
// exchange does not need to be held. Broadcast IDs are accepted.
func (b *Bus) Command(id uint8, cmd Command, params ...byte) error {
	if b.closed.Load() {
		return ErrBusClosed
	}

	frame := &Frame{ID: id, Cmd: cmd, Params: params}
	if err := frame.Validate(); err != nil {
		return err
	}

	data := frame.Pack()

	b.writeMutex.Lock()
	defer b.writeMutex.Unlock()

	if err := b.transport.WriteAll(data); err != nil {
		return fmt.Errorf("lx16a: send %s to servo %d: %w", cmd, id, err)
	}

	b.metrics.incFrameSendCount()

	return nil
}

// Query sends a parameterless read command and blocks until the matching
// reply frame arrives or the read deadline elapses.
//
// The exchange lock is held for the full write-then-read duration. When
// strict reply matching is enabled (the default), frames whose servo ID or
// command echo does not match the request are counted, logged and skipped;
// the scan continues until a matching frame arrives or the transport times
// out.
func (b *Bus) Query(id uint8, cmd Command) (*Frame, error) {
	if id == BroadcastID {
		return nil, ErrBroadcastQuery
	}

	b.exchangeMutex.Lock()
	defer b.exchangeMutex.Unlock()

	if err := b.Command(id, cmd); err != nil {
		return nil, err
	}

	for {
		frame, err := b.reader.readFrame()
		if err != nil {
			if errors.Is(err, ErrTimeout) {
				b.metrics.incTimeoutCount()
			}

			return nil, fmt.Errorf("lx16a: query %s to servo %d: %w", cmd, id, err)
		}

		if b.cfg.strictReply && (frame.ID != id || frame.Cmd != cmd) {
			b.metrics.incReplyMismatchCount()
			b.logger.Debug("lx16a: discarding unmatched reply",
				"wantID", id,
				"gotID", frame.ID,
				"wantCommand", cmd.String(),
				"gotCommand", frame.Cmd.String(),
			)

			continue
		}

		return frame, nil
	}
}
