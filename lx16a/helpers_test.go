package lx16a

import (
	"bytes"
	"sync"
	"testing"
)

// newTestConfig creates a BusConfig with defaults plus the given options.
func newTestConfig(t *testing.T, opts ...Option) *BusConfig {
	t.Helper()

	cfg, err := newBusConfig(opts...)
	if err != nil {
		t.Fatalf("newTestConfig: %v", err)
	}

	return cfg
}

// scriptTransport is a Transport fed from a scripted byte stream, for tests
// without real serial hardware.
//
// Reads consume the stream; once it is exhausted, ReadFull returns readErr
// (ErrTimeout unless overridden), simulating an expired read deadline.
// Every WriteAll call is recorded as one entry in writes.
type scriptTransport struct {
	mu       sync.Mutex
	stream   bytes.Buffer
	writes   [][]byte
	readErr  error
	writeErr error
	closed   bool
}

func newScriptTransport(chunks ...[]byte) *scriptTransport {
	st := &scriptTransport{readErr: ErrTimeout}
	for _, c := range chunks {
		st.stream.Write(c)
	}

	return st
}

// feed appends bytes to the read stream.
func (st *scriptTransport) feed(data []byte) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.stream.Write(data)
}

func (st *scriptTransport) ReadFull(buf []byte) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.stream.Len() < len(buf) {
		return st.readErr
	}

	_, _ = st.stream.Read(buf)

	return nil
}

func (st *scriptTransport) WriteAll(data []byte) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.writeErr != nil {
		return st.writeErr
	}

	recorded := make([]byte, len(data))
	copy(recorded, data)
	st.writes = append(st.writes, recorded)

	return nil
}

func (st *scriptTransport) Close() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.closed = true

	return nil
}

// recordedWrites returns a snapshot of all WriteAll payloads.
func (st *scriptTransport) recordedWrites() [][]byte {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([][]byte, len(st.writes))
	copy(out, st.writes)

	return out
}

// newTestBus creates a Bus over a scripted transport.
func newTestBus(t *testing.T, st *scriptTransport, opts ...Option) *Bus {
	t.Helper()

	bus, err := NewBus(st, opts...)
	if err != nil {
		t.Fatalf("newTestBus: %v", err)
	}

	return bus
}

// packFrame builds the wire bytes of a frame, for feeding test streams.
func packFrame(id uint8, cmd Command, params ...byte) []byte {
	f := &Frame{ID: id, Cmd: cmd, Params: params}

	return f.Pack()
}
