package lx16a

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Transport is the byte-stream the bus runs over.
//
// The protocol engine never performs partial reads or writes of its own
// accord: every call is for an exact, protocol-determined byte count.
// Implementations must block in ReadFull until the buffer is filled, the
// configured read timeout elapses (returning [ErrTimeout]), or an I/O error
// occurs.
type Transport interface {
	// ReadFull reads exactly len(buf) bytes into buf.
	ReadFull(buf []byte) error

	// WriteAll writes all of data.
	WriteAll(data []byte) error

	// Close releases the underlying device.
	Close() error
}

// serialPort is the slice of [serial.Port] the transport uses. Real ports and
// test fakes both satisfy it.
type serialPort interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// serialTransport adapts a serial port to the Transport interface.
type serialTransport struct {
	port serialPort
}

// openSerial opens the named serial device in 8N1 mode at the given baud rate
// and applies readTimeout as the per-read deadline.
func openSerial(device string, baudRate int, readTimeout time.Duration) (*serialTransport, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("lx16a: open %s: %w", device, err)
	}

	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()

		return nil, fmt.Errorf("lx16a: set read timeout on %s: %w", device, err)
	}

	return &serialTransport{port: port}, nil
}

// ReadFull reads exactly len(buf) bytes from the port.
//
// go.bug.st/serial signals an expired read timeout by returning zero bytes
// with a nil error; that is mapped to ErrTimeout. The timeout applies per
// Read call, so the deadline restarts with every chunk of data that arrives.
func (t *serialTransport) ReadFull(buf []byte) error {
	for read := 0; read < len(buf); {
		n, err := t.port.Read(buf[read:])
		if err != nil {
			return fmt.Errorf("lx16a: read: %w", err)
		}

		if n == 0 {
			return ErrTimeout
		}

		read += n
	}

	return nil
}

// WriteAll writes all bytes in data to the port.
func (t *serialTransport) WriteAll(data []byte) error {
	for written := 0; written < len(data); {
		n, err := t.port.Write(data[written:])
		written += n

		if err != nil {
			return fmt.Errorf("lx16a: write: %w", err)
		}
	}

	return nil
}

// Close closes the underlying port.
func (t *serialTransport) Close() error {
	return t.port.Close()
}
