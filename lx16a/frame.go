package lx16a

import "fmt"

// SyncByte is the fixed marker value; two consecutive SyncBytes delimit the
// start of every frame in the byte stream.
const SyncByte byte = 0x55

// BroadcastID is the reserved servo ID addressing all servos on the bus.
// It is accepted only for commands that produce no reply.
const BroadcastID uint8 = 0xFE

// MaxServoID is the highest assignable individual servo ID.
const MaxServoID uint8 = 0xFD

// MaxParams is the maximum number of parameter bytes any catalog command
// carries.
const MaxParams = 4

// MinFrameLength is the minimum valid value of the length byte
// (no parameters: length + command + checksum).
const MinFrameLength = 3

// MaxFrameLength is the maximum valid value of the length byte for this
// catalog (MinFrameLength + MaxParams). Any frame declaring a larger length
// is malformed.
const MaxFrameLength = MinFrameLength + MaxParams

// syncSize is the number of sync bytes preceding the ID byte.
const syncSize = 2

// minWireSize is the smallest complete frame on the wire:
// two sync bytes + ID + length + command + checksum.
const minWireSize = syncSize + 1 + MinFrameLength

// Frame represents a single LX-16A wire message.
//
// On the wire a frame is:
//
//	[0x55][0x55][ID][Length][Command][Params(0-4)][Checksum]
//
// where Length = 3 + len(Params), counting the length, command and checksum
// bytes plus the parameters.
type Frame struct {
	ID     uint8
	Cmd    Command
	Params []byte
}

// Length returns the frame's length byte value: 3 + len(Params).
func (f *Frame) Length() byte {
	return byte(MinFrameLength + len(f.Params))
}

// Checksum computes the frame checksum:
//
//	255 - ((ID + Length + Command + sum(Params)) mod 256)
//
// computed identically on encode and verified on decode.
func (f *Frame) Checksum() byte {
	sum := uint32(f.ID) + uint32(f.Length()) + uint32(f.Cmd)
	for _, p := range f.Params {
		sum += uint32(p)
	}

	return byte(255 - sum%256)
}

// Pack serializes the frame to its wire format. The returned slice has
// length 3 + Length().
//
// Pack is a pure transformation with no failure modes; the only precondition
// is len(Params) <= MaxParams, which is enforced by Validate and violated
// only by internal misuse, never by external input.
func (f *Frame) Pack() []byte {
	length := f.Length()
	buf := make([]byte, 0, syncSize+1+int(length))

	buf = append(buf, SyncByte, SyncByte, f.ID, length, byte(f.Cmd))
	buf = append(buf, f.Params...)
	buf = append(buf, f.Checksum())

	return buf
}

// Validate checks the frame against the catalog's structural bound on
// parameter count.
func (f *Frame) Validate() error {
	if len(f.Params) > MaxParams {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyParams, len(f.Params), MaxParams)
	}

	return nil
}

// ParseFrame deserializes a frame from its complete wire format, including
// the leading sync bytes and trailing checksum.
//
// ParseFrame validates:
//   - data is at least minWireSize bytes and starts with two sync bytes,
//   - the declared length is within [MinFrameLength, MaxFrameLength] and
//     consistent with len(data),
//   - the trailing checksum matches the checksum computed over the fields.
func ParseFrame(data []byte) (*Frame, error) {
	if len(data) < minWireSize {
		return nil, fmt.Errorf("%w: got %d bytes, want at least %d", ErrFrameTooShort, len(data), minWireSize)
	}

	if data[0] != SyncByte || data[1] != SyncByte {
		return nil, fmt.Errorf("%w: got 0x%02X 0x%02X", ErrInvalidSync, data[0], data[1])
	}

	length := int(data[3])
	if length < MinFrameLength || length > MaxFrameLength {
		return nil, fmt.Errorf("%w: got %d, want %d-%d", ErrInvalidLength, length, MinFrameLength, MaxFrameLength)
	}

	if len(data) != syncSize+1+length {
		return nil, fmt.Errorf("%w: declared length %d, got %d bytes, want %d",
			ErrFrameTooShort, length, len(data), syncSize+1+length)
	}

	f := &Frame{
		ID:  data[2],
		Cmd: Command(data[4]),
	}

	paramLen := length - MinFrameLength
	if paramLen > 0 {
		f.Params = make([]byte, paramLen)
		copy(f.Params, data[5:5+paramLen])
	}

	wireChecksum := data[len(data)-1]
	calcChecksum := f.Checksum()
	if wireChecksum != calcChecksum {
		return f, fmt.Errorf("%w: wire=0x%02X, computed=0x%02X", ErrChecksumMismatch, wireChecksum, calcChecksum)
	}

	return f, nil
}
