package lx16a

import "errors"

var (
	// Frame-level errors.

	// ErrFrameTooShort indicates that a byte sequence is too short to hold a
	// complete frame.
	ErrFrameTooShort = errors.New("lx16a: frame too short")

	// ErrInvalidSync indicates that a byte sequence does not start with the
	// two 0x55 sync bytes.
	ErrInvalidSync = errors.New("lx16a: missing sync bytes")

	// ErrInvalidLength indicates that a frame declared a length outside the
	// valid range for the command catalog.
	ErrInvalidLength = errors.New("lx16a: invalid frame length")

	// ErrChecksumMismatch indicates that a frame's trailing checksum does not
	// match the checksum computed over its fields.
	ErrChecksumMismatch = errors.New("lx16a: checksum mismatch")

	// ErrTooManyParams indicates that a frame was constructed with more
	// parameter bytes than the catalog allows.
	ErrTooManyParams = errors.New("lx16a: too many parameter bytes")
)

var (
	// Bus-level errors.

	// ErrTimeout indicates that a blocking read did not complete within the
	// configured read timeout. It is distinct from other I/O errors so that
	// callers can choose to retry or re-probe.
	ErrTimeout = errors.New("lx16a: read timeout")

	// ErrBusClosed indicates that an operation was attempted on a closed bus.
	ErrBusClosed = errors.New("lx16a: bus closed")

	// ErrBroadcastQuery indicates that a query command was addressed to the
	// broadcast ID. Broadcast is valid only for commands without a reply.
	ErrBroadcastQuery = errors.New("lx16a: query addressed to broadcast ID")

	// ErrInvalidServoID indicates a servo ID outside the assignable range
	// [0, 253].
	ErrInvalidServoID = errors.New("lx16a: servo ID out of range")

	// ErrReplyTooShort indicates that a reply frame carried fewer payload
	// bytes than the command's catalog entry requires.
	ErrReplyTooShort = errors.New("lx16a: reply payload too short")
)
