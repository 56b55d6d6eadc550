package lx16a

import (
	"errors"

	"github.com/arloliu/go-lx16a/logger"
)

// frameReader extracts well-formed frames from the raw byte stream.
//
// It is stateless across calls except for the transport's read position:
// byte alignment after a failed or corrupted exchange is recovered solely by
// the resynchronization scan at the start of the next readFrame call.
//
// This type is NOT goroutine-safe. The bus exchange lock must ensure that
// only one reader is active at a time, consistent with the half-duplex
// nature of the link.
type frameReader struct {
	transport Transport
	cfg       *BusConfig
	logger    logger.Logger
	metrics   *BusMetrics
}

func newFrameReader(t Transport, cfg *BusConfig, metrics *BusMetrics) *frameReader {
	return &frameReader{
		transport: t,
		cfg:       cfg,
		logger:    cfg.logger,
		metrics:   metrics,
	}
}

// readFrame reads one well-formed frame from the transport.
//
// The scan reads one byte at a time until a sync byte is observed, then
// requires the next byte to also be a sync byte; otherwise the scan resumes
// one byte further along. A stream that has lost alignment, e.g. after a
// dropped byte, recovers by sliding forward rather than failing permanently.
//
// Once both sync bytes are confirmed, the ID, length and command bytes are
// read unconditionally. A frame declaring a length outside
// [MinFrameLength, MaxFrameLength] is counted, logged and discarded, and the
// scan resumes; it is never returned to the caller. The same applies to a
// checksum mismatch when checksum verification is enabled.
//
// Transport timeouts and I/O failures abort the read and are surfaced to the
// caller; readFrame does not retry internally.
func (r *frameReader) readFrame() (*Frame, error) {
	var b [1]byte
	hdr := make([]byte, 3)

	for {
		// Sync scan: slide forward one byte at a time.
		if err := r.transport.ReadFull(b[:]); err != nil {
			return nil, err
		}
		if b[0] != SyncByte {
			continue
		}

		if err := r.transport.ReadFull(b[:]); err != nil {
			return nil, err
		}
		if b[0] != SyncByte {
			continue
		}

		// Sync confirmed: read ID, length and command unconditionally.
		if err := r.transport.ReadFull(hdr); err != nil {
			return nil, err
		}

		length := int(hdr[1])
		if length < MinFrameLength || length > MaxFrameLength {
			r.metrics.incMalformedFrameCount()
			r.logger.Debug("lx16a: discarding frame with invalid length",
				"servoID", hdr[0],
				"length", length,
				"command", Command(hdr[2]).String(),
			)

			continue
		}

		// Parameters plus the trailing checksum byte.
		tail := make([]byte, length-2)
		if err := r.transport.ReadFull(tail); err != nil {
			return nil, err
		}

		wire := make([]byte, 0, syncSize+1+length)
		wire = append(wire, SyncByte, SyncByte)
		wire = append(wire, hdr...)
		wire = append(wire, tail...)

		frame, err := ParseFrame(wire)
		if err != nil {
			if errors.Is(err, ErrChecksumMismatch) {
				if !r.cfg.checksumCheck {
					r.metrics.incFrameRecvCount()

					return frame, nil
				}

				r.metrics.incChecksumErrorCount()
				r.logger.Debug("lx16a: discarding frame with checksum mismatch",
					"servoID", frame.ID,
					"command", frame.Cmd.String(),
					"error", err,
				)

				continue
			}

			// ParseFrame cannot fail otherwise on bytes assembled above.
			return nil, err
		}

		r.metrics.incFrameRecvCount()

		return frame, nil
	}
}
