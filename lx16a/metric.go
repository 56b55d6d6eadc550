package lx16a

import (
	"sync/atomic"
)

// BusMetrics contains atomic metrics for an LX-16A bus.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type BusMetrics struct {
	// FrameSendCount indicates the number of frames written to the bus.
	FrameSendCount atomic.Uint64
	// FrameRecvCount indicates the number of well-formed frames received.
	FrameRecvCount atomic.Uint64

	// MalformedFrameCount indicates the number of frames discarded for
	// declaring an invalid length.
	MalformedFrameCount atomic.Uint64
	// ChecksumErrorCount indicates the number of frames discarded for a
	// checksum mismatch.
	ChecksumErrorCount atomic.Uint64
	// ReplyMismatchCount indicates the number of frames discarded because
	// their servo ID or command did not match the outstanding query.
	ReplyMismatchCount atomic.Uint64

	// TimeoutCount indicates the number of reads aborted by the read timeout.
	TimeoutCount atomic.Uint64
}

func (m *BusMetrics) incFrameSendCount() {
	m.FrameSendCount.Add(1)
}

func (m *BusMetrics) incFrameRecvCount() {
	m.FrameRecvCount.Add(1)
}

func (m *BusMetrics) incMalformedFrameCount() {
	m.MalformedFrameCount.Add(1)
}

func (m *BusMetrics) incChecksumErrorCount() {
	m.ChecksumErrorCount.Add(1)
}

func (m *BusMetrics) incReplyMismatchCount() {
	m.ReplyMismatchCount.Add(1)
}

func (m *BusMetrics) incTimeoutCount() {
	m.TimeoutCount.Add(1)
}
