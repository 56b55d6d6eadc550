package lx16a

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_Command_WritesFrame(t *testing.T) {
	st := newScriptTransport()
	bus := newTestBus(t, st)

	require.NoError(t, bus.Command(1, CmdMoveStart))

	writes := st.recordedWrites()
	require.Len(t, writes, 1)
	assert.Equal(t, packFrame(1, CmdMoveStart), writes[0])
	assert.Equal(t, uint64(1), bus.Metrics().FrameSendCount.Load())
}

func TestBus_Command_Broadcast(t *testing.T) {
	st := newScriptTransport()
	bus := newTestBus(t, st)

	// Fire-and-forget commands accept the broadcast address.
	require.NoError(t, bus.Command(BroadcastID, CmdMoveStop))

	writes := st.recordedWrites()
	require.Len(t, writes, 1)
	assert.Equal(t, BroadcastID, writes[0][2])
}

func TestBus_Command_TooManyParams(t *testing.T) {
	st := newScriptTransport()
	bus := newTestBus(t, st)

	err := bus.Command(1, CmdMoveTimeWrite, 1, 2, 3, 4, 5)
	assert.ErrorIs(t, err, ErrTooManyParams)
	assert.Empty(t, st.recordedWrites())
}

func TestBus_Query_EndToEnd(t *testing.T) {
	// Position-read reply: 55 55 01 05 1C 64 00 79.
	st := newScriptTransport(packFrame(1, CmdPosRead, 0x64, 0x00))
	bus := newTestBus(t, st)

	frame, err := bus.Query(1, CmdPosRead)
	require.NoError(t, err)

	assert.Equal(t, uint8(1), frame.ID)
	assert.Equal(t, CmdPosRead, frame.Cmd)
	assert.Equal(t, []byte{0x64, 0x00}, frame.Params)

	// The request on the wire: 55 55 01 03 1C DF.
	writes := st.recordedWrites()
	require.Len(t, writes, 1)
	assert.Equal(t, []byte{0x55, 0x55, 0x01, 0x03, 0x1C, 0xDF}, writes[0])
}

func TestBus_Query_Broadcast(t *testing.T) {
	st := newScriptTransport()
	bus := newTestBus(t, st)

	_, err := bus.Query(BroadcastID, CmdPosRead)
	assert.ErrorIs(t, err, ErrBroadcastQuery)
	assert.Empty(t, st.recordedWrites(), "no request may be written for a broadcast query")
}

func TestBus_Query_StrictReplySkipsWrongID(t *testing.T) {
	// A stale reply from servo 2 precedes the real reply from servo 1.
	st := newScriptTransport(
		packFrame(2, CmdPosRead, 0x00, 0x01),
		packFrame(1, CmdPosRead, 0x64, 0x00),
	)
	bus := newTestBus(t, st)

	frame, err := bus.Query(1, CmdPosRead)
	require.NoError(t, err)

	assert.Equal(t, uint8(1), frame.ID)
	assert.Equal(t, []byte{0x64, 0x00}, frame.Params)
	assert.Equal(t, uint64(1), bus.Metrics().ReplyMismatchCount.Load())
}

func TestBus_Query_StrictReplySkipsWrongCommand(t *testing.T) {
	st := newScriptTransport(
		packFrame(1, CmdTempRead, 0x2A),
		packFrame(1, CmdPosRead, 0x64, 0x00),
	)
	bus := newTestBus(t, st)

	frame, err := bus.Query(1, CmdPosRead)
	require.NoError(t, err)
	assert.Equal(t, CmdPosRead, frame.Cmd)
}

func TestBus_Query_LooseReply(t *testing.T) {
	// With strict matching disabled, the first well-formed frame wins
	// regardless of its origin.
	st := newScriptTransport(packFrame(2, CmdPosRead, 0x00, 0x01))
	bus := newTestBus(t, st, WithStrictReply(false))

	frame, err := bus.Query(1, CmdPosRead)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), frame.ID)
}

func TestBus_Query_Timeout(t *testing.T) {
	st := newScriptTransport()
	bus := newTestBus(t, st)

	_, err := bus.Query(1, CmdPosRead)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, uint64(1), bus.Metrics().TimeoutCount.Load())
}

func TestBus_Query_StrictReplyExhaustedByTimeout(t *testing.T) {
	// Only mismatched frames on the wire: the scan keeps discarding until
	// the transport times out.
	st := newScriptTransport(
		packFrame(2, CmdPosRead, 0x00, 0x01),
		packFrame(3, CmdPosRead, 0x00, 0x02),
	)
	bus := newTestBus(t, st)

	_, err := bus.Query(1, CmdPosRead)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, uint64(2), bus.Metrics().ReplyMismatchCount.Load())
}

func TestBus_Closed(t *testing.T) {
	st := newScriptTransport()
	bus := newTestBus(t, st)

	require.NoError(t, bus.Close())
	assert.True(t, st.closed)

	assert.ErrorIs(t, bus.Command(1, CmdMoveStart), ErrBusClosed)

	_, err := bus.Query(1, CmdPosRead)
	assert.ErrorIs(t, err, ErrBusClosed)

	// Closing twice is a no-op.
	require.NoError(t, bus.Close())
}

func TestBus_ServoHandleCached(t *testing.T) {
	st := newScriptTransport()
	bus := newTestBus(t, st)

	assert.Same(t, bus.Servo(1), bus.Servo(1))
	assert.NotSame(t, bus.Servo(1), bus.Servo(2))
	assert.Equal(t, BroadcastID, bus.Broadcast().ID())
	assert.Same(t, bus.Broadcast(), bus.Servo(BroadcastID))
}

func TestBus_ConcurrentQueries(t *testing.T) {
	// Two goroutines query concurrently; the exchange lock must keep each
	// write-then-read exchange atomic, so every recorded write is one
	// complete, well-formed frame and both replies decode.
	st := newScriptTransport(
		packFrame(1, CmdPosRead, 0x64, 0x00),
		packFrame(1, CmdPosRead, 0x64, 0x00),
	)
	bus := newTestBus(t, st)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = bus.Query(1, CmdPosRead)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "query %d", i)
	}

	writes := st.recordedWrites()
	require.Len(t, writes, 2)
	for i, w := range writes {
		frame, err := ParseFrame(w)
		require.NoError(t, err, "write %d must be one complete frame", i)
		assert.Equal(t, CmdPosRead, frame.Cmd)
	}
}
