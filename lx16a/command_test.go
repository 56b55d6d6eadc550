package lx16a

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandTable_Arity(t *testing.T) {
	for cmd, spec := range commandTable {
		assert.GreaterOrEqual(t, spec.reqParams, 0, "command %s", spec.name)
		assert.LessOrEqual(t, spec.reqParams, MaxParams, "command %s", spec.name)

		if spec.replyParams != noReply {
			assert.Greater(t, spec.replyParams, 0, "command %s", spec.name)
			assert.LessOrEqual(t, spec.replyParams, MaxParams, "command %s", spec.name)
			assert.True(t, cmd.HasReply())
		} else {
			assert.False(t, cmd.HasReply())
		}
	}
}

func TestCommand_Valid(t *testing.T) {
	assert.True(t, CmdMoveTimeWrite.Valid())
	assert.True(t, CmdLEDErrorRead.Valid())

	// Gaps in the numeric opcode space are not part of the catalog.
	assert.False(t, Command(0).Valid())
	assert.False(t, Command(3).Valid())
	assert.False(t, Command(16).Valid())
	assert.False(t, Command(37).Valid())
}

func TestCommand_ParamCount(t *testing.T) {
	assert.Equal(t, 4, CmdMoveTimeWrite.ParamCount())
	assert.Equal(t, 0, CmdMoveStart.ParamCount())
	assert.Equal(t, 1, CmdIDWrite.ParamCount())
	assert.Equal(t, 0, Command(99).ParamCount())
}

func TestCommand_ReplyParamCount(t *testing.T) {
	assert.Equal(t, 2, CmdPosRead.ReplyParamCount())
	assert.Equal(t, 1, CmdTempRead.ReplyParamCount())
	assert.Equal(t, 4, CmdMotorModeRead.ReplyParamCount())
	assert.Equal(t, 0, CmdMoveStop.ReplyParamCount())
	assert.Equal(t, 0, Command(99).ReplyParamCount())
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "SERVO_POS_READ", CmdPosRead.String())
	assert.Equal(t, "SERVO_MOVE_TIME_WRITE", CmdMoveTimeWrite.String())
	assert.Equal(t, "SERVO_UNKNOWN(99)", Command(99).String())
}
