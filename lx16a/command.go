package lx16a

import "fmt"

// Command is a single opcode from the LX-16A bus command set.
//
// The command set is fixed by the LewanSoul Bus Servo Communication Protocol:
// each opcode carries a fixed number of request parameter bytes, and read
// opcodes produce a reply with a fixed payload size.
type Command uint8

// LX-16A bus command set.
const (
	CmdMoveTimeWrite     Command = 1
	CmdMoveTimeRead      Command = 2
	CmdMoveTimeWaitWrite Command = 7
	CmdMoveTimeWaitRead  Command = 8
	CmdMoveStart         Command = 11
	CmdMoveStop          Command = 12
	CmdIDWrite           Command = 13
	CmdIDRead            Command = 14
	CmdAngleOffsetAdjust Command = 17
	CmdAngleOffsetWrite  Command = 18
	CmdAngleOffsetRead   Command = 19
	CmdAngleLimitWrite   Command = 20
	CmdAngleLimitRead    Command = 21
	CmdVinLimitWrite     Command = 22
	CmdVinLimitRead      Command = 23
	CmdTempMaxLimitWrite Command = 24
	CmdTempMaxLimitRead  Command = 25
	CmdTempRead          Command = 26
	CmdVinRead           Command = 27
	CmdPosRead           Command = 28
	CmdMotorModeWrite    Command = 29
	CmdMotorModeRead     Command = 30
	CmdLoadWrite         Command = 31
	CmdLoadRead          Command = 32
	CmdLEDCtrlWrite      Command = 33
	CmdLEDCtrlRead       Command = 34
	CmdLEDErrorWrite     Command = 35
	CmdLEDErrorRead      Command = 36
)

// noReply marks a command that does not produce a reply frame.
const noReply = -1

// commandSpec describes the fixed wire shape of one command: its name for
// logging, the number of request parameter bytes, and the number of reply
// payload bytes (noReply for fire-and-forget commands).
type commandSpec struct {
	name        string
	reqParams   int
	replyParams int
}

// commandTable is the closed command catalog. It is never mutated at runtime.
var commandTable = map[Command]commandSpec{
	CmdMoveTimeWrite:     {"SERVO_MOVE_TIME_WRITE", 4, noReply},
	CmdMoveTimeRead:      {"SERVO_MOVE_TIME_READ", 0, 4},
	CmdMoveTimeWaitWrite: {"SERVO_MOVE_TIME_WAIT_WRITE", 4, noReply},
	CmdMoveTimeWaitRead:  {"SERVO_MOVE_TIME_WAIT_READ", 0, 4},
	CmdMoveStart:         {"SERVO_MOVE_START", 0, noReply},
	CmdMoveStop:          {"SERVO_MOVE_STOP", 0, noReply},
	CmdIDWrite:           {"SERVO_ID_WRITE", 1, noReply},
	CmdIDRead:            {"SERVO_ID_READ", 0, 1},
	CmdAngleOffsetAdjust: {"SERVO_ANGLE_OFFSET_ADJUST", 1, noReply},
	CmdAngleOffsetWrite:  {"SERVO_ANGLE_OFFSET_WRITE", 0, noReply},
	CmdAngleOffsetRead:   {"SERVO_ANGLE_OFFSET_READ", 0, 1},
	CmdAngleLimitWrite:   {"SERVO_ANGLE_LIMIT_WRITE", 4, noReply},
	CmdAngleLimitRead:    {"SERVO_ANGLE_LIMIT_READ", 0, 4},
	CmdVinLimitWrite:     {"SERVO_VIN_LIMIT_WRITE", 4, noReply},
	CmdVinLimitRead:      {"SERVO_VIN_LIMIT_READ", 0, 4},
	CmdTempMaxLimitWrite: {"SERVO_TEMP_MAX_LIMIT_WRITE", 1, noReply},
	CmdTempMaxLimitRead:  {"SERVO_TEMP_MAX_LIMIT_READ", 0, 1},
	CmdTempRead:          {"SERVO_TEMP_READ", 0, 1},
	CmdVinRead:           {"SERVO_VIN_READ", 0, 2},
	CmdPosRead:           {"SERVO_POS_READ", 0, 2},
	CmdMotorModeWrite:    {"SERVO_OR_MOTOR_MODE_WRITE", 4, noReply},
	CmdMotorModeRead:     {"SERVO_OR_MOTOR_MODE_READ", 0, 4},
	CmdLoadWrite:         {"SERVO_LOAD_OR_UNLOAD_WRITE", 1, noReply},
	CmdLoadRead:          {"SERVO_LOAD_OR_UNLOAD_READ", 0, 1},
	CmdLEDCtrlWrite:      {"SERVO_LED_CTRL_WRITE", 1, noReply},
	CmdLEDCtrlRead:       {"SERVO_LED_CTRL_READ", 0, 1},
	CmdLEDErrorWrite:     {"SERVO_LED_ERROR_WRITE", 1, noReply},
	CmdLEDErrorRead:      {"SERVO_LED_ERROR_READ", 0, 1},
}

// Valid reports whether c is part of the LX-16A command catalog.
func (c Command) Valid() bool {
	_, ok := commandTable[c]
	return ok
}

// ParamCount returns the number of request parameter bytes c carries.
// It returns 0 for commands outside the catalog.
func (c Command) ParamCount() int {
	return commandTable[c].reqParams
}

// HasReply reports whether c produces a reply frame.
// Broadcast-addressed commands must never expect a reply, so only commands
// with HasReply() == false may be sent to [BroadcastID].
func (c Command) HasReply() bool {
	spec, ok := commandTable[c]
	return ok && spec.replyParams != noReply
}

// ReplyParamCount returns the number of payload bytes in the reply to c,
// or 0 if c has no reply.
func (c Command) ReplyParamCount() int {
	spec, ok := commandTable[c]
	if !ok || spec.replyParams == noReply {
		return 0
	}

	return spec.replyParams
}

// String returns the protocol name of the command, e.g. "SERVO_POS_READ".
func (c Command) String() string {
	if spec, ok := commandTable[c]; ok {
		return spec.name
	}

	return fmt.Sprintf("SERVO_UNKNOWN(%d)", uint8(c))
}
