package lx16a

import (
	"encoding/binary"
	"fmt"
	"time"
)

// MotorMode selects between position-servo and continuous-rotation operation.
type MotorMode uint8

const (
	// ModeServo is position-control mode.
	ModeServo MotorMode = 0
	// ModeMotor is continuous-rotation (speed-control) mode.
	ModeMotor MotorMode = 1
)

// MaxMotorSpeed is the speed magnitude limit in motor mode. Speeds outside
// [-MaxMotorSpeed, MaxMotorSpeed] are clamped before encoding.
const MaxMotorSpeed = 1000

// maxMoveDuration is the longest motion time encodable on the wire.
const maxMoveDuration = 30 * time.Second

// LEDError is a bit mask of fault conditions that light the servo's error LED.
type LEDError uint8

const (
	LEDErrorOverTemperature LEDError = 1
	LEDErrorOverVoltage     LEDError = 2
	LEDErrorLockedRotor     LEDError = 4
)

// Servo is the facade for one addressable servo on the bus.
//
// Each operation packs its parameters, encodes a frame and writes it via the
// bus; read operations additionally block for the reply and unpack the
// payload into a typed value. Any transport failure or timeout propagates to
// the caller; there is no automatic retry at this layer.
//
// Obtain handles via [Bus.Servo] or [Bus.Broadcast]. A Servo is safe for
// concurrent use; the bus serializes wire access.
type Servo struct {
	bus *Bus
	id  uint8
}

// ID returns the servo's bus address.
func (s *Servo) ID() uint8 {
	return s.id
}

// query runs a parameterless read command and returns the reply payload,
// validated against the command's fixed reply size.
func (s *Servo) query(cmd Command) ([]byte, error) {
	frame, err := s.bus.Query(s.id, cmd)
	if err != nil {
		return nil, err
	}

	if len(frame.Params) < cmd.ReplyParamCount() {
		return nil, fmt.Errorf("%w: %s: got %d bytes, want %d",
			ErrReplyTooShort, cmd, len(frame.Params), cmd.ReplyParamCount())
	}

	return frame.Params, nil
}

// packU16Pair encodes two 16-bit values little-endian into 4 parameter bytes.
func packU16Pair(a, b uint16) []byte {
	p := make([]byte, 4)
	binary.LittleEndian.PutUint16(p[0:2], a)
	binary.LittleEndian.PutUint16(p[2:4], b)

	return p
}

// durationToMillis clamps d to [0, maxMoveDuration] and converts it to the
// wire's millisecond field.
func durationToMillis(d time.Duration) uint16 {
	if d < 0 {
		return 0
	}
	if d > maxMoveDuration {
		d = maxMoveDuration
	}

	return uint16(d.Milliseconds())
}

// --- Motion ---

// Move commands the servo to the given position, reaching it over d.
// The motion starts immediately.
func (s *Servo) Move(position uint16, d time.Duration) error {
	return s.bus.Command(s.id, CmdMoveTimeWrite, packU16Pair(position, durationToMillis(d))...)
}

// MoveWait registers a move without starting it. The motion runs when
// MoveStart is issued, typically broadcast so several servos start together.
func (s *Servo) MoveWait(position uint16, d time.Duration) error {
	return s.bus.Command(s.id, CmdMoveTimeWaitWrite, packU16Pair(position, durationToMillis(d))...)
}

// MoveStart triggers the motion registered by MoveWait.
func (s *Servo) MoveStart() error {
	return s.bus.Command(s.id, CmdMoveStart)
}

// MoveStop halts the servo immediately at its current position.
func (s *Servo) MoveStop() error {
	return s.bus.Command(s.id, CmdMoveStop)
}

// MoveTarget reads back the position and time of the last Move command.
func (s *Servo) MoveTarget() (uint16, time.Duration, error) {
	p, err := s.query(CmdMoveTimeRead)
	if err != nil {
		return 0, 0, err
	}

	position := binary.LittleEndian.Uint16(p[0:2])
	millis := binary.LittleEndian.Uint16(p[2:4])

	return position, time.Duration(millis) * time.Millisecond, nil
}

// MoveWaitTarget reads back the position and time registered by MoveWait.
func (s *Servo) MoveWaitTarget() (uint16, time.Duration, error) {
	p, err := s.query(CmdMoveTimeWaitRead)
	if err != nil {
		return 0, 0, err
	}

	position := binary.LittleEndian.Uint16(p[0:2])
	millis := binary.LittleEndian.Uint16(p[2:4])

	return position, time.Duration(millis) * time.Millisecond, nil
}

// --- Mode ---

// SetMotorMode switches the servo to continuous-rotation mode at the given
// speed. The speed is clamped to [-MaxMotorSpeed, MaxMotorSpeed]; negative
// values rotate in reverse and round-trip through the clamp before being
// split into the unsigned 16-bit little-endian wire field.
func (s *Servo) SetMotorMode(speed int) error {
	if speed > MaxMotorSpeed {
		speed = MaxMotorSpeed
	} else if speed < -MaxMotorSpeed {
		speed = -MaxMotorSpeed
	}

	wireSpeed := uint16(int16(speed))

	p := make([]byte, 4)
	p[0] = byte(ModeMotor)
	binary.LittleEndian.PutUint16(p[2:4], wireSpeed)

	return s.bus.Command(s.id, CmdMotorModeWrite, p...)
}

// SetServoMode switches the servo to position-control mode.
func (s *Servo) SetServoMode() error {
	return s.bus.Command(s.id, CmdMotorModeWrite, byte(ModeServo), 0, 0, 0)
}

// Mode reads the current operating mode and, in motor mode, the signed speed.
func (s *Servo) Mode() (MotorMode, int16, error) {
	p, err := s.query(CmdMotorModeRead)
	if err != nil {
		return ModeServo, 0, err
	}

	speed := int16(binary.LittleEndian.Uint16(p[2:4]))

	return MotorMode(p[0]), speed, nil
}

// --- Telemetry ---

// Position reads the servo's current position. The 16-bit little-endian
// field is reinterpreted as signed: servos report negative offsets from
// center after offset adjustment.
func (s *Servo) Position() (int16, error) {
	p, err := s.query(CmdPosRead)
	if err != nil {
		return 0, err
	}

	return int16(binary.LittleEndian.Uint16(p[0:2])), nil
}

// Temperature reads the servo's internal temperature in degrees Celsius.
func (s *Servo) Temperature() (uint8, error) {
	p, err := s.query(CmdTempRead)
	if err != nil {
		return 0, err
	}

	return p[0], nil
}

// Voltage reads the servo's input voltage in millivolts.
func (s *Servo) Voltage() (uint16, error) {
	p, err := s.query(CmdVinRead)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(p[0:2]), nil
}

// --- Identity ---

// SetID assigns a new bus address to the servo. The change is persistent in
// the servo; this handle keeps addressing the old ID, so obtain a fresh
// handle with Bus.Servo(newID) afterwards.
func (s *Servo) SetID(newID uint8) error {
	if newID > MaxServoID {
		return fmt.Errorf("%w: %d", ErrInvalidServoID, newID)
	}

	return s.bus.Command(s.id, CmdIDWrite, newID)
}

// ReadID reads the servo's stored bus address.
func (s *Servo) ReadID() (uint8, error) {
	p, err := s.query(CmdIDRead)
	if err != nil {
		return 0, err
	}

	return p[0], nil
}

// --- Angle offset ---

// AdjustOffset applies a signed position offset. The adjustment takes effect
// immediately but is lost on power cycle unless saved with SaveOffset.
func (s *Servo) AdjustOffset(delta int8) error {
	return s.bus.Command(s.id, CmdAngleOffsetAdjust, byte(delta))
}

// SaveOffset persists the offset applied by AdjustOffset.
func (s *Servo) SaveOffset() error {
	return s.bus.Command(s.id, CmdAngleOffsetWrite)
}

// Offset reads the servo's current position offset.
func (s *Servo) Offset() (int8, error) {
	p, err := s.query(CmdAngleOffsetRead)
	if err != nil {
		return 0, err
	}

	return int8(p[0]), nil
}

// --- Limits ---

// SetAngleLimits restricts the servo's motion range to [minAngle, maxAngle].
func (s *Servo) SetAngleLimits(minAngle, maxAngle uint16) error {
	return s.bus.Command(s.id, CmdAngleLimitWrite, packU16Pair(minAngle, maxAngle)...)
}

// AngleLimits reads the servo's configured motion range.
func (s *Servo) AngleLimits() (minAngle, maxAngle uint16, err error) {
	p, err := s.query(CmdAngleLimitRead)
	if err != nil {
		return 0, 0, err
	}

	return binary.LittleEndian.Uint16(p[0:2]), binary.LittleEndian.Uint16(p[2:4]), nil
}

// SetVoltageLimits sets the allowed input voltage range in millivolts.
// Outside the range the servo unloads and flags an error.
func (s *Servo) SetVoltageLimits(minMv, maxMv uint16) error {
	return s.bus.Command(s.id, CmdVinLimitWrite, packU16Pair(minMv, maxMv)...)
}

// VoltageLimits reads the allowed input voltage range in millivolts.
func (s *Servo) VoltageLimits() (minMv, maxMv uint16, err error) {
	p, err := s.query(CmdVinLimitRead)
	if err != nil {
		return 0, 0, err
	}

	return binary.LittleEndian.Uint16(p[0:2]), binary.LittleEndian.Uint16(p[2:4]), nil
}

// SetTempLimit sets the maximum internal temperature in degrees Celsius.
// Above the limit the servo unloads and flags an error.
func (s *Servo) SetTempLimit(maxCelsius uint8) error {
	return s.bus.Command(s.id, CmdTempMaxLimitWrite, maxCelsius)
}

// TempLimit reads the maximum internal temperature in degrees Celsius.
func (s *Servo) TempLimit() (uint8, error) {
	p, err := s.query(CmdTempMaxLimitRead)
	if err != nil {
		return 0, err
	}

	return p[0], nil
}

// --- Torque ---

// SetTorque loads (true) or unloads (false) the motor. An unloaded servo
// holds no torque and can be moved by hand.
func (s *Servo) SetTorque(on bool) error {
	var v byte
	if on {
		v = 1
	}

	return s.bus.Command(s.id, CmdLoadWrite, v)
}

// Torque reads whether the motor is loaded.
func (s *Servo) Torque() (bool, error) {
	p, err := s.query(CmdLoadRead)
	if err != nil {
		return false, err
	}

	return p[0] != 0, nil
}

// --- LED ---

// SetLED turns the status LED steady on or off. The wire flag is active-low:
// 0 lights the LED, 1 extinguishes it.
func (s *Servo) SetLED(on bool) error {
	var v byte
	if !on {
		v = 1
	}

	return s.bus.Command(s.id, CmdLEDCtrlWrite, v)
}

// LEDOff extinguishes the status LED.
func (s *Servo) LEDOff() error {
	return s.SetLED(false)
}

// LED reads whether the status LED is lit.
func (s *Servo) LED() (bool, error) {
	p, err := s.query(CmdLEDCtrlRead)
	if err != nil {
		return false, err
	}

	return p[0] == 0, nil
}

// SetLEDErrors selects which fault conditions flash the error LED.
func (s *Servo) SetLEDErrors(mask LEDError) error {
	return s.bus.Command(s.id, CmdLEDErrorWrite, byte(mask))
}

// LEDErrors reads the fault conditions that flash the error LED.
func (s *Servo) LEDErrors() (LEDError, error) {
	p, err := s.query(CmdLEDErrorRead)
	if err != nil {
		return 0, err
	}

	return LEDError(p[0]), nil
}
