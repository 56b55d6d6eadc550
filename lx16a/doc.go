// Package lx16a drives a daisy-chained bus of LewanSoul LX-16A serial servo
// actuators over a half-duplex serial link.
//
// The LX-16A bus protocol is a fixed binary framing protocol. A host issues
// commands (move, mode switch, telemetry reads) to an individual servo or
// broadcasts to all servos; servos reply with framed responses that must be
// resynchronized out of a continuous byte stream.
//
// # Wire Format
//
// Every frame on the wire has the layout:
//
//	0x55 0x55 <id:1> <length:1> <command:1> <params:0..4> <checksum:1>
//
// where length = 3 + len(params) and
// checksum = 255 - ((id + length + command + sum(params)) mod 256).
//
// The reserved servo ID 0xFE addresses all servos at once and is valid only
// for commands that produce no reply.
//
// # Usage
//
// Open a bus on a serial device and obtain per-servo facades:
//
//	bus, err := lx16a.Open("/dev/ttyUSB0")
//	if err != nil {
//		...
//	}
//	defer bus.Close()
//
//	servo := bus.Servo(1)
//	_ = servo.SetServoMode()
//	_ = servo.Move(500, 1000*time.Millisecond)
//	pos, err := servo.Position()
//
// All calls are synchronous and blocking. The bus serializes access to the
// shared half-duplex link internally, so facades may be used from multiple
// goroutines; see [Bus] for the locking discipline.
package lx16a
