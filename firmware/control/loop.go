package control

import (
	"github.com/vinestation/jointdrive"
)

// Hardware is the capability surface the control loop needs from the board.
// The firmware's device package implements it; tests use a simulated one.
type Hardware interface {
	// ReadAngle returns the cumulative joint angle in radians
	ReadAngle() (float64, error)

	// SetDuty drives the H-bridge channel pair on the 8-bit duty scale
	SetDuty(forward, reverse uint8)

	// SetAuxPin switches an auxiliary digital output
	SetAuxPin(pin int, high bool)

	// Serial channel, polled and non-blocking
	ReadByte() (byte, error)
	Write(p []byte) (int, error)
}

// Loop owns all mutable control state: the target, the PI accumulator and the
// partial command line. Everything runs from a single goroutine, so no
// locking is needed.
type Loop struct {
	hw     Hardware
	pi     *PI
	reader *LineReader
	target float64
}

func NewLoop(hw Hardware) *Loop {
	return &Loop{
		hw:     hw,
		pi:     NewPI(),
		reader: NewLineReader(hw),
	}
}

// SetTarget overrides the target position. The firmware uses it once at
// startup to match the current joint angle so the motor does not jump.
func (l *Loop) SetTarget(radians float64) {
	l.target = radians
}

// Target returns the current target position in radians
func (l *Loop) Target() float64 {
	return l.target
}

// Cycle runs one pass of the control sequence. The order is load-bearing:
// a command received this cycle may reset the integral that this cycle's
// control computation then uses.
//
//	sensor -> command -> control -> drive -> telemetry
func (l *Loop) Cycle() error {
	current, err := l.hw.ReadAngle()
	if err != nil {
		return err
	}

	if line, ok := l.reader.Poll(); ok {
		l.apply(jointdrive.ParseLine(line))
	}

	signal := l.pi.Update(l.target, current)
	forward, reverse := DriveDuty(signal)
	l.hw.SetDuty(forward, reverse)

	l.hw.Write([]byte(jointdrive.FormatTelemetry(current) + "\n"))

	return nil
}

func (l *Loop) apply(cmd jointdrive.Command) {
	switch cmd.Kind {
	case jointdrive.CommandGPIO:
		if jointdrive.AuxPinAllowed(cmd.Pin) {
			l.hw.SetAuxPin(cmd.Pin, cmd.High)
		}
	case jointdrive.CommandTarget:
		l.target = cmd.Target
		l.pi.ResetIntegral()
	}
}
