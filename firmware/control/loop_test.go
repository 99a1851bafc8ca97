package control

import (
	"strings"
	"testing"
)

// simBoard is an in-memory Hardware implementation for testing the loop
// without a board attached.
type simBoard struct {
	angle    float64
	angleErr error

	forward uint8
	reverse uint8

	auxPins map[int]bool

	serialIn  queueReader
	telemetry strings.Builder
}

func newSimBoard() *simBoard {
	return &simBoard{auxPins: map[int]bool{}}
}

func (s *simBoard) ReadAngle() (float64, error) {
	return s.angle, s.angleErr
}

func (s *simBoard) SetDuty(forward, reverse uint8) {
	s.forward = forward
	s.reverse = reverse
}

func (s *simBoard) SetAuxPin(pin int, high bool) {
	s.auxPins[pin] = high
}

func (s *simBoard) ReadByte() (byte, error) {
	return s.serialIn.ReadByte()
}

func (s *simBoard) Write(p []byte) (int, error) {
	return s.telemetry.Write(p)
}

func TestCycleOnTarget(t *testing.T) {
	board := newSimBoard()
	loop := NewLoop(board)

	// target=0, current=0: deadband holds both channels at zero
	if err := loop.Cycle(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.forward != 0 || board.reverse != 0 {
		t.Errorf("expected idle drive, got=(%d,%d)", board.forward, board.reverse)
	}
	if board.telemetry.String() != "0.0000\n" {
		t.Errorf("expected telemetry %q, got=%q", "0.0000\n", board.telemetry.String())
	}
}

func TestCycleDrivesTowardTarget(t *testing.T) {
	board := newSimBoard()
	loop := NewLoop(board)

	board.serialIn.feed("1.0\n")

	// error=1.0 -> signal=-52 -> reverse channel at breakaway duty
	if err := loop.Cycle(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.forward != 0 || board.reverse != 100 {
		t.Errorf("expected=(0,100), got=(%d,%d)", board.forward, board.reverse)
	}
}

func TestNewTargetResetsIntegralSameCycle(t *testing.T) {
	board := newSimBoard()
	loop := NewLoop(board)

	// wind the integral up first
	loop.SetTarget(1.0)
	for i := 0; i < 10; i++ {
		if err := loop.Cycle(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if loop.pi.integral != 10.0 {
		t.Fatalf("expected integral=10.0, got=%v", loop.pi.integral)
	}

	// the same cycle that applies the new target starts the integral fresh
	board.serialIn.feed("2.0\n")
	if err := loop.Cycle(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loop.Target() != 2.0 {
		t.Errorf("expected target=2.0, got=%v", loop.Target())
	}
	if loop.pi.integral != 2.0 {
		t.Errorf("expected integral=2.0 after reset and one accumulation, got=%v", loop.pi.integral)
	}
}

func TestGPIOCommands(t *testing.T) {
	board := newSimBoard()
	loop := NewLoop(board)

	board.serialIn.feed("P8:1\n")
	if err := loop.Cycle(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !board.auxPins[8] {
		t.Error("expected pin 8 high")
	}

	// pin 5 is not whitelisted: no output changes
	board.serialIn.feed("P5:1\n")
	if err := loop.Cycle(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := board.auxPins[5]; ok {
		t.Error("pin 5 must not be driven")
	}

	// malformed GPIO line: no state change at all
	before := loop.Target()
	board.serialIn.feed("P81\n")
	if err := loop.Cycle(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loop.Target() != before {
		t.Errorf("malformed GPIO line changed target: %v -> %v", before, loop.Target())
	}
	if len(board.auxPins) != 1 {
		t.Errorf("malformed GPIO line changed outputs: %v", board.auxPins)
	}
}

func TestBacklogAdvancesOneLinePerCycle(t *testing.T) {
	board := newSimBoard()
	loop := NewLoop(board)

	board.serialIn.feed("1.0\n2.0\n3.0\n")

	expected := []float64{1.0, 2.0, 3.0}
	for _, want := range expected {
		if err := loop.Cycle(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loop.Target() != want {
			t.Errorf("expected target=%v, got=%v", want, loop.Target())
		}
	}
}

func TestCycleTelemetryEveryCycle(t *testing.T) {
	board := newSimBoard()
	loop := NewLoop(board)

	board.angle = 1.23456
	board.serialIn.feed("P8:1\n")
	for i := 0; i < 3; i++ {
		if err := loop.Cycle(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	expected := "1.2346\n1.2346\n1.2346\n"
	if board.telemetry.String() != expected {
		t.Errorf("expected=%q, got=%q", expected, board.telemetry.String())
	}
}

func TestCycleSensorError(t *testing.T) {
	board := newSimBoard()
	board.angleErr = errNoData
	loop := NewLoop(board)

	if err := loop.Cycle(); err == nil {
		t.Error("expected sensor error to surface")
	}
	if board.telemetry.Len() != 0 {
		t.Error("no telemetry expected when the sensor read fails")
	}
}
