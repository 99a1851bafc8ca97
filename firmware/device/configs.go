package device

import (
	"machine"

	"tinygo.org/x/drivers"
)

// PWM is the subset of the machine PWM peripheral the motor needs. Satisfied
// by machine.PWM0..PWM7 on the rp2040.
type PWM interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// SensorConfig has the wiring for the magnetic encoder. The encoder board is
// powered from two GPIOs so the firmware can drop the rail to hard-reset it.
type SensorConfig struct {
	Bus       drivers.I2C
	PowerPin  machine.Pin
	GroundPin machine.Pin
}

// MotorConfig has the H-bridge wiring. Forward and reverse must be the A/B
// pins of the same PWM slice.
type MotorConfig struct {
	PWM        PWM
	ForwardPin machine.Pin
	ReversePin machine.Pin
	Frequency  uint64 // Hz, defaults to 1 kHz
}

// AuxConfig maps protocol pin numbers onto board pins for the auxiliary
// digital outputs
type AuxConfig struct {
	Pins map[int]machine.Pin
}
