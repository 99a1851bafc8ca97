// Package as5600 reads the ams AS5600 absolute magnetic rotary encoder.
//
// The chip only reports the angle within one revolution, so the driver
// accumulates turns in software to give a continuous multi-turn position with
// no discontinuity at the 0/2pi boundary.
package as5600

import (
	"errors"
	"math"

	"tinygo.org/x/drivers"
)

const (
	// Address is the fixed I2C address of the AS5600
	Address = 0x36

	regStatus   = 0x0B
	regRawAngle = 0x0C

	statusMagnetDetected = 0x20

	// TicksPerRev is the encoder resolution: 12 bits per revolution
	TicksPerRev = 4096
)

// Device wraps an AS5600 on an I2C bus
type Device struct {
	bus drivers.I2C

	last    uint16
	turns   int32
	started bool

	buf [2]byte
}

func New(bus drivers.I2C) *Device {
	return &Device{bus: bus}
}

// Configure probes the encoder and verifies that a magnet is in range
func (d *Device) Configure() error {
	if err := d.bus.ReadRegister(Address, regStatus, d.buf[:1]); err != nil {
		return errors.New("as5600 not responding: " + err.Error())
	}
	if d.buf[0]&statusMagnetDetected == 0 {
		return errors.New("as5600 magnet not detected")
	}

	raw, err := d.rawAngle()
	if err != nil {
		return err
	}
	d.last = raw
	d.started = true
	return nil
}

// CumulativeRadians returns the multi-turn position. Each read compares the
// raw angle against the previous one; a jump of more than half a revolution
// means the counter wrapped, never that the joint moved that far in one
// cycle.
func (d *Device) CumulativeRadians() (float64, error) {
	raw, err := d.rawAngle()
	if err != nil {
		return 0, err
	}

	if !d.started {
		d.last = raw
		d.started = true
	}

	delta := int32(raw) - int32(d.last)
	switch {
	case delta < -TicksPerRev/2:
		d.turns++
	case delta > TicksPerRev/2:
		d.turns--
	}
	d.last = raw

	ticks := d.turns*TicksPerRev + int32(raw)
	return float64(ticks) * 2 * math.Pi / TicksPerRev, nil
}

func (d *Device) rawAngle() (uint16, error) {
	if err := d.bus.ReadRegister(Address, regRawAngle, d.buf[:2]); err != nil {
		return 0, errors.New("as5600 read failed: " + err.Error())
	}
	return (uint16(d.buf[0])<<8 | uint16(d.buf[1])) & 0x0FFF, nil
}
