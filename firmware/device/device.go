// Package device binds the joint controller's peripherals to the control
// loop's hardware capabilities.
package device

import (
	"errors"
	"machine"
	"time"

	"github.com/vinestation/jointdrive/firmware/as5600"
)

// Device owns the board peripherals: encoder, H-bridge and auxiliary
// outputs. It implements control.Hardware.
type Device struct {
	encoder *as5600.Device
	motor   *Motor
	aux     map[int]machine.Pin
}

// New powers the encoder rail, brings up the motor and auxiliary outputs and
// probes the encoder. A missing or magnet-less encoder surfaces as an error
// so the caller decides the retry policy.
func New(sensorCfg SensorConfig, motorCfg MotorConfig, auxCfg AuxConfig) (*Device, error) {
	if sensorCfg.PowerPin != machine.NoPin {
		sensorCfg.PowerPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		sensorCfg.GroundPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		sensorCfg.PowerPin.High()
		sensorCfg.GroundPin.Low()
		// let the encoder rail settle before probing
		time.Sleep(10 * time.Millisecond)
	}

	motor, err := NewMotor(motorCfg)
	if err != nil {
		return nil, errors.New("error creating motor: " + err.Error())
	}

	for _, pin := range auxCfg.Pins {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Low()
	}

	encoder := as5600.New(sensorCfg.Bus)
	if err := encoder.Configure(); err != nil {
		return nil, errors.New("error configuring encoder: " + err.Error())
	}

	return &Device{
		encoder: encoder,
		motor:   motor,
		aux:     auxCfg.Pins,
	}, nil
}

// ReadAngle returns the cumulative joint angle in radians
func (d *Device) ReadAngle() (float64, error) {
	return d.encoder.CumulativeRadians()
}

// SetDuty drives the H-bridge channel pair
func (d *Device) SetDuty(forward, reverse uint8) {
	d.motor.SetDuty(forward, reverse)
}

// SetAuxPin switches one of the auxiliary outputs. Unknown pin numbers are
// ignored; the control loop already filters against the whitelist.
func (d *Device) SetAuxPin(pin int, high bool) {
	p, ok := d.aux[pin]
	if !ok {
		return
	}
	p.Set(high)
}

func (d *Device) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}

func (d *Device) Write(p []byte) (int, error) {
	return machine.Serial.Write(p)
}
