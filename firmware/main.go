package main

import (
	"machine"
	"time"

	"github.com/vinestation/jointdrive/firmware/control"
	"github.com/vinestation/jointdrive/firmware/device"
)

// Board wiring. The H-bridge inputs share PWM slice 3 (GP6=A, GP7=B) and the
// auxiliary output numbers on the wire match their GP numbers.
const (
	sensorPowerPin  = machine.GP2
	sensorGroundPin = machine.GP3
	sensorSDAPin    = machine.GP4
	sensorSCLPin    = machine.GP5

	motorForwardPin = machine.GP6
	motorReversePin = machine.GP7
)

const cycleDelay = 1 * time.Millisecond

// Encoder bring-up retry policy. Each failed attempt is reported over serial;
// after sensorRetries failures bring-up gives up and main starts over, so a
// permanently missing encoder shows up as an endless stream of reports.
const (
	sensorRetries    = 5
	sensorRetryDelay = 2 * time.Second
)

func main() {
	// give the USB serial host a moment to attach
	time.Sleep(2 * time.Second)

	for {
		loop, err := bringUp()
		if err != nil {
			println("fault:", err.Error())
			time.Sleep(sensorRetryDelay)
			continue
		}
		run(loop)
	}
}

func bringUp() (*control.Loop, error) {
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{
		SDA:       sensorSDAPin,
		SCL:       sensorSCLPin,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		return nil, err
	}

	sensorCfg := device.SensorConfig{
		Bus:       i2c,
		PowerPin:  sensorPowerPin,
		GroundPin: sensorGroundPin,
	}
	motorCfg := device.MotorConfig{
		PWM:        machine.PWM3,
		ForwardPin: motorForwardPin,
		ReversePin: motorReversePin,
	}
	auxCfg := device.AuxConfig{
		Pins: map[int]machine.Pin{
			8:  machine.GP8,
			9:  machine.GP9,
			10: machine.GP10,
		},
	}

	var d *device.Device
	for attempt := 1; ; attempt++ {
		d, err = device.New(sensorCfg, motorCfg, auxCfg)
		if err == nil {
			break
		}
		println("encoder not detected, restarting:", err.Error())
		if attempt >= sensorRetries {
			return nil, err
		}
		time.Sleep(sensorRetryDelay)
	}

	loop := control.NewLoop(d)

	// hold the joint where it is instead of jumping to zero at power-on
	if pos, err := d.ReadAngle(); err == nil {
		loop.SetTarget(pos)
	}

	return loop, nil
}

func run(loop *control.Loop) {
	for {
		if err := loop.Cycle(); err != nil {
			println("cycle error:", err.Error())
		}
		time.Sleep(cycleDelay)
	}
}
