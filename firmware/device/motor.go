package device

import (
	"errors"
	"machine"
)

const defaultMotorFrequency = 1000 // Hz

// Motor drives the two H-bridge inputs from one PWM slice. Duty values use
// the 8-bit scale of the control loop and are rescaled onto the hardware
// counter range here.
type Motor struct {
	pwm       PWM
	forwardCh uint8
	reverseCh uint8
}

func NewMotor(cfg MotorConfig) (*Motor, error) {
	if cfg.Frequency == 0 {
		cfg.Frequency = defaultMotorFrequency
	}

	err := cfg.PWM.Configure(machine.PWMConfig{Period: uint64(machine.GHz) / cfg.Frequency})
	if err != nil {
		return nil, errors.New("error configuring motor PWM: " + err.Error())
	}

	m := &Motor{pwm: cfg.PWM}

	m.forwardCh, err = cfg.PWM.Channel(cfg.ForwardPin)
	if err != nil {
		return nil, errors.New("error getting forward channel: " + err.Error())
	}
	m.reverseCh, err = cfg.PWM.Channel(cfg.ReversePin)
	if err != nil {
		return nil, errors.New("error getting reverse channel: " + err.Error())
	}

	m.SetDuty(0, 0)
	return m, nil
}

// SetDuty applies the forward/reverse pair. The control loop guarantees at
// most one of them is nonzero.
func (m *Motor) SetDuty(forward, reverse uint8) {
	top := m.pwm.Top()
	m.pwm.Set(m.forwardCh, top*uint32(forward)/255)
	m.pwm.Set(m.reverseCh, top*uint32(reverse)/255)
}
