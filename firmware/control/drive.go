package control

// H-bridge duty limits on the 8-bit PWM scale.
const (
	// MinPWM is the breakaway duty. Brushed motors need a minimum duty to
	// overcome static friction; anything below it heats the windings without
	// moving the joint, so nonzero commands are boosted up to this floor
	MinPWM = 100

	MaxPWM = 255
)

// DriveDuty maps a signed control signal onto the forward/reverse PWM pair.
// At most one channel is nonzero; a nonzero channel is always within
// [MinPWM, MaxPWM]. A signal that truncates to zero stops both channels.
func DriveDuty(signal float64) (forward, reverse uint8) {
	pwm := int(signal)
	switch {
	case pwm > 0:
		return clampDuty(pwm), 0
	case pwm < 0:
		return 0, clampDuty(-pwm)
	default:
		return 0, 0
	}
}

func clampDuty(pwm int) uint8 {
	if pwm < MinPWM {
		pwm = MinPWM
	}
	if pwm > MaxPWM {
		pwm = MaxPWM
	}
	return uint8(pwm)
}
