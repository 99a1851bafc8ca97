package control

import "math"

// Position loop tunables. These are fixed at compile time.
const (
	Kp = 50.0
	Ki = 2.0

	// Deadband is the error magnitude below which no drive is applied,
	// preventing chatter around the target
	Deadband = 0.2 // radians

	// MaxIntegral limits windup of the error accumulator
	MaxIntegral = 50.0

	// DrivePolarity compensates for the motor wiring: positive error has to
	// drive the reverse channel. Changing this without rewiring the H-bridge
	// makes the loop diverge
	DrivePolarity = -1.0
)

// PI computes the control signal for the position loop. The zero value is not
// usable; create one with NewPI.
type PI struct {
	Kp          float64
	Ki          float64
	Deadband    float64
	MaxIntegral float64

	integral float64
}

// NewPI returns a controller with the standard gains
func NewPI() *PI {
	return &PI{
		Kp:          Kp,
		Ki:          Ki,
		Deadband:    Deadband,
		MaxIntegral: MaxIntegral,
	}
}

// Update advances the controller one cycle and returns the signed control
// signal. Inside the deadband the output is forced to zero and the integral
// is cleared so it cannot drift while the joint sits on target.
func (pi *PI) Update(target, current float64) float64 {
	err := target - current

	if math.Abs(err) <= pi.Deadband {
		pi.integral = 0
		return 0
	}

	pi.integral = clamp(pi.integral+err, -pi.MaxIntegral, pi.MaxIntegral)

	return DrivePolarity * (pi.Kp*err + pi.Ki*pi.integral)
}

// ResetIntegral clears the accumulated error. Called when a new target
// arrives so the fresh setpoint does not inherit stale integral action.
func (pi *PI) ResetIntegral() {
	pi.integral = 0
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
