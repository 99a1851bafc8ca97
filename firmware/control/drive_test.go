package control

import "testing"

func TestDriveDuty(t *testing.T) {
	tests := []struct {
		name    string
		signal  float64
		forward uint8
		reverse uint8
	}{
		{"Zero", 0, 0, 0},
		{"TruncatesToZero", 0.9, 0, 0},
		{"NegativeTruncatesToZero", -0.9, 0, 0},
		{"BoostedToBreakaway", 52, 100, 0},
		{"ReverseBoostedToBreakaway", -52, 0, 100},
		{"WithinRange", 180, 180, 0},
		{"ReverseWithinRange", -180, 0, 180},
		{"ClampedToCeiling", 5000, 255, 0},
		{"ReverseClampedToCeiling", -5000, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forward, reverse := DriveDuty(tt.signal)
			if forward != tt.forward || reverse != tt.reverse {
				t.Errorf("expected=(%d,%d), got=(%d,%d)", tt.forward, tt.reverse, forward, reverse)
			}
			if forward != 0 && reverse != 0 {
				t.Error("both channels driven at once")
			}
			for _, duty := range []uint8{forward, reverse} {
				if duty != 0 && (duty < MinPWM || duty > MaxPWM) {
					t.Errorf("duty %d outside [%d, %d]", duty, MinPWM, MaxPWM)
				}
			}
		})
	}
}
