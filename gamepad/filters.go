package gamepad

import "math"

// filterStickCoords applies a radial deadzone and rescale to a stick
// position. Inside the deadzone the input clips to the origin; outside
// it the magnitude is rebased past the deadzone, rescaled, and clipped
// to the unit circle.
func filterStickCoords(x, y, deadzone, scale float64) (float64, float64) {
	mag := math.Sqrt(x*x + y*y)
	if mag < deadzone {
		return 0, 0
	}
	ang := math.Atan2(y, x)
	mag = (mag - deadzone) * scale
	if mag > 1.0 {
		mag = 1.0
	}
	return mag * math.Cos(ang), mag * math.Sin(ang)
}

// filterPadCoords is the touchpad variant: same deadzone and rescale,
// but without the unit-circle clip since pad consumers bound the range
// themselves.
func filterPadCoords(x, y, deadzone, scale float64) (float64, float64) {
	mag := math.Sqrt(x*x + y*y)
	if mag < deadzone {
		return 0, 0
	}
	ang := math.Atan2(y, x)
	mag = (mag - deadzone) * scale
	return mag * math.Cos(ang), mag * math.Sin(ang)
}
