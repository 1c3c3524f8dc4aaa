package gamepad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterStickCoordsInsideDeadzone(t *testing.T) {
	cases := []struct {
		name     string
		x, y     float64
		deadzone float64
	}{
		{name: "origin", x: 0, y: 0, deadzone: 0.1},
		{name: "just inside", x: 0.05, y: 0.05, deadzone: 0.1},
		{name: "x only", x: 0.039, y: 0, deadzone: 0.04},
		{name: "max deadzone", x: 0.5, y: 0.5, deadzone: 0.9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scale := 1.0 / (1.0 - tc.deadzone)
			x, y := filterStickCoords(tc.x, tc.y, tc.deadzone, scale)
			assert.Zero(t, x)
			assert.Zero(t, y)

			x, y = filterPadCoords(tc.x, tc.y, tc.deadzone, scale)
			assert.Zero(t, x)
			assert.Zero(t, y)
		})
	}
}

func TestFilterStickCoordsOutsideDeadzone(t *testing.T) {
	deadzones := []float64{0, 0.04, 0.25, 0.5, 0.9}
	angles := []float64{0, 0.3, math.Pi / 4, 1.2, math.Pi, -math.Pi / 3}
	mags := []float64{0.1, 0.5, 0.95, 1.0, 1.4}

	for _, dz := range deadzones {
		scale := 1.0 / (1.0 - dz)
		for _, ang := range angles {
			for _, mag := range mags {
				if mag < dz {
					continue
				}
				x := mag * math.Cos(ang)
				y := mag * math.Sin(ang)

				fx, fy := filterStickCoords(x, y, dz, scale)

				// The filtered point stays inside the unit disk.
				assert.LessOrEqual(t, fx*fx+fy*fy, 1.0+1e-9,
					"dz=%v ang=%v mag=%v", dz, ang, mag)

				// A second application with the same parameters is
				// stable once the first has clamped.
				if (mag-dz)*scale >= 1.0 {
					gx, gy := filterStickCoords(fx, fy, dz, scale)
					assert.InDelta(t, fx, gx, 1e-9)
					assert.InDelta(t, fy, gy, 1e-9)
				}
			}
		}
	}
}

func TestFilterPreservesAngle(t *testing.T) {
	dz := 0.2
	scale := 1.0 / (1.0 - dz)
	x, y := 0.6, 0.3

	fx, fy := filterStickCoords(x, y, dz, scale)
	assert.InDelta(t, math.Atan2(y, x), math.Atan2(fy, fx), 1e-9)

	px, py := filterPadCoords(x, y, dz, scale)
	assert.InDelta(t, math.Atan2(y, x), math.Atan2(py, px), 1e-9)
}

func TestFilterPadCoordsNoMagnitudeClamp(t *testing.T) {
	// Pads rescale without clipping to the unit circle.
	dz := 0.5
	scale := 1.0 / (1.0 - dz)
	x, y := filterPadCoords(1.0, 1.0, dz, scale)
	mag := math.Sqrt(x*x + y*y)
	assert.Greater(t, mag, 1.0)

	// The stick variant clamps the same input.
	x, y = filterStickCoords(1.0, 1.0, dz, scale)
	mag = math.Sqrt(x*x + y*y)
	assert.InDelta(t, 1.0, mag, 1e-9)
}
