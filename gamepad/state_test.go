package gamepad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, r InputReport) InputReport {
	t.Helper()
	raw, err := r.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, raw, ReportSize)

	var out InputReport
	require.NoError(t, out.UnmarshalBinary(raw))
	return out
}

func TestInputReportRoundTrip(t *testing.T) {
	in := InputReport{
		Frame:       1234,
		Buttons:     btnA | btnDpadUp | btnL4 | btnQuickAccess | btnRPadTouch,
		LPadX:       -321,
		LPadY:       9999,
		RPadX:       1000,
		RPadY:       -500,
		AccelX:      -32768,
		AccelY:      32767,
		AccelZ:      17,
		GyroPitch:   -1,
		GyroRoll:    2,
		GyroYaw:     -3,
		LTrigg:      800,
		RTrigg:      32767,
		LStickX:     800,
		LStickY:     -12345,
		RStickX:     32767,
		RStickY:     -32768,
		LPadForce:   11,
		RPadForce:   22,
		LStickForce: 90,
		RStickForce: 200,
	}
	assert.Equal(t, in, mustDecode(t, in))
}

func TestUnmarshalRejectsWrongTag(t *testing.T) {
	raw := make([]byte, ReportSize)
	raw[0] = ReportIDClearMappings
	var r InputReport
	assert.Error(t, r.UnmarshalBinary(raw))

	assert.Error(t, r.UnmarshalBinary(raw[:10]))
}

func TestDecodeNormalization(t *testing.T) {
	var s DeviceState
	r := mustDecode(t, InputReport{
		Buttons:     btnA | btnMenu | btnLStickTouch,
		LStickX:     32767,
		LStickY:     -32768,
		RStickX:     -16384,
		LTrigg:      32767,
		RTrigg:      16384,
		LStickForce: 255,
		RStickForce: 56,
		LPadForce:   32767,
	})
	s.update(&r)

	assert.True(t, s.Btn.A)
	assert.True(t, s.Btn.Menu)
	assert.True(t, s.Stick.L.Touch)
	assert.False(t, s.Stick.R.Touch)

	assert.InDelta(t, 1.0, s.Stick.L.X, 1e-12)
	assert.InDelta(t, -32768.0/32767.0, s.Stick.L.Y, 1e-12)
	assert.InDelta(t, -0.5, s.Stick.R.X, 1e-4)
	assert.InDelta(t, 1.0, s.Trigg.L.Z, 1e-12)
	assert.InDelta(t, 0.5, s.Trigg.R.Z, 1e-4)

	// Stick force clamps at the empirical sensor maximum.
	assert.InDelta(t, 1.0, s.Stick.L.Force, 1e-12)
	assert.InDelta(t, 0.5, s.Stick.R.Force, 1e-12)
	assert.InDelta(t, 1.0, s.Pad.L.Force, 1e-12)

	assert.GreaterOrEqual(t, s.Trigg.L.Z, 0.0)
	assert.LessOrEqual(t, s.Trigg.L.Z, 1.0)
}

func TestDecodeScaleCorrectness(t *testing.T) {
	// With filtering disabled stick axes round-trip to their decoded
	// normalized values.
	var s DeviceState
	s.Stick.Filtered = false

	for _, raw := range []int16{0, 1, -1, 800, 12345, -20000, 32767} {
		r := mustDecode(t, InputReport{LStickX: raw, RStickY: raw})
		s.update(&r)
		assert.Equal(t, float64(raw)/32767.0, s.Stick.L.X)
		assert.Equal(t, float64(raw)/32767.0, s.Stick.R.Y)
	}
}

func TestStickDeadzoneZeroesSmallInput(t *testing.T) {
	// A barely deflected stick inside a 0.04 radial deadzone reads as
	// center.
	var s DeviceState
	s.Stick.Filtered = true
	s.Stick.L.Deadzone = 0.04
	s.Stick.L.Scale = 1.0 / (1.0 - 0.04)

	r := mustDecode(t, InputReport{LStickX: 800, LStickY: 0})
	s.update(&r)

	assert.Zero(t, s.Stick.L.X)
	assert.Zero(t, s.Stick.L.Y)
}

func TestTriggerDeadzone(t *testing.T) {
	var s DeviceState
	s.Trigg.L.Deadzone = 0.25
	s.Trigg.L.Scale = 1.0 / (1.0 - 0.25)

	r := mustDecode(t, InputReport{LTrigg: 4000})
	s.update(&r)
	assert.Zero(t, s.Trigg.L.Z)

	r = mustDecode(t, InputReport{LTrigg: 32767})
	s.update(&r)
	assert.InDelta(t, 1.0, s.Trigg.L.Z, 1e-9)

	raw := uint16(16384)
	r = mustDecode(t, InputReport{LTrigg: raw})
	s.update(&r)
	want := (float64(raw)/32767.0 - 0.25) / 0.75
	assert.InDelta(t, want, s.Trigg.L.Z, 1e-9)
}

func TestPadDeltaRollingAverage(t *testing.T) {
	var s DeviceState

	r := mustDecode(t, InputReport{Buttons: btnRPadTouch, RPadX: 0, RPadY: 0})
	s.update(&r)
	assert.Zero(t, s.Pad.R.DX)

	r = mustDecode(t, InputReport{Buttons: btnRPadTouch, RPadX: 1000, RPadY: -500})
	prevSX, prevSY := s.Pad.R.SX, s.Pad.R.SY
	s.update(&r)

	wantDX := (s.Pad.R.SX - prevSX) / 2.0
	wantDY := (s.Pad.R.SY - prevSY) / 2.0
	assert.InDelta(t, wantDX, s.Pad.R.DX, 1e-9)
	assert.InDelta(t, wantDY, s.Pad.R.DY, 1e-9)
	assert.Greater(t, s.Pad.R.DX, 0.0)
	// Wire Y grows downward in the scaled space, so a negative pad Y
	// delta moves the pointer down.
	assert.Greater(t, s.Pad.R.DY, 0.0)
}

func TestPadDeltaInertiaDecay(t *testing.T) {
	var s DeviceState

	// Build up some motion while touching.
	s.update(ptr(mustDecode(t, InputReport{Buttons: btnLPadTouch})))
	s.update(ptr(mustDecode(t, InputReport{Buttons: btnLPadTouch, LPadX: 4000, LPadY: 2000})))
	require.NotZero(t, s.Pad.L.DX)

	// Lift the finger: deltas decay by 0.95 per tick, monotonically
	// toward zero.
	prev := math.Abs(s.Pad.L.DX)
	for i := 0; i < 50; i++ {
		s.update(ptr(mustDecode(t, InputReport{})))
		cur := math.Abs(s.Pad.L.DX)
		assert.InDelta(t, prev*padDeltaDecay, cur, 1e-12)
		assert.Less(t, cur, prev)
		prev = cur
	}
}

func ptr[T any](v T) *T { return &v }
