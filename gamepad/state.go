package gamepad

// Decode constants. The multipliers normalize the wire units of each
// axis group; the sensitivity terms rebase pad coordinates into the
// scaled space the delta accumulator works in.
const (
	stickAxisMult = 1.0 / 32767.0
	triggAxisMult = 1.0 / 32767.0

	// The capacitive stick force sensor is 8 bits on the wire but
	// saturates well below 255.
	stickForceMax  = 112.0
	stickForceMult = 1.0 / stickForceMax

	padAxisMult  = 1.0 / 32767.0
	padForceMult = 1.0 / 32767.0
	padXMax      = 32767.0
	padYMin      = 32767.0
	padSensMult  = 1.0 / 128.0

	accelAxisMult = 1.0 / 32767.0
	gyroAxisMult  = 1.0 / 32767.0

	// Delta decay per tick after a touch ends. Tied to the device's
	// 250 Hz polling interval; a different poll rate needs a
	// recalibrated decay.
	padDeltaDecay = 0.95
)

// TriggerState is one analog trigger: normalized travel plus its
// deadzone parameters.
type TriggerState struct {
	Z        float64
	Deadzone float64
	Scale    float64
}

// StickState is one thumbstick. X and Y are normalized to [-1, 1];
// Force is the capacitive reading normalized to [0, 1].
type StickState struct {
	X        float64
	Y        float64
	Touch    bool
	Force    float64
	Deadzone float64
	Scale    float64
}

// PadState is one touchpad. X/Y are the normalized position, SX/SY the
// sensitivity-scaled coordinates the delta accumulator runs on, and
// DX/DY the smoothed per-tick deltas used for relative-motion output.
type PadState struct {
	X        float64
	Y        float64
	SX       float64
	SY       float64
	DX       float64
	DY       float64
	Touch    bool
	Press    bool
	Force    float64
	Deadzone float64
	Scale    float64
}

// DeviceState is the decoded, normalized and filtered state of the
// whole controller. It is owned by the poll goroutine.
type DeviceState struct {
	Dpad struct {
		Up    bool
		Down  bool
		Left  bool
		Right bool
	}

	Btn struct {
		A           bool
		B           bool
		X           bool
		Y           bool
		L1          bool
		L2          bool
		L3          bool
		L4          bool
		L5          bool
		R1          bool
		R2          bool
		R3          bool
		R4          bool
		R5          bool
		Menu        bool
		Options     bool
		Steam       bool
		QuickAccess bool
	}

	Trigg struct {
		L TriggerState
		R TriggerState
	}

	Stick struct {
		Filtered bool
		L        StickState
		R        StickState
	}

	Pad struct {
		Filtered bool
		L        PadState
		R        PadState
	}

	Accel struct {
		X float64
		Y float64
		Z float64
	}

	Att struct {
		Roll  float64
		Pitch float64
		Yaw   float64
	}
}

// update decodes one input report into the state, applying trigger
// deadzones, touchpad delta accumulation and the radial filters.
func (s *DeviceState) update(r *InputReport) {
	old := *s

	// Buttons
	s.Dpad.Up = r.Buttons&btnDpadUp != 0
	s.Dpad.Down = r.Buttons&btnDpadDown != 0
	s.Dpad.Left = r.Buttons&btnDpadLeft != 0
	s.Dpad.Right = r.Buttons&btnDpadRight != 0
	s.Btn.A = r.Buttons&btnA != 0
	s.Btn.B = r.Buttons&btnB != 0
	s.Btn.X = r.Buttons&btnX != 0
	s.Btn.Y = r.Buttons&btnY != 0
	s.Btn.L1 = r.Buttons&btnL1 != 0
	s.Btn.L2 = r.Buttons&btnL2 != 0
	s.Btn.L3 = r.Buttons&btnL3 != 0
	s.Btn.L4 = r.Buttons&btnL4 != 0
	s.Btn.L5 = r.Buttons&btnL5 != 0
	s.Btn.R1 = r.Buttons&btnR1 != 0
	s.Btn.R2 = r.Buttons&btnR2 != 0
	s.Btn.R3 = r.Buttons&btnR3 != 0
	s.Btn.R4 = r.Buttons&btnR4 != 0
	s.Btn.R5 = r.Buttons&btnR5 != 0
	s.Btn.Menu = r.Buttons&btnMenu != 0
	s.Btn.Options = r.Buttons&btnOptions != 0
	s.Btn.Steam = r.Buttons&btnSteam != 0
	s.Btn.QuickAccess = r.Buttons&btnQuickAccess != 0

	// Triggers
	s.Trigg.L.Z = float64(r.LTrigg) * triggAxisMult
	s.Trigg.R.Z = float64(r.RTrigg) * triggAxisMult
	if s.Trigg.L.Deadzone > 0 {
		s.Trigg.L.Z = applyTriggerDeadzone(s.Trigg.L.Z, s.Trigg.L.Deadzone, s.Trigg.L.Scale)
	}
	if s.Trigg.R.Deadzone > 0 {
		s.Trigg.R.Z = applyTriggerDeadzone(s.Trigg.R.Z, s.Trigg.R.Deadzone, s.Trigg.R.Scale)
	}

	// Sticks
	s.Stick.L.X = float64(r.LStickX) * stickAxisMult
	s.Stick.L.Y = float64(r.LStickY) * stickAxisMult
	s.Stick.L.Touch = r.Buttons&btnLStickTouch != 0
	s.Stick.L.Force = clampStickForce(r.LStickForce) * stickForceMult
	s.Stick.R.X = float64(r.RStickX) * stickAxisMult
	s.Stick.R.Y = float64(r.RStickY) * stickAxisMult
	s.Stick.R.Touch = r.Buttons&btnRStickTouch != 0
	s.Stick.R.Force = clampStickForce(r.RStickForce) * stickForceMult
	if s.Stick.Filtered {
		s.Stick.L.X, s.Stick.L.Y = filterStickCoords(s.Stick.L.X, s.Stick.L.Y, s.Stick.L.Deadzone, s.Stick.L.Scale)
		s.Stick.R.X, s.Stick.R.Y = filterStickCoords(s.Stick.R.X, s.Stick.R.Y, s.Stick.R.Deadzone, s.Stick.R.Scale)
	}

	// Pads
	s.Pad.L.X = float64(r.LPadX) * padAxisMult
	s.Pad.L.Y = float64(r.LPadY) * padAxisMult
	s.Pad.L.SX = (float64(r.LPadX) + padXMax) * padSensMult
	s.Pad.L.SY = (float64(r.LPadY)*-1.0 + padYMin) * padSensMult
	s.Pad.L.Touch = r.Buttons&btnLPadTouch != 0
	s.Pad.L.Press = r.Buttons&btnLPadPress != 0
	s.Pad.L.Force = float64(r.LPadForce) * padForceMult
	s.Pad.R.X = float64(r.RPadX) * padAxisMult
	s.Pad.R.Y = float64(r.RPadY) * padAxisMult
	s.Pad.R.SX = (float64(r.RPadX) + padXMax) * padSensMult
	s.Pad.R.SY = (float64(r.RPadY)*-1.0 + padYMin) * padSensMult
	s.Pad.R.Touch = r.Buttons&btnRPadTouch != 0
	s.Pad.R.Press = r.Buttons&btnRPadPress != 0
	s.Pad.R.Force = float64(r.RPadForce) * padForceMult

	// Trackpad deltas: a rolling average while the finger stays down,
	// inertial tail-off once it lifts.
	if s.Pad.L.Touch && old.Pad.L.Touch {
		s.Pad.L.DX = ((s.Pad.L.SX - old.Pad.L.SX) + old.Pad.L.DX) / 2.0
		s.Pad.L.DY = ((s.Pad.L.SY - old.Pad.L.SY) + old.Pad.L.DY) / 2.0
	} else {
		s.Pad.L.DX = old.Pad.L.DX * padDeltaDecay
		s.Pad.L.DY = old.Pad.L.DY * padDeltaDecay
	}
	if s.Pad.R.Touch && old.Pad.R.Touch {
		s.Pad.R.DX = ((s.Pad.R.SX - old.Pad.R.SX) + old.Pad.R.DX) / 2.0
		s.Pad.R.DY = ((s.Pad.R.SY - old.Pad.R.SY) + old.Pad.R.DY) / 2.0
	} else {
		s.Pad.R.DX = old.Pad.R.DX * padDeltaDecay
		s.Pad.R.DY = old.Pad.R.DY * padDeltaDecay
	}

	if s.Pad.Filtered {
		s.Pad.L.X, s.Pad.L.Y = filterPadCoords(s.Pad.L.X, s.Pad.L.Y, s.Pad.L.Deadzone, s.Pad.L.Scale)
		s.Pad.R.X, s.Pad.R.Y = filterPadCoords(s.Pad.R.X, s.Pad.R.Y, s.Pad.R.Deadzone, s.Pad.R.Scale)
	}

	// Motion
	s.Accel.X = float64(r.AccelX) * accelAxisMult
	s.Accel.Y = float64(r.AccelY) * accelAxisMult
	s.Accel.Z = float64(r.AccelZ) * accelAxisMult
	s.Att.Pitch = float64(r.GyroPitch) * gyroAxisMult
	s.Att.Roll = float64(r.GyroRoll) * gyroAxisMult
	s.Att.Yaw = float64(r.GyroYaw) * gyroAxisMult
}

func applyTriggerDeadzone(z, deadzone, scale float64) float64 {
	if z < deadzone {
		return 0
	}
	return (z - deadzone) * scale
}

func clampStickForce(raw uint8) float64 {
	f := float64(raw)
	if f > stickForceMax {
		return stickForceMax
	}
	return f
}
