package gamepad

// translate maps the current device state through the binding map,
// queueing events on the synthetic devices. One call per decoded
// report.
func (d *Driver) translate() {
	s := &d.state
	m := &d.bind

	d.transEvent(&m.Dpad.Up, b2f(s.Dpad.Up), ModeButton)
	d.transEvent(&m.Dpad.Down, b2f(s.Dpad.Down), ModeButton)
	d.transEvent(&m.Dpad.Left, b2f(s.Dpad.Left), ModeButton)
	d.transEvent(&m.Dpad.Right, b2f(s.Dpad.Right), ModeButton)
	d.transEvent(&m.Btn.A, b2f(s.Btn.A), ModeButton)
	d.transEvent(&m.Btn.B, b2f(s.Btn.B), ModeButton)
	d.transEvent(&m.Btn.X, b2f(s.Btn.X), ModeButton)
	d.transEvent(&m.Btn.Y, b2f(s.Btn.Y), ModeButton)
	d.transEvent(&m.Btn.L1, b2f(s.Btn.L1), ModeButton)
	d.transEvent(&m.Btn.L2, b2f(s.Btn.L2), ModeButton)
	d.transEvent(&m.Btn.L3, b2f(s.Btn.L3), ModeButton)
	d.transEvent(&m.Btn.L4, b2f(s.Btn.L4), ModeButton)
	d.transEvent(&m.Btn.L5, b2f(s.Btn.L5), ModeButton)
	d.transEvent(&m.Btn.R1, b2f(s.Btn.R1), ModeButton)
	d.transEvent(&m.Btn.R2, b2f(s.Btn.R2), ModeButton)
	d.transEvent(&m.Btn.R3, b2f(s.Btn.R3), ModeButton)
	d.transEvent(&m.Btn.R4, b2f(s.Btn.R4), ModeButton)
	d.transEvent(&m.Btn.R5, b2f(s.Btn.R5), ModeButton)
	d.transEvent(&m.Btn.Menu, b2f(s.Btn.Menu), ModeButton)
	d.transEvent(&m.Btn.Options, b2f(s.Btn.Options), ModeButton)
	d.transEvent(&m.Btn.Steam, b2f(s.Btn.Steam), ModeButton)
	d.transEvent(&m.Btn.QuickAccess, b2f(s.Btn.QuickAccess), ModeButton)
	d.transEvent(&m.Trigg.L, s.Trigg.L.Z, ModePressure)
	d.transEvent(&m.Trigg.R, s.Trigg.R.Z, ModePressure)
	d.transEvent(&m.Stick.L.Up, s.Stick.L.Y, ModeAxisMinus)
	d.transEvent(&m.Stick.L.Down, s.Stick.L.Y, ModeAxisPlus)
	d.transEvent(&m.Stick.L.Left, s.Stick.L.X, ModeAxisMinus)
	d.transEvent(&m.Stick.L.Right, s.Stick.L.X, ModeAxisPlus)
	d.transEvent(&m.Stick.L.Touch, b2f(s.Stick.L.Touch), ModeButton)
	d.transEvent(&m.Stick.L.Force, s.Stick.L.Force, ModePressure)
	d.transEvent(&m.Stick.R.Up, s.Stick.R.Y, ModeAxisMinus)
	d.transEvent(&m.Stick.R.Down, s.Stick.R.Y, ModeAxisPlus)
	d.transEvent(&m.Stick.R.Left, s.Stick.R.X, ModeAxisMinus)
	d.transEvent(&m.Stick.R.Right, s.Stick.R.X, ModeAxisPlus)
	d.transEvent(&m.Stick.R.Touch, b2f(s.Stick.R.Touch), ModeButton)
	d.transEvent(&m.Stick.R.Force, s.Stick.R.Force, ModePressure)
	d.transEvent(&m.Pad.L.Up, s.Pad.L.Y, ModeAxisMinus)
	d.transEvent(&m.Pad.L.Down, s.Pad.L.Y, ModeAxisPlus)
	d.transEvent(&m.Pad.L.Left, s.Pad.L.X, ModeAxisMinus)
	d.transEvent(&m.Pad.L.Right, s.Pad.L.X, ModeAxisPlus)
	d.transEvent(&m.Pad.L.RelX, s.Pad.L.DX, ModeRelative)
	d.transEvent(&m.Pad.L.RelY, s.Pad.L.DY, ModeRelative)
	d.transEvent(&m.Pad.L.Touch, b2f(s.Pad.L.Touch), ModeButton)
	d.transEvent(&m.Pad.L.Press, b2f(s.Pad.L.Press), ModeButton)
	d.transEvent(&m.Pad.L.Force, s.Pad.L.Force, ModePressure)
	d.transEvent(&m.Pad.R.Up, s.Pad.R.Y, ModeAxisMinus)
	d.transEvent(&m.Pad.R.Down, s.Pad.R.Y, ModeAxisPlus)
	d.transEvent(&m.Pad.R.Left, s.Pad.R.X, ModeAxisMinus)
	d.transEvent(&m.Pad.R.Right, s.Pad.R.X, ModeAxisPlus)
	d.transEvent(&m.Pad.R.RelX, s.Pad.R.DX, ModeRelative)
	d.transEvent(&m.Pad.R.RelY, s.Pad.R.DY, ModeRelative)
	d.transEvent(&m.Pad.R.Touch, b2f(s.Pad.R.Touch), ModeButton)
	d.transEvent(&m.Pad.R.Press, b2f(s.Pad.R.Press), ModeButton)
	d.transEvent(&m.Pad.R.Force, s.Pad.R.Force, ModePressure)
	d.transEvent(&m.Accel.XPlus, s.Accel.X, ModeAxisPlus)
	d.transEvent(&m.Accel.XMinus, s.Accel.X, ModeAxisMinus)
	d.transEvent(&m.Accel.YPlus, s.Accel.Y, ModeAxisPlus)
	d.transEvent(&m.Accel.YMinus, s.Accel.Y, ModeAxisMinus)
	d.transEvent(&m.Accel.ZPlus, s.Accel.Z, ModeAxisPlus)
	d.transEvent(&m.Accel.ZMinus, s.Accel.Z, ModeAxisMinus)
	d.transEvent(&m.Att.RollPlus, s.Att.Roll, ModeAxisPlus)
	d.transEvent(&m.Att.RollMinus, s.Att.Roll, ModeAxisMinus)
	d.transEvent(&m.Att.PitchPlus, s.Att.Pitch, ModeAxisPlus)
	d.transEvent(&m.Att.PitchMinus, s.Att.Pitch, ModeAxisMinus)
	d.transEvent(&m.Att.YawPlus, s.Att.Yaw, ModeAxisPlus)
	d.transEvent(&m.Att.YawMinus, s.Att.Yaw, ModeAxisMinus)
}

// transEvent dispatches one slot value through its binding. A binding
// targeting a device the current profile did not instantiate is
// silently dropped.
func (d *Driver) transEvent(bind *Binding, state float64, mode BindMode) {
	var dev OutputDevice
	switch bind.Dev {
	case BindNone:
		return
	case BindGamepad:
		dev = d.gamepadDev
	case BindMotion:
		dev = d.motionDev
	case BindMouse:
		dev = d.mouseDev
	case BindCommand, BindProfile:
		d.transAction(bind, state, mode)
		return
	default:
		d.log.Debug("unhandled device type in binding")
		return
	}
	if dev == nil {
		return
	}

	switch mode {
	case ModeButton:
		switch bind.EvType {
		case evKey:
			dev.UpdateKey(bind.EvCode, state != 0)
		case evAbs:
			if state != 0 {
				dev.UpdateAbs(bind.EvCode, dirValue(bind.Dir, 1.0))
			}
		case evRel:
			if state != 0 {
				dev.UpdateRel(bind.EvCode, dirValue(bind.Dir, 1.0))
			}
		default:
			d.log.Debug("unsupported input event type in button binding")
		}

	case ModeAxisMinus:
		switch bind.EvType {
		case evKey:
			dev.UpdateKey(bind.EvCode, state < 0)
		case evAbs:
			if state < 0 {
				dev.UpdateAbs(bind.EvCode, axisValue(bind.Dir, state))
			}
		case evRel:
			if state < 0 {
				dev.UpdateRel(bind.EvCode, axisValue(bind.Dir, state))
			}
		default:
			d.log.Debug("unsupported input event type in axis binding")
		}

	case ModeAxisPlus, ModePressure:
		switch bind.EvType {
		case evKey:
			dev.UpdateKey(bind.EvCode, state > 0)
		case evAbs:
			if state > 0 {
				dev.UpdateAbs(bind.EvCode, dirValue(bind.Dir, state))
			}
		case evRel:
			if state > 0 {
				dev.UpdateRel(bind.EvCode, dirValue(bind.Dir, state))
			}
		default:
			d.log.Debug("unsupported input event type in axis binding")
		}

	case ModeRelative:
		switch bind.EvType {
		case evRel:
			dev.UpdateRel(bind.EvCode, state)
		default:
			d.log.Debug("unsupported input event type in relative binding")
		}

	default:
		d.log.Debug("unhandled binding mode")
	}
}

// transAction runs Command and Profile bindings on the rising edge of
// their trigger condition.
func (d *Driver) transAction(bind *Binding, state float64, mode BindMode) {
	var triggered bool
	switch mode {
	case ModeButton, ModeAxisPlus, ModePressure:
		triggered = state > 0
	case ModeAxisMinus:
		triggered = state < 0
	default:
		// Relative slots have no sensible trigger edge.
		return
	}

	switch bind.Dev {
	case BindCommand:
		d.cmd.trigger(bind, triggered)
	case BindProfile:
		if !triggered {
			bind.active = false
			return
		}
		if bind.active {
			return
		}
		bind.active = true
		if d.onProfileRequest != nil {
			d.onProfileRequest(bind.Cmd)
		}
	}
}

// dirValue applies an ABS/REL binding's direction to a magnitude-like
// value.
func dirValue(dir bool, v float64) float64 {
	if dir {
		return v
	}
	return -v
}

// axisValue applies direction to a negative axis value: dir selects
// the absolute value, otherwise the value passes through.
func axisValue(dir bool, v float64) float64 {
	if dir {
		return -v
	}
	return v
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
