package gamepad

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/open-sd/opensd/evname"
	"github.com/open-sd/opensd/ini"
)

// ProfileLoader populates a Profile from an INI file, layered on top
// of the template defaults. Loaders are reusable; internal state is
// reset on every Load.
type ProfileLoader struct {
	ini    ini.File
	prof   Profile
	bindID uint32
}

func (l *ProfileLoader) reset() {
	l.ini.Clear()
	l.prof = TemplateProfile()
	l.bindID = 1
}

// LoadFile loads and parses a profile file from disk.
func (l *ProfileLoader) LoadFile(path string) (Profile, error) {
	l.reset()
	if err := l.ini.LoadFile(path); err != nil {
		return Profile{}, err
	}
	return l.build(), nil
}

// Load parses a profile from a reader.
func (l *ProfileLoader) Load(r io.Reader) (Profile, error) {
	l.reset()
	if err := l.ini.Load(r); err != nil {
		return Profile{}, err
	}
	return l.build(), nil
}

func (l *ProfileLoader) build() Profile {
	// [Profile]
	if v := l.ini.GetVal("Profile", "Name"); v.Count() > 0 {
		l.prof.Name = v.FullString(0)
	}
	if v := l.ini.GetVal("Profile", "Description"); v.Count() > 0 {
		l.prof.Description = v.FullString(0)
	}

	// [Features]
	l.featEnable("ForceFeedback", &l.prof.Features.FF)
	l.featEnable("MotionDevice", &l.prof.Features.Motion)
	l.featEnable("MouseDevice", &l.prof.Features.Mouse)
	l.featEnable("LizardMode", &l.prof.Features.Lizard)
	l.featEnable("StickFiltering", &l.prof.Features.FilterSticks)
	l.featEnable("TrackpadFiltering", &l.prof.Features.FilterPads)

	// [Deadzones]
	l.deadzone("LStick", &l.prof.Deadzones.LStick)
	l.deadzone("RStick", &l.prof.Deadzones.RStick)
	l.deadzone("LPad", &l.prof.Deadzones.LPad)
	l.deadzone("RPad", &l.prof.Deadzones.RPad)
	l.deadzone("LTrigg", &l.prof.Deadzones.LTrigg)
	l.deadzone("RTrigg", &l.prof.Deadzones.RTrigg)

	// [DeviceInfo]
	l.nameOverride("GamepadName", &l.prof.Dev.Gamepad.NameOverride)
	l.nameOverride("MotionName", &l.prof.Dev.Motion.NameOverride)
	l.nameOverride("MouseName", &l.prof.Dev.Mouse.NameOverride)

	// [GamepadAxes] / [MotionAxes]
	l.axesSection("GamepadAxes", &l.prof.Dev.Gamepad)
	l.axesSection("MotionAxes", &l.prof.Dev.Motion)

	// [Bindings]
	m := &l.prof.Map
	l.binding("DpadUp", &m.Dpad.Up)
	l.binding("DpadDown", &m.Dpad.Down)
	l.binding("DpadLeft", &m.Dpad.Left)
	l.binding("DpadRight", &m.Dpad.Right)
	l.binding("A", &m.Btn.A)
	l.binding("B", &m.Btn.B)
	l.binding("X", &m.Btn.X)
	l.binding("Y", &m.Btn.Y)
	l.binding("L1", &m.Btn.L1)
	l.binding("L2", &m.Btn.L2)
	l.binding("L3", &m.Btn.L3)
	l.binding("L4", &m.Btn.L4)
	l.binding("L5", &m.Btn.L5)
	l.binding("R1", &m.Btn.R1)
	l.binding("R2", &m.Btn.R2)
	l.binding("R3", &m.Btn.R3)
	l.binding("R4", &m.Btn.R4)
	l.binding("R5", &m.Btn.R5)
	l.binding("Menu", &m.Btn.Menu)
	l.binding("Options", &m.Btn.Options)
	l.binding("Steam", &m.Btn.Steam)
	l.binding("QuickAccess", &m.Btn.QuickAccess)
	l.binding("LTrigg", &m.Trigg.L)
	l.binding("RTrigg", &m.Trigg.R)
	l.binding("LStickUp", &m.Stick.L.Up)
	l.binding("LStickDown", &m.Stick.L.Down)
	l.binding("LStickLeft", &m.Stick.L.Left)
	l.binding("LStickRight", &m.Stick.L.Right)
	l.binding("LStickTouch", &m.Stick.L.Touch)
	l.binding("LStickForce", &m.Stick.L.Force)
	l.binding("RStickUp", &m.Stick.R.Up)
	l.binding("RStickDown", &m.Stick.R.Down)
	l.binding("RStickLeft", &m.Stick.R.Left)
	l.binding("RStickRight", &m.Stick.R.Right)
	l.binding("RStickTouch", &m.Stick.R.Touch)
	l.binding("RStickForce", &m.Stick.R.Force)
	l.binding("LPadUp", &m.Pad.L.Up)
	l.binding("LPadDown", &m.Pad.L.Down)
	l.binding("LPadLeft", &m.Pad.L.Left)
	l.binding("LPadRight", &m.Pad.L.Right)
	l.binding("LPadRelX", &m.Pad.L.RelX)
	l.binding("LPadRelY", &m.Pad.L.RelY)
	l.binding("LPadTouch", &m.Pad.L.Touch)
	l.binding("LPadPress", &m.Pad.L.Press)
	l.binding("LPadForce", &m.Pad.L.Force)
	l.binding("RPadUp", &m.Pad.R.Up)
	l.binding("RPadDown", &m.Pad.R.Down)
	l.binding("RPadLeft", &m.Pad.R.Left)
	l.binding("RPadRight", &m.Pad.R.Right)
	l.binding("RPadRelX", &m.Pad.R.RelX)
	l.binding("RPadRelY", &m.Pad.R.RelY)
	l.binding("RPadTouch", &m.Pad.R.Touch)
	l.binding("RPadPress", &m.Pad.R.Press)
	l.binding("RPadForce", &m.Pad.R.Force)
	l.binding("AccelXPlus", &m.Accel.XPlus)
	l.binding("AccelXMinus", &m.Accel.XMinus)
	l.binding("AccelYPlus", &m.Accel.YPlus)
	l.binding("AccelYMinus", &m.Accel.YMinus)
	l.binding("AccelZPlus", &m.Accel.ZPlus)
	l.binding("AccelZMinus", &m.Accel.ZMinus)
	l.binding("RollPlus", &m.Att.RollPlus)
	l.binding("RollMinus", &m.Att.RollMinus)
	l.binding("PitchPlus", &m.Att.PitchPlus)
	l.binding("PitchMinus", &m.Att.PitchMinus)
	l.binding("YawPlus", &m.Att.YawPlus)
	l.binding("YawMinus", &m.Att.YawMinus)

	return l.prof
}

// featEnable sets a feature flag from the [Features] section; the
// value keeps its default when the key is absent. The literal token
// "true" in any case enables, anything else disables.
func (l *ProfileLoader) featEnable(key string, out *bool) {
	v := l.ini.GetVal("Features", key)
	if v.Count() == 0 {
		return
	}
	*out = v.Bool(0)
}

// deadzone reads a [Deadzones] value clamped into [0, 0.9].
func (l *ProfileLoader) deadzone(key string, out *float64) {
	v := l.ini.GetVal("Deadzones", key)
	if v.Count() == 0 {
		return
	}
	dz := v.Double(0)
	if dz > 0.9 {
		dz = 0.9
	}
	if dz < 0 {
		dz = 0
	}
	*out = dz
}

func (l *ProfileLoader) nameOverride(key string, out *string) {
	v := l.ini.GetVal("DeviceInfo", key)
	if v.Count() == 0 {
		return
	}
	*out = v.FullString(0)
}

// axesSection enables one ABS axis per key of an axes section, with
// the two integer values as its range.
func (l *ProfileLoader) axesSection(section string, caps *DevCaps) {
	for _, key := range l.ini.KeyList(section) {
		code, ok := evname.Code(evname.EvAbs, strings.ToUpper(key))
		if !ok {
			slog.Debug("profile: unknown axis name, ignoring", "section", section, "axis", key)
			continue
		}
		v := l.ini.GetVal(section, key)
		if v.Count() < 2 {
			slog.Debug("profile: axis expects two integer values, ignoring", "section", section, "axis", key)
			continue
		}
		min, max := v.Int(0), v.Int(1)
		if min == max {
			slog.Debug("profile: axis has an invalid range, ignoring", "section", section, "axis", key)
			continue
		}
		caps.addAbs(code, int32(min), int32(max))
	}
}

// binding parses one [Bindings] key into its slot. The slot keeps the
// template default when the key is absent or malformed.
func (l *ProfileLoader) binding(key string, out *Binding) {
	v := l.ini.GetVal("Bindings", key)
	if v.Count() == 0 {
		return
	}

	switch strings.ToUpper(v.String(0)) {
	case "NONE":
		*out = Binding{}
	case "GAMEPAD", "MOTION", "MOUSE":
		l.eventBinding(key, v, out)
	case "COMMAND":
		l.commandBinding(key, v, out)
	case "PROFILE":
		l.profileBinding(key, v, out)
	default:
		slog.Debug("profile: unknown bind type, ignoring", "binding", key, "type", v.String(0))
	}
}

func (l *ProfileLoader) eventBinding(key string, v ini.ValVec, out *Binding) {
	if v.Count() < 2 {
		slog.Debug("profile: event bindings need at least two parameters, ignoring", "binding", key)
		return
	}

	var bind Binding
	switch strings.ToUpper(v.String(0)) {
	case "GAMEPAD":
		bind.Dev = BindGamepad
	case "MOTION":
		bind.Dev = BindMotion
	case "MOUSE":
		bind.Dev = BindMouse
	}

	evStr := strings.ToUpper(v.String(1))
	evType, ok := evname.Type(evStr)
	if !ok {
		slog.Debug("profile: unrecognized event name, ignoring", "binding", key, "event", evStr)
		return
	}
	code, ok := evname.Code(evType, evStr)
	if !ok {
		slog.Debug("profile: unrecognized event code, ignoring", "binding", key, "event", evStr)
		return
	}
	bind.EvType = evType
	bind.EvCode = code

	switch evType {
	case evname.EvKey:
		l.addKeyEvent(bind.Dev, code)
	case evname.EvAbs:
		// Axes need a direction token; the axis itself is enabled in
		// the [GamepadAxes] / [MotionAxes] sections, not here.
		switch v.String(2) {
		case "+":
			bind.Dir = true
		case "-":
			bind.Dir = false
		default:
			slog.Debug("profile: axis binding needs a direction (+ or -), ignoring", "binding", key)
			return
		}
	case evname.EvRel:
		l.addRelEvent(bind.Dev, code)
	}

	slog.Debug("profile: added binding", "binding", key, "event", evStr)
	*out = bind
}

// commandBinding parses "Command <wait> <delay_ms> <shell command>".
func (l *ProfileLoader) commandBinding(key string, v ini.ValVec, out *Binding) {
	if v.Count() < 4 {
		slog.Debug("profile: command bindings need at least four parameters, ignoring", "binding", key)
		return
	}

	bind := Binding{Dev: BindCommand}
	if v.Bool(1) {
		bind.ID = l.bindID
		l.bindID++
	}
	delay := v.Int(2)
	if delay < 0 {
		slog.Debug("profile: command repeat delay must be 0 or greater", "binding", key)
		delay = 0
	}
	bind.Delay = time.Duration(delay) * time.Millisecond
	bind.Cmd = v.FullString(3)
	if bind.Cmd == "" {
		slog.Debug("profile: command string is empty, ignoring", "binding", key)
		return
	}
	*out = bind
}

// profileBinding parses "Profile <profile file name>".
func (l *ProfileLoader) profileBinding(key string, v ini.ValVec, out *Binding) {
	if v.Count() < 2 {
		slog.Debug("profile: profile bindings need at least two parameters, ignoring", "binding", key)
		return
	}
	bind := Binding{Dev: BindProfile, Cmd: v.FullString(1)}
	if bind.Cmd == "" {
		return
	}
	*out = bind
}

func (l *ProfileLoader) addKeyEvent(dev BindType, code uint16) {
	switch dev {
	case BindGamepad:
		l.prof.Dev.Gamepad.addKey(code)
	case BindMouse:
		l.prof.Dev.Mouse.addKey(code)
	default:
		slog.Debug("profile: key events are not supported on this device", "dev", dev)
	}
}

func (l *ProfileLoader) addRelEvent(dev BindType, code uint16) {
	switch dev {
	case BindGamepad:
		l.prof.Dev.Gamepad.addRel(code)
	case BindMotion:
		l.prof.Dev.Motion.addRel(code)
	case BindMouse:
		l.prof.Dev.Mouse.addRel(code)
	}
}

// LoadProfileFile is a convenience wrapper for one-shot loads.
func LoadProfileFile(path string) (Profile, error) {
	var l ProfileLoader
	p, err := l.LoadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("loading profile %s: %w", path, err)
	}
	return p, nil
}
