package gamepad

import (
	"github.com/open-sd/opensd/evname"
	"github.com/open-sd/opensd/uinput"
)

// Default synthetic device names, used when a profile carries no
// override.
const (
	defaultGamepadName = "OpenSD Gamepad Device"
	defaultMotionName  = "OpenSD Motion Control Device"
	defaultMouseName   = "OpenSD Trackpad/Mouse Device"
)

// TemplateProfile is the profile every loaded file is layered onto.
// It carries the defaults that are not worth leaving to the user: an
// unbound map, filtering on, and a mouse capability set wide enough
// for any pad binding.
func TemplateProfile() Profile {
	var p Profile
	p.Name = "Basic profile template"
	p.Description = "The default profile template description."
	p.Features = Features{
		FilterSticks: true,
		FilterPads:   true,
	}
	p.Dev.Gamepad.NameOverride = defaultGamepadName
	p.Dev.Motion.NameOverride = defaultMotionName
	p.Dev.Mouse.NameOverride = defaultMouseName
	p.Dev.Mouse.Keys = []uint16{
		evname.BtnLeft,
		evname.BtnRight,
		evname.BtnMiddle,
		evname.BtnSide,
		evname.BtnExtra,
		evname.BtnForward,
		evname.BtnBack,
		evname.BtnTask,
	}
	p.Dev.Mouse.Rels = []uint16{
		evname.RelX,
		evname.RelY,
		evname.RelWheel,
		evname.RelHWheel,
	}
	return p
}

// DefaultProfile is the built-in profile used until a user profile is
// loaded. It follows a PS5-style button and axis layout, drives the
// right pad as a trackpad mouse, and clicks through the pad presses.
func DefaultProfile() Profile {
	var p Profile
	p.Name = "Default OpenSD Profile"
	p.Description = "A basic configuration that should work for most games and provide a few extras."
	p.Features = Features{
		FF:           true,
		Motion:       true,
		Mouse:        true,
		FilterSticks: true,
		FilterPads:   true,
	}
	p.Deadzones = Deadzones{
		LStick: 0.04,
		RStick: 0.04,
	}

	p.Dev.Gamepad.Keys = []uint16{
		evname.BtnSouth,
		evname.BtnEast,
		evname.BtnWest,
		evname.BtnNorth,
		evname.BtnTL,
		evname.BtnTR,
		evname.BtnTL2,
		evname.BtnTR2,
		evname.BtnThumbL,
		evname.BtnThumbR,
		evname.BtnStart,
		evname.BtnSelect,
		evname.BtnMode,
		evname.KeyMenu,
	}
	p.Dev.Gamepad.Abs = []uinput.AbsInfo{
		{Code: evname.AbsHat0X, Min: -1, Max: 1},
		{Code: evname.AbsHat0Y, Min: -1, Max: 1},
		{Code: evname.AbsX, Min: -32767, Max: 32767},
		{Code: evname.AbsY, Min: -32767, Max: 32767},
		{Code: evname.AbsRX, Min: -32767, Max: 32767},
		{Code: evname.AbsRY, Min: -32767, Max: 32767},
		{Code: evname.AbsZ, Min: 0, Max: 32767},
		{Code: evname.AbsRZ, Min: 0, Max: 32767},
	}

	p.Dev.Motion.Abs = []uinput.AbsInfo{
		{Code: evname.AbsX, Min: -32767, Max: 32767},
		{Code: evname.AbsY, Min: -32767, Max: 32767},
		{Code: evname.AbsZ, Min: -32767, Max: 32767},
		{Code: evname.AbsRX, Min: -32767, Max: 32767},
		{Code: evname.AbsRY, Min: -32767, Max: 32767},
		{Code: evname.AbsRZ, Min: -32767, Max: 32767},
	}

	p.Dev.Mouse.Keys = []uint16{evname.BtnLeft, evname.BtnRight}
	p.Dev.Mouse.Rels = []uint16{evname.RelX, evname.RelY}

	gameKey := func(code uint16) Binding {
		return Binding{Dev: BindGamepad, EvType: evname.EvKey, EvCode: code}
	}
	gameAbs := func(code uint16, dir bool) Binding {
		return Binding{Dev: BindGamepad, EvType: evname.EvAbs, EvCode: code, Dir: dir}
	}
	motionAbs := func(code uint16, dir bool) Binding {
		return Binding{Dev: BindMotion, EvType: evname.EvAbs, EvCode: code, Dir: dir}
	}

	p.Map.Dpad.Up = gameAbs(evname.AbsHat0Y, false)
	p.Map.Dpad.Down = gameAbs(evname.AbsHat0Y, true)
	p.Map.Dpad.Left = gameAbs(evname.AbsHat0X, false)
	p.Map.Dpad.Right = gameAbs(evname.AbsHat0X, true)

	p.Map.Btn.A = gameKey(evname.BtnSouth)
	p.Map.Btn.B = gameKey(evname.BtnEast)
	p.Map.Btn.X = gameKey(evname.BtnWest)
	p.Map.Btn.Y = gameKey(evname.BtnNorth)
	p.Map.Btn.L1 = gameKey(evname.BtnTL)
	p.Map.Btn.L2 = gameKey(evname.BtnTL2)
	p.Map.Btn.L3 = gameKey(evname.BtnThumbL)
	p.Map.Btn.R1 = gameKey(evname.BtnTR)
	p.Map.Btn.R2 = gameKey(evname.BtnTR2)
	p.Map.Btn.R3 = gameKey(evname.BtnThumbR)
	p.Map.Btn.Menu = gameKey(evname.BtnStart)
	p.Map.Btn.Options = gameKey(evname.BtnSelect)
	p.Map.Btn.Steam = gameKey(evname.BtnMode)
	p.Map.Btn.QuickAccess = gameKey(evname.KeyMenu)

	p.Map.Trigg.L = gameAbs(evname.AbsZ, true)
	p.Map.Trigg.R = gameAbs(evname.AbsRZ, true)

	p.Map.Stick.L.Up = gameAbs(evname.AbsY, false)
	p.Map.Stick.L.Down = gameAbs(evname.AbsY, true)
	p.Map.Stick.L.Left = gameAbs(evname.AbsX, false)
	p.Map.Stick.L.Right = gameAbs(evname.AbsX, true)
	p.Map.Stick.R.Up = gameAbs(evname.AbsRY, false)
	p.Map.Stick.R.Down = gameAbs(evname.AbsRY, true)
	p.Map.Stick.R.Left = gameAbs(evname.AbsRX, false)
	p.Map.Stick.R.Right = gameAbs(evname.AbsRX, true)

	p.Map.Pad.L.Press = Binding{Dev: BindMouse, EvType: evname.EvKey, EvCode: evname.BtnLeft}
	p.Map.Pad.R.RelX = Binding{Dev: BindMouse, EvType: evname.EvRel, EvCode: evname.RelX}
	p.Map.Pad.R.RelY = Binding{Dev: BindMouse, EvType: evname.EvRel, EvCode: evname.RelY}
	p.Map.Pad.R.Press = Binding{Dev: BindMouse, EvType: evname.EvKey, EvCode: evname.BtnRight}

	p.Map.Accel.XPlus = motionAbs(evname.AbsRX, true)
	p.Map.Accel.XMinus = motionAbs(evname.AbsRX, false)
	p.Map.Accel.YPlus = motionAbs(evname.AbsRY, true)
	p.Map.Accel.YMinus = motionAbs(evname.AbsRY, false)
	p.Map.Accel.ZPlus = motionAbs(evname.AbsRZ, true)
	p.Map.Accel.ZMinus = motionAbs(evname.AbsRZ, false)

	p.Map.Att.RollPlus = motionAbs(evname.AbsX, true)
	p.Map.Att.RollMinus = motionAbs(evname.AbsX, false)
	p.Map.Att.PitchPlus = motionAbs(evname.AbsY, true)
	p.Map.Att.PitchMinus = motionAbs(evname.AbsY, false)
	p.Map.Att.YawPlus = motionAbs(evname.AbsZ, true)
	p.Map.Att.YawMinus = motionAbs(evname.AbsZ, false)

	return p
}
