package gamepad

import "github.com/open-sd/opensd/uinput"

// Features toggles what the driver enables for a profile.
type Features struct {
	FF     bool
	Motion bool
	Mouse  bool
	// Lizard leaves the firmware's built-in keyboard/mouse emulation
	// running instead of suppressing it.
	Lizard       bool
	FilterSticks bool
	FilterPads   bool
}

// Deadzones are radial deadzone fractions per axis group, each in
// [0, 0.9].
type Deadzones struct {
	LStick float64
	RStick float64
	LPad   float64
	RPad   float64
	LTrigg float64
	RTrigg float64
}

// DevCaps declares the capability set of one synthetic device. Key and
// rel lists grow as bindings reference events; abs axes must be
// declared explicitly with their ranges.
type DevCaps struct {
	NameOverride string
	Keys         []uint16
	Abs          []uinput.AbsInfo
	Rels         []uint16
}

// Profile is the user-facing configuration unit: feature toggles,
// deadzones, synthetic device capabilities and the complete binding
// map.
type Profile struct {
	Name        string
	Description string
	Features    Features
	Deadzones   Deadzones

	Dev struct {
		Gamepad DevCaps
		Motion  DevCaps
		Mouse   DevCaps
	}

	Map BindMap
}

// addKey enables a key event on the device if not already present.
func (c *DevCaps) addKey(code uint16) {
	for _, k := range c.Keys {
		if k == code {
			return
		}
	}
	c.Keys = append(c.Keys, code)
}

// addAbs enables an absolute axis with its range if not already
// present.
func (c *DevCaps) addAbs(code uint16, min, max int32) {
	for _, a := range c.Abs {
		if a.Code == code {
			return
		}
	}
	c.Abs = append(c.Abs, uinput.AbsInfo{Code: code, Min: min, Max: max})
}

// addRel enables a relative axis if not already present.
func (c *DevCaps) addRel(code uint16) {
	for _, r := range c.Rels {
		if r == code {
			return
		}
	}
	c.Rels = append(c.Rels, code)
}
