package gamepad

import (
	"time"

	"github.com/open-sd/opensd/evname"
)

// Event type shorthands for the dispatch tables.
const (
	evKey = evname.EvKey
	evAbs = evname.EvAbs
	evRel = evname.EvRel
)

// BindType selects where a binding's events go.
type BindType uint8

const (
	BindNone BindType = iota
	BindGamepad
	BindMotion
	BindMouse
	BindCommand
	BindProfile
)

// BindMode tags how the driver interprets a state value when it
// dispatches a slot.
type BindMode uint8

const (
	ModeButton BindMode = iota
	ModeAxisPlus
	ModeAxisMinus
	ModePressure
	ModeRelative
)

// Binding maps one logical control slot to an output event, a shell
// command, or a profile switch. A zero Binding is unbound.
type Binding struct {
	Dev    BindType
	EvType uint16
	EvCode uint16
	// Dir selects the axis direction for ABS/REL targets:
	// true = positive, false = negative.
	Dir bool

	// Command and Profile bindings only.
	Cmd   string
	ID    uint32
	Delay time.Duration

	// Runtime edge/rate tracking, owned by the poll goroutine.
	active  bool
	lastRun time.Time
}

// StickBinds is the binding group of one thumbstick.
type StickBinds struct {
	Up    Binding
	Down  Binding
	Left  Binding
	Right Binding
	Touch Binding
	Force Binding
}

// PadBinds is the binding group of one touchpad.
type PadBinds struct {
	Up    Binding
	Down  Binding
	Left  Binding
	Right Binding
	RelX  Binding
	RelY  Binding
	Touch Binding
	Press Binding
	Force Binding
}

// BindMap names every logical control slot on the physical device. A
// flat record keeps slot dispatch free of indirection on the hot path.
type BindMap struct {
	Dpad struct {
		Up    Binding
		Down  Binding
		Left  Binding
		Right Binding
	}

	Btn struct {
		A           Binding
		B           Binding
		X           Binding
		Y           Binding
		L1          Binding
		L2          Binding
		L3          Binding
		L4          Binding
		L5          Binding
		R1          Binding
		R2          Binding
		R3          Binding
		R4          Binding
		R5          Binding
		Menu        Binding
		Options     Binding
		Steam       Binding
		QuickAccess Binding
	}

	Trigg struct {
		L Binding
		R Binding
	}

	Stick struct {
		L StickBinds
		R StickBinds
	}

	Pad struct {
		L PadBinds
		R PadBinds
	}

	Accel struct {
		XPlus  Binding
		XMinus Binding
		YPlus  Binding
		YMinus Binding
		ZPlus  Binding
		ZMinus Binding
	}

	Att struct {
		RollPlus   Binding
		RollMinus  Binding
		PitchPlus  Binding
		PitchMinus Binding
		YawPlus    Binding
		YawMinus   Binding
	}
}
