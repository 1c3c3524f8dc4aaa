package evname

import "strings"

// keyNames covers the KEY_* / BTN_* names a profile can bind.
var keyNames = map[string]uint16{
	"KEY_ESC":        KeyEsc,
	"KEY_1":          Key1,
	"KEY_2":          Key2,
	"KEY_3":          Key3,
	"KEY_4":          Key4,
	"KEY_5":          Key5,
	"KEY_6":          Key6,
	"KEY_7":          Key7,
	"KEY_8":          Key8,
	"KEY_9":          Key9,
	"KEY_0":          Key0,
	"KEY_MINUS":      KeyMinus,
	"KEY_EQUAL":      KeyEqual,
	"KEY_BACKSPACE":  KeyBackspace,
	"KEY_TAB":        KeyTab,
	"KEY_Q":          KeyQ,
	"KEY_W":          KeyW,
	"KEY_E":          KeyE,
	"KEY_R":          KeyR,
	"KEY_T":          KeyT,
	"KEY_Y":          KeyY,
	"KEY_U":          KeyU,
	"KEY_I":          KeyI,
	"KEY_O":          KeyO,
	"KEY_P":          KeyP,
	"KEY_LEFTBRACE":  KeyLeftBrace,
	"KEY_RIGHTBRACE": KeyRightBrace,
	"KEY_ENTER":      KeyEnter,
	"KEY_LEFTCTRL":   KeyLeftCtrl,
	"KEY_A":          KeyA,
	"KEY_S":          KeyS,
	"KEY_D":          KeyD,
	"KEY_F":          KeyF,
	"KEY_G":          KeyG,
	"KEY_H":          KeyH,
	"KEY_J":          KeyJ,
	"KEY_K":          KeyK,
	"KEY_L":          KeyL,
	"KEY_SEMICOLON":  KeySemicolon,
	"KEY_APOSTROPHE": KeyApostrophe,
	"KEY_GRAVE":      KeyGrave,
	"KEY_LEFTSHIFT":  KeyLeftShift,
	"KEY_BACKSLASH":  KeyBackslash,
	"KEY_Z":          KeyZ,
	"KEY_X":          KeyX,
	"KEY_C":          KeyC,
	"KEY_V":          KeyV,
	"KEY_B":          KeyB,
	"KEY_N":          KeyN,
	"KEY_M":          KeyM,
	"KEY_COMMA":      KeyComma,
	"KEY_DOT":        KeyDot,
	"KEY_SLASH":      KeySlash,
	"KEY_RIGHTSHIFT": KeyRightShift,
	"KEY_LEFTALT":    KeyLeftAlt,
	"KEY_SPACE":      KeySpace,
	"KEY_CAPSLOCK":   KeyCapsLock,
	"KEY_F1":         KeyF1,
	"KEY_F2":         KeyF2,
	"KEY_F3":         KeyF3,
	"KEY_F4":         KeyF4,
	"KEY_F5":         KeyF5,
	"KEY_F6":         KeyF6,
	"KEY_F7":         KeyF7,
	"KEY_F8":         KeyF8,
	"KEY_F9":         KeyF9,
	"KEY_F10":        KeyF10,
	"KEY_F11":        KeyF11,
	"KEY_F12":        KeyF12,
	"KEY_KPENTER":    KeyKpEnter,
	"KEY_RIGHTCTRL":  KeyRightCtrl,
	"KEY_RIGHTALT":   KeyRightAlt,
	"KEY_HOME":       KeyHome,
	"KEY_UP":         KeyUp,
	"KEY_PAGEUP":     KeyPageUp,
	"KEY_LEFT":       KeyLeft,
	"KEY_RIGHT":      KeyRight,
	"KEY_END":        KeyEnd,
	"KEY_DOWN":       KeyDown,
	"KEY_PAGEDOWN":   KeyPageDown,
	"KEY_INSERT":     KeyInsert,
	"KEY_DELETE":     KeyDelete,
	"KEY_MUTE":       KeyMute,
	"KEY_VOLUMEDOWN": KeyVolumeDown,
	"KEY_VOLUMEUP":   KeyVolumeUp,
	"KEY_POWER":      KeyPower,
	"KEY_PAUSE":      KeyPause,
	"KEY_LEFTMETA":   KeyLeftMeta,
	"KEY_RIGHTMETA":  KeyRightMeta,
	"KEY_COMPOSE":    KeyCompose,
	"KEY_MENU":       KeyMenu,

	"BTN_LEFT":    BtnLeft,
	"BTN_RIGHT":   BtnRight,
	"BTN_MIDDLE":  BtnMiddle,
	"BTN_SIDE":    BtnSide,
	"BTN_EXTRA":   BtnExtra,
	"BTN_FORWARD": BtnForward,
	"BTN_BACK":    BtnBack,
	"BTN_TASK":    BtnTask,

	"BTN_SOUTH":  BtnSouth,
	"BTN_EAST":   BtnEast,
	"BTN_C":      BtnC,
	"BTN_NORTH":  BtnNorth,
	"BTN_WEST":   BtnWest,
	"BTN_Z":      BtnZ,
	"BTN_TL":     BtnTL,
	"BTN_TR":     BtnTR,
	"BTN_TL2":    BtnTL2,
	"BTN_TR2":    BtnTR2,
	"BTN_SELECT": BtnSelect,
	"BTN_START":  BtnStart,
	"BTN_MODE":   BtnMode,
	"BTN_THUMBL": BtnThumbL,
	"BTN_THUMBR": BtnThumbR,

	"BTN_DPAD_UP":    BtnDpadUp,
	"BTN_DPAD_DOWN":  BtnDpadDown,
	"BTN_DPAD_LEFT":  BtnDpadLeft,
	"BTN_DPAD_RIGHT": BtnDpadRight,

	"BTN_TRIGGER_HAPPY1": BtnTriggerHappy1,
	"BTN_TRIGGER_HAPPY2": BtnTriggerHappy2,
	"BTN_TRIGGER_HAPPY3": BtnTriggerHappy3,
	"BTN_TRIGGER_HAPPY4": BtnTriggerHappy4,
}

var absNames = map[string]uint16{
	"ABS_X":        AbsX,
	"ABS_Y":        AbsY,
	"ABS_Z":        AbsZ,
	"ABS_RX":       AbsRX,
	"ABS_RY":       AbsRY,
	"ABS_RZ":       AbsRZ,
	"ABS_THROTTLE": AbsThrottle,
	"ABS_RUDDER":   AbsRudder,
	"ABS_WHEEL":    AbsWheel,
	"ABS_GAS":      AbsGas,
	"ABS_BRAKE":    AbsBrake,
	"ABS_HAT0X":    AbsHat0X,
	"ABS_HAT0Y":    AbsHat0Y,
	"ABS_HAT1X":    AbsHat1X,
	"ABS_HAT1Y":    AbsHat1Y,
	"ABS_HAT2X":    AbsHat2X,
	"ABS_HAT2Y":    AbsHat2Y,
	"ABS_HAT3X":    AbsHat3X,
	"ABS_HAT3Y":    AbsHat3Y,
	"ABS_PRESSURE": AbsPressure,
	"ABS_DISTANCE": AbsDistance,
	"ABS_TILT_X":   AbsTiltX,
	"ABS_TILT_Y":   AbsTiltY,
	"ABS_VOLUME":   AbsVolume,
	"ABS_MISC":     AbsMisc,
}

var relNames = map[string]uint16{
	"REL_X":      RelX,
	"REL_Y":      RelY,
	"REL_Z":      RelZ,
	"REL_RX":     RelRX,
	"REL_RY":     RelRY,
	"REL_RZ":     RelRZ,
	"REL_HWHEEL": RelHWheel,
	"REL_DIAL":   RelDial,
	"REL_WHEEL":  RelWheel,
	"REL_MISC":   RelMisc,
}

// Type returns the event type an event name belongs to, derived from
// its prefix. Returns false for names outside the known namespaces.
func Type(name string) (uint16, bool) {
	switch {
	case strings.HasPrefix(name, "KEY_"), strings.HasPrefix(name, "BTN_"):
		return EvKey, true
	case strings.HasPrefix(name, "ABS_"):
		return EvAbs, true
	case strings.HasPrefix(name, "REL_"):
		return EvRel, true
	}
	return 0, false
}

// Code resolves an event name of the given type to its numeric code.
func Code(evType uint16, name string) (uint16, bool) {
	switch evType {
	case EvKey:
		c, ok := keyNames[name]
		return c, ok
	case EvAbs:
		c, ok := absNames[name]
		return c, ok
	case EvRel:
		c, ok := relNames[name]
		return c, ok
	}
	return 0, false
}

// Lookup resolves an event name to its (type, code) pair in one step.
func Lookup(name string) (evType, code uint16, ok bool) {
	evType, ok = Type(name)
	if !ok {
		return 0, 0, false
	}
	code, ok = Code(evType, name)
	if !ok {
		return 0, 0, false
	}
	return evType, code, true
}
