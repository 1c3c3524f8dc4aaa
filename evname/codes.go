// Package evname maps kernel input event names to their numeric types
// and codes, and carries the subset of linux/input-event-codes.h the
// driver emits.
package evname

// Event types.
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvRel uint16 = 0x02
	EvAbs uint16 = 0x03
)

// SynReport terminates every flushed event batch.
const SynReport uint16 = 0

// Keyboard keys.
const (
	KeyEsc        uint16 = 1
	Key1          uint16 = 2
	Key2          uint16 = 3
	Key3          uint16 = 4
	Key4          uint16 = 5
	Key5          uint16 = 6
	Key6          uint16 = 7
	Key7          uint16 = 8
	Key8          uint16 = 9
	Key9          uint16 = 10
	Key0          uint16 = 11
	KeyMinus      uint16 = 12
	KeyEqual      uint16 = 13
	KeyBackspace  uint16 = 14
	KeyTab        uint16 = 15
	KeyQ          uint16 = 16
	KeyW          uint16 = 17
	KeyE          uint16 = 18
	KeyR          uint16 = 19
	KeyT          uint16 = 20
	KeyY          uint16 = 21
	KeyU          uint16 = 22
	KeyI          uint16 = 23
	KeyO          uint16 = 24
	KeyP          uint16 = 25
	KeyLeftBrace  uint16 = 26
	KeyRightBrace uint16 = 27
	KeyEnter      uint16 = 28
	KeyLeftCtrl   uint16 = 29
	KeyA          uint16 = 30
	KeyS          uint16 = 31
	KeyD          uint16 = 32
	KeyF          uint16 = 33
	KeyG          uint16 = 34
	KeyH          uint16 = 35
	KeyJ          uint16 = 36
	KeyK          uint16 = 37
	KeyL          uint16 = 38
	KeySemicolon  uint16 = 39
	KeyApostrophe uint16 = 40
	KeyGrave      uint16 = 41
	KeyLeftShift  uint16 = 42
	KeyBackslash  uint16 = 43
	KeyZ          uint16 = 44
	KeyX          uint16 = 45
	KeyC          uint16 = 46
	KeyV          uint16 = 47
	KeyB          uint16 = 48
	KeyN          uint16 = 49
	KeyM          uint16 = 50
	KeyComma      uint16 = 51
	KeyDot        uint16 = 52
	KeySlash      uint16 = 53
	KeyRightShift uint16 = 54
	KeyLeftAlt    uint16 = 56
	KeySpace      uint16 = 57
	KeyCapsLock   uint16 = 58
	KeyF1         uint16 = 59
	KeyF2         uint16 = 60
	KeyF3         uint16 = 61
	KeyF4         uint16 = 62
	KeyF5         uint16 = 63
	KeyF6         uint16 = 64
	KeyF7         uint16 = 65
	KeyF8         uint16 = 66
	KeyF9         uint16 = 67
	KeyF10        uint16 = 68
	KeyF11        uint16 = 87
	KeyF12        uint16 = 88
	KeyKpEnter    uint16 = 96
	KeyRightCtrl  uint16 = 97
	KeyRightAlt   uint16 = 100
	KeyHome       uint16 = 102
	KeyUp         uint16 = 103
	KeyPageUp     uint16 = 104
	KeyLeft       uint16 = 105
	KeyRight      uint16 = 106
	KeyEnd        uint16 = 107
	KeyDown       uint16 = 108
	KeyPageDown   uint16 = 109
	KeyInsert     uint16 = 110
	KeyDelete     uint16 = 111
	KeyMute       uint16 = 113
	KeyVolumeDown uint16 = 114
	KeyVolumeUp   uint16 = 115
	KeyPower      uint16 = 116
	KeyPause      uint16 = 119
	KeyLeftMeta   uint16 = 125
	KeyRightMeta  uint16 = 126
	KeyCompose    uint16 = 127
	KeyMenu       uint16 = 139
)

// Mouse and gamepad buttons.
const (
	BtnLeft    uint16 = 0x110
	BtnRight   uint16 = 0x111
	BtnMiddle  uint16 = 0x112
	BtnSide    uint16 = 0x113
	BtnExtra   uint16 = 0x114
	BtnForward uint16 = 0x115
	BtnBack    uint16 = 0x116
	BtnTask    uint16 = 0x117

	BtnSouth  uint16 = 0x130
	BtnEast   uint16 = 0x131
	BtnC      uint16 = 0x132
	BtnNorth  uint16 = 0x133
	BtnWest   uint16 = 0x134
	BtnZ      uint16 = 0x135
	BtnTL     uint16 = 0x136
	BtnTR     uint16 = 0x137
	BtnTL2    uint16 = 0x138
	BtnTR2    uint16 = 0x139
	BtnSelect uint16 = 0x13a
	BtnStart  uint16 = 0x13b
	BtnMode   uint16 = 0x13c
	BtnThumbL uint16 = 0x13d
	BtnThumbR uint16 = 0x13e

	BtnDpadUp    uint16 = 0x220
	BtnDpadDown  uint16 = 0x221
	BtnDpadLeft  uint16 = 0x222
	BtnDpadRight uint16 = 0x223

	BtnTriggerHappy1 uint16 = 0x2c0
	BtnTriggerHappy2 uint16 = 0x2c1
	BtnTriggerHappy3 uint16 = 0x2c2
	BtnTriggerHappy4 uint16 = 0x2c3
)

// Absolute axes.
const (
	AbsX        uint16 = 0x00
	AbsY        uint16 = 0x01
	AbsZ        uint16 = 0x02
	AbsRX       uint16 = 0x03
	AbsRY       uint16 = 0x04
	AbsRZ       uint16 = 0x05
	AbsThrottle uint16 = 0x06
	AbsRudder   uint16 = 0x07
	AbsWheel    uint16 = 0x08
	AbsGas      uint16 = 0x09
	AbsBrake    uint16 = 0x0a
	AbsHat0X    uint16 = 0x10
	AbsHat0Y    uint16 = 0x11
	AbsHat1X    uint16 = 0x12
	AbsHat1Y    uint16 = 0x13
	AbsHat2X    uint16 = 0x14
	AbsHat2Y    uint16 = 0x15
	AbsHat3X    uint16 = 0x16
	AbsHat3Y    uint16 = 0x17
	AbsPressure uint16 = 0x18
	AbsDistance uint16 = 0x19
	AbsTiltX    uint16 = 0x1a
	AbsTiltY    uint16 = 0x1b
	AbsVolume   uint16 = 0x20
	AbsMisc     uint16 = 0x28
)

// Relative axes.
const (
	RelX      uint16 = 0x00
	RelY      uint16 = 0x01
	RelZ      uint16 = 0x02
	RelRX     uint16 = 0x03
	RelRY     uint16 = 0x04
	RelRZ     uint16 = 0x05
	RelHWheel uint16 = 0x06
	RelDial   uint16 = 0x07
	RelWheel  uint16 = 0x08
	RelMisc   uint16 = 0x09
)
