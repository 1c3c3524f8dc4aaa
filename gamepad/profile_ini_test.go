package gamepad

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-sd/opensd/errs"
	"github.com/open-sd/opensd/evname"
	"github.com/open-sd/opensd/uinput"
)

func loadProfileString(t *testing.T, text string) Profile {
	t.Helper()
	var l ProfileLoader
	p, err := l.Load(strings.NewReader(text))
	require.NoError(t, err)
	return p
}

func TestLoadMalformedSectionAborts(t *testing.T) {
	var l ProfileLoader
	_, err := l.Load(strings.NewReader("[Unclosed\nA = Gamepad BTN_SOUTH\n"))
	assert.ErrorIs(t, err, errs.ErrInvalidFormat)
}

func TestLoadReservedSectionAborts(t *testing.T) {
	var l ProfileLoader
	_, err := l.Load(strings.NewReader("[NONE]\n"))
	assert.ErrorIs(t, err, errs.ErrInvalidFormat)
}

func TestLoadKeyBinding(t *testing.T) {
	p := loadProfileString(t, `
[Bindings]
A = Gamepad BTN_SOUTH
`)
	assert.Equal(t, Binding{Dev: BindGamepad, EvType: evKey, EvCode: evname.BtnSouth}, p.Map.Btn.A)
	assert.Contains(t, p.Dev.Gamepad.Keys, evname.BtnSouth)
}

func TestLoadEmptyValueKeepsTemplateDefault(t *testing.T) {
	p := loadProfileString(t, `
[Bindings]
A =
`)
	assert.Equal(t, Binding{}, p.Map.Btn.A)
}

func TestLoadAbsBindingRequiresDirection(t *testing.T) {
	p := loadProfileString(t, `
[Bindings]
LStickUp = Gamepad ABS_Y
LStickDown = Gamepad ABS_Y +
DpadUp = Gamepad ABS_HAT0Y -
`)
	assert.Equal(t, Binding{}, p.Map.Stick.L.Up)
	assert.Equal(t, Binding{Dev: BindGamepad, EvType: evAbs, EvCode: evname.AbsY, Dir: true}, p.Map.Stick.L.Down)
	assert.Equal(t, Binding{Dev: BindGamepad, EvType: evAbs, EvCode: evname.AbsHat0Y, Dir: false}, p.Map.Dpad.Up)

	// ABS bindings do not enable axes; that happens in the axes
	// sections.
	assert.Empty(t, p.Dev.Gamepad.Abs)
}

func TestLoadRelBindingEnablesRel(t *testing.T) {
	p := loadProfileString(t, `
[Bindings]
RPadRelX = Mouse REL_X
`)
	assert.Equal(t, Binding{Dev: BindMouse, EvType: evRel, EvCode: evname.RelX}, p.Map.Pad.R.RelX)
	assert.Contains(t, p.Dev.Mouse.Rels, evname.RelX)
}

func TestLoadNoneUnbinds(t *testing.T) {
	p := loadProfileString(t, `
[Bindings]
A = NONE ignored tokens
`)
	assert.Equal(t, Binding{}, p.Map.Btn.A)
}

func TestLoadUnknownEventKeepsDefault(t *testing.T) {
	p := loadProfileString(t, `
[Bindings]
A = Gamepad BTN_DOES_NOT_EXIST
B = Spaceship BTN_SOUTH
`)
	assert.Equal(t, Binding{}, p.Map.Btn.A)
	assert.Equal(t, Binding{}, p.Map.Btn.B)
}

func TestLoadFeatures(t *testing.T) {
	p := loadProfileString(t, `
[Features]
MouseDevice = TRUE
MotionDevice = yes
LizardMode = true
StickFiltering = false
`)
	assert.True(t, p.Features.Mouse)
	// Only the literal token "true" (any case) enables.
	assert.False(t, p.Features.Motion)
	assert.True(t, p.Features.Lizard)
	assert.False(t, p.Features.FilterSticks)
	// Untouched keys keep the template defaults.
	assert.True(t, p.Features.FilterPads)
	assert.False(t, p.Features.FF)
}

func TestLoadDeadzonesClamped(t *testing.T) {
	p := loadProfileString(t, `
[Deadzones]
LStick = 0.25
RStick = 2.0
LPad = -0.5
LTrigg = 0.9
`)
	assert.Equal(t, 0.25, p.Deadzones.LStick)
	assert.Equal(t, 0.9, p.Deadzones.RStick)
	assert.Zero(t, p.Deadzones.LPad)
	assert.Equal(t, 0.9, p.Deadzones.LTrigg)
	assert.Zero(t, p.Deadzones.RPad)
}

func TestLoadAxesSections(t *testing.T) {
	p := loadProfileString(t, `
[GamepadAxes]
ABS_X = -32767 32767
ABS_Z = 0 255
ABS_BOGUS = 0 1
ABS_RX = 5 5

[MotionAxes]
ABS_Y = -100 100
`)
	assert.Equal(t, []uinput.AbsInfo{
		{Code: evname.AbsX, Min: -32767, Max: 32767},
		{Code: evname.AbsZ, Min: 0, Max: 255},
	}, p.Dev.Gamepad.Abs)
	assert.Equal(t, []uinput.AbsInfo{
		{Code: evname.AbsY, Min: -100, Max: 100},
	}, p.Dev.Motion.Abs)
}

func TestLoadProfileSection(t *testing.T) {
	p := loadProfileString(t, `
[Profile]
Name = My Custom Layout
Description = Does many things at once

[DeviceInfo]
GamepadName = Custom Pad
`)
	assert.Equal(t, "My Custom Layout", p.Name)
	assert.Equal(t, "Does many things at once", p.Description)
	assert.Equal(t, "Custom Pad", p.Dev.Gamepad.NameOverride)
	assert.Equal(t, defaultMouseName, p.Dev.Mouse.NameOverride)
}

func TestLoadCommandBinding(t *testing.T) {
	p := loadProfileString(t, `
[Bindings]
L4 = Command true 500 systemctl suspend
L5 = Command false 0 killall -9 game
R4 = Command true 0
`)
	l4 := p.Map.Btn.L4
	assert.Equal(t, BindCommand, l4.Dev)
	assert.Equal(t, uint32(1), l4.ID)
	assert.Equal(t, 500*time.Millisecond, l4.Delay)
	assert.Equal(t, "systemctl suspend", l4.Cmd)

	l5 := p.Map.Btn.L5
	assert.Equal(t, BindCommand, l5.Dev)
	assert.Zero(t, l5.ID)
	assert.Equal(t, "killall -9 game", l5.Cmd)

	// Missing command string: slot keeps its default.
	assert.Equal(t, Binding{}, p.Map.Btn.R4)
}

func TestLoadProfileBinding(t *testing.T) {
	p := loadProfileString(t, `
[Bindings]
R5 = Profile desktop.ini
`)
	assert.Equal(t, Binding{Dev: BindProfile, Cmd: "desktop.ini"}, p.Map.Btn.R5)
}

func TestLoaderIsReusable(t *testing.T) {
	var l ProfileLoader
	p1, err := l.Load(strings.NewReader("[Bindings]\nA = Gamepad BTN_SOUTH\n"))
	require.NoError(t, err)
	assert.Equal(t, BindGamepad, p1.Map.Btn.A.Dev)

	// A second load starts from a clean template; nothing leaks from
	// the first file.
	p2, err := l.Load(strings.NewReader("[Bindings]\nB = Gamepad BTN_EAST\n"))
	require.NoError(t, err)
	assert.Equal(t, Binding{}, p2.Map.Btn.A)
	assert.Equal(t, BindGamepad, p2.Map.Btn.B.Dev)
	assert.NotContains(t, p2.Dev.Gamepad.Keys, evname.BtnSouth)
}

func TestDefaultProfileMatchesEmbeddedLayout(t *testing.T) {
	p := DefaultProfile()
	assert.True(t, p.Features.Mouse)
	assert.True(t, p.Features.Motion)
	assert.Equal(t, 0.04, p.Deadzones.LStick)
	assert.Equal(t, BindGamepad, p.Map.Btn.A.Dev)
	assert.Equal(t, evname.BtnSouth, p.Map.Btn.A.EvCode)
	assert.Equal(t, BindMouse, p.Map.Pad.R.RelX.Dev)
}
