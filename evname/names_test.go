package evname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType(t *testing.T) {
	for name, want := range map[string]uint16{
		"BTN_SOUTH": EvKey,
		"KEY_SPACE": EvKey,
		"ABS_HAT0X": EvAbs,
		"REL_WHEEL": EvRel,
	} {
		got, ok := Type(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := Type("MSC_SERIAL")
	assert.False(t, ok)
	_, ok = Type("")
	assert.False(t, ok)
}

func TestCode(t *testing.T) {
	c, ok := Code(EvKey, "BTN_SOUTH")
	assert.True(t, ok)
	assert.Equal(t, BtnSouth, c)

	c, ok = Code(EvAbs, "ABS_RZ")
	assert.True(t, ok)
	assert.Equal(t, AbsRZ, c)

	c, ok = Code(EvRel, "REL_Y")
	assert.True(t, ok)
	assert.Equal(t, RelY, c)

	// Names are case-sensitive and namespaced by type.
	_, ok = Code(EvKey, "btn_south")
	assert.False(t, ok)
	_, ok = Code(EvAbs, "BTN_SOUTH")
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	typ, code, ok := Lookup("KEY_SPACE")
	assert.True(t, ok)
	assert.Equal(t, EvKey, typ)
	assert.Equal(t, KeySpace, code)

	_, _, ok = Lookup("KEY_NOT_A_REAL_KEY")
	assert.False(t, ok)
}
