package uinput

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-sd/opensd/evname"
)

func decodeEvents(t *testing.T, raw []byte) []event {
	t.Helper()
	require.Zero(t, len(raw)%inputEventSize)
	var out []event
	for off := 0; off < len(raw); off += inputEventSize {
		out = append(out, event{
			typ:   binary.LittleEndian.Uint16(raw[off+16:]),
			code:  binary.LittleEndian.Uint16(raw[off+18:]),
			value: int32(binary.LittleEndian.Uint32(raw[off+20:])),
		})
	}
	return out
}

func testDevice(cfg Config) (*Device, *bytes.Buffer) {
	var buf bytes.Buffer
	return newWithWriter(cfg, &buf), &buf
}

func TestKeyEmitsOnlyOnChange(t *testing.T) {
	d, buf := testDevice(Config{Name: "t", Keys: []uint16{evname.BtnSouth}})

	d.UpdateKey(evname.BtnSouth, true)
	d.UpdateKey(evname.BtnSouth, true)
	d.UpdateKey(evname.BtnSouth, true)
	require.NoError(t, d.Flush())

	evs := decodeEvents(t, buf.Bytes())
	require.Len(t, evs, 2)
	assert.Equal(t, event{typ: evname.EvKey, code: evname.BtnSouth, value: 1}, evs[0])
	assert.Equal(t, event{typ: evname.EvSyn, code: evname.SynReport, value: 0}, evs[1])

	buf.Reset()
	d.UpdateKey(evname.BtnSouth, false)
	require.NoError(t, d.Flush())
	evs = decodeEvents(t, buf.Bytes())
	require.Len(t, evs, 2)
	assert.Equal(t, event{typ: evname.EvKey, code: evname.BtnSouth, value: 0}, evs[0])
}

func TestFlushIsThePublicationBoundary(t *testing.T) {
	d, buf := testDevice(Config{Name: "t", Keys: []uint16{evname.BtnSouth}})

	d.UpdateKey(evname.BtnSouth, true)
	assert.Zero(t, buf.Len(), "updates must not be observable before flush")

	require.NoError(t, d.Flush())
	assert.NotZero(t, buf.Len())

	// An empty flush writes nothing, not even a bare sync.
	n := buf.Len()
	require.NoError(t, d.Flush())
	assert.Equal(t, n, buf.Len())
}

func TestAbsScaling(t *testing.T) {
	cfg := Config{Name: "t", Abs: []AbsInfo{
		{Code: evname.AbsX, Min: -32767, Max: 32767},
		{Code: evname.AbsZ, Min: 0, Max: 255},
		{Code: evname.AbsHat0X, Min: -1, Max: 1},
	}}

	cases := []struct {
		name  string
		code  uint16
		in    float64
		want  int32
		check bool
	}{
		{name: "center", code: evname.AbsX, in: 0, want: 0, check: true},
		{name: "full positive", code: evname.AbsX, in: 1, want: 32767, check: true},
		{name: "full negative", code: evname.AbsX, in: -1, want: -32767, check: true},
		{name: "half positive", code: evname.AbsX, in: 0.5, want: 16384, check: true},
		{name: "half negative", code: evname.AbsX, in: -0.5, want: -16384, check: true},
		{name: "over range clamps", code: evname.AbsX, in: 3.0, want: 32767, check: true},
		{name: "under range clamps", code: evname.AbsX, in: -3.0, want: -32767, check: true},
		{name: "trigger half", code: evname.AbsZ, in: 0.5, want: 128, check: true},
		{name: "hat positive", code: evname.AbsHat0X, in: 1, want: 1, check: true},
		{name: "hat negative", code: evname.AbsHat0X, in: -1, want: -1, check: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, buf := testDevice(cfg)
			d.UpdateAbs(tc.code, tc.in)
			require.NoError(t, d.Flush())
			evs := decodeEvents(t, buf.Bytes())
			require.Len(t, evs, 2)
			assert.Equal(t, event{typ: evname.EvAbs, code: tc.code, value: tc.want}, evs[0])
		})
	}
}

func TestAbsUndeclaredAxisIsDropped(t *testing.T) {
	d, buf := testDevice(Config{Name: "t"})
	d.UpdateAbs(evname.AbsX, 1)
	require.NoError(t, d.Flush())
	assert.Zero(t, buf.Len())
}

func TestRelRounding(t *testing.T) {
	d, buf := testDevice(Config{Name: "t", Rels: []uint16{evname.RelX}})

	d.UpdateRel(evname.RelX, 3.6)
	d.UpdateRel(evname.RelX, -0.2) // rounds to zero, dropped
	d.UpdateRel(evname.RelX, -2.5)
	require.NoError(t, d.Flush())

	evs := decodeEvents(t, buf.Bytes())
	require.Len(t, evs, 3)
	assert.Equal(t, int32(4), evs[0].value)
	assert.Equal(t, int32(-3), evs[1].value)
	assert.Equal(t, evname.EvSyn, evs[2].typ)
}
