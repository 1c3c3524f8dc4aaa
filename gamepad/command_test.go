package gamepad

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTriggerRisingEdgeOnly(t *testing.T) {
	r := newCommandRunner(discardLogger())
	bind := &Binding{Dev: BindCommand, Cmd: "true"}

	r.trigger(bind, true)
	first := bind.lastRun
	require.False(t, first.IsZero())

	// Holding the trigger does not relaunch.
	r.trigger(bind, true)
	r.trigger(bind, true)
	assert.Equal(t, first, bind.lastRun)

	// Release and re-press with no delay configured relaunches.
	r.trigger(bind, false)
	r.trigger(bind, true)
	assert.True(t, bind.lastRun.After(first) || bind.lastRun.Equal(first))
}

func TestCommandTriggerRateLimit(t *testing.T) {
	r := newCommandRunner(discardLogger())
	bind := &Binding{Dev: BindCommand, Cmd: "true", Delay: time.Hour}

	r.trigger(bind, true)
	first := bind.lastRun
	require.False(t, first.IsZero())

	// A second rising edge inside the delay window is dropped.
	r.trigger(bind, false)
	r.trigger(bind, true)
	assert.Equal(t, first, bind.lastRun)
}
