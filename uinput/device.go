// Package uinput creates kernel-side synthetic input devices and
// buffers key/abs/rel events toward them. Individual updates have no
// externally observable effect until Flush, which terminates the batch
// with one synchronization event.
package uinput

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/open-sd/opensd/errs"
	"github.com/open-sd/opensd/evname"
)

// AbsInfo declares one absolute axis with its value range.
type AbsInfo struct {
	Code uint16
	Min  int32
	Max  int32
}

// Config describes the synthetic device to create.
type Config struct {
	Name    string
	VID     uint16
	PID     uint16
	Version uint16

	EnableKeys bool
	EnableAbs  bool
	EnableRel  bool
	EnableFF   bool

	Keys []uint16
	Abs  []AbsInfo
	Rels []uint16
}

type event struct {
	typ   uint16
	code  uint16
	value int32
}

// Device is one created uinput device plus its pending event queue.
// It is not safe for concurrent use; the driver's poll goroutine is
// the only caller of the update and flush methods.
type Device struct {
	name string
	fd   int
	out  io.Writer

	absRange map[uint16]AbsInfo
	keyState map[uint16]bool
	queue    []event
}

// New creates the kernel device described by cfg. A kernel rejection
// is reported as ErrCannotCreate.
func New(cfg Config) (*Device, error) {
	fd, out, err := kernelCreate(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", errs.ErrCannotCreate, cfg.Name, err)
	}
	d := newWithWriter(cfg, out)
	d.fd = fd
	slog.Debug("uinput: created device", "name", cfg.Name)
	return d, nil
}

// newWithWriter builds the queue-and-scale half of a Device around an
// arbitrary writer. Tests use it to capture the event stream.
func newWithWriter(cfg Config, out io.Writer) *Device {
	d := &Device{
		name:     cfg.Name,
		fd:       -1,
		out:      out,
		absRange: make(map[uint16]AbsInfo, len(cfg.Abs)),
		keyState: make(map[uint16]bool, len(cfg.Keys)),
	}
	for _, a := range cfg.Abs {
		d.absRange[a.Code] = a
	}
	return d
}

// Name returns the device's display name.
func (d *Device) Name() string { return d.name }

// UpdateKey queues a key state change. Repeats of the last emitted
// state are dropped, which is what turns a held button into exactly one
// key-down and the following release into one key-up.
func (d *Device) UpdateKey(code uint16, pressed bool) {
	if d.keyState[code] == pressed {
		return
	}
	d.keyState[code] = pressed
	var v int32
	if pressed {
		v = 1
	}
	d.queue = append(d.queue, event{typ: evname.EvKey, code: code, value: v})
}

// UpdateAbs queues an absolute axis event. value is normalized: the
// positive half maps linearly onto [0, max], the negative half onto
// [min, 0), clamped to the declared range.
func (d *Device) UpdateAbs(code uint16, value float64) {
	rng, ok := d.absRange[code]
	if !ok {
		return
	}
	if value > 1 {
		value = 1
	}
	if value < -1 {
		value = -1
	}
	var out int32
	if value >= 0 {
		out = int32(math.Round(value * float64(rng.Max)))
	} else {
		out = int32(math.Round(-value * float64(rng.Min)))
	}
	if out > rng.Max {
		out = rng.Max
	}
	if out < rng.Min {
		out = rng.Min
	}
	d.queue = append(d.queue, event{typ: evname.EvAbs, code: code, value: out})
}

// UpdateRel queues a relative axis event. Values rounding to zero are
// dropped.
func (d *Device) UpdateRel(code uint16, value float64) {
	out := int32(math.Round(value))
	if out == 0 {
		return
	}
	d.queue = append(d.queue, event{typ: evname.EvRel, code: code, value: out})
}

// Flush publishes the queued events followed by one SYN_REPORT. A
// flush with nothing queued writes nothing.
func (d *Device) Flush() error {
	if len(d.queue) == 0 {
		return nil
	}
	buf := make([]byte, 0, (len(d.queue)+1)*inputEventSize)
	for _, ev := range d.queue {
		buf = appendInputEvent(buf, ev)
	}
	buf = appendInputEvent(buf, event{typ: evname.EvSyn, code: evname.SynReport})
	d.queue = d.queue[:0]

	if d.out == nil {
		return nil
	}
	if _, err := d.out.Write(buf); err != nil {
		return fmt.Errorf("%w: %q: %v", errs.ErrWriteFailed, d.name, err)
	}
	return nil
}

// Close destroys the kernel device.
func (d *Device) Close() {
	if d.fd >= 0 {
		kernelDestroy(d.fd)
		d.fd = -1
		slog.Debug("uinput: destroyed device", "name", d.name)
	}
	d.out = nil
}

// inputEventSize is sizeof(struct input_event) on 64-bit: a 16-byte
// timeval followed by type, code and value.
const inputEventSize = 24

func appendInputEvent(buf []byte, ev event) []byte {
	var raw [inputEventSize]byte
	// Zero timestamp; the kernel stamps uinput events on injection.
	binary.LittleEndian.PutUint16(raw[16:18], ev.typ)
	binary.LittleEndian.PutUint16(raw[18:20], ev.code)
	binary.LittleEndian.PutUint32(raw[20:24], uint32(ev.value))
	return append(buf, raw[:]...)
}
