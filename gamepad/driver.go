package gamepad

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/open-sd/opensd/errs"
	"github.com/open-sd/opensd/hidraw"
	"github.com/open-sd/opensd/internal/log"
	"github.com/open-sd/opensd/uinput"
)

// Synthetic device identity. All three devices share it; only the
// display name differs.
const (
	uinputVID     = 0xDEAD
	uinputPID     = 0xBEEF
	uinputVersion = 0x0001
)

// Transport is the slice of the HID device the driver needs. Satisfied
// by *hidraw.Device; tests substitute a fake.
type Transport interface {
	Read(buf []byte) error
	Write(buf []byte) error
	IsOpen() bool
	Close()
}

// OutputDevice is the slice of a synthetic device the translation path
// needs. Satisfied by *uinput.Device.
type OutputDevice interface {
	UpdateKey(code uint16, pressed bool)
	UpdateAbs(code uint16, value float64)
	UpdateRel(code uint16, value float64)
	Flush() error
	Close()
}

// Driver owns the HID transport, the decoded device state, the active
// binding map and the synthetic output devices. Two goroutines run
// between Start and Stop: the polling loop and the lizard-mode
// re-assertion timer.
type Driver struct {
	log *slog.Logger
	raw log.RawLogger
	hid Transport

	// pollMu serializes poll iterations against profile swaps. The
	// poll goroutine holds it for exactly one iteration at a time.
	pollMu sync.Mutex

	state DeviceState
	bind  BindMap

	gamepadDev OutputDevice
	motionDev  OutputDevice
	mouseDev   OutputDevice

	running     atomic.Bool
	lizardMode  atomic.Bool
	lizardSleep time.Duration
	stop        chan struct{}
	wg          sync.WaitGroup

	cmd *commandRunner

	// onProfileRequest is invoked from the poll goroutine when a
	// Profile binding fires. The daemon wires it to its loader.
	onProfileRequest func(name string)

	// newOutput builds synthetic devices; replaced in tests.
	newOutput func(cfg uinput.Config) (OutputDevice, error)
}

// Axis identifies one deadzone-carrying axis group.
type Axis int

const (
	AxisLStick Axis = iota
	AxisRStick
	AxisLPad
	AxisRPad
	AxisLTrigg
	AxisRTrigg
)

// New locates and opens the gamepad HID from the known-devices table
// and puts the hardware into non-lizard mode. No goroutines run until
// Start.
func New(logger *slog.Logger) (*Driver, error) {
	hid := hidraw.New()
	opened := false
	for _, kd := range knownDevices {
		path := hidraw.FindDevNode(kd.vid, kd.pid, kd.iface)
		if path == "" {
			continue
		}
		logger.Debug("found gamepad hidraw device", "path", path)
		if err := hid.Open(path); err != nil {
			logger.Error("failed to open gamepad hidraw device", "path", path, "error", err)
			return nil, fmt.Errorf("%w: %v", errs.ErrCannotOpen, err)
		}
		opened = true
		break
	}
	if !opened {
		return nil, fmt.Errorf("%w: no supported gamepad device found", errs.ErrNoDevice)
	}
	logger.Info("successfully opened gamepad device")

	d := newWithTransport(logger, hid)
	if err := d.SetLizardMode(false); err != nil {
		logger.Debug("failed to disable lizard mode", "error", err)
	}
	return d, nil
}

// newWithTransport wires a driver around an already-open transport.
func newWithTransport(logger *slog.Logger, hid Transport) *Driver {
	return &Driver{
		log:         logger,
		raw:         log.NewRaw(nil),
		hid:         hid,
		lizardSleep: LizardSleep,
		stop:        make(chan struct{}),
		cmd:         newCommandRunner(logger),
		newOutput: func(cfg uinput.Config) (OutputDevice, error) {
			return uinput.New(cfg)
		},
	}
}

// OnProfileRequest registers the callback fired by Profile bindings.
// Must be set before Start.
func (d *Driver) OnProfileRequest(fn func(name string)) {
	d.onProfileRequest = fn
}

// SetRawLogger installs a raw report tracer. Must be set before Start.
func (d *Driver) SetRawLogger(raw log.RawLogger) {
	if raw != nil {
		d.raw = raw
	}
}

// hidWrite sends one report to the device, tracing it first.
func (d *Driver) hidWrite(buf []byte) error {
	d.raw.Log(false, buf)
	return d.hid.Write(buf)
}

// Start spawns the polling loop and the lizard suppression timer.
func (d *Driver) Start() {
	if !d.running.CompareAndSwap(false, true) {
		return
	}
	d.stop = make(chan struct{})
	d.wg.Add(2)
	go d.pollLoop()
	go d.lizardLoop()
}

// Stop terminates both goroutines, restores the vendor's lizard mode
// and closes the HID. Safe to call on a stopped or never-started
// driver.
func (d *Driver) Stop() {
	if d.running.CompareAndSwap(true, false) {
		close(d.stop)
		d.wg.Wait()
	}

	if err := d.SetLizardMode(true); err != nil {
		d.log.Debug("failed to restore lizard mode", "error", err)
	}
	d.destroyOutputDevs()
	d.hid.Close()
}

// SetProfile swaps the active profile: the synthetic devices are
// destroyed and re-created from the profile's capability lists, then
// the binding map, filters and deadzones are installed. The poll loop
// is quiesced for the duration, so no events from the old profile can
// interleave with the new devices.
func (d *Driver) SetProfile(prof Profile) error {
	d.log.Info("setting gamepad profile", "name", prof.Name)

	d.pollMu.Lock()
	defer d.pollMu.Unlock()

	d.destroyOutputDevs()

	mkCfg := func(caps DevCaps, fallback string, keys, abs, rel, ff bool) uinput.Config {
		name := caps.NameOverride
		if name == "" {
			name = fallback
		}
		cfg := uinput.Config{
			Name:       name,
			VID:        uinputVID,
			PID:        uinputPID,
			Version:    uinputVersion,
			EnableKeys: keys,
			EnableAbs:  abs,
			EnableRel:  rel,
			EnableFF:   ff,
		}
		if keys {
			cfg.Keys = caps.Keys
		}
		if abs {
			cfg.Abs = caps.Abs
		}
		if rel {
			cfg.Rels = caps.Rels
		}
		return cfg
	}

	var err error
	d.gamepadDev, err = d.newOutput(mkCfg(prof.Dev.Gamepad, defaultGamepadName, true, true, true, prof.Features.FF))
	if err != nil {
		d.log.Error("failed to create gamepad uinput device", "error", err)
		d.destroyOutputDevs()
		return errs.ErrCannotCreate
	}

	if prof.Features.Motion {
		d.motionDev, err = d.newOutput(mkCfg(prof.Dev.Motion, defaultMotionName, false, true, false, false))
		if err != nil {
			d.log.Error("failed to create motion control uinput device", "error", err)
			d.destroyOutputDevs()
			return errs.ErrCannotCreate
		}
	}

	if prof.Features.Mouse {
		d.mouseDev, err = d.newOutput(mkCfg(prof.Dev.Mouse, defaultMouseName, true, false, true, false))
		if err != nil {
			d.log.Error("failed to create trackpad/mouse uinput device", "error", err)
			d.destroyOutputDevs()
			return errs.ErrCannotCreate
		}
	}

	d.bind = prof.Map

	d.SetStickFiltering(prof.Features.FilterSticks)
	d.SetPadFiltering(prof.Features.FilterPads)
	d.SetDeadzone(AxisLStick, prof.Deadzones.LStick)
	d.SetDeadzone(AxisRStick, prof.Deadzones.RStick)
	d.SetDeadzone(AxisLPad, prof.Deadzones.LPad)
	d.SetDeadzone(AxisRPad, prof.Deadzones.RPad)
	d.SetDeadzone(AxisLTrigg, prof.Deadzones.LTrigg)
	d.SetDeadzone(AxisRTrigg, prof.Deadzones.RTrigg)

	if prof.Features.Lizard != d.lizardMode.Load() {
		if err := d.SetLizardMode(prof.Features.Lizard); err != nil {
			d.log.Debug("failed to apply profile lizard mode", "error", err)
		}
	}

	return nil
}

func (d *Driver) destroyOutputDevs() {
	for _, dev := range []*OutputDevice{&d.gamepadDev, &d.motionDev, &d.mouseDev} {
		if *dev != nil {
			(*dev).Close()
			*dev = nil
		}
	}
}

// SetDeadzone sets one axis group's deadzone, clamped into [0, 0.9],
// and recomputes the derived rescale factor.
func (d *Driver) SetDeadzone(ax Axis, dz float64) {
	if dz < 0 {
		dz = 0
	}
	if dz > 0.9 {
		dz = 0.9
	}
	scale := 1.0 / (1.0 - dz)

	switch ax {
	case AxisLStick:
		d.state.Stick.L.Deadzone, d.state.Stick.L.Scale = dz, scale
	case AxisRStick:
		d.state.Stick.R.Deadzone, d.state.Stick.R.Scale = dz, scale
	case AxisLPad:
		d.state.Pad.L.Deadzone, d.state.Pad.L.Scale = dz, scale
	case AxisRPad:
		d.state.Pad.R.Deadzone, d.state.Pad.R.Scale = dz, scale
	case AxisLTrigg:
		d.state.Trigg.L.Deadzone, d.state.Trigg.L.Scale = dz, scale
	case AxisRTrigg:
		d.state.Trigg.R.Deadzone, d.state.Trigg.R.Scale = dz, scale
	}
}

// SetStickFiltering toggles radial deadzone filtering on the sticks.
func (d *Driver) SetStickFiltering(enabled bool) {
	d.state.Stick.Filtered = enabled
}

// SetPadFiltering toggles radial deadzone filtering on the touchpads.
func (d *Driver) SetPadFiltering(enabled bool) {
	d.state.Pad.Filtered = enabled
}

// pollLoop reads and translates reports until the driver stops or the
// device disappears.
func (d *Driver) pollLoop() {
	defer d.wg.Done()
	for d.running.Load() {
		d.pollMu.Lock()
		err := d.poll()
		d.pollMu.Unlock()
		if errors.Is(err, errs.ErrNoDevice) {
			d.log.Error("gamepad device lost, stopping poll loop")
			return
		}
	}
}

// poll performs one read-decode-translate-flush iteration. Transport
// errors other than device loss skip the iteration.
func (d *Driver) poll() error {
	var buf [ReportSize]byte
	if err := d.hid.Read(buf[:]); err != nil {
		if errors.Is(err, errs.ErrNotOpen) {
			return errs.ErrNoDevice
		}
		if d.running.Load() {
			d.log.Error("failed to read input from gamepad device", "error", err)
		}
		return err
	}
	d.raw.Log(true, buf[:])

	if buf[0] != ReportIDInput {
		d.log.Debug("unhandled report type received from gamepad device", "id", buf[0])
		return nil
	}

	var report InputReport
	if err := report.UnmarshalBinary(buf[:]); err != nil {
		d.log.Warn("invalid input report received from gamepad device", "error", err)
		return errs.ErrWrongSize
	}

	d.state.update(&report)
	d.translate()
	d.flush()
	return nil
}

// flush publishes each device's queued events with one synchronization
// barrier per device per iteration.
func (d *Driver) flush() {
	for _, dev := range []OutputDevice{d.gamepadDev, d.motionDev, d.mouseDev} {
		if dev == nil {
			continue
		}
		if err := dev.Flush(); err != nil {
			d.log.Debug("failed to flush uinput device", "error", err)
		}
	}
}
