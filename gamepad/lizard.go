package gamepad

import (
	"time"

	"github.com/open-sd/opensd/errs"
)

// LizardSleep is the interval between CLEAR_MAPPINGS re-assertions.
// The firmware restores its keyboard emulation a few seconds after
// every CLEAR_MAPPINGS, so the suppression has to be periodic.
const LizardSleep = 2 * time.Second

// SetLizardMode enables or disables the firmware's built-in
// keyboard/mouse emulation. Disabling issues CLEAR_MAPPINGS plus the
// register writes that permanently turn off right-pad mouse emulation
// and its touch margin; enabling restores the vendor defaults.
func (d *Driver) SetLizardMode(enabled bool) error {
	if !d.hid.IsOpen() {
		return errs.ErrNotOpen
	}

	var buf [ReportSize]byte
	if !enabled {
		// Disable keyboard emulation (the firmware re-enables it after
		// a few seconds; the lizard goroutine keeps re-asserting).
		buf[0] = ReportIDClearMappings
		if err := d.hidWrite(buf[:]); err != nil {
			d.log.Debug("failed to disable keyboard emulation", "error", err)
		}
		if err := d.setHidRegister(RegRPadMode, RPadModeNone); err != nil {
			d.log.Debug("failed to disable mouse emulation", "error", err)
		}
		if err := d.setHidRegister(RegRPadMargin, 0x00); err != nil {
			d.log.Debug("failed to disable trackpad margins", "error", err)
		}
		d.lizardMode.Store(false)
		d.log.Debug("lizard mode disabled")
		return nil
	}

	buf[0] = ReportIDDefaultMappings
	if err := d.hidWrite(buf[:]); err != nil {
		d.log.Debug("failed to enable keyboard emulation", "error", err)
	}
	buf[0] = ReportIDDefaultMouse
	if err := d.hidWrite(buf[:]); err != nil {
		d.log.Debug("failed to enable mouse emulation", "error", err)
	}
	if err := d.setHidRegister(RegRPadMargin, 0x01); err != nil {
		d.log.Debug("failed to enable trackpad margins", "error", err)
	}
	d.lizardMode.Store(true)
	d.log.Debug("lizard mode enabled")
	return nil
}

// setHidRegister writes one 16-bit device register, encoded as
// [WRITE_REGISTER, length, reg, lo, hi] padded to the report size.
func (d *Driver) setHidRegister(reg byte, value uint16) error {
	if !d.hid.IsOpen() {
		return errs.ErrNotOpen
	}
	var buf [ReportSize]byte
	buf[0] = ReportIDWriteRegister
	buf[1] = 0x03
	buf[2] = reg
	buf[3] = byte(value)
	buf[4] = byte(value >> 8)
	return d.hidWrite(buf[:])
}

// lizardLoop re-issues CLEAR_MAPPINGS every LizardSleep while the
// driver runs and lizard mode is off. Write failures are logged only;
// the next tick retries.
func (d *Driver) lizardLoop() {
	defer d.wg.Done()

	var buf [ReportSize]byte
	buf[0] = ReportIDClearMappings

	ticker := time.NewTicker(d.lizardSleep)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
		}
		if d.lizardMode.Load() {
			continue
		}
		if !d.hid.IsOpen() {
			d.log.Debug("lizard handler: device is not open")
			continue
		}
		if err := d.hidWrite(buf[:]); err != nil {
			d.log.Debug("lizard handler: failed to write gamepad device", "error", err)
		}
	}
}
