// Package hidraw is the transport layer for the gamepad's raw HID
// character device: sysfs discovery, exclusive open, blocking report
// reads, report writes and feature-report ioctls. All operations on a
// Device are serialized by a single mutex.
package hidraw

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/open-sd/opensd/errs"
)

const sysDevices = "/sys/devices"

// Device wraps one open hidraw character device.
type Device struct {
	mu   sync.Mutex
	fd   int
	path string
}

// New returns an unopened Device.
func New() *Device {
	return &Device{fd: -1}
}

// searchString builds the sysfs path suffix identifying a HID
// interface: "VVVV:PPPP.IIII/hidraw" in uppercase zero-padded hex.
// The kernel numbers HID interfaces from one, hence iface+1.
func searchString(vid, pid, iface uint16) string {
	return fmt.Sprintf("%04X:%04X.%04X/hidraw", vid, pid, iface+1)
}

// FindDevNode locates the /dev/hidraw<N> node for a HID interface by
// walking the kernel device tree. Returns "" when no match exists.
func FindDevNode(vid, pid, iface uint16) string {
	return findDevNode(sysDevices, vid, pid, iface)
}

func findDevNode(root string, vid, pid, iface uint16) string {
	search := searchString(vid, pid, iface)
	slog.Debug("hidraw: searching for device", "suffix", search)

	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if found != "" {
			return filepath.SkipAll
		}
		if !d.IsDir() || !strings.HasSuffix(path, search) {
			return nil
		}
		// The matching directory holds a single hidraw<N> entry
		// naming the /dev node.
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil
		}
		for _, e := range entries {
			if e.IsDir() && strings.HasPrefix(e.Name(), "hidraw") {
				found = "/dev/" + e.Name()
				return filepath.SkipAll
			}
		}
		return nil
	})

	if found == "" {
		slog.Debug("hidraw: no device matched", "suffix", search)
		return ""
	}
	slog.Debug("hidraw: found device node", "node", found)
	return found
}

// Open opens the device read/write. Fails with ErrAlreadyOpen if the
// Device already holds a descriptor.
func (d *Device) Open(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isOpenLocked() {
		return fmt.Errorf("%w: %s", errs.ErrAlreadyOpen, d.path)
	}

	st, err := os.Stat(path)
	if err != nil || st.Mode()&os.ModeCharDevice == 0 {
		return fmt.Errorf("%w: %s is not a character device", errs.ErrInvalidParameter, path)
	}

	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		if err == unix.EACCES {
			return fmt.Errorf("%w: %s", errs.ErrNoPermission, path)
		}
		return fmt.Errorf("%w: %s: %v", errs.ErrCannotOpen, path, err)
	}

	slog.Debug("hidraw: opened device", "path", path)
	d.fd = fd
	d.path = path
	return nil
}

// IsOpen reports whether the descriptor is still valid, verified with
// an F_GETFD query rather than trusting the stored fd.
func (d *Device) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isOpenLocked()
}

func (d *Device) isOpenLocked() bool {
	if d.fd < 0 {
		return false
	}
	_, err := unix.FcntlInt(uintptr(d.fd), unix.F_GETFD, 0)
	return err == nil
}

// Close releases the descriptor. Safe to call repeatedly.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fd >= 0 {
		slog.Debug("hidraw: closing device", "path", d.path)
		_ = unix.Close(d.fd)
		d.fd = -1
	}
	d.path = ""
}

// Path returns the device node this Device was opened on.
func (d *Device) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// Read blocks until one report arrives and fills buf. A short read is
// ErrReadFailed; ENODEV or EIO, which the kernel returns once the
// device is gone, is ErrNoDevice. The mutex is held for the duration
// of the syscall, so concurrent writers queue behind at most one report.
func (d *Device) Read(buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpenLocked() {
		return errs.ErrNotOpen
	}
	n, err := unix.Read(d.fd, buf)
	if err == unix.ENODEV || err == unix.EIO {
		return fmt.Errorf("%w: %s: %v", errs.ErrNoDevice, d.path, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrReadFailed, d.path, err)
	}
	if n != len(buf) {
		return fmt.Errorf("%w: read %d bytes, expected %d", errs.ErrReadFailed, n, len(buf))
	}
	return nil
}

// Write sends a whole report. The caller pads to the report size.
func (d *Device) Write(buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpenLocked() {
		return errs.ErrNotOpen
	}
	n, err := unix.Write(d.fd, buf)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrWriteFailed, d.path, err)
	}
	if n != len(buf) {
		return fmt.Errorf("%w: wrote %d bytes, expected %d", errs.ErrWriteFailed, n, len(buf))
	}
	return nil
}
