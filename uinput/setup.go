package uinput

import (
	"io"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/open-sd/opensd/evname"
)

const uinputPath = "/dev/uinput"

// ioctl encoding for the 'U' uinput requests (linux/uinput.h).
const (
	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocNone  = 0
	iocWrite = 1
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNrShift | size<<iocSizeShift
}

const uinputIoctlType = 'U'

var (
	uiDevCreate  = ioc(iocNone, uinputIoctlType, 1, 0)
	uiDevDestroy = ioc(iocNone, uinputIoctlType, 2, 0)
)

func uiDevSetup() uintptr {
	return ioc(iocWrite, uinputIoctlType, 3, unsafe.Sizeof(uinputSetup{}))
}

func uiAbsSetup() uintptr {
	return ioc(iocWrite, uinputIoctlType, 4, unsafe.Sizeof(uinputAbsSetup{}))
}

func uiSetBit(nr uintptr) uintptr {
	return ioc(iocWrite, uinputIoctlType, nr, unsafe.Sizeof(int32(0)))
}

const (
	uiSetEvBit  = 100
	uiSetKeyBit = 101
	uiSetRelBit = 102
	uiSetAbsBit = 103
	uiSetFFBit  = 107
)

// evFF is the force-feedback event type bit.
const evFF = 0x15

// inputID mirrors struct input_id.
type inputID struct {
	BusType uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// uinputSetup mirrors struct uinput_setup.
type uinputSetup struct {
	ID           inputID
	Name         [80]byte
	FFEffectsMax uint32
}

// inputAbsInfo mirrors struct input_absinfo.
type inputAbsInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// uinputAbsSetup mirrors struct uinput_abs_setup.
type uinputAbsSetup struct {
	Code uint16
	_    uint16
	Abs  inputAbsInfo
}

func devIoctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func devIoctlInt(fd int, req uintptr, value int32) error {
	return devIoctl(fd, req, unsafe.Pointer(&value))
}

// kernelCreate registers the device with the kernel and returns the
// descriptor plus a writer for injecting events.
func kernelCreate(cfg Config) (int, io.Writer, error) {
	fd, err := unix.Open(uinputPath, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return -1, nil, err
	}

	fail := func(err error) (int, io.Writer, error) {
		_ = unix.Close(fd)
		return -1, nil, err
	}

	if cfg.EnableKeys && len(cfg.Keys) > 0 {
		if err := devIoctlInt(fd, uiSetBit(uiSetEvBit), int32(evname.EvKey)); err != nil {
			return fail(err)
		}
		for _, code := range cfg.Keys {
			if err := devIoctlInt(fd, uiSetBit(uiSetKeyBit), int32(code)); err != nil {
				return fail(err)
			}
		}
	}
	if cfg.EnableAbs && len(cfg.Abs) > 0 {
		if err := devIoctlInt(fd, uiSetBit(uiSetEvBit), int32(evname.EvAbs)); err != nil {
			return fail(err)
		}
		for _, a := range cfg.Abs {
			if err := devIoctlInt(fd, uiSetBit(uiSetAbsBit), int32(a.Code)); err != nil {
				return fail(err)
			}
		}
	}
	if cfg.EnableRel && len(cfg.Rels) > 0 {
		if err := devIoctlInt(fd, uiSetBit(uiSetEvBit), int32(evname.EvRel)); err != nil {
			return fail(err)
		}
		for _, code := range cfg.Rels {
			if err := devIoctlInt(fd, uiSetBit(uiSetRelBit), int32(code)); err != nil {
				return fail(err)
			}
		}
	}
	if cfg.EnableFF {
		if err := devIoctlInt(fd, uiSetBit(uiSetEvBit), evFF); err != nil {
			return fail(err)
		}
	}

	setup := uinputSetup{
		ID: inputID{
			BusType: unix.BUS_USB,
			Vendor:  cfg.VID,
			Product: cfg.PID,
			Version: cfg.Version,
		},
	}
	copy(setup.Name[:len(setup.Name)-1], cfg.Name)
	if err := devIoctl(fd, uiDevSetup(), unsafe.Pointer(&setup)); err != nil {
		return fail(err)
	}

	if cfg.EnableAbs {
		for _, a := range cfg.Abs {
			abs := uinputAbsSetup{
				Code: a.Code,
				Abs:  inputAbsInfo{Min: a.Min, Max: a.Max},
			}
			if err := devIoctl(fd, uiAbsSetup(), unsafe.Pointer(&abs)); err != nil {
				return fail(err)
			}
		}
	}

	if err := devIoctl(fd, uiDevCreate, nil); err != nil {
		return fail(err)
	}

	return fd, fdWriter{fd: fd}, nil
}

// fdWriter injects events through the raw descriptor; the descriptor's
// lifetime stays owned by Device.Close.
type fdWriter struct{ fd int }

func (w fdWriter) Write(p []byte) (int, error) {
	return unix.Write(w.fd, p)
}

func kernelDestroy(fd int) {
	_ = devIoctl(fd, uiDevDestroy, nil)
	_ = unix.Close(fd)
}
