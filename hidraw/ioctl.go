package hidraw

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/open-sd/opensd/errs"
)

// ioctl request encoding for the hidraw driver ('H' ioctls from
// linux/hidraw.h).
const (
	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNrShift | size<<iocSizeShift
}

const hidrawIoctlType = 'H'

func hidiocGRDescSize() uintptr {
	return ioc(iocRead, hidrawIoctlType, 0x01, unsafe.Sizeof(int32(0)))
}

func hidiocGRDesc(size uintptr) uintptr {
	return ioc(iocRead, hidrawIoctlType, 0x02, size)
}

func hidiocGRawInfo() uintptr {
	return ioc(iocRead, hidrawIoctlType, 0x03, unsafe.Sizeof(DevInfo{}))
}

func hidiocGRawName(size uintptr) uintptr {
	return ioc(iocRead, hidrawIoctlType, 0x04, size)
}

func hidiocGRawPhys(size uintptr) uintptr {
	return ioc(iocRead, hidrawIoctlType, 0x05, size)
}

func hidiocSFeature(size uintptr) uintptr {
	return ioc(iocRead|iocWrite, hidrawIoctlType, 0x06, size)
}

func hidiocGFeature(size uintptr) uintptr {
	return ioc(iocRead|iocWrite, hidrawIoctlType, 0x07, size)
}

// DevInfo mirrors struct hidraw_devinfo.
type DevInfo struct {
	BusType uint32
	Vendor  int16
	Product int16
}

// reportDescriptor mirrors struct hidraw_report_descriptor.
type reportDescriptor struct {
	Size  uint32
	Value [4096]byte
}

func (d *Device) ioctlLocked(req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// FeatureGet reads a feature report by id. buf receives the payload
// and the returned length includes the leading report id byte.
func (d *Device) FeatureGet(reportID byte, buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpenLocked() {
		return 0, errs.ErrNotOpen
	}
	if len(buf) == 0 {
		return 0, fmt.Errorf("%w: empty feature buffer", errs.ErrInvalidParameter)
	}
	buf[0] = reportID
	r1, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd),
		hidiocGFeature(uintptr(len(buf))), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return 0, fmt.Errorf("%w: feature report 0x%02x: %v", errs.ErrReadFailed, reportID, errno)
	}
	return int(r1), nil
}

// FeatureSet writes a feature report. data starts with the report id.
func (d *Device) FeatureSet(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpenLocked() {
		return errs.ErrNotOpen
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: empty feature report", errs.ErrInvalidParameter)
	}
	if err := d.ioctlLocked(hidiocSFeature(uintptr(len(data))), unsafe.Pointer(&data[0])); err != nil {
		return fmt.Errorf("%w: feature report 0x%02x: %v", errs.ErrWriteFailed, data[0], err)
	}
	return nil
}

// Name returns the device's self-reported name.
func (d *Device) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpenLocked() {
		return ""
	}
	var buf [256]byte
	if err := d.ioctlLocked(hidiocGRawName(uintptr(len(buf))), unsafe.Pointer(&buf[0])); err != nil {
		return ""
	}
	return cstring(buf[:])
}

// PhysLocation returns the device's physical location string.
func (d *Device) PhysLocation() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpenLocked() {
		return ""
	}
	var buf [256]byte
	if err := d.ioctlLocked(hidiocGRawPhys(uintptr(len(buf))), unsafe.Pointer(&buf[0])); err != nil {
		return ""
	}
	return cstring(buf[:])
}

// Info returns the bus type and vendor/product ids.
func (d *Device) Info() (DevInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var info DevInfo
	if !d.isOpenLocked() {
		return info, errs.ErrNotOpen
	}
	if err := d.ioctlLocked(hidiocGRawInfo(), unsafe.Pointer(&info)); err != nil {
		return info, fmt.Errorf("%w: devinfo: %v", errs.ErrReadFailed, err)
	}
	return info, nil
}

// ReportDescriptor returns the raw HID report descriptor.
func (d *Device) ReportDescriptor() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpenLocked() {
		return nil, errs.ErrNotOpen
	}
	var size int32
	if err := d.ioctlLocked(hidiocGRDescSize(), unsafe.Pointer(&size)); err != nil {
		return nil, fmt.Errorf("%w: descriptor size: %v", errs.ErrReadFailed, err)
	}
	var desc reportDescriptor
	desc.Size = uint32(size)
	if err := d.ioctlLocked(hidiocGRDesc(unsafe.Sizeof(desc)), unsafe.Pointer(&desc)); err != nil {
		return nil, fmt.Errorf("%w: descriptor: %v", errs.ErrReadFailed, err)
	}
	return append([]byte(nil), desc.Value[:desc.Size]...), nil
}

func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
