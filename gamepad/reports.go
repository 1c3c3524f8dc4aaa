// Package gamepad implements the driver engine for the Steam Deck's
// integrated controller: report decoding, state filtering, binding
// translation into synthetic output devices, and the lizard-mode
// suppression protocol.
package gamepad

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/open-sd/opensd/errs"
)

// USB identity of the supported hardware.
const (
	VendorValve    = 0x28DE
	ProductJupiter = 0x1205
	// The controller HID sits on interface 2; interfaces 0 and 1 are
	// the firmware's lizard-mode keyboard and mouse.
	IfaceController = 2
)

type knownDevice struct {
	vid   uint16
	pid   uint16
	iface uint16
}

// knownDevices is iterated in order; the first interface found on the
// system wins.
var knownDevices = []knownDevice{
	{vid: VendorValve, pid: ProductJupiter, iface: IfaceController},
}

// ReportSize is the fixed size of every report exchanged with the
// device, in both directions.
const ReportSize = 64

// Report ids, carried in byte 0 of every report.
const (
	ReportIDInput           byte = 0x09
	ReportIDClearMappings   byte = 0x81
	ReportIDDefaultMappings byte = 0x85
	ReportIDWriteRegister   byte = 0x87
	ReportIDDefaultMouse    byte = 0x8E
)

// Device registers reachable through WRITE_REGISTER.
const (
	RegRPadMode   byte = 0x08
	RegRPadMargin byte = 0x18

	// RPadModeNone turns off the firmware's right-pad mouse emulation.
	RPadModeNone uint16 = 0x0007
)

// Input report header layout.
const (
	inputReportVersion byte = 0x01

	offFrame      = 4
	offButtons    = 8
	offLPadX      = 16
	offAccelX     = 24
	offGyroPitch  = 30
	offQuat       = 36
	offLTrigg     = 44
	offLStickX    = 48
	offLPadForce  = 56
	offStickForce = 60
)

// Button bit assignments inside the packed 64-bit button field. The
// low word follows the firmware's wire order and includes the L5/R5
// paddles; the L4/R4 paddles, quick access and the stick touch sensors
// live in the high word.
const (
	btnR2 uint64 = 1 << 0
	btnL2 uint64 = 1 << 1
	btnR1 uint64 = 1 << 2
	btnL1 uint64 = 1 << 3

	btnY uint64 = 1 << 4
	btnB uint64 = 1 << 5
	btnX uint64 = 1 << 6
	btnA uint64 = 1 << 7

	btnDpadUp    uint64 = 1 << 8
	btnDpadRight uint64 = 1 << 9
	btnDpadLeft  uint64 = 1 << 10
	btnDpadDown  uint64 = 1 << 11

	btnOptions uint64 = 1 << 12
	btnSteam   uint64 = 1 << 13
	btnMenu    uint64 = 1 << 14

	btnL5 uint64 = 1 << 15
	btnR5 uint64 = 1 << 16

	btnLPadPress uint64 = 1 << 17
	btnRPadPress uint64 = 1 << 18
	btnLPadTouch uint64 = 1 << 19
	btnRPadTouch uint64 = 1 << 20

	btnL3 uint64 = 1 << 22
	btnR3 uint64 = 1 << 26

	btnL4          uint64 = 1 << 41
	btnR4          uint64 = 1 << 42
	btnLStickTouch uint64 = 1 << 46
	btnRStickTouch uint64 = 1 << 47
	btnQuickAccess uint64 = 1 << 50
)

// InputReport is the unpacked form of one INPUT frame. Axis values are
// raw wire units; normalization happens in DeviceState.
type InputReport struct {
	Frame   uint32
	Buttons uint64

	LPadX int16
	LPadY int16
	RPadX int16
	RPadY int16

	AccelX int16
	AccelY int16
	AccelZ int16

	GyroPitch int16
	GyroRoll  int16
	GyroYaw   int16

	LTrigg uint16
	RTrigg uint16

	LStickX int16
	LStickY int16
	RStickX int16
	RStickY int16

	LPadForce uint16
	RPadForce uint16

	LStickForce uint8
	RStickForce uint8
}

// UnmarshalBinary decodes a 64-byte INPUT report.
func (r *InputReport) UnmarshalBinary(data []byte) error {
	if len(data) < ReportSize {
		return io.ErrUnexpectedEOF
	}
	if data[0] != ReportIDInput {
		return fmt.Errorf("%w: report id 0x%02x is not an input report", errs.ErrInvalidParameter, data[0])
	}

	r.Frame = binary.LittleEndian.Uint32(data[offFrame:])
	r.Buttons = binary.LittleEndian.Uint64(data[offButtons:])

	getI16 := func(off int) int16 {
		return int16(binary.LittleEndian.Uint16(data[off:]))
	}
	getU16 := func(off int) uint16 {
		return binary.LittleEndian.Uint16(data[off:])
	}

	r.LPadX = getI16(offLPadX)
	r.LPadY = getI16(offLPadX + 2)
	r.RPadX = getI16(offLPadX + 4)
	r.RPadY = getI16(offLPadX + 6)

	r.AccelX = getI16(offAccelX)
	r.AccelY = getI16(offAccelX + 2)
	r.AccelZ = getI16(offAccelX + 4)

	r.GyroPitch = getI16(offGyroPitch)
	r.GyroRoll = getI16(offGyroPitch + 2)
	r.GyroYaw = getI16(offGyroPitch + 4)

	r.LTrigg = getU16(offLTrigg)
	r.RTrigg = getU16(offLTrigg + 2)

	r.LStickX = getI16(offLStickX)
	r.LStickY = getI16(offLStickX + 2)
	r.RStickX = getI16(offLStickX + 4)
	r.RStickY = getI16(offLStickX + 6)

	r.LPadForce = getU16(offLPadForce)
	r.RPadForce = getU16(offLPadForce + 2)

	r.LStickForce = data[offStickForce]
	r.RStickForce = data[offStickForce+1]

	return nil
}

// MarshalBinary encodes the report into the fixed 64-byte wire form.
func (r InputReport) MarshalBinary() ([]byte, error) {
	b := make([]byte, ReportSize)
	b[0] = ReportIDInput
	b[1] = inputReportVersion
	b[2] = ReportSize

	binary.LittleEndian.PutUint32(b[offFrame:], r.Frame)
	binary.LittleEndian.PutUint64(b[offButtons:], r.Buttons)

	putI16 := func(off int, v int16) {
		binary.LittleEndian.PutUint16(b[off:], uint16(v))
	}
	putU16 := func(off int, v uint16) {
		binary.LittleEndian.PutUint16(b[off:], v)
	}

	putI16(offLPadX, r.LPadX)
	putI16(offLPadX+2, r.LPadY)
	putI16(offLPadX+4, r.RPadX)
	putI16(offLPadX+6, r.RPadY)

	putI16(offAccelX, r.AccelX)
	putI16(offAccelX+2, r.AccelY)
	putI16(offAccelX+4, r.AccelZ)

	putI16(offGyroPitch, r.GyroPitch)
	putI16(offGyroPitch+2, r.GyroRoll)
	putI16(offGyroPitch+4, r.GyroYaw)

	putU16(offLTrigg, r.LTrigg)
	putU16(offLTrigg+2, r.RTrigg)

	putI16(offLStickX, r.LStickX)
	putI16(offLStickX+2, r.LStickY)
	putI16(offLStickX+4, r.RStickX)
	putI16(offLStickX+6, r.RStickY)

	putU16(offLPadForce, r.LPadForce)
	putU16(offLPadForce+2, r.RPadForce)

	b[offStickForce] = r.LStickForce
	b[offStickForce+1] = r.RStickForce

	return b, nil
}
