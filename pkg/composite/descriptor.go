//go:build tinygo

// Package composite provides a custom USB composite device descriptor
// that combines CDC (Serial) + HID (Switch-compatible gamepad).
package composite

import (
	"machine/usb"
	"machine/usb/descriptor"
)

// GamepadReportID must match the first byte of every gamepad report.
const GamepadReportID = 4

// Items the descriptor package has no helper for
var (
	usageDesktopHatSwitch = []byte{0x09, 0x39}
	physicalMinimum0      = []byte{0x35, 0x00}
	physicalMaximum1      = []byte{0x45, 0x01}
	physicalMaximum255    = []byte{0x46, 0xFF, 0x00}
	physicalMaximum315    = []byte{0x46, 0x3B, 0x01}
	unitDegrees           = []byte{0x65, 0x14}
	unitNone              = []byte{0x65, 0x00}
	inputDataVarAbsNull   = []byte{0x81, 0x42}
	usagePageVendor       = []byte{0x06, 0x00, 0xFF}
	usageVendor           = []byte{0x09, 0x20}
)

// GamepadHIDReportDescriptor describes the 9 byte report built by the
// gamepad package: ID, 16 button bits, hat, 4 axes, 1 vendor byte.
var GamepadHIDReportDescriptor = descriptor.Append([][]byte{
	descriptor.HIDUsagePageGenericDesktop,
	descriptor.HIDUsageDesktopGamepad,
	descriptor.HIDCollectionApplication,
	descriptor.HIDReportID(GamepadReportID),
	// 14 Buttons + 2 bits padding (2 bytes)
	descriptor.HIDLogicalMinimum(0),
	descriptor.HIDLogicalMaximum(1),
	physicalMinimum0,
	physicalMaximum1,
	descriptor.HIDReportSize(1),
	descriptor.HIDReportCount(14),
	descriptor.HIDUsagePageButton,
	descriptor.HIDUsageMinimum(1),
	descriptor.HIDUsageMaximum(14),
	descriptor.HIDInputDataVarAbs,
	descriptor.HIDReportCount(2),
	descriptor.HIDInputConstVarAbs,
	// Hat switch, 8 directions plus a null state (4 bits + 4 bits padding)
	descriptor.HIDUsagePageGenericDesktop,
	descriptor.HIDLogicalMaximum(7),
	physicalMaximum315,
	unitDegrees,
	descriptor.HIDReportSize(4),
	descriptor.HIDReportCount(1),
	usageDesktopHatSwitch,
	inputDataVarAbsNull,
	unitNone,
	descriptor.HIDReportCount(1),
	descriptor.HIDInputConstVarAbs,
	// 4 Analog Axes: X, Y, Z, Rz (4 bytes, centered at 0x80)
	descriptor.HIDLogicalMaximum(255),
	physicalMaximum255,
	descriptor.HIDUsageDesktopX,
	descriptor.HIDUsageDesktopY,
	descriptor.HIDUsageDesktopZ,
	descriptor.HIDUsageDesktopRz,
	descriptor.HIDReportSize(8),
	descriptor.HIDReportCount(4),
	descriptor.HIDInputDataVarAbs,
	// Vendor byte
	usagePageVendor,
	usageVendor,
	descriptor.HIDReportCount(1),
	descriptor.HIDInputDataVarAbs,
	descriptor.HIDCollectionEnd,
})

// USBDescriptor is the complete USB descriptor for our composite device
// It combines CDC (Serial) + HID (Gamepad)
var USBDescriptor = descriptor.Descriptor{
	// Device descriptor: USB 2.0 Composite device
	Device: descriptor.DeviceCDC.Bytes(),

	// Configuration descriptor: All interfaces combined
	Configuration: descriptor.Append([][]byte{
		// Configuration header
		descriptor.ConfigurationCDCHID.Bytes(),
		// CDC interfaces
		descriptor.InterfaceAssociationCDC.Bytes(),
		descriptor.InterfaceCDCControl.Bytes(),
		descriptor.ClassSpecificCDCHeader.Bytes(),
		descriptor.ClassSpecificCDCACM.Bytes(),
		descriptor.ClassSpecificCDCUnion.Bytes(),
		descriptor.ClassSpecificCDCCallManagement.Bytes(),
		descriptor.EndpointEP1IN.Bytes(),
		descriptor.InterfaceCDCData.Bytes(),
		descriptor.EndpointEP2OUT.Bytes(),
		descriptor.EndpointEP3IN.Bytes(),
		// HID interface
		descriptor.InterfaceHID.Bytes(),
		// HID class descriptor (patched with the gamepad report length)
		func() []byte {
			classHID := descriptor.ClassHID.Bytes()
			classHID[7] = byte(len(GamepadHIDReportDescriptor))
			classHID[8] = byte(len(GamepadHIDReportDescriptor) >> 8)
			return classHID
		}(),
		descriptor.EndpointEP4IN.Bytes(),
		descriptor.EndpointEP5OUT.Bytes(),
	}),

	// HID report descriptors by interface number
	HID: map[uint16][]byte{
		usb.HID_INTERFACE: GamepadHIDReportDescriptor,
	},
}
