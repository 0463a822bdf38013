//go:build tinygo

package gamepad

import (
	"machine"
	"machine/usb"
	"machine/usb/hid"
	"runtime/interrupt"

	"github.com/tuffrabit/tinygo-nezoba/pkg/composite"
)

// usbSender sends reports on the HID interrupt endpoint.
// Send runs on the main loop and TxHandler in the USB interrupt,
// so the outbox is only touched with interrupts disabled.
type usbSender struct {
	out outbox
}

// padInstance is the singleton instance
var padInstance *Pad

// init registers the CDC + gamepad descriptor with the USB stack
func init() {
	if padInstance == nil {
		tx := &usbSender{}
		machine.ConfigureUSBEndpoint(composite.USBDescriptor,
			[]usb.EndpointConfig{
				{
					Index:     usb.HID_ENDPOINT_IN,
					IsIn:      true,
					Type:      usb.ENDPOINT_TYPE_INTERRUPT,
					TxHandler: tx.TxHandler,
				},
			},
			[]usb.SetupConfig{
				{
					Index:   usb.HID_INTERFACE,
					Handler: setupHandler,
				},
			})
		padInstance = New(tx)
	}
}

// Port returns the USB gamepad instance
func Port() *Pad {
	return padInstance
}

// setupHandler acknowledges SET_IDLE, the only class request hosts send a pad.
func setupHandler(setup usb.Setup) bool {
	if setup.BmRequestType == usb.SET_REPORT_TYPE && setup.BRequest == usb.SET_IDLE {
		machine.SendZlp()
		return true
	}
	return false
}

// TxHandler is called by the USB interrupt when the endpoint is ready to transmit
func (u *usbSender) TxHandler() {
	if b := u.out.Done(); b != nil {
		hid.SendUSBPacket(b)
	}
}

// Send transmits the report, or parks it as the next one if the endpoint is busy.
func (u *usbSender) Send(report []byte) {
	if !machine.USBDev.InitEndpointComplete {
		return
	}
	mask := interrupt.Disable()
	b := u.out.Submit(report)
	if b != nil {
		hid.SendUSBPacket(b)
	}
	interrupt.Restore(mask)
}
