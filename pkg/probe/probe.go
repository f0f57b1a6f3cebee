// Package probe lists the SEGGER J-Link debug probes attached over USB.
package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/gousb"
)

// VendorIDSEGGER is the USB vendor ID of SEGGER J-Link probes, including the
// on-board probes of Nordic development kits.
const VendorIDSEGGER = 0x1366

// Probe is one attached debug probe.
type Probe struct {
	Description string
	VendorID    uint16
	ProductID   uint16
	Bus         int
	Address     int
	// Serial is the USB serial number, zero padded to 12 digits by the
	// firmware (000683123456).
	Serial string
}

// SerialNumber returns the serial without leading zeros, as used by
// nrfjprog --snr.
func (p Probe) SerialNumber() string {
	return strings.TrimLeft(p.Serial, "0")
}

// Label returns a user-friendly description of the probe.
func (p Probe) Label() string {
	if p.Description != "" {
		return p.Description
	}
	return fmt.Sprintf("USB device %04X:%04X", p.VendorID, p.ProductID)
}

type knownUSBDevice struct {
	ProductID   uint16
	Description string
}

var knownJLinkPIDs = []knownUSBDevice{
	{ProductID: 0x0101, Description: "SEGGER J-Link"},
	{ProductID: 0x0105, Description: "SEGGER J-Link (CDC)"},
	{ProductID: 0x1015, Description: "SEGGER J-Link OB (CDC, MSD)"},
	{ProductID: 0x1051, Description: "SEGGER J-Link OB (2x CDC, MSD)"},
	{ProductID: 0x1061, Description: "SEGGER J-Link OB (3x CDC, MSD)"},
}

// Classify reports whether desc is a J-Link probe and describes it.
func Classify(desc *gousb.DeviceDesc) (Probe, bool) {
	if uint16(desc.Vendor) != VendorIDSEGGER {
		return Probe{}, false
	}
	p := Probe{
		Description: "SEGGER J-Link",
		VendorID:    uint16(desc.Vendor),
		ProductID:   uint16(desc.Product),
		Bus:         desc.Bus,
		Address:     desc.Address,
	}
	for _, known := range knownJLinkPIDs {
		if p.ProductID == known.ProductID {
			p.Description = known.Description
			break
		}
	}
	return p, true
}

// Discover enumerates attached J-Link probes and reads their serial
// numbers. Probes that cannot be opened (missing udev permissions) are
// reported without a serial.
func Discover(ctx context.Context) ([]Probe, error) {
	usb := gousb.NewContext()
	defer usb.Close()

	var found []Probe
	devs, err := usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		p, ok := Classify(desc)
		if ok {
			found = append(found, p)
		}
		return ok
	})
	defer func() {
		for _, d := range devs {
			d.Close()
		}
	}()
	if err != nil && !errors.Is(err, gousb.ErrorAccess) {
		return nil, fmt.Errorf("enumerate usb devices: %w", err)
	}

	for _, d := range devs {
		sn, err := d.SerialNumber()
		if err != nil {
			continue
		}
		for i := range found {
			if found[i].Bus == d.Desc.Bus && found[i].Address == d.Desc.Address {
				found[i].Serial = sn
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return found, err
	}
	return found, nil
}

// Attached reports whether snr is the serial number of one of probes.
func Attached(probes []Probe, snr string) bool {
	snr = strings.TrimLeft(snr, "0")
	for _, p := range probes {
		if p.Serial != "" && p.SerialNumber() == snr {
			return true
		}
	}
	return false
}
