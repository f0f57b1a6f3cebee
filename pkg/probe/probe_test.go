package probe

import (
	"testing"

	"github.com/google/gousb"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		desc    gousb.DeviceDesc
		ok      bool
		descStr string
	}{
		{"jlink ob", gousb.DeviceDesc{Vendor: 0x1366, Product: 0x1051, Bus: 1, Address: 7}, true, "SEGGER J-Link OB (2x CDC, MSD)"},
		{"unknown jlink pid", gousb.DeviceDesc{Vendor: 0x1366, Product: 0x9999}, true, "SEGGER J-Link"},
		{"daplink", gousb.DeviceDesc{Vendor: 0x0d28, Product: 0x0204}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Classify(&tt.desc)
			if ok != tt.ok {
				t.Fatalf("Classify ok = %v, want %v", ok, tt.ok)
			}
			if p.Description != tt.descStr {
				t.Fatalf("Description = %q, want %q", p.Description, tt.descStr)
			}
			if ok && (p.Bus != tt.desc.Bus || p.Address != tt.desc.Address) {
				t.Fatalf("bus/address = %d/%d, want %d/%d", p.Bus, p.Address, tt.desc.Bus, tt.desc.Address)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	if got := (Probe{VendorID: 0x1366, ProductID: 0x0101}).Label(); got != "USB device 1366:0101" {
		t.Fatalf("Label() = %q", got)
	}
	if got := (Probe{Description: "SEGGER J-Link"}).Label(); got != "SEGGER J-Link" {
		t.Fatalf("Label() = %q", got)
	}
}

func TestAttached(t *testing.T) {
	probes := []Probe{{Serial: "000683123456"}, {}}
	if !Attached(probes, "683123456") {
		t.Fatalf("expected 683123456 to be attached")
	}
	if !Attached(probes, "000683123456") {
		t.Fatalf("expected zero padded serial to match")
	}
	if Attached(probes, "960100001") {
		t.Fatalf("unexpected match")
	}
	if Attached(probes, "") {
		t.Fatalf("probe without serial must not match")
	}
}
