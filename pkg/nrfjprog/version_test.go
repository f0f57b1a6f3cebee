package nrfjprog

import "testing"

func TestParseDeviceVersion(t *testing.T) {
	tests := []struct {
		input    string
		family   string
		variant  string
		revision string
	}{
		{"NRF52840_xxAA_REV2\n", "NRF52840", "xxAA", "REV2"},
		{"NRF5340_xxAA_REV1", "NRF5340", "xxAA", "REV1"},
		{"NRF52840_xyz", "NRF52840", "xyz", ""},
		{"THINGY53", "THINGY53", "", ""},
		{"NRF52840_xxAA_ENGA-1", "NRF52840", "xxAA", "ENGA-1"},
		{"NRF52840_xxAA_REV2.1", "NRF52840", "xxAA", "REV2.1"},
		{"NRF52840_", "NRF52840", "", ""},
	}
	for _, tt := range tests {
		v, err := ParseDeviceVersion(tt.input)
		if err != nil {
			t.Fatalf("ParseDeviceVersion(%q) error: %v", tt.input, err)
		}
		if v.Family != tt.family || v.Variant() != tt.variant || v.Revision() != tt.revision {
			t.Fatalf("ParseDeviceVersion(%q) = %s/%s/%s, want %s/%s/%s", tt.input,
				v.Family, v.Variant(), v.Revision(), tt.family, tt.variant, tt.revision)
		}
	}
}

func TestParseDeviceVersionString(t *testing.T) {
	v, err := ParseDeviceVersion("  NRF52833_xxAA_REV1  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.String(); got != "NRF52833_xxAA_REV1" {
		t.Fatalf("String() = %q", got)
	}
}

func TestParseFamily(t *testing.T) {
	tests := map[string]string{
		"NRF52840_xyz":          "NRF52840",
		"NRF52840DONGLE_xxAA\n": "NRF52840DONGLE",
		"":                      "",
		"ERROR: no debugger":    "",
		"_xxAA":                 "",
		"NRF52840_xxAA_ENGA-1":  "NRF52840",
		"NRF52840_":             "NRF52840",
		"NRF52840_xxAA_REV2.1":  "NRF52840",
		"NRF52840_xxAA_REV2\nWARNING: J-Link firmware outdated.": "NRF52840",
		"\r\nNRF5340_xxAA_REV1\r\n": "NRF5340",
	}
	for input, want := range tests {
		if got := ParseFamily(input); got != want {
			t.Errorf("ParseFamily(%q) = %q, want %q", input, got, want)
		}
	}
}
