// Package inventory reads the userdev_conf file that describes the boards
// installed on a test bench.
package inventory

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/hwmap/internal/logging"
	"github.com/OpenTraceLab/hwmap/pkg/boards"
)

// AutoMode selects discovery over nrfjprog instead of an inventory file.
const AutoMode = "AUTO"

// MinPCA10056Revision is the oldest nRF52840 DK revision used for testing.
const MinPCA10056Revision = "2.0.0"

// defaultRevision applies to entries without a revision.
const defaultRevision = "0.0.1"

// IsAuto reports whether path is the AUTO keyword rather than a file.
func IsAuto(path string) bool {
	return strings.EqualFold(path, AutoMode)
}

// Device is one installed board.
type Device struct {
	PCA      string `yaml:"pca,omitempty"`
	Revision string `yaml:"revision,omitempty"`
	Segger   string `yaml:"segger,omitempty"`

	// Boards lists the boards wired to an I/O tester.
	Boards interface{} `yaml:"boards,omitempty"`
}

// IsIOTester reports whether the device is an I/O tester rather than a board
// under test.
func (d Device) IsIOTester() bool {
	if d.Boards == nil {
		return false
	}
	v := reflect.ValueOf(d.Boards)
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return v.Len() > 0
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0
	}
	return true
}

// SerialNumber returns the segger number without leading zeros.
func (d Device) SerialNumber() string {
	return strings.TrimLeft(d.Segger, "0")
}

// Version parses the board revision. A missing revision counts as 0.0.1.
func (d Device) Version() (semver.Version, error) {
	rev := d.Revision
	if rev == "" {
		rev = defaultRevision
	}
	v, err := semver.ParseTolerant(rev)
	if err != nil {
		return semver.Version{}, fmt.Errorf("device %s: revision %q: %w", d.Segger, rev, err)
	}
	return v, nil
}

// Inventory is the parsed userdev_conf file.
type Inventory struct {
	Devices []Device `yaml:"devices"`
}

// Parse decodes a userdev_conf document.
func Parse(data []byte) (*Inventory, error) {
	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parse userdev_conf: %w", err)
	}
	return &inv, nil
}

// Load reads the userdev_conf file at path.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read userdev_conf: %w", err)
	}
	inv, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inv, nil
}

var minPCA10056 = semver.MustParse(MinPCA10056Revision)

// Filter returns the devices usable for testing: I/O testers and nRF52840
// DKs older than MinPCA10056Revision are dropped.
func (inv *Inventory) Filter(log *slog.Logger) (*Inventory, error) {
	log = logging.OrDiscard(log)
	out := &Inventory{Devices: make([]Device, 0, len(inv.Devices))}
	for _, d := range inv.Devices {
		if d.IsIOTester() {
			log.Info("remove io_tester", "segger", d.Segger)
			continue
		}
		if d.PCA == boards.PCA10056 {
			v, err := d.Version()
			if err != nil {
				return nil, err
			}
			if v.LT(minPCA10056) {
				log.Info("remove board since it is too old", "segger", d.Segger, "pca", d.PCA, "revision", v.String())
				continue
			}
		}
		out.Devices = append(out.Devices, d)
	}
	return out, nil
}

// MatchPCAs returns the product codes of the devices with serial number snr,
// in file order.
func (inv *Inventory) MatchPCAs(snr string) []string {
	var pcas []string
	for _, d := range inv.Devices {
		if d.PCA != "" && d.SerialNumber() == snr {
			pcas = append(pcas, d.PCA)
		}
	}
	return pcas
}
