// Package boards holds the fixed tables that map Nordic development kits to
// the platform names used by the test runner.
package boards

import (
	"sort"

	"github.com/OpenTraceLab/hwmap/pkg/hwmap"
)

// Product codes with special handling.
const (
	PCA10056 = "PCA10056" // nRF52840 DK
	PCA10095 = "PCA10095" // nRF5340 DK
)

// Platforms with interface pruning rules.
const (
	PlatformNRF52840DK = "nrf52840dk_nrf52840"
	PlatformNRF5340DK  = "nrf5340dk_nrf5340_cpuapp"
)

var (
	pcaToPlatform  = make(map[string]string)
	familyToPCA    = make(map[string]string)
	chipToPlatform = make(map[string]string)
)

// register adds a kit with the chip family nrfjprog reports for it.
func register(pca, platform, family string) {
	pcaToPlatform[pca] = platform
	if family != "" {
		familyToPCA[family] = pca
	}
}

func init() {
	register(PCA10056, PlatformNRF52840DK, "NRF52840")
	register("PCA10100", "nrf52833dk_nrf52833", "NRF52833")
	register("PCA10112", "nrf21540dk_nrf52840", "NRF21540")
	register("PCA10059", "nrf52840dongle_nrf52840", "NRF52840DONGLE")
	register(PCA10095, PlatformNRF5340DK, "NRF5340")
	register("PCA20053", "thingy53_nrf5340_cpuapp", "THINGY53")

	// fill-hardware only knows the nRF52840 DK.
	chipToPlatform["NRF52840"] = PlatformNRF52840DK
}

// PlatformForPCA returns the platform of a product code.
func PlatformForPCA(pca string) (string, bool) {
	p, ok := pcaToPlatform[pca]
	return p, ok
}

// PCAForFamily returns the product code of a chip family as reported by
// nrfjprog --deviceversion.
func PCAForFamily(family string) (string, bool) {
	pca, ok := familyToPCA[family]
	return pca, ok
}

// PlatformForChip maps a chip family to a platform, falling back to
// hwmap.UnknownPlatform.
func PlatformForChip(family string) string {
	if p, ok := chipToPlatform[family]; ok {
		return p
	}
	return hwmap.UnknownPlatform
}

// Kit is one row of the product code table.
type Kit struct {
	PCA      string
	Platform string
	Family   string
}

// Kits lists the known kits sorted by product code.
func Kits() []Kit {
	families := make(map[string]string, len(familyToPCA))
	for family, pca := range familyToPCA {
		families[pca] = family
	}
	kits := make([]Kit, 0, len(pcaToPlatform))
	for pca, platform := range pcaToPlatform {
		kits = append(kits, Kit{PCA: pca, Platform: platform, Family: families[pca]})
	}
	sort.Slice(kits, func(i, j int) bool { return kits[i].PCA < kits[j].PCA })
	return kits
}
