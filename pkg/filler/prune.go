package filler

import (
	"log/slog"
	"strings"

	"github.com/OpenTraceLab/hwmap/internal/logging"
	"github.com/OpenTraceLab/hwmap/pkg/boards"
	"github.com/OpenTraceLab/hwmap/pkg/hwmap"
)

// Serial number prefixes of the kit generations with several serial
// interfaces.
const (
	oldNRF53Prefix  = "9601"  // nRF5340 DK with three VCOM ports
	newNRF53Prefix  = "10500" // nRF5340 DK with two VCOM ports
	newNRF52Prefix  = "1050"  // nRF52840 DK with two VCOM ports
	firstInterface  = "-if00"
	secondInterface = "-if02"
)

// Prune reports whether e is a serial interface of a multi-interface kit
// that must not be handed to the test runner. Entries without a serial path
// are never pruned.
func Prune(e hwmap.Entry, log *slog.Logger) bool {
	log = logging.OrDiscard(log)
	snr := e.SerialNumber()
	serial := e.SerialPath()

	switch {
	case strings.Contains(e.Platform, boards.PlatformNRF5340DK):
		switch {
		case strings.HasPrefix(snr, oldNRF53Prefix):
			if hasInterface(serial, firstInterface) || hasInterface(serial, secondInterface) {
				log.Info("remove serial interface of old nRF53 board", "snr", snr, "serial", serial)
				return true
			}
		case strings.HasPrefix(snr, newNRF53Prefix):
			if hasInterface(serial, firstInterface) {
				log.Info("remove first serial interface of nRF53 board", "snr", snr, "serial", serial)
				return true
			}
		default:
			log.Warn("unrecognized version of nRF53 board", "snr", snr)
		}
	case strings.Contains(e.Platform, boards.PlatformNRF52840DK):
		if strings.HasPrefix(snr, newNRF52Prefix) && hasInterface(serial, secondInterface) {
			log.Info("remove second serial interface of nRF52 board", "snr", snr, "serial", serial)
			return true
		}
	}
	return false
}

func hasInterface(serial, iface string) bool {
	return serial != "" && strings.Contains(serial, iface)
}
