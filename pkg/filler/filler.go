// Package filler turns a freshly generated twister hardware map into the map
// used for testing: boards are identified, recovered and pruned down to one
// serial interface each.
package filler

import (
	"context"
	"log/slog"

	"github.com/OpenTraceLab/hwmap/internal/logging"
	"github.com/OpenTraceLab/hwmap/pkg/boards"
	"github.com/OpenTraceLab/hwmap/pkg/hwmap"
	"github.com/OpenTraceLab/hwmap/pkg/inventory"
)

// Runner is the twister runner set on every entry.
const Runner = "nrfjprog"

// OutputSuffix is appended to the input path to name the filled map.
const OutputSuffix = "_filled"

// Board is the subset of nrfjprog used to identify and recover boards.
type Board interface {
	Family(ctx context.Context, snr string) (string, error)
	Recover(ctx context.Context, snr string) error
}

// Filler fills a hardware map.
type Filler struct {
	Board Board
	// Inventory matches serial numbers to product codes. When nil the
	// product code is derived from the chip family reported by the board.
	Inventory *inventory.Inventory
	Log       *slog.Logger
}

// OutputPath returns the path the filled map of hwPath is written to.
func OutputPath(hwPath string) string {
	return hwPath + OutputSuffix
}

// Run fills the hardware map at hwPath and writes the result next to it.
// It returns the output path.
func (f *Filler) Run(ctx context.Context, hwPath string) (string, error) {
	log := logging.OrDiscard(f.Log)
	log.Info("generating hardware map", "path", hwPath, "auto", f.Inventory == nil)

	m, err := hwmap.Load(hwPath)
	if err != nil {
		return "", err
	}
	filled := f.Fill(ctx, m)

	out := OutputPath(hwPath)
	if err := hwmap.Save(out, filled); err != nil {
		return "", err
	}
	log.Info("final hardware map", "path", out, "boards", summary(filled))
	return out, nil
}

// Fill returns the usable entries of m with runner, connected and platform
// set. Boards that cannot be identified, recovered or mapped to a platform
// are left out, as are redundant serial interfaces.
func (f *Filler) Fill(ctx context.Context, m hwmap.Map) hwmap.Map {
	out := make(hwmap.Map, 0, len(m))
	for _, e := range m {
		if e, ok := f.fillEntry(ctx, e); ok {
			out = append(out, e)
		}
	}
	return out
}

func (f *Filler) fillEntry(ctx context.Context, e hwmap.Entry) (hwmap.Entry, bool) {
	log := logging.OrDiscard(f.Log)
	e.Runner = Runner
	e.Connected = true
	snr := e.SerialNumber()

	pcas := f.candidates(ctx, snr)
	if len(pcas) == 0 {
		log.Warn("board not known or not connected, remove from available boards", "snr", snr)
		return e, false
	}

	log.Debug("call nrfjprog --recover to check if board is operable", "snr", snr)
	if err := f.Board.Recover(ctx, snr); err != nil {
		log.Warn("not possible to recover board, remove from available boards", "snr", snr, "err", err)
		return e, false
	}

	platform, ok := boards.PlatformForPCA(pcas[0])
	if !ok {
		log.Warn("platform not known or not supported", "snr", snr, "pca", pcas[0])
		return e, false
	}
	e.Platform = platform

	if Prune(e, log) {
		return e, false
	}
	return e, true
}

func (f *Filler) candidates(ctx context.Context, snr string) []string {
	if f.Inventory != nil {
		return f.Inventory.MatchPCAs(snr)
	}
	log := logging.OrDiscard(f.Log)
	family, err := f.Board.Family(ctx, snr)
	if err != nil {
		log.Warn("reading device family failed", "snr", snr, "err", err)
		return nil
	}
	pca, ok := boards.PCAForFamily(family)
	if !ok {
		log.Debug("unknown device family", "snr", snr, "family", family)
		return nil
	}
	return []string{pca}
}

type boardSummary struct {
	ID       string
	Platform string
	Serial   string
}

func summary(m hwmap.Map) []boardSummary {
	out := make([]boardSummary, 0, len(m))
	for _, e := range m {
		out = append(out, boardSummary{ID: e.ID, Platform: e.Platform, Serial: e.SerialPath()})
	}
	return out
}
