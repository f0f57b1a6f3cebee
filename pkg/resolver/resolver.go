// Package resolver fills in the platform of hardware map entries that the
// map generator could not identify.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/OpenTraceLab/hwmap/internal/logging"
	"github.com/OpenTraceLab/hwmap/pkg/boards"
	"github.com/OpenTraceLab/hwmap/pkg/hwmap"
)

// FamilyReader reads the chip family of a board.
type FamilyReader interface {
	Family(ctx context.Context, snr string) (string, error)
}

// Resolver resolves unknown platforms in place.
type Resolver struct {
	Board FamilyReader
	Log   *slog.Logger
}

// Result describes what Run did with the map.
type Result struct {
	// Removed is set when the map was empty and the file was deleted.
	Removed bool
	// Resolved counts the entries that got a platform.
	Resolved int
	// Unresolved counts the entries still marked unknown.
	Unresolved int
}

// Run resolves the map at path and writes it back. An empty map is deleted.
func (r *Resolver) Run(ctx context.Context, path string) (Result, error) {
	log := logging.OrDiscard(r.Log)
	m, err := hwmap.Load(path)
	if err != nil {
		return Result{}, err
	}
	if len(m) == 0 {
		log.Info("hardware map is empty, removing it", "path", path)
		if err := os.Remove(path); err != nil {
			return Result{}, fmt.Errorf("remove empty hardware map: %w", err)
		}
		return Result{Removed: true}, nil
	}

	res := r.Resolve(ctx, m)
	if err := hwmap.Save(path, m); err != nil {
		return Result{}, err
	}
	log.Info("hardware map updated", "path", path, "resolved", res.Resolved, "unresolved", res.Unresolved)
	return res, nil
}

// Resolve sets the platform of every unknown entry of m from the chip family
// its board reports. Entries with a platform are left untouched; a failed
// query leaves the entry unknown.
func (r *Resolver) Resolve(ctx context.Context, m hwmap.Map) Result {
	log := logging.OrDiscard(r.Log)
	var res Result
	for i := range m {
		e := &m[i]
		if e.Platform != hwmap.UnknownPlatform {
			continue
		}
		snr := e.SerialNumber()
		family, err := r.Board.Family(ctx, snr)
		if err != nil {
			log.Error("reading device version failed", "snr", snr, "err", err)
			res.Unresolved++
			continue
		}
		e.Platform = boards.PlatformForChip(family)
		if e.Platform == hwmap.UnknownPlatform {
			log.Warn("unknown device family", "snr", snr, "family", family)
			res.Unresolved++
			continue
		}
		log.Debug("resolved platform", "snr", snr, "family", family, "platform", e.Platform)
		res.Resolved++
	}
	return res
}
