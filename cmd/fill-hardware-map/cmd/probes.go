package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/hwmap/pkg/hwmap"
	"github.com/OpenTraceLab/hwmap/pkg/probe"
)

var checkMapPath string

// discoverProbes enumerates USB probes; tests swap it for a fixed list.
var discoverProbes = probe.Discover

var probesCmd = &cobra.Command{
	Use:   "probes",
	Short: "List attached J-Link probes",
	Long: `Scan the USB bus for SEGGER J-Link probes (stand-alone or on-board a
development kit) and print their serial numbers. With --check, report for every
entry of a hardware map whether its probe is attached.

Examples:
  fill-hardware-map probes
  fill-hardware-map probes --check hardware-map.yaml`,
	Args: cobra.NoArgs,
	RunE: runProbes,
}

func init() {
	rootCmd.AddCommand(probesCmd)

	probesCmd.Flags().StringVar(&checkMapPath, "check", "",
		"hardware map whose entries are checked against the attached probes")
}

func runProbes(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	probes, err := discoverProbes(ctx)
	if err != nil {
		return fmt.Errorf("discover probes: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(probes) == 0 {
		fmt.Fprintln(out, "No J-Link probes found.")
	} else {
		fmt.Fprintln(out, "Detected J-Link probes:")
		for _, p := range probes {
			serial := p.Serial
			if serial == "" {
				serial = "(serial unreadable)"
			}
			fmt.Fprintf(out, "  - %s %s [%04X:%04X] bus %d address %d\n",
				serial, p.Label(), p.VendorID, p.ProductID, p.Bus, p.Address)
		}
	}

	if checkMapPath == "" {
		return nil
	}
	m, err := hwmap.Load(checkMapPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nHardware map %s:\n", checkMapPath)
	missing := 0
	for _, e := range m {
		state := "attached"
		if !probe.Attached(probes, e.ID) {
			state = "missing"
			missing++
		}
		fmt.Fprintf(out, "  %-14s %-28s %s\n", e.ID, e.Platform, state)
	}
	if missing > 0 {
		fmt.Fprintf(out, "%d of %d entries have no attached probe\n", missing, len(m))
	}
	return nil
}
