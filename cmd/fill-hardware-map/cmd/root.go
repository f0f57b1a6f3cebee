package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/hwmap/internal/logging"
	"github.com/OpenTraceLab/hwmap/pkg/filler"
	"github.com/OpenTraceLab/hwmap/pkg/inventory"
	"github.com/OpenTraceLab/hwmap/pkg/nrfjprog"
)

var (
	// Global flags
	verbose      bool
	nrfjprogPath string
	toolTimeout  time.Duration

	userdevConfPath string
	hardwareMapPath string
)

// newBoard builds the nrfjprog client; tests swap it for a fake.
var newBoard = func() filler.Board {
	return nrfjprog.New(nrfjprogPath, toolTimeout)
}

var rootCmd = &cobra.Command{
	Use:   "fill-hardware-map",
	Short: "Generate the hardware map used by twister",
	Long: `Generate the hardware map used by twister from a map produced by
"twister --generate-hardware-map hardware-map.yaml --persistent-hardware-map".

Boards are identified either from a userdev_conf file describing the installed
hardware, or with --userdev_conf_path AUTO by reading the device family of every
connected board with nrfjprog. Each identified board is recovered to check that
it is operable. Boards that cannot be identified, recovered or mapped to a
platform are left out, as are the redundant serial interfaces of multi-VCOM
development kits. The result is written to <hardware_map_path>_filled.

Examples:
  fill-hardware-map --userdev_conf_path userdev_conf.yaml --hardware_map_path hardware-map.yaml
  fill-hardware-map --userdev_conf_path AUTO --hardware_map_path hardware-map.yaml
  fill-hardware-map probes                        # List attached J-Link probes
  fill-hardware-map boards                        # List supported kits`,
	Version:      "0.3.0",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runFill,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&nrfjprogPath, "nrfjprog", nrfjprog.PathFromEnv(),
		"nrfjprog executable (defaults to $NRFJPROG)")
	rootCmd.PersistentFlags().DurationVar(&toolTimeout, "timeout", nrfjprog.DefaultTimeout,
		"timeout of a single nrfjprog call (0 disables it)")

	rootCmd.Flags().StringVar(&userdevConfPath, "userdev_conf_path", "",
		"userdev_conf file describing installed HW or 'AUTO' to generate the hardware map from connected HW")
	rootCmd.Flags().StringVar(&hardwareMapPath, "hardware_map_path", "",
		"available HW generated by twister --generate-hardware-map hardware-map.yaml --persistent-hardware-map")

	rootCmd.MarkFlagRequired("userdev_conf_path")
	rootCmd.MarkFlagRequired("hardware_map_path")
}

func runFill(cmd *cobra.Command, args []string) error {
	log := logging.New(cmd.ErrOrStderr(), verbose)
	f := &filler.Filler{Board: newBoard(), Log: log}

	if !inventory.IsAuto(userdevConfPath) {
		inv, err := inventory.Load(userdevConfPath)
		if err != nil {
			return err
		}
		if f.Inventory, err = inv.Filter(log); err != nil {
			return err
		}
	}

	out, err := f.Run(cmd.Context(), hardwareMapPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Hardware map written to %s\n", out)
	return nil
}
