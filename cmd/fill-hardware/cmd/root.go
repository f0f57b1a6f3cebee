package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/hwmap/internal/logging"
	"github.com/OpenTraceLab/hwmap/pkg/nrfjprog"
	"github.com/OpenTraceLab/hwmap/pkg/resolver"
)

var (
	// Global flags
	verbose      bool
	nrfjprogPath string
	toolTimeout  time.Duration
)

// newBoard builds the nrfjprog client; tests swap it for a fake.
var newBoard = func() resolver.FamilyReader {
	return nrfjprog.New(nrfjprogPath, toolTimeout)
}

var rootCmd = &cobra.Command{
	Use:   "fill-hardware <hardware_map_path>",
	Short: "Resolve unknown platforms in a twister hardware map",
	Long: `Read a hardware map generated by twister and, for every entry whose platform
is "unknown", ask nrfjprog for the device version of the board and map its chip
family to a platform. The map is rewritten in place. An empty map is deleted.

Examples:
  fill-hardware hardware-map.yaml
  fill-hardware -v --nrfjprog /opt/nrf-command-line-tools/bin/nrfjprog hardware-map.yaml`,
	Version:      "0.3.0",
	Args:         cobra.ExactArgs(1),
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
	rootCmd.Flags().StringVar(&nrfjprogPath, "nrfjprog", nrfjprog.PathFromEnv(),
		"nrfjprog executable (defaults to $NRFJPROG)")
	rootCmd.Flags().DurationVar(&toolTimeout, "timeout", nrfjprog.DefaultTimeout,
		"timeout of a single nrfjprog call (0 disables it)")
}

func runFill(cmd *cobra.Command, args []string) error {
	log := logging.New(cmd.ErrOrStderr(), verbose)
	r := &resolver.Resolver{Board: newBoard(), Log: log}

	res, err := r.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if res.Removed {
		fmt.Fprintf(cmd.OutOrStdout(), "Hardware map %s was empty and has been removed\n", args[0])
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Resolved %d board(s), %d still unknown\n", res.Resolved, res.Unresolved)
	return nil
}
