package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/hwmap/pkg/boards"
	"github.com/OpenTraceLab/hwmap/pkg/inventory"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List supported development kits",
	Long: `Print the product codes the filler knows, the platform each maps to and
the chip family nrfjprog reports for it in AUTO mode.`,
	Args: cobra.NoArgs,
	RunE: runBoards,
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}

func runBoards(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PCA\tPLATFORM\tFAMILY")
	for _, kit := range boards.Kits() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", kit.PCA, kit.Platform, kit.Family)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s boards older than revision %s are not used for testing.\n",
		boards.PCA10056, inventory.MinPCA10056Revision)
	return nil
}
