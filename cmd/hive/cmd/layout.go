package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/hive/internal/layout"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <count> <width>",
	Short: "Print honeycomb tile positions",
	Long: `Compute where count tiles plus the add tile go in a container of the
given width, using the layout section of the config (pixels).

Example:
  hive layout 7 600`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil || count < 0 {
			return fmt.Errorf("count must be a non-negative number, got %q", args[0])
		}
		width, err := strconv.Atoi(args[1])
		if err != nil || width < 0 {
			return fmt.Errorf("width must be a non-negative number, got %q", args[1])
		}

		hex := cfg.Layout.HexConfig()
		grid := layout.ComputePositions(count, width, hex)
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "per row %d, rows %d, size %dx%d\n", grid.PerRow, grid.Rows(), layout.Width(grid.PerRow, hex), grid.Height)
		for i, pos := range grid.Items() {
			fmt.Fprintf(out, "%4d  left %5d  top %5d\n", i, pos.Left, pos.Top)
		}
		add := grid.AddSlot()
		fmt.Fprintf(out, "%4s  left %5d  top %5d\n", "+", add.Left, add.Top)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}
