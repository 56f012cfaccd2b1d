package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "polyfit",
	Short: "Piecewise-planar polygonal surface reconstruction from segmented point clouds",
	Long: `polyfit reconstructs a watertight, piecewise-planar polygonal mesh from a
point cloud that has already been partitioned into planar segments: plane
arrangement followed by binary-program face selection, written out as OBJ
or 3MF.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
