package cmd

import (
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rnacore"
	"github.com/spf13/cobra"
)

// foldCmd is for folding sequences with the configured engine
var foldCmd = &cobra.Command{
	Use:                        "fold",
	Short:                      "Fold sequences into their structure and dot plot",
	Run:                        rnacore.FoldCmd,
	PreRun:                     bindFoldFlags,
	SuggestionsMinimumDistance: 2,
	Long: `
Fold each design with ViennaRNA's RNAfold, or serve the precomputed
structure and dot plot of the "file" engine. Prints the minimum free energy
structure and the pairing probabilities as "i j p" lines.`,
	Example: "  rnacore fold --seq GGGGAAAACCCC --dense",
}

// set flags
func init() {
	addInputFlags(foldCmd)
	addFoldFlags(foldCmd)
	foldCmd.Flags().String("transform", "identity", transformHelp)
	foldCmd.Flags().Bool("dense", false, "print the transformed probability matrix")

	RootCmd.AddCommand(foldCmd)
}
