package cmd

import (
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rnacore"
	"github.com/spf13/cobra"
)

// convertCmd is for converting between structure notations
var convertCmd = &cobra.Command{
	Use:                        "convert [structure]",
	Short:                      "Convert between dot-bracket notation and pair lists",
	Run:                        rnacore.ConvertCmd,
	SuggestionsMinimumDistance: 2,
	Args:                       cobra.ExactArgs(1),
	Long: `
Convert a dot-bracket structure to a comma separated list of each base's
0-indexed partner, -1 for unpaired bases, or a pair list to dot-bracket.
Crossing pairs use "[]", "{}" and "<>".`,
	Example: `  rnacore convert "((..))"
  rnacore convert 5,4,-1,-1,1,0`,
}

func init() {
	RootCmd.AddCommand(convertCmd)
}
