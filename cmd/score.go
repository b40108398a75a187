package cmd

import (
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rnacore"
	"github.com/spf13/cobra"
)

var transformHelp = `transform applied to every probability: identity, square
or leave-alone. Dot plots hold probabilities, not their square roots`

// scoreCmd is the parent of every scoring command
var scoreCmd = &cobra.Command{
	Use:                        "score",
	Short:                      "Score designs against their folding ensemble",
	SuggestionsMinimumDistance: 2,
	Long: `
Compute statistics of a design's structure and of the pairing probabilities
of its folding ensemble. Dot plots come from the folding engine unless one is
passed with --bpp.`,
}

// branchinessCmd scores how branched a structure is
var branchinessCmd = &cobra.Command{
	Use:                        "branchiness",
	Short:                      "One minus the normalized average pair span of the structure",
	Run:                        rnacore.ScoreCmd(rnacore.Branchiness),
	PreRun:                     bindFoldFlags,
	SuggestionsMinimumDistance: 3,
	Example:                    "  rnacore score branchiness --structure \"((((....))))\"",
}

// ensembleCmd scores how branched the ensemble is
var ensembleCmd = &cobra.Command{
	Use:                        "ensemble",
	Short:                      "Branchiness weighted by pairing probabilities",
	Run:                        rnacore.ScoreCmd(rnacore.Ensemble),
	PreRun:                     bindFoldFlags,
	SuggestionsMinimumDistance: 3,
	Example:                    "  rnacore score ensemble --seq GGGGAAAACCCC",
}

// unpairedCmd scores the expected number of unpaired bases
var unpairedCmd = &cobra.Command{
	Use:                        "unpaired",
	Short:                      "Expected number of unpaired bases in the ensemble",
	Run:                        rnacore.ScoreCmd(rnacore.Unpaired),
	PreRun:                     bindFoldFlags,
	SuggestionsMinimumDistance: 3,
	Example:                    "  rnacore score unpaired --seq GGGGAAAACCCC --bpp hairpin.dp",
}

// accuracyCmd scores how well the ensemble supports the target structure
var accuracyCmd = &cobra.Command{
	Use:                        "accuracy",
	Short:                      "Expected fraction of bases folding as in the target structure",
	Run:                        rnacore.ScoreCmd(rnacore.Accuracy),
	PreRun:                     bindFoldFlags,
	SuggestionsMinimumDistance: 3,
	Aliases:                    []string{"tea"},
	Example:                    "  rnacore score accuracy --seq GGGGAAAACCCC --structure \"((((....))))\"",
}

// basicsCmd counts the pair types of the structure
var basicsCmd = &cobra.Command{
	Use:                        "basics",
	Short:                      "Count GC, AU and GU pairs and unpaired bases",
	Run:                        rnacore.ScoreCmd(rnacore.BasicCounts),
	PreRun:                     bindFoldFlags,
	SuggestionsMinimumDistance: 3,
	Example:                    "  rnacore score basics --seq GGGGAAAACCCC --structure \"((((....))))\"",
}

// allCmd computes every statistic
var allCmd = &cobra.Command{
	Use:                        "all",
	Short:                      "Compute every statistic",
	Run:                        rnacore.ScoreCmd(rnacore.All),
	PreRun:                     bindFoldFlags,
	SuggestionsMinimumDistance: 3,
	Example:                    "  rnacore score all --in designs.fa --out scores.json",
}

// set flags
func init() {
	for _, c := range []*cobra.Command{branchinessCmd, ensembleCmd, unpairedCmd, accuracyCmd, basicsCmd, allCmd} {
		addInputFlags(c)
		addFoldFlags(c)
		c.Flags().String("transform", "identity", transformHelp)
		scoreCmd.AddCommand(c)
	}

	RootCmd.AddCommand(scoreCmd)
}
