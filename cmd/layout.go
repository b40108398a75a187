package cmd

import (
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rnacore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// layoutCmd is for drawing structures
var layoutCmd = &cobra.Command{
	Use:                        "layout [structure]",
	Short:                      "Draw the structure of designs",
	Run:                        rnacore.LayoutCmd,
	PreRun:                     bindLayoutFlags,
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"draw"},
	Long: `
Lay out a structure as a tree of stems and loops. Loops are drawn as circles
and stems as ladders growing out of them. Each base gets an x, y coordinate.
Designs without a structure are folded first.`,
	Example: `  rnacore layout "((((....))))"
  rnacore layout --in designs.fa --metrics`,
}

// set flags
func init() {
	addInputFlags(layoutCmd)
	addFoldFlags(layoutCmd)
	layoutCmd.Flags().Float64("primary-space", 45, "distance between consecutive bases")
	layoutCmd.Flags().Float64("pair-space", 45, "distance between paired bases")
	layoutCmd.Flags().String("custom", "", "JSON list of points overriding computed ones, null to keep a point")
	layoutCmd.Flags().Bool("metrics", false, "print layout cache metrics to stderr")

	RootCmd.AddCommand(layoutCmd)
}

// bindLayoutFlags binds the spacing flags to their settings
func bindLayoutFlags(cmd *cobra.Command, args []string) {
	bindFoldFlags(cmd, args)
	viper.BindPFlag("layout.primary-space", cmd.Flags().Lookup("primary-space"))
	viper.BindPFlag("layout.pair-space", cmd.Flags().Lookup("pair-space"))
}
