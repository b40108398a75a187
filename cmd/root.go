// Package cmd is for command line interactions with the rnacore application
package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "rnacore",
	Short: `Score and draw RNA secondary structures.
Specify designs by their sequence, dot-bracket structure, or a FASTA file of both`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

// set flags
func init() {
	RootCmd.PersistentFlags().StringP("settings", "s", "", "path to a settings file <YAML, JSON or TOML>")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")

	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}

// addInputFlags adds the flags for reading designs to cmd
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("in", "i", "", "input FASTA with designs, each a sequence and an optional structure")
	cmd.Flags().StringP("seq", "q", "", "sequence of a single design")
	cmd.Flags().StringP("structure", "p", "", "structure of a single design in dot-bracket notation")
	cmd.Flags().StringP("out", "o", "", "output file name <JSON>")
	cmd.Flags().Bool("json", false, "write JSON to stdout rather than a table")
}

// addFoldFlags adds the flags for folding designs to cmd
func addFoldFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("bpp", "b", "", "dot plot with \"i j p\" lines to use rather than folding")
	cmd.Flags().StringP("engine", "e", "vienna", "folding engine: vienna or file")
	cmd.Flags().Float64P("temperature", "t", 37, "folding temperature in Celsius")
	cmd.Flags().Bool("constrain", false, "fold with the target structure as a constraint")
}

// bindFoldFlags binds the folding flags of cmd to their settings. Bound in
// PreRun since the flags are shared by name across commands.
func bindFoldFlags(cmd *cobra.Command, _ []string) {
	viper.BindPFlag("fold.engine", cmd.Flags().Lookup("engine"))
	viper.BindPFlag("fold.temperature", cmd.Flags().Lookup("temperature"))
	if f := cmd.Flags().Lookup("transform"); f != nil {
		viper.BindPFlag("score.transform", f)
	}
}
