package rnacore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// FoldCmd folds every design with the configured engine and prints its
// structure and dot plot
func FoldCmd(cmd *cobra.Command, args []string) {
	start := time.Now()

	flags, conf, err := parseCmdFlags(cmd, args, true)
	if err != nil {
		stderr.Fatalln(err)
	}

	s, err := newSession(flags, conf)
	if err != nil {
		stderr.Fatalln(err)
	}

	results, err := s.foldDesigns(cmd.Context(), flags.designs)
	if err != nil {
		stderr.Fatalln(err)
	}

	table := writeFoldText
	if flags.dense {
		table = func(w io.Writer, out Output) error {
			return writeDense(w, out, s)
		}
	}
	if err := write(flags, newOutput(start, results), table); err != nil {
		stderr.Fatalln(err)
	}
}

// foldDesigns folds each design into its structure and dot plot
func (s *session) foldDesigns(ctx context.Context, designs []Design) ([]Result, error) {
	results := make([]Result, 0, len(designs))
	for _, d := range designs {
		// fold for the structure even with a target, the point is to compare them
		pairs, err := s.structure(ctx, Design{Name: d.Name, Seq: d.Seq})
		if err != nil {
			return nil, err
		}
		bpp, err := s.dotPlot(ctx, d)
		if err != nil {
			return nil, err
		}
		if err := bpp.Validate(d.Seq.Len()); err != nil {
			return nil, fmt.Errorf("design %s: %w", d.Name, err)
		}

		results = append(results, Result{
			Name:      d.Name,
			Seq:       d.Seq.String(),
			Structure: pairs.DotBracket(),
			DotPlot:   bpp,
		})
	}
	return results, nil
}

// writeDense writes each design's structure followed by its transformed
// probability matrix
func writeDense(w io.Writer, out Output, s *session) error {
	for _, r := range out.Designs {
		n := len(r.Structure)
		dense := r.DotPlot.Dense(n, s.transform)
		if _, err := fmt.Fprintf(w, ">%s\n%s\n%s\n%.3v\n", r.Name, r.Seq, r.Structure, mat.Formatted(dense, mat.Squeeze())); err != nil {
			return err
		}
	}
	return nil
}
