package rnacore

import (
	"context"
	"fmt"
	"time"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/score"
	"github.com/spf13/cobra"
)

// Metric is a statistic the score command can compute
type Metric string

const (
	// Branchiness of the structure
	Branchiness Metric = "branchiness"

	// Ensemble is the branchiness of the dot plot
	Ensemble Metric = "ensemble"

	// Unpaired is the expected number of unpaired positions
	Unpaired Metric = "unpaired"

	// Accuracy is the target expected accuracy
	Accuracy Metric = "accuracy"

	// BasicCounts are pair type counts
	BasicCounts Metric = "basics"

	// All of the above
	All Metric = "all"
)

// needsStructure is whether the metric is computed from a structure
func (m Metric) needsStructure() bool {
	return m == Branchiness || m == Accuracy || m == BasicCounts || m == All
}

// needsDotPlot is whether the metric is computed from a dot plot
func (m Metric) needsDotPlot() bool {
	return m == Ensemble || m == Unpaired || m == Accuracy || m == All
}

// ScoreCmd returns the handler of a score subcommand computing the metric
func ScoreCmd(m Metric) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		start := time.Now()

		flags, conf, err := parseCmdFlags(cmd, args, false)
		if err != nil {
			stderr.Fatalln(err)
		}

		s, err := newSession(flags, conf)
		if err != nil {
			stderr.Fatalln(err)
		}

		results, err := s.scoreDesigns(cmd.Context(), flags.designs, m)
		if err != nil {
			stderr.Fatalln(err)
		}

		if err := write(flags, newOutput(start, results), writeScoreTable); err != nil {
			stderr.Fatalln(err)
		}
	}
}

// scoreDesigns scores every design, stopping at the first that fails
func (s *session) scoreDesigns(ctx context.Context, designs []Design, m Metric) ([]Result, error) {
	results := make([]Result, 0, len(designs))
	for _, d := range designs {
		r, err := s.scoreDesign(ctx, d, m)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// scoreDesign computes the metric for a single design
func (s *session) scoreDesign(ctx context.Context, d Design, m Metric) (Result, error) {
	r := Result{Name: d.Name, Seq: d.Seq.String()}
	scorer := score.New(d.sequence())

	var pairs rna.PairList
	if m.needsStructure() {
		var err error
		if pairs, err = s.structure(ctx, d); err != nil {
			return Result{}, err
		}
		r.Structure = pairs.DotBracket()
	}

	var bpp rna.ProbabilityMatrix
	if m.needsDotPlot() {
		var err error
		if bpp, err = s.dotPlot(ctx, d); err != nil {
			return Result{}, err
		}
	}

	// constrained dot plots are scored on raw probabilities
	accuracy := s.transform
	if s.constrain {
		accuracy = rna.LeaveAlone
	}

	var err error
	switch m {
	case All:
		err = s.scoreAll(scorer, pairs, bpp, accuracy, &r)
	case Branchiness:
		var v float64
		v, err = scorer.Branchiness(pairs)
		r.Branchiness = &v
	case Ensemble:
		var v float64
		v, err = scorer.EnsembleBranchiness(bpp, s.transform)
		r.EnsembleBranchiness = &v
	case Unpaired:
		var v float64
		v, err = scorer.SumProbUnpaired(bpp, s.transform)
		r.SumProbUnpaired = &v
	case Accuracy:
		var v float64
		v, err = scorer.TargetExpectedAccuracy(pairs, bpp, accuracy)
		r.TargetExpectedAccuracy = &v
	case BasicCounts:
		var b score.Basics
		b, err = scorer.Basics(pairs)
		r.Basics = &b
	default:
		err = fmt.Errorf("unknown metric %q", m)
	}
	if err != nil {
		return Result{}, fmt.Errorf("design %s: %w", d.Name, err)
	}

	if s.conf.Verbose {
		stderr.Printf("scored %s (%d bases)", d.Name, scorer.Len())
	}
	return r, nil
}

// scoreAll fills in every statistic of r from a single Stats bundle
func (s *session) scoreAll(scorer *score.Scorer, pairs rna.PairList, bpp rna.ProbabilityMatrix, accuracy rna.Transform, r *Result) error {
	stats, err := scorer.Stats(pairs, bpp, s.transform)
	if err != nil {
		return err
	}
	if accuracy != s.transform {
		if stats.TargetExpectedAccuracy, err = scorer.TargetExpectedAccuracy(pairs, bpp, accuracy); err != nil {
			return err
		}
	}

	b, err := scorer.Basics(pairs)
	if err != nil {
		return err
	}

	r.Branchiness = &stats.Branchiness
	r.EnsembleBranchiness = &stats.EnsembleBranchiness
	r.SumProbUnpaired = &stats.SumProbUnpaired
	r.TargetExpectedAccuracy = &stats.TargetExpectedAccuracy
	r.Basics = &b
	return nil
}
