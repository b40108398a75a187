// Package score computes ensemble statistics of RNA secondary structures:
// branchiness, expected accuracy against a target and unpaired mass.
package score

import (
	"fmt"
	"math"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
	"gonum.org/v1/gonum/mat"
)

// Scorer scores structures and probability matrices for one sequence.
// It holds no other state, so a single Scorer is safe to share.
type Scorer struct {
	seq rna.Sequence
}

// Stats is every statistic for a design against its target structure
type Stats struct {
	// Branchiness of the target structure
	Branchiness float64 `json:"branchiness"`

	// EnsembleBranchiness of the probability matrix
	EnsembleBranchiness float64 `json:"ensembleBranchiness"`

	// SumProbUnpaired is the expected number of unpaired positions
	SumProbUnpaired float64 `json:"sumProbUnpaired"`

	// TargetExpectedAccuracy is how well the ensemble supports the target
	TargetExpectedAccuracy float64 `json:"targetExpectedAccuracy"`
}

// New returns a Scorer for the sequence
func New(seq rna.Sequence) *Scorer {
	return &Scorer{seq: seq}
}

// Len is the length of the scored sequence
func (s *Scorer) Len() int {
	return s.seq.Len()
}

// Branchiness is one minus the average pair span, normalized by the longest
// possible span (N-1). A structure without pairs has a branchiness of 0.
func (s *Scorer) Branchiness(pairs rna.PairList) (float64, error) {
	n := s.seq.Len()
	if err := pairs.Validate(n); err != nil {
		return 0, fmt.Errorf("branchiness: %w", err)
	}

	spans, count := 0.0, 0.0
	for _, p := range pairs.Pairs() {
		spans += float64(p.Span())
		count++
	}
	return normalizeSpan(spans, count, n), nil
}

// EnsembleBranchiness is Branchiness over a probability matrix: every entry
// adds t(p) * span to the total span and t(p) to the pair count.
func (s *Scorer) EnsembleBranchiness(bpp rna.ProbabilityMatrix, t rna.Transform) (float64, error) {
	n := s.seq.Len()
	if err := validate(bpp, t, n); err != nil {
		return 0, fmt.Errorf("ensemble branchiness: %w", err)
	}

	spans, count := 0.0, 0.0
	for _, tr := range bpp.Triples() {
		w := t.Apply(tr.P)
		spans += w * math.Abs(float64(tr.J-tr.I))
		count += w
	}
	return normalizeSpan(spans, count, n), nil
}

// SumProbUnpaired is the sum, over every position, of one minus the
// probability that it's paired. Each position's term is floored at 0.
func (s *Scorer) SumProbUnpaired(bpp rna.ProbabilityMatrix, t rna.Transform) (float64, error) {
	n := s.seq.Len()
	if err := validate(bpp, t, n); err != nil {
		return 0, fmt.Errorf("sum unpaired probability: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	paired := pairedProbs(bpp.Dense(n, t))
	total := 0.0
	for i := 0; i < n; i++ {
		total += math.Max(0, 1-paired.AtVec(i))
	}
	return total, nil
}

// TargetExpectedAccuracy is the expected fraction of positions whose
// pairing state in the ensemble matches the target structure. Positions
// the target pairs earn the probability of exactly that pair; positions
// it leaves unpaired earn their probability of being unpaired.
func (s *Scorer) TargetExpectedAccuracy(target rna.PairList, bpp rna.ProbabilityMatrix, t rna.Transform) (float64, error) {
	n := s.seq.Len()
	if err := target.Validate(n); err != nil {
		return 0, fmt.Errorf("target expected accuracy: %w", err)
	}
	if err := validate(bpp, t, n); err != nil {
		return 0, fmt.Errorf("target expected accuracy: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	dense := bpp.Dense(n, t)
	paired := pairedProbs(dense)

	reward := 0.0
	for i, j := range target {
		if j >= 0 {
			reward += math.Min(1, dense.At(i, j))
		} else {
			reward += math.Max(0, 1-paired.AtVec(i))
		}
	}
	return reward / float64(n), nil
}

// Stats computes every statistic at once
func (s *Scorer) Stats(target rna.PairList, bpp rna.ProbabilityMatrix, t rna.Transform) (Stats, error) {
	var stats Stats
	var err error

	if stats.Branchiness, err = s.Branchiness(target); err != nil {
		return Stats{}, err
	}
	if stats.EnsembleBranchiness, err = s.EnsembleBranchiness(bpp, t); err != nil {
		return Stats{}, err
	}
	if stats.SumProbUnpaired, err = s.SumProbUnpaired(bpp, t); err != nil {
		return Stats{}, err
	}
	if stats.TargetExpectedAccuracy, err = s.TargetExpectedAccuracy(target, bpp, t); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// normalizeSpan turns a (weighted) total span and pair count into
// a branchiness. Degenerate inputs score 0.
func normalizeSpan(spans, count float64, n int) float64 {
	if count == 0 || n < 2 {
		return 0
	}
	return 1 - (spans/count)/float64(n-1)
}

// pairedProbs sums each row of the dense matrix: the probability that
// each position is paired with anything
func pairedProbs(dense *mat.SymDense) *mat.VecDense {
	n, _ := dense.Dims()
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}

	var paired mat.VecDense
	paired.MulVec(dense, mat.NewVecDense(n, ones))
	return &paired
}

func validate(bpp rna.ProbabilityMatrix, t rna.Transform, n int) error {
	if !t.Valid() {
		return fmt.Errorf("unknown transform %v: %w", t, rna.ErrMalformed)
	}
	return bpp.Validate(n)
}
