package rna

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Transform is applied to every pairing probability before it's aggregated
type Transform int

const (
	// Identity leaves probabilities unchanged
	Identity Transform = iota

	// Square squares each probability
	Square

	// LeaveAlone passes probabilities through untouched. It's the transform
	// used for constrained accuracy scoring
	LeaveAlone
)

// transforms is indexed by Transform
var transforms = [...]struct {
	name string
	fn   func(float64) float64
}{
	Identity:   {"identity", func(p float64) float64 { return p }},
	Square:     {"square", func(p float64) float64 { return p * p }},
	LeaveAlone: {"leave-alone", func(p float64) float64 { return p }},
}

// ParseTransform returns the Transform with the given name
func ParseTransform(name string) (Transform, error) {
	for t, tr := range transforms {
		if strings.EqualFold(tr.name, name) {
			return Transform(t), nil
		}
	}
	return Identity, fmt.Errorf("unknown transform %q: %w", name, ErrMalformed)
}

// Valid returns whether t is one of the known transforms
func (t Transform) Valid() bool {
	return t >= 0 && int(t) < len(transforms)
}

// Apply runs the transform on a single probability
func (t Transform) Apply(p float64) float64 {
	return transforms[t].fn(p)
}

func (t Transform) String() string {
	if !t.Valid() {
		return "Transform(" + strconv.Itoa(int(t)) + ")"
	}
	return transforms[t].name
}

// ProbabilityMatrix is a flattened list of [i, j, p] triples with 1-indexed
// positions, as produced by a folding engine's dot plot
type ProbabilityMatrix []float64

// Triple is a single 0-indexed entry of a ProbabilityMatrix
type Triple struct {
	I, J int
	P    float64
}

// Validate checks that the matrix is a list of triples over positions [1, n]
// with probabilities in [0, 1]
func (m ProbabilityMatrix) Validate(n int) error {
	if len(m)%3 != 0 {
		return fmt.Errorf("%d values is not a list of triples: %w", len(m), ErrMalformed)
	}
	for k := 0; k < len(m); k += 3 {
		i, j, p := m[k], m[k+1], m[k+2]
		if i < 1 || i > float64(n) || j < 1 || j > float64(n) {
			return fmt.Errorf("triple %d (%v, %v) outside of [1, %d]: %w", k/3, i, j, n, ErrIndexRange)
		}
		if i != math.Trunc(i) || j != math.Trunc(j) {
			return fmt.Errorf("triple %d has non-integer positions (%v, %v): %w", k/3, i, j, ErrMalformed)
		}
		if i == j {
			return fmt.Errorf("triple %d pairs %v with itself: %w", k/3, i, ErrMalformed)
		}
		if p < 0 || p > 1 || math.IsNaN(p) {
			return fmt.Errorf("triple %d has probability %v: %w", k/3, p, ErrMalformed)
		}
	}
	return nil
}

// Triples returns the entries of the matrix with 0-indexed positions
func (m ProbabilityMatrix) Triples() []Triple {
	triples := make([]Triple, 0, len(m)/3)
	for k := 0; k+2 < len(m); k += 3 {
		triples = append(triples, Triple{
			I: int(m[k]) - 1,
			J: int(m[k+1]) - 1,
			P: m[k+2],
		})
	}
	return triples
}

// Dense accumulates the transformed probabilities into a symmetric n x n matrix.
// Repeated entries for the same pair are summed. The matrix must be valid for n
// and n must be positive.
func (m ProbabilityMatrix) Dense(n int, t Transform) *mat.SymDense {
	dense := mat.NewSymDense(n, nil)
	for _, tr := range m.Triples() {
		dense.SetSym(tr.I, tr.J, dense.At(tr.I, tr.J)+t.Apply(tr.P))
	}
	return dense
}

// FromPairs builds the matrix that confidently predicts pairs: every pair
// with probability 1
func FromPairs(pairs PairList) ProbabilityMatrix {
	var m ProbabilityMatrix
	for _, p := range pairs.Pairs() {
		m = append(m, float64(p.I+1), float64(p.J+1), 1)
	}
	return m
}

// ReadDotPlot parses a dot plot with one "i j p" triple per line.
// Blank lines and lines starting with '#' are skipped.
func ReadDotPlot(r io.Reader) (ProbabilityMatrix, error) {
	var m ProbabilityMatrix
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected \"i j p\", got %q: %w", line, text, ErrMalformed)
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: failed to parse %q: %w", line, f, ErrMalformed)
			}
			m = append(m, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dot plot: %v", err)
	}
	return m, nil
}

// WriteDotPlot writes the matrix as "i j p" lines, the inverse of ReadDotPlot
func WriteDotPlot(w io.Writer, m ProbabilityMatrix) error {
	for _, t := range m.Triples() {
		if _, err := fmt.Fprintf(w, "%d %d %g\n", t.I+1, t.J+1, t.P); err != nil {
			return err
		}
	}
	return nil
}
