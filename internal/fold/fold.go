// Package fold is the boundary to external RNA folding engines. A Folder
// turns a sequence into its most likely structure or into a dot plot of
// pairing probabilities.
package fold

import (
	"context"
	"fmt"
	"os"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/config"
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
)

// Folder is an external folding engine. Implementations needn't be safe
// for concurrent use unless they say so.
type Folder interface {
	// Fold returns the most likely structure of seq
	Fold(ctx context.Context, seq rna.Sequence) (rna.PairList, error)

	// DotPlot returns the pairing probabilities of seq at temp degrees Celsius.
	// constraints, if not nil, are pairs the structure must keep
	DotPlot(ctx context.Context, seq rna.Sequence, constraints rna.PairList, temp float64, pseudoknots bool) (rna.ProbabilityMatrix, error)
}

// New returns the Folder configured by fold.engine
func New(conf *config.Config) (Folder, error) {
	switch conf.Fold.Engine {
	case "vienna", "":
		return NewVienna(conf.Fold.RNAfold, conf.Fold.Temperature), nil
	case "file":
		return OpenFile(conf.Fold.Structure, conf.Fold.DotPlot)
	}
	return nil, fmt.Errorf("unknown folding engine %q", conf.Fold.Engine)
}

// File is a Folder that serves a precomputed structure and dot plot,
// whatever the sequence. It's safe for concurrent use.
type File struct {
	pairs rna.PairList
	bpp   rna.ProbabilityMatrix
}

// NewFile returns a Folder serving the given structure and dot plot
func NewFile(pairs rna.PairList, bpp rna.ProbabilityMatrix) *File {
	return &File{pairs: pairs, bpp: bpp}
}

// OpenFile reads a File folder's dot plot from path. Either argument may
// be empty, in which case the corresponding call fails.
func OpenFile(structure, path string) (*File, error) {
	f := &File{}

	if structure != "" {
		pairs, err := rna.ParseDotBracket(structure)
		if err != nil {
			return nil, err
		}
		f.pairs = pairs
	}

	if path != "" {
		in, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open dot plot %s: %v", path, err)
		}
		defer in.Close()

		if f.bpp, err = rna.ReadDotPlot(in); err != nil {
			return nil, fmt.Errorf("failed to read dot plot %s: %w", path, err)
		}
	}
	return f, nil
}

// Fold returns the precomputed structure
func (f *File) Fold(_ context.Context, seq rna.Sequence) (rna.PairList, error) {
	if f.pairs == nil {
		return nil, fmt.Errorf("no structure set for the file folder")
	}
	if err := f.pairs.Validate(seq.Len()); err != nil {
		return nil, fmt.Errorf("precomputed structure doesn't fit %s: %w", seq, err)
	}
	return append(rna.PairList(nil), f.pairs...), nil
}

// DotPlot returns the precomputed dot plot. The temperature, constraints and
// pseudoknot flag are ignored.
func (f *File) DotPlot(_ context.Context, seq rna.Sequence, _ rna.PairList, _ float64, _ bool) (rna.ProbabilityMatrix, error) {
	if f.bpp == nil {
		return nil, fmt.Errorf("no dot plot set for the file folder")
	}
	if err := f.bpp.Validate(seq.Len()); err != nil {
		return nil, fmt.Errorf("precomputed dot plot doesn't fit %s: %w", seq, err)
	}
	return append(rna.ProbabilityMatrix(nil), f.bpp...), nil
}
