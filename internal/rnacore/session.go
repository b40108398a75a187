package rnacore

import (
	"context"
	"fmt"
	"os"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/config"
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/fold"
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
)

// session holds what's shared by every design of one command: the settings,
// the folding engine and a dot plot from --bpp.
type session struct {
	conf      *config.Config
	folder    fold.Folder
	bpp       rna.ProbabilityMatrix
	transform rna.Transform
	constrain bool
}

// newSession makes a session from parsed flags and settings
func newSession(flags *Flags, conf *config.Config) (*session, error) {
	t, err := conf.Transform()
	if err != nil {
		return nil, err
	}

	folder, err := fold.New(conf)
	if err != nil {
		return nil, err
	}

	s := &session{conf: conf, folder: folder, transform: t, constrain: flags.constrain}
	if flags.bpp != "" {
		if s.bpp, err = readDotPlot(flags.bpp); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// readDotPlot reads a dot plot of "i j p" lines from path
func readDotPlot(path string) (rna.ProbabilityMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dot plot %s: %v", path, err)
	}
	defer f.Close()

	bpp, err := rna.ReadDotPlot(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read dot plot %s: %w", path, err)
	}
	return bpp, nil
}

// sequence is the design's sequence. Designs given only as a structure
// get a sequence of undefined bases of the same length.
func (d Design) sequence() rna.Sequence {
	if d.Seq.Len() > 0 || d.Target == nil {
		return d.Seq
	}
	return rna.NewSequence(make([]rna.Base, len(d.Target)))
}

// structure is the design's target, or its folded structure if it has none
func (s *session) structure(ctx context.Context, d Design) (rna.PairList, error) {
	if d.Target != nil {
		return d.Target, nil
	}
	if d.Seq.Len() == 0 {
		return nil, fmt.Errorf("design %s has neither a structure nor a sequence to fold", d.Name)
	}

	pairs, err := s.folder.Fold(ctx, d.Seq)
	if err != nil {
		return nil, fmt.Errorf("failed to fold %s: %w", d.Name, err)
	}
	if s.conf.Verbose {
		stderr.Printf("folded %s: %s", d.Name, pairs.DotBracket())
	}
	return pairs, nil
}

// dotPlot is the dot plot from --bpp, or the folder's dot plot of the design
func (s *session) dotPlot(ctx context.Context, d Design) (rna.ProbabilityMatrix, error) {
	if s.bpp != nil {
		return s.bpp, nil
	}
	if d.Seq.Len() == 0 {
		return nil, fmt.Errorf("design %s has no sequence to fold, pass a dot plot with --bpp", d.Name)
	}

	var constraints rna.PairList
	if s.constrain {
		constraints = d.Target
	}
	bpp, err := s.folder.DotPlot(ctx, d.Seq, constraints, s.conf.Fold.Temperature, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fold %s: %w", d.Name, err)
	}
	return bpp, nil
}
