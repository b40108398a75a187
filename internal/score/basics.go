package score

import (
	"fmt"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
)

// Basics are the pair composition counts shown alongside a design
type Basics struct {
	GC       int `json:"gc"`
	AU       int `json:"au"`
	GU       int `json:"gu"`
	Pairs    int `json:"pairs"`
	Unpaired int `json:"unpaired"`
}

// Basics counts the pairs of each type in a structure, along with
// the unpaired positions. Pairs between bases that can't pair count
// only toward the total.
func (s *Scorer) Basics(pairs rna.PairList) (Basics, error) {
	if err := pairs.Validate(s.seq.Len()); err != nil {
		return Basics{}, fmt.Errorf("basics: %w", err)
	}

	var b Basics
	for i, j := range pairs {
		if j < 0 {
			b.Unpaired++
			continue
		}
		if j < i {
			continue
		}

		b.Pairs++
		switch rna.PairTypeOf(s.seq.At(i), s.seq.At(j)) {
		case rna.GCPair:
			b.GC++
		case rna.AUPair:
			b.AU++
		case rna.GUPair:
			b.GU++
		}
	}
	return b, nil
}
