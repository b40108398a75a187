// Package rna holds the shared RNA data model: sequences, pair lists,
// dot-bracket structures and base-pair probability matrices.
package rna

import (
	"errors"
	"strings"
)

var (
	// ErrLengthMismatch is for a pair list or sequence of the wrong length
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrIndexRange is for a position outside of the sequence
	ErrIndexRange = errors.New("index out of range")

	// ErrMalformed is for structurally invalid input (asymmetric pairs, bad brackets, etc)
	ErrMalformed = errors.New("malformed input")
)

// Base is a single nucleotide symbol
type Base int

// nucleotide symbols, numbered the way the game's folding engines expect
const (
	Undefined Base = 0
	Adenine   Base = 1
	Cytosine  Base = 2
	Guanine   Base = 3
	Uracil    Base = 4
	Cut       Base = 19
)

// String returns the single letter code of a base
func (b Base) String() string {
	switch b {
	case Adenine:
		return "A"
	case Cytosine:
		return "C"
	case Guanine:
		return "G"
	case Uracil:
		return "U"
	case Cut:
		return "&"
	}
	return "N"
}

// Sequence is an immutable, ordered list of bases
type Sequence struct {
	bases []Base
}

// ParseSequence converts a nucleotide string to a Sequence. It's case insensitive,
// '&' and '+' mark strand cuts, and any other character is Undefined.
func ParseSequence(s string) Sequence {
	bases := make([]Base, 0, len(s))
	for _, c := range strings.ToUpper(s) {
		switch c {
		case 'A':
			bases = append(bases, Adenine)
		case 'C':
			bases = append(bases, Cytosine)
		case 'G':
			bases = append(bases, Guanine)
		case 'U':
			bases = append(bases, Uracil)
		case '&', '+':
			bases = append(bases, Cut)
		default:
			bases = append(bases, Undefined)
		}
	}
	return Sequence{bases: bases}
}

// NewSequence makes a Sequence from a copy of bases
func NewSequence(bases []Base) Sequence {
	return Sequence{bases: append([]Base(nil), bases...)}
}

// Len is the number of positions in the sequence
func (s Sequence) Len() int {
	return len(s.bases)
}

// At returns the base at 0-indexed position i
func (s Sequence) At(i int) Base {
	return s.bases[i]
}

// Bases returns a copy of the sequence's bases
func (s Sequence) Bases() []Base {
	return append([]Base(nil), s.bases...)
}

// String renders the sequence back to letters
func (s Sequence) String() string {
	var b strings.Builder
	b.Grow(len(s.bases))
	for _, base := range s.bases {
		b.WriteString(base.String())
	}
	return b.String()
}

// PairType is the kind of a Watson-Crick or wobble pair
type PairType int

const (
	// NoPair is for two bases that can't pair
	NoPair PairType = iota
	// GCPair is a G-C pair
	GCPair
	// AUPair is an A-U pair
	AUPair
	// GUPair is a G-U wobble pair
	GUPair
)

// PairTypeOf classifies the pair formed by two bases
func PairTypeOf(a, b Base) PairType {
	if a > b {
		a, b = b, a
	}
	switch {
	case a == Cytosine && b == Guanine:
		return GCPair
	case a == Adenine && b == Uracil:
		return AUPair
	case a == Guanine && b == Uracil:
		return GUPair
	}
	return NoPair
}

// CanPair returns whether the two bases form a canonical or wobble pair
func CanPair(a, b Base) bool {
	return PairTypeOf(a, b) != NoPair
}
