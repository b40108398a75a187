package rna

import (
	"fmt"
)

// PairList maps each position to its partner, or -1 if it's unpaired
type PairList []int

// Pair is a single base pair with I < J
type Pair struct {
	I, J int
}

// Span is the distance between the two paired positions
func (p Pair) Span() int {
	return p.J - p.I
}

// brackets are the open/close characters used for each pseudoknot level
var brackets = [][2]rune{{'(', ')'}, {'[', ']'}, {'{', '}'}, {'<', '>'}}

// Unpaired returns a pair list of length n with no pairs
func Unpaired(n int) PairList {
	pairs := make(PairList, n)
	for i := range pairs {
		pairs[i] = -1
	}
	return pairs
}

// Validate checks that the pair list covers n positions, that every partner
// is in range and not itself, and that pairing is symmetric.
// Crossing pairs are allowed.
func (p PairList) Validate(n int) error {
	if len(p) != n {
		return fmt.Errorf("%d pairs for %d positions: %w", len(p), n, ErrLengthMismatch)
	}
	for i, j := range p {
		if j == -1 {
			continue
		}
		if j < -1 || j >= n {
			return fmt.Errorf("position %d paired with %d: %w", i, j, ErrIndexRange)
		}
		if j == i {
			return fmt.Errorf("position %d paired with itself: %w", i, ErrMalformed)
		}
		if p[j] != i {
			return fmt.Errorf("position %d pairs with %d but %d pairs with %d: %w", i, j, j, p[j], ErrMalformed)
		}
	}
	return nil
}

// Pairs returns every pair once, ordered by its 5' position
func (p PairList) Pairs() []Pair {
	var pairs []Pair
	for i, j := range p {
		if j > i {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}

// NumPairs is the number of pairs (not paired positions)
func (p PairList) NumPairs() int {
	count := 0
	for i, j := range p {
		if j > i {
			count++
		}
	}
	return count
}

// ParseDotBracket converts dot-bracket notation to a pair list.
// '.' is unpaired, "()" are nested pairs, and "[]", "{}" and "<>"
// are extra pseudoknot levels.
func ParseDotBracket(s string) (PairList, error) {
	runes := []rune(s)
	pairs := Unpaired(len(runes))
	stacks := make([][]int, len(brackets))

	for i, c := range runes {
		if c == '.' {
			continue
		}

		matched := false
		for level, br := range brackets {
			switch c {
			case br[0]:
				stacks[level] = append(stacks[level], i)
				matched = true
			case br[1]:
				if len(stacks[level]) == 0 {
					return nil, fmt.Errorf("unbalanced %q at %d in %q: %w", c, i, s, ErrMalformed)
				}
				open := stacks[level][len(stacks[level])-1]
				stacks[level] = stacks[level][:len(stacks[level])-1]
				pairs[open] = i
				pairs[i] = open
				matched = true
			}
		}
		if !matched {
			return nil, fmt.Errorf("unknown character %q at %d in %q: %w", c, i, s, ErrMalformed)
		}
	}

	for level, stack := range stacks {
		if len(stack) > 0 {
			return nil, fmt.Errorf("unclosed %q at %d in %q: %w", brackets[level][0], stack[0], s, ErrMalformed)
		}
	}
	return pairs, nil
}

// DotBracket renders the pair list in dot-bracket notation. Nested pairs use
// "()"; a pair that crosses a pair already on a level moves to the next free
// bracket level.
func (p PairList) DotBracket() string {
	out := make([]rune, len(p))
	for i := range out {
		out[i] = '.'
	}

	// the pairs already placed on each level
	levels := make([][]Pair, len(brackets))
	for _, pair := range p.Pairs() {
		if pair.J >= len(p) {
			continue
		}
		for level := range brackets {
			if crossesAny(pair, levels[level]) {
				continue
			}
			levels[level] = append(levels[level], pair)
			out[pair.I] = brackets[level][0]
			out[pair.J] = brackets[level][1]
			break
		}
	}
	return string(out)
}

// crossesAny returns whether the pair crosses any of the others
func crossesAny(pair Pair, others []Pair) bool {
	for _, o := range others {
		if (o.I < pair.I && pair.I < o.J && o.J < pair.J) || (pair.I < o.I && o.I < pair.J && pair.J < o.J) {
			return true
		}
	}
	return false
}

// String is the dot-bracket form of the pair list
func (p PairList) String() string {
	return p.DotBracket()
}
