// Package layout builds the stem/loop tree of a secondary structure and
// assigns 2D coordinates to every position for drawing it.
package layout

import (
	"errors"
	"fmt"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/config"
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
)

// layout weights for the aggregate tree score
const (
	// pairScore is a stem's weight per stacked pair
	pairScore = 2

	// unpairedScore is a loop's weight per unpaired base
	unpairedScore = 2

	// branchScore is a loop's weight per stem bounding it
	branchScore = 4
)

// ErrNotBuilt is returned when a layout is requested before SetupTree
var ErrNotBuilt = errors.New("layout tree has not been built")

// Kind is whether a node is a loop or a stem
type Kind int

const (
	// Loop is a run of unpaired bases bounded by stems (or the exterior loop)
	Loop Kind = iota
	// Stem is a maximal run of stacked pairs
	Stem
)

func (k Kind) String() string {
	if k == Stem {
		return "stem"
	}
	return "loop"
}

// Node is a stem or loop of the structure tree
type Node struct {
	// ID is the node's index in the tree, in creation (pre-)order
	ID int

	// Kind of the node
	Kind Kind

	// Start and End are the first and last positions of the node's span.
	// A loop without unpaired bases can have End < Start
	Start, End int

	// Pairs of a stem, outermost first
	Pairs []rna.Pair

	// Unpaired positions of a loop
	Unpaired []int

	// Children are a stem's enclosed loop or a loop's stems, 5' to 3'
	Children []*Node

	// Score is the aggregate layout weight of this node and its descendants
	Score int

	// X and Y are a loop's center or a stem's outer pair midpoint
	X, Y float64

	// Angle is a stem's direction of growth or the direction from
	// a loop's center to its closing pair
	Angle float64

	// Radius of a loop's circle (0 for stems)
	Radius float64

	// elements of a loop, in 5' to 3' order
	elements []element
}

// element is an unpaired base or a child stem in a loop
type element struct {
	pos  int
	stem *Node
}

// Tree is the stem/loop tree of one structure. It's not safe for
// concurrent use, but independent Trees can share a Cache.
type Tree struct {
	// distance between consecutive bases along the backbone
	primarySpace float64

	// distance between paired bases
	pairSpace float64

	// symmetric pairs covering every position in the tree
	pairs rna.PairList

	// root is the exterior loop
	root *Node

	// nodes indexed by ID
	nodes []*Node

	// parents maps a node ID to its parent's ID (-1 for the root)
	parents []int

	// key is this tree's entry in the cache
	key string

	// optional cache of computed layouts
	cache *Cache
}

// New returns an unbuilt Tree with spacing from the config
func New(conf *config.Config) *Tree {
	return NewWithSpacing(conf.Layout.PrimarySpace, conf.Layout.PairSpace)
}

// NewWithSpacing returns an unbuilt Tree with the given spacing
func NewWithSpacing(primarySpace, pairSpace float64) *Tree {
	return &Tree{
		primarySpace: primarySpace,
		pairSpace:    pairSpace,
	}
}

// WithCache sets a cache shared between trees and returns the tree
func (t *Tree) WithCache(c *Cache) *Tree {
	t.cache = c
	return t
}

// SetupTree builds the tree from a pair list, replacing any earlier tree.
//
// Every entry pairs[i] = j pairs i with j, so a list that only names one side
// of a pair is made symmetric. A partner past the end of the list extends the
// tree to cover it. Two different partners for one position are an error.
// Crossing pairs are laid out as unpaired bases in the loop that reaches them.
func (t *Tree) SetupTree(pairs rna.PairList) error {
	n := len(pairs)
	for i, j := range pairs {
		if j < -1 {
			return fmt.Errorf("position %d paired with %d: %w", i, j, rna.ErrIndexRange)
		}
		if j >= n {
			n = j + 1
		}
	}

	bi := rna.Unpaired(n)
	for i, j := range pairs {
		if j < 0 {
			continue
		}
		if j == i {
			return fmt.Errorf("position %d paired with itself: %w", i, rna.ErrMalformed)
		}
		if (bi[i] != -1 && bi[i] != j) || (bi[j] != -1 && bi[j] != i) {
			return fmt.Errorf("position %d pairs with %d, which conflicts with an earlier pair: %w", i, j, rna.ErrMalformed)
		}
		bi[i], bi[j] = j, i
	}

	t.pairs = bi
	t.nodes = nil
	t.parents = nil
	t.root = t.newNode(Loop, -1)
	t.root.Start, t.root.End = 0, n-1
	t.buildLoop(t.root)
	t.score(t.root)
	t.key = fmt.Sprintf("%s|%g|%g", bi.DotBracket(), t.primarySpace, t.pairSpace)
	return nil
}

// Built returns whether SetupTree has been called
func (t *Tree) Built() bool {
	return t.root != nil
}

// Root is the exterior loop, nil before SetupTree
func (t *Tree) Root() *Node {
	return t.root
}

// Score is the aggregate score of the whole tree
func (t *Tree) Score() int {
	if t.root == nil {
		return 0
	}
	return t.root.Score
}

// Len is the number of positions covered by the tree
func (t *Tree) Len() int {
	return len(t.pairs)
}

// Nodes returns every node, indexed by ID
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Parent returns the node's parent, nil for the root
func (t *Tree) Parent(n *Node) *Node {
	if n == nil || n.ID >= len(t.parents) || t.parents[n.ID] < 0 {
		return nil
	}
	return t.nodes[t.parents[n.ID]]
}

// newNode adds a node to the tree under the parent with the given ID
func (t *Tree) newNode(kind Kind, parent int) *Node {
	node := &Node{ID: len(t.nodes), Kind: kind}
	t.nodes = append(t.nodes, node)
	t.parents = append(t.parents, parent)
	return node
}

// buildLoop fills in a loop's unpaired bases and child stems over its span
func (t *Tree) buildLoop(loop *Node) {
	for k := loop.Start; k <= loop.End; k++ {
		partner := t.pairs[k]
		if partner > k && partner <= loop.End {
			stem := t.newNode(Stem, loop.ID)
			t.buildStem(stem, k, partner)
			loop.Children = append(loop.Children, stem)
			loop.elements = append(loop.elements, element{pos: k, stem: stem})
			k = partner
			continue
		}

		// unpaired, or a crossing pair
		loop.Unpaired = append(loop.Unpaired, k)
		loop.elements = append(loop.elements, element{pos: k})
	}
}

// buildStem collects the stacked pairs starting at (i, j) and
// builds the loop they close
func (t *Tree) buildStem(stem *Node, i, j int) {
	stem.Start, stem.End = i, j
	for {
		stem.Pairs = append(stem.Pairs, rna.Pair{I: i, J: j})
		if i+1 < j-1 && t.pairs[i+1] == j-1 {
			i, j = i+1, j-1
			continue
		}
		break
	}

	loop := t.newNode(Loop, stem.ID)
	loop.Start, loop.End = i+1, j-1
	t.buildLoop(loop)
	stem.Children = []*Node{loop}
}

// score sets the aggregate score of a node and its descendants
func (t *Tree) score(node *Node) int {
	switch node.Kind {
	case Stem:
		node.Score = pairScore * len(node.Pairs)
	case Loop:
		branches := len(node.Children)
		if node != t.root {
			branches++ // the closing stem
		}
		node.Score = unpairedScore*len(node.Unpaired) + branchScore*branches
	}

	for _, child := range node.Children {
		node.Score += t.score(child)
	}
	return node.Score
}
