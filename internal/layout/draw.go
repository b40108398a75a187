package layout

import (
	"fmt"
	"math"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
)

// Point is a 2D coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry is the placement of one node of the tree
type Geometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
}

// Layout is a drawing of a structure: a point per position and the
// geometry of every tree node, indexed by node ID
type Layout struct {
	Points []Point    `json:"points"`
	Nodes  []Geometry `json:"nodes"`
}

// ComputeLayout places every stem and loop of the tree, and every position.
//
// Loops are circles. The arc not taken by a loop's closing pair is split
// between its unpaired bases and child stems in proportion to their scores,
// so heavier branches get more room. Stems grow straight out of their loop.
func (t *Tree) ComputeLayout() (Layout, error) {
	if !t.Built() {
		return Layout{}, ErrNotBuilt
	}

	if t.cache != nil {
		if cached, ok := t.cache.get(t.key); ok {
			t.apply(cached)
			return cached.copy(), nil
		}
	}

	points := make([]Point, len(t.pairs))
	t.placeRoot(points)

	l := Layout{Points: points, Nodes: make([]Geometry, len(t.nodes))}
	for i, node := range t.nodes {
		l.Nodes[i] = Geometry{X: node.X, Y: node.Y, Angle: node.Angle, Radius: node.Radius}
	}

	if t.cache != nil {
		t.cache.add(t.key, l.copy())
	}
	return l, nil
}

// Override replaces the layout's points with custom ones. A nil entry
// keeps the computed point.
func (l Layout) Override(custom []*Point) (Layout, error) {
	if len(custom) != len(l.Points) {
		return Layout{}, fmt.Errorf("%d custom points for %d positions: %w", len(custom), len(l.Points), rna.ErrLengthMismatch)
	}

	out := l.copy()
	for i, p := range custom {
		if p != nil {
			out.Points[i] = *p
		}
	}
	return out, nil
}

// copy returns a deep copy of the layout
func (l Layout) copy() Layout {
	return Layout{
		Points: append([]Point(nil), l.Points...),
		Nodes:  append([]Geometry(nil), l.Nodes...),
	}
}

// apply sets the nodes' geometry from a cached layout
func (t *Tree) apply(l Layout) {
	for i, g := range l.Nodes {
		if i < len(t.nodes) {
			t.nodes[i].X, t.nodes[i].Y = g.X, g.Y
			t.nodes[i].Angle, t.nodes[i].Radius = g.Angle, g.Radius
		}
	}
}

// placeRoot lays out the exterior loop around the origin. An exterior loop
// that's a single stem draws the stem straight up from the origin instead.
func (t *Tree) placeRoot(points []Point) {
	root := t.Root()
	if len(root.elements) == 1 && root.elements[0].stem != nil {
		root.X, root.Y, root.Angle, root.Radius = 0, 0, 0, 0
		t.placeStem(root.elements[0].stem, Point{}, -math.Pi/2, points)
		return
	}

	root.Radius = t.loopRadius(root, false)
	t.placeLoop(root, Point{}, -math.Pi/2, false, points)
}

// loopRadius sizes a loop's circle from the backbone and pair spacing
// of everything around it
func (t *Tree) loopRadius(loop *Node, closed bool) float64 {
	items := float64(len(loop.elements))
	stems := float64(len(loop.Children))

	circumference := items*t.primarySpace + stems*t.pairSpace
	if closed {
		circumference += t.primarySpace + t.pairSpace
	}

	radius := circumference / (2 * math.Pi)
	if (closed || stems > 0) && radius < t.pairSpace/2 {
		// pairs have to fit as chords
		radius = t.pairSpace / 2
	}
	return radius
}

// pairAngle is the angle subtended by a pair's chord on a circle
func (t *Tree) pairAngle(radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return 2 * math.Asin(math.Min(1, t.pairSpace/(2*radius)))
}

// placeLoop lays out a loop's circle around center. entry is the angle, from
// the center, of the loop's closing pair (or where the exterior loop starts).
func (t *Tree) placeLoop(loop *Node, center Point, entry float64, closed bool, points []Point) {
	loop.X, loop.Y, loop.Angle = center.X, center.Y, entry

	radius := loop.Radius
	alpha := t.pairAngle(radius)

	start, available := entry, 2*math.Pi
	if closed {
		// the closing pair's 5' base sits at entry + alpha/2 and its 3' base at
		// entry - alpha/2, so the loop's contents run counter-clockwise between them
		start, available = entry+alpha/2, 2*math.Pi-alpha
	}

	total := 0.0
	for _, e := range loop.elements {
		total += elementWeight(e)
	}
	if total == 0 {
		return
	}

	cursor := start
	for _, e := range loop.elements {
		sweep := available * elementWeight(e) / total
		mid := cursor + sweep/2
		cursor += sweep

		if e.stem == nil {
			points[e.pos] = polar(center, radius, mid)
			continue
		}

		// the stem's outer pair is a chord of the circle, centered on mid
		origin := polar(center, radius*math.Cos(alpha/2), mid)
		t.placeStem(e.stem, origin, mid, points)
	}
}

// placeStem lays out a stem's pairs as a ladder growing from origin
// in the direction angle, then the loop it closes
func (t *Tree) placeStem(stem *Node, origin Point, angle float64, points []Point) {
	stem.X, stem.Y, stem.Angle, stem.Radius = origin.X, origin.Y, angle, 0

	var mid Point
	for k, pair := range stem.Pairs {
		mid = polar(origin, float64(k)*t.primarySpace, angle)
		points[pair.I] = polar(mid, t.pairSpace/2, angle-math.Pi/2)
		points[pair.J] = polar(mid, t.pairSpace/2, angle+math.Pi/2)
	}

	loop := stem.Children[0]
	loop.Radius = t.loopRadius(loop, true)
	offset := loop.Radius * math.Cos(t.pairAngle(loop.Radius)/2)
	t.placeLoop(loop, polar(mid, offset, angle), angle+math.Pi, true, points)
}

// elementWeight is how much of a loop's arc an element gets
func elementWeight(e element) float64 {
	if e.stem == nil {
		return unpairedScore
	}
	return float64(e.stem.Score)
}

// polar returns the point at distance r from p in the direction angle
func polar(p Point, r, angle float64) Point {
	return Point{
		X: p.X + r*math.Cos(angle),
		Y: p.Y + r*math.Sin(angle),
	}
}
