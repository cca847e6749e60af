package burst

import "math"

// Point is a position in scene coordinates.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Period returns the angle between neighbouring nodes, 0 for an empty chart.
func Period(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 2 * math.Pi / float64(n)
}

// Angle returns the angle of item i out of n.
func Angle(i, n int, phase float64) float64 {
	return float64(i)*Period(n) - phase
}

// Offset returns the position of item i out of n relative to the center.
func Offset(i, n int, radius, phase float64) Point {
	a := Angle(i, n, phase)
	return Point{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
}

// Radius returns the circle radius for a container, clamped to zero for
// containers smaller than twice the margin.
func Radius(width, height, margin float64) float64 {
	r := math.Min(width, height)/2 - margin
	if !(r > 0) {
		return 0
	}
	return r
}

// Center returns the center of a width × height frame.
func Center(width, height float64) Point {
	return Point{X: width / 2, Y: height / 2}
}

// Layout is the geometry of one render pass.
type Layout struct {
	Width  float64
	Height float64
	Count  int
	Center Point
	Radius float64
	Period float64

	phase float64
}

// NewLayout computes the layout of n items in a container of the given width.
func NewLayout(width float64, n int, g Geometry) Layout {
	return Layout{
		Width:  width,
		Height: g.Height,
		Count:  n,
		Center: Center(width, g.Height),
		Radius: Radius(width, g.Height, g.Margin),
		Period: Period(n),
		phase:  g.PhaseShift,
	}
}

// Offset returns item i's position relative to the center.
func (l Layout) Offset(i int) Point {
	return Offset(i, l.Count, l.Radius, l.phase)
}

// Position returns item i's absolute position. The item's connector runs from
// Center to this point.
func (l Layout) Position(i int) Point {
	return l.Center.Add(l.Offset(i))
}

// Anchor is an SVG text-anchor value.
type Anchor string

// Label anchors.
const (
	AnchorStart Anchor = "start"
	AnchorEnd   Anchor = "end"
)

// Placement positions a label relative to its node.
type Placement struct {
	Anchor Anchor
	DX     float64
}

// LabelPlacement keeps labels on the outside of the circle: nodes right of
// center anchor their label at its start and push it right, all others anchor
// at the end and push it left.
func LabelPlacement(offsetX, distance float64) Placement {
	if offsetX > 0 {
		return Placement{Anchor: AnchorStart, DX: distance}
	}
	return Placement{Anchor: AnchorEnd, DX: -distance}
}
