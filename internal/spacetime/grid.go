// Package spacetime deforms a regular lattice toward a pointer-driven mass.
//
// Every point's displaced position is recomputed from its origin on each
// update, so the lattice relaxes fully when the mass moves away.
package spacetime

import "math"

const (
	DefaultSpacing   = 30.0
	DefaultHeight    = 400.0
	DefaultMass      = 5000.0
	DefaultSoftening = 1000.0
)

type Params struct {
	Spacing   float64 `yaml:"spacing"`
	Height    float64 `yaml:"height"`
	Mass      float64 `yaml:"mass"`
	Softening float64 `yaml:"softening"`
}

func DefaultParams() Params {
	return Params{
		Spacing:   DefaultSpacing,
		Height:    DefaultHeight,
		Mass:      DefaultMass,
		Softening: DefaultSoftening,
	}
}

type Point struct {
	OriginX, OriginY float64
	X, Y             float64
}

type Attractor struct {
	X, Y float64
	Mass float64
}

type Mode int

const (
	Idle Mode = iota
	Tracking
)

func (m Mode) String() string {
	if m == Tracking {
		return "tracking"
	}
	return "idle"
}

// Force is the pull strength at squared distance distSq.
func Force(distSq, mass, softening float64) float64 {
	return mass / (distSq + softening)
}

// Displace returns where a point with origin (ox, oy) is drawn when the
// mass sits at (mx, my).
func Displace(ox, oy, mx, my, mass, softening float64) (x, y float64) {
	dx := ox - mx
	dy := oy - my
	f := Force(dx*dx+dy*dy, mass, softening)
	return ox - dx*f, oy - dy*f
}

// Grid is the lattice for one visualization mount.
type Grid struct {
	params    Params
	width     float64
	rows      int
	points    []Point
	attractor Attractor
	mode      Mode
}

// NewGrid lays out points at every multiple of the spacing inside
// [0, width] x [0, params.Height] and parks the mass at the center.
func NewGrid(width float64, p Params) *Grid {
	if p.Spacing <= 0 {
		p.Spacing = DefaultSpacing
	}
	if p.Height <= 0 {
		p.Height = DefaultHeight
	}
	if width < 0 {
		width = 0
	}
	cols := int(math.Floor(width/p.Spacing)) + 1
	rows := int(math.Floor(p.Height/p.Spacing)) + 1
	g := &Grid{
		params: p,
		width:  width,
		rows:   rows,
		points: make([]Point, 0, cols*rows),
		attractor: Attractor{
			X:    width / 2,
			Y:    p.Height / 2,
			Mass: p.Mass,
		},
	}
	for i := 0; i < cols; i++ {
		x := float64(i) * p.Spacing
		for j := 0; j < rows; j++ {
			y := float64(j) * p.Spacing
			g.points = append(g.points, Point{OriginX: x, OriginY: y, X: x, Y: y})
		}
	}
	g.recompute()
	return g
}

// Track moves the mass to the pointer and recomputes every point.
func (g *Grid) Track(mx, my float64) {
	g.mode = Tracking
	g.attractor.X, g.attractor.Y = mx, my
	g.recompute()
}

func (g *Grid) recompute() {
	a := g.attractor
	for i := range g.points {
		p := &g.points[i]
		p.X, p.Y = Displace(p.OriginX, p.OriginY, a.X, a.Y, a.Mass, g.params.Softening)
	}
}

func (g *Grid) Points() []Point      { return g.points }
func (g *Grid) Attractor() Attractor { return g.attractor }
func (g *Grid) Mode() Mode           { return g.mode }

// Rows is the number of points per lattice column. Points are stored
// column by column.
func (g *Grid) Rows() int { return g.rows }

func (g *Grid) Width() float64  { return g.width }
func (g *Grid) Height() float64 { return g.params.Height }
func (g *Grid) Params() Params  { return g.params }

// Falloff samples the displacement magnitude at n evenly spaced distances
// in [0, maxDist].
func Falloff(p Params, maxDist float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	out := make([]float64, n)
	for i := range out {
		d := maxDist * float64(i) / float64(n-1)
		out[i] = d * Force(d*d, p.Mass, p.Softening)
	}
	return out
}
