package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravdeck/internal/spacetime"
)

// MassRadius is the drawn radius of the mass in world units.
const MassRadius = 20.0

// Surface maps world coordinates of a grid onto a braille canvas of
// Cols x Rows cells. The scale is fixed by the grid height.
type Surface struct {
	Cols, Rows int
	Height     float64
}

func NewSurface(cols, rows int, height float64) Surface {
	return Surface{Cols: cols, Rows: rows, Height: height}
}

// Scale is sub-pixels per world unit.
func (s Surface) Scale() float64 {
	if s.Height <= 0 {
		return 1
	}
	return float64(s.Rows*4) / s.Height
}

// WorldWidth is the world-space width covered by the canvas.
func (s Surface) WorldWidth() float64 {
	return float64(s.Cols*2) / s.Scale()
}

func (s Surface) toSub(x, y float64) (int, int) {
	k := s.Scale()
	return int(math.Round(x * k)), int(math.Round(y * k))
}

// CellToWorld returns the world coordinate of the center of a cell.
func (s Surface) CellToWorld(col, row int) (float64, float64) {
	k := s.Scale()
	return (float64(col*2) + 1) / k, (float64(row*4) + 2) / k
}

func (s Surface) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < s.Cols && row < s.Rows
}

// RenderGrid draws one dot per grid point and a disc for the mass. When mesh
// is set, neighbouring points are joined by lines.
func RenderGrid(g *spacetime.Grid, s Surface, st Styles, mesh bool) string {
	field := NewCanvas(s.Cols, s.Rows)
	points := g.Points()
	for _, p := range points {
		x, y := s.toSub(p.X, p.Y)
		field.Set(x, y)
	}
	if mesh {
		drawMesh(field, g, s)
	}

	mass := NewCanvas(s.Cols, s.Rows)
	a := g.Attractor()
	ax, ay := s.toSub(a.X, a.Y)
	r := int(math.Round(MassRadius * s.Scale()))
	if r < 1 {
		r = 1
	}
	mass.FillCircle(ax, ay, r)

	var b strings.Builder
	for row := 0; row < s.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		writeRow(&b, field, mass, row, st)
	}
	return b.String()
}

// writeRow styles runs of mesh cells and mass cells separately.
func writeRow(b *strings.Builder, field, mass *Canvas, row int, st Styles) {
	var run []rune
	inMass := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		style := st.Mesh
		if inMass {
			style = st.Mass
		}
		b.WriteString(style.Render(string(run)))
		run = run[:0]
	}
	for col := 0; col < field.Width; col++ {
		isMass := !mass.Empty(col, row)
		if isMass != inMass {
			flush()
			inMass = isMass
		}
		cell := field.Grid[row][col]
		if isMass {
			cell |= mass.Grid[row][col]
		}
		run = append(run, cell)
	}
	flush()
}

func drawMesh(c *Canvas, g *spacetime.Grid, s Surface) {
	points := g.Points()
	rows := g.Rows()
	for i, p := range points {
		x0, y0 := s.toSub(p.X, p.Y)
		if (i+1)%rows != 0 && i+1 < len(points) {
			x1, y1 := s.toSub(points[i+1].X, points[i+1].Y)
			c.DrawLine(x0, y0, x1, y1)
		}
		if i+rows < len(points) {
			x1, y1 := s.toSub(points[i+rows].X, points[i+rows].Y)
			c.DrawLine(x0, y0, x1, y1)
		}
	}
}

// FalloffChart plots displacement against distance from the mass.
func FalloffChart(p spacetime.Params, width int, st Styles) string {
	if width < 10 {
		width = 10
	}
	samples := spacetime.Falloff(p, 6*math.Sqrt(p.Softening), width)
	chart := asciigraph.Plot(samples,
		asciigraph.Height(4),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption("displacement vs distance"),
	)
	return st.Chart.Render(chart)
}

// Legend is a one-line status for the grid.
func Legend(g *spacetime.Grid, st Styles) string {
	a := g.Attractor()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		st.Mass.Render("●"),
		st.Muted.Render(" mass "),
		st.Body.Render(formatCoord(a.X, a.Y)),
		st.Muted.Render("  "+g.Mode().String()),
	)
}

func formatCoord(x, y float64) string {
	return fmt.Sprintf("(%.0f, %.0f)", x, y)
}
