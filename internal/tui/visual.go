package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gravdeck/internal/spacetime"
	"github.com/san-kum/gravdeck/internal/viz"
)

// visualView is one mount of the spacetime grid.
type visualView struct {
	slideID int
	params  spacetime.Params
	surface viz.Surface
	grid    *spacetime.Grid
	mesh    bool
	chart   bool

	// chartShown is false when the terminal is too short for the chart.
	chartShown bool
}

func newVisualView(slideID int, p spacetime.Params, cols, rows int) *visualView {
	v := &visualView{slideID: slideID, params: p}
	v.resize(cols, rows)
	return v
}

// resize rebuilds the lattice for the new drawing surface. A tracked mass
// keeps its world position.
func (v *visualView) resize(cols, rows int) {
	prev := v.grid
	v.surface = viz.NewSurface(cols, rows, v.params.Height)
	v.grid = spacetime.NewGrid(v.surface.WorldWidth(), v.params)
	if prev != nil && prev.Mode() == spacetime.Tracking {
		a := prev.Attractor()
		v.grid.Track(a.X, a.Y)
	}
}

// pointer handles a motion event at a canvas-relative cell. Events outside
// the canvas are ignored.
func (v *visualView) pointer(col, row int) bool {
	if !v.surface.Contains(col, row) {
		return false
	}
	v.grid.Track(v.surface.CellToWorld(col, row))
	return true
}

func (v *visualView) view(st viz.Styles) string {
	parts := []string{
		viz.RenderGrid(v.grid, v.surface, st, v.mesh),
		viz.Legend(v.grid, st) + "  " + st.Muted.Render("حرك الفأرة لمحاكاة تشوه الزمكان"),
	}
	if v.chartShown {
		parts = append(parts, "", viz.FalloffChart(v.grid.Params(), v.surface.Cols-chartInset, st))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
