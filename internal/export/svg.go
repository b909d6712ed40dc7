package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/gravdeck/internal/spacetime"
	"github.com/san-kum/gravdeck/internal/viz"
)

// GridToSVG draws the deformed grid in world units: one small dot per point
// and a blurred disc for the mass.
func GridToSVG(g *spacetime.Grid, t viz.Theme) string {
	if g == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<defs><filter id="glow"><feGaussianBlur stdDeviation="5"/></filter></defs>
<rect width="100%%" height="100%%" fill="#0f172a"/>
<g class="mesh" fill="%s" opacity="0.4">
`, g.Width(), g.Height(), g.Width(), g.Height(), t.Primary))

	for _, p := range g.Points() {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1"/>
`, p.X, p.Y))
	}

	a := g.Attractor()
	sb.WriteString(fmt.Sprintf(`</g>
<circle class="mass" cx="%.1f" cy="%.1f" r="%.0f" fill="%s" filter="url(#glow)"/>
</svg>`, a.X, a.Y, viz.MassRadius, t.Accent))
	return sb.String()
}

// SaveGridSVG writes the grid to path. Close errors are returned.
func SaveGridSVG(path string, g *spacetime.Grid, t viz.Theme) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteGridSVG(f, g, t)
}

// WriteGridSVG writes GridToSVG output to w.
func WriteGridSVG(w io.Writer, g *spacetime.Grid, t viz.Theme) error {
	_, err := io.WriteString(w, GridToSVG(g, t))
	return err
}
