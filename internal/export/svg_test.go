package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/gravdeck/internal/spacetime"
	"github.com/san-kum/gravdeck/internal/viz"
)

func TestGridToSVG(t *testing.T) {
	g := spacetime.NewGrid(90, spacetime.DefaultParams())
	g.Track(45, 100)
	out := GridToSVG(g, viz.ThemeNebula)

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>") {
		t.Error("not a complete svg document")
	}
	if n := strings.Count(out, `r="1"`); n != len(g.Points()) {
		t.Errorf("expected %d grid dots, got %d", len(g.Points()), n)
	}
	if !strings.Contains(out, `class="mass" cx="45.0" cy="100.0"`) {
		t.Error("mass not drawn at the pointer")
	}
	if !strings.Contains(out, string(viz.ThemeNebula.Accent)) {
		t.Error("mass should use the accent color")
	}
}

func TestGridToSVGNil(t *testing.T) {
	if GridToSVG(nil, viz.ThemeNebula) != "" {
		t.Error("expected empty output for nil grid")
	}
}

func TestWriteGridSVG(t *testing.T) {
	var buf bytes.Buffer
	g := spacetime.NewGrid(60, spacetime.DefaultParams())
	if err := WriteGridSVG(&buf, g, viz.ThemeMinimal); err != nil {
		t.Fatal(err)
	}
	if buf.String() != GridToSVG(g, viz.ThemeMinimal) {
		t.Error("writer output differs from GridToSVG")
	}
}

func TestSaveGridSVG(t *testing.T) {
	g := spacetime.NewGrid(90, spacetime.DefaultParams())
	path := filepath.Join(t.TempDir(), "grid.svg")
	if err := SaveGridSVG(path, g, viz.ThemeNebula); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != GridToSVG(g, viz.ThemeNebula) {
		t.Error("saved file differs from rendered svg")
	}
}

func TestSaveGridSVGBadPath(t *testing.T) {
	g := spacetime.NewGrid(90, spacetime.DefaultParams())
	if err := SaveGridSVG(t.TempDir(), g, viz.ThemeNebula); err == nil {
		t.Error("expected error writing to a directory")
	}
}
