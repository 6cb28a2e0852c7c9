package tessellate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuyttenhove/cvoronoi/delaunay2d"
	"github.com/yuyttenhove/cvoronoi/delaunay3d"
	"github.com/yuyttenhove/cvoronoi/rescale"
	"github.com/yuyttenhove/cvoronoi/voronoi"
)

func TestDump2D(t *testing.T) {
	b := delaunay2d.NewBuilder(rescale.Box2D{Anchor: [2]float64{0, 0}, Side: [2]float64{1, 1}})
	if _, err := b.AddVertex([2]float64{0.5, 0.5}); err != nil {
		t.Fatalf("AddVertex: %v", err)
	}

	var buf bytes.Buffer
	if err := Dump2D(&buf, b); err != nil {
		t.Fatalf("Dump2D: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "V\t0\t") {
		t.Fatalf("expected a V line for vertex 0, got:\n%s", out)
	}
	if !strings.HasPrefix(out, "V\t") {
		t.Fatalf("expected dump to start with a V line, got:\n%s", out)
	}
}

func TestDump3D(t *testing.T) {
	b := delaunay3d.NewBuilder(rescale.Box3D{Anchor: [3]float64{-1, -1, -1}, Side: [3]float64{4, 4, 4}})
	pts := [][3]float64{
		{0.1, 0.1, 0.1}, {0.9, 0.1, 0.1}, {0.1, 0.9, 0.1}, {0.1, 0.1, 0.9},
	}
	for _, p := range pts {
		if _, err := b.AddVertex(p); err != nil {
			t.Fatalf("AddVertex(%v): %v", p, err)
		}
	}
	b.Consolidate()
	ghosts := [][3]float64{
		{-0.8, -0.8, -0.8}, {2, -0.8, -0.8}, {-0.8, 2, -0.8}, {-0.8, -0.8, 2},
		{2, 2, -0.8}, {2, -0.8, 2}, {-0.8, 2, 2}, {2, 2, 2},
	}
	for _, p := range ghosts {
		if _, err := b.AddVertex(p); err != nil && err != delaunay3d.ErrDuplicatePoint {
			t.Fatalf("AddVertex(ghost %v): %v", p, err)
		}
	}

	grid, err := voronoi.Extract(b)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	var buf bytes.Buffer
	if err := Dump3D(&buf, b, grid); err != nil {
		t.Fatalf("Dump3D: %v", err)
	}
	out := buf.String()
	for _, prefix := range []string{"V\t", "T\t", "C\t"} {
		if !strings.Contains(out, prefix) {
			t.Fatalf("expected a %q line in dump, got:\n%s", prefix, out)
		}
	}
}
