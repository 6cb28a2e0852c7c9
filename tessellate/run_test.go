package tessellate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuyttenhove/cvoronoi/rescale"
)

func TestRun2D(t *testing.T) {
	box := rescale.Box2D{Anchor: [2]float64{0, 0}, Side: [2]float64{1, 1}}
	points := [][2]float64{{0.2, 0.2}, {0.8, 0.2}, {0.2, 0.8}, {0.8, 0.8}}

	var buf bytes.Buffer
	b, err := Run2D(&buf, box, points)
	if err != nil {
		t.Fatalf("Run2D: %v", err)
	}
	if b.NumVertices() != len(points) {
		t.Fatalf("NumVertices() = %d, want %d", b.NumVertices(), len(points))
	}
	if !strings.Contains(buf.String(), "T\t") {
		t.Fatalf("expected at least one T line in dump, got:\n%s", buf.String())
	}
}

func TestRun3D(t *testing.T) {
	box := rescale.Box3D{Anchor: [3]float64{-1, -1, -1}, Side: [3]float64{4, 4, 4}}
	real := [][3]float64{
		{0.1, 0.1, 0.1}, {0.9, 0.1, 0.1}, {0.1, 0.9, 0.1}, {0.1, 0.1, 0.9},
	}
	ghosts := [][3]float64{
		{-0.8, -0.8, -0.8}, {2, -0.8, -0.8}, {-0.8, 2, -0.8}, {-0.8, -0.8, 2},
		{2, 2, -0.8}, {2, -0.8, 2}, {-0.8, 2, 2}, {2, 2, 2},
	}

	var buf bytes.Buffer
	_, grid, err := Run3D(&buf, box, real, ghosts)
	if err != nil {
		t.Fatalf("Run3D: %v", err)
	}
	if len(grid.Cells) != len(real) {
		t.Fatalf("len(grid.Cells) = %d, want %d", len(grid.Cells), len(real))
	}
	if !strings.Contains(buf.String(), "C\t") {
		t.Fatalf("expected at least one C line in dump, got:\n%s", buf.String())
	}
}
