package voronoi

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/yuyttenhove/cvoronoi/delaunay3d"
	"github.com/yuyttenhove/cvoronoi/rescale"
)

// TestExtractReportsIncompleteGhostLayer checks that a generator with no
// surrounding ghost points at all - every incident tetrahedron reaches a
// bootstrap dummy vertex - is reported via ErrIncompleteGhostLayer rather
// than silently producing a cell with missing faces.
func TestExtractReportsIncompleteGhostLayer(t *testing.T) {
	b := delaunay3d.NewBuilder(rescale.Box3D{Anchor: [3]float64{-2, -2, -2}, Side: [3]float64{4, 4, 4}})
	if _, err := b.AddVertex([3]float64{0, 0, 0}); err != nil {
		t.Fatalf("AddVertex: %v", err)
	}
	b.Consolidate()

	grid, err := Extract(b)
	if !errors.Is(err, ErrIncompleteGhostLayer) {
		t.Fatalf("Extract err = %v, want wrapping ErrIncompleteGhostLayer", err)
	}
	if len(grid.Cells) != 1 {
		t.Fatalf("expected 1 cell even with an incomplete layer, got %d", len(grid.Cells))
	}
	if grid.Cells[0].NumFaces != 0 {
		t.Fatalf("expected 0 resolvable faces with no ghost ring, got %d", grid.Cells[0].NumFaces)
	}
}

// TestSimpleCubicCellIsUnitCube checks the volume-sum property of spec §8
// against a known-closed-form answer: a single generator surrounded by its
// six axis neighbors on a unit simple-cubic lattice has a Voronoi cell
// that is exactly the unit cube centered on it, independent of how far
// away any other (diagonal) lattice points are.
func TestSimpleCubicCellIsUnitCube(t *testing.T) {
	b := delaunay3d.NewBuilder(rescale.Box3D{Anchor: [3]float64{-2, -2, -2}, Side: [3]float64{4, 4, 4}})
	if _, err := b.AddVertex([3]float64{0, 0, 0}); err != nil {
		t.Fatalf("AddVertex(generator): %v", err)
	}
	b.Consolidate()

	neighbors := [][3]float64{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	for _, p := range neighbors {
		if _, err := b.AddVertex(p); err != nil {
			t.Fatalf("AddVertex(neighbor %v): %v", p, err)
		}
	}

	grid, err := Extract(b)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(grid.Cells) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(grid.Cells))
	}

	const tol = 1e-6
	cell := grid.Cells[0]
	if !scalar.EqualWithinAbs(cell.Volume, 1.0, tol) {
		t.Fatalf("cell volume = %v, want 1.0 within %v", cell.Volume, tol)
	}
	if cell.NumFaces != 6 {
		t.Fatalf("NumFaces = %d, want 6", cell.NumFaces)
	}
	if !scalar.EqualWithinAbs(cell.Centroid[0], 0, tol) ||
		!scalar.EqualWithinAbs(cell.Centroid[1], 0, tol) ||
		!scalar.EqualWithinAbs(cell.Centroid[2], 0, tol) {
		t.Fatalf("centroid = %v, want origin within %v", cell.Centroid, tol)
	}
}

func TestExtractGridProducesCellsWithVolume(t *testing.T) {
	b := delaunay3d.NewBuilder(rescale.Box3D{Anchor: [3]float64{-1, -1, -1}, Side: [3]float64{3, 3, 3}})

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				p := [3]float64{
					0.3 + 0.2*float64(i),
					0.3 + 0.2*float64(j),
					0.3 + 0.2*float64(k),
				}
				if _, err := b.AddVertex(p); err != nil {
					t.Fatalf("AddVertex(%v): %v", p, err)
				}
			}
		}
	}
	b.Consolidate()

	// Ghost ring wide enough to close every real cell's faces.
	for i := -2; i <= 4; i++ {
		for j := -2; j <= 4; j++ {
			for k := -2; k <= 4; k++ {
				if i >= 0 && i <= 2 && j >= 0 && j <= 2 && k >= 0 && k <= 2 {
					continue
				}
				p := [3]float64{
					0.3 + 0.2*float64(i),
					0.3 + 0.2*float64(j),
					0.3 + 0.2*float64(k),
				}
				if _, err := b.AddVertex(p); err != nil && err != delaunay3d.ErrDuplicatePoint {
					t.Fatalf("AddVertex(ghost %v): %v", p, err)
				}
			}
		}
	}

	if err := b.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}

	grid, err := Extract(b)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(grid.Cells) != 27 {
		t.Fatalf("expected 27 cells, got %d", len(grid.Cells))
	}
	for _, c := range grid.Cells {
		if c.Volume <= 0 {
			t.Fatalf("cell %d: expected positive volume, got %v", c.Generator, c.Volume)
		}
		if c.NumFaces == 0 {
			t.Fatalf("cell %d: expected at least one face", c.Generator)
		}
	}
	if len(grid.Faces) == 0 {
		t.Fatalf("expected at least one extracted face")
	}
}
