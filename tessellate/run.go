package tessellate

import (
	"fmt"
	"io"

	"github.com/yuyttenhove/cvoronoi/delaunay2d"
	"github.com/yuyttenhove/cvoronoi/delaunay3d"
	"github.com/yuyttenhove/cvoronoi/rescale"
	"github.com/yuyttenhove/cvoronoi/voronoi"
)

// Run2D builds a 2D Delaunay triangulation of points inside box and writes
// its textual dump to w.
func Run2D(w io.Writer, box rescale.Box2D, points [][2]float64) (*delaunay2d.Builder, error) {
	b := delaunay2d.NewBuilder(box)
	for i, p := range points {
		if _, err := b.AddVertex(p); err != nil {
			return nil, fmt.Errorf("tessellate: point %d: %w", i, err)
		}
	}
	if err := Dump2D(w, b); err != nil {
		return nil, fmt.Errorf("tessellate: dump: %w", err)
	}
	return b, nil
}

// Run3D builds a 3D Delaunay tetrahedralization of real (then, after
// consolidation, ghost) points inside box, extracts the dual Voronoi grid,
// and writes the combined textual dump to w.
func Run3D(w io.Writer, box rescale.Box3D, real, ghosts [][3]float64) (*delaunay3d.Builder, *voronoi.Grid, error) {
	b := delaunay3d.NewBuilder(box)
	for i, p := range real {
		if _, err := b.AddVertex(p); err != nil {
			return nil, nil, fmt.Errorf("tessellate: real point %d: %w", i, err)
		}
	}
	b.Consolidate()
	for i, p := range ghosts {
		if _, err := b.AddVertex(p); err != nil {
			return nil, nil, fmt.Errorf("tessellate: ghost point %d: %w", i, err)
		}
	}

	grid, err := voronoi.Extract(b)
	if err != nil {
		return nil, nil, fmt.Errorf("tessellate: extract: %w", err)
	}
	if err := Dump3D(w, b, grid); err != nil {
		return nil, nil, fmt.Errorf("tessellate: dump: %w", err)
	}
	return b, grid, nil
}
