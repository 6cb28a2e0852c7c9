// Package tessellate writes the textual dump format used to inspect a
// tessellation from the outside: one line per vertex, active simplex,
// cell, and face, each tagged with a single-letter prefix.
package tessellate

import (
	"bufio"
	"io"

	"github.com/yuyttenhove/cvoronoi/delaunay2d"
	"github.com/yuyttenhove/cvoronoi/delaunay3d"
	"github.com/yuyttenhove/cvoronoi/voronoi"
)

// Dump2D writes every real vertex of b to w, and every triangle whose
// three corners are all real vertices; triangles with a bootstrap corner
// are not written.
func Dump2D(w io.Writer, b *delaunay2d.Builder) error {
	bw := bufio.NewWriter(w)

	for i := 0; i < b.NumVertices(); i++ {
		v := b.Vertex(i)
		if _, err := bw.WriteString(formatVertex2D(int32(i), v.P)); err != nil {
			return err
		}
	}

	var ferr error
	b.Triangles(func(v0, v1, v2 int32) {
		if ferr != nil {
			return
		}
		if v0 < 3 || v1 < 3 || v2 < 3 {
			return
		}
		_, ferr = bw.WriteString(formatTriangle(v0-3, v1-3, v2-3))
	})
	if ferr != nil {
		return ferr
	}

	return bw.Flush()
}

// Dump3D writes every real vertex, every tetrahedron whose four corners
// are all real vertices, and (if grid is non-nil) every cell and face of
// the Voronoi grid dual to b. Tetrahedra with a bootstrap corner are not
// written.
func Dump3D(w io.Writer, b *delaunay3d.Builder, grid *voronoi.Grid) error {
	bw := bufio.NewWriter(w)

	for i := 0; i < b.NumVertices(); i++ {
		v := b.Vertex(i)
		if _, err := bw.WriteString(formatVertex3D(int32(i), v.P)); err != nil {
			return err
		}
	}

	var ferr error
	b.Tetrahedra(func(id int32, v [4]int32) {
		if ferr != nil {
			return
		}
		if v[0] < 4 || v[1] < 4 || v[2] < 4 || v[3] < 4 {
			return
		}
		_, ferr = bw.WriteString(formatTetrahedron(v[0]-4, v[1]-4, v[2]-4, v[3]-4))
	})
	if ferr != nil {
		return ferr
	}

	if grid == nil {
		return bw.Flush()
	}

	for _, c := range grid.Cells {
		if _, err := bw.WriteString(formatCell(c)); err != nil {
			return err
		}
	}
	numCells := int32(len(grid.Cells))
	for _, f := range grid.Faces {
		if _, err := bw.WriteString(formatFace(f, numCells)); err != nil {
			return err
		}
	}

	return bw.Flush()
}
