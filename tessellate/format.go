package tessellate

import (
	"fmt"

	"github.com/yuyttenhove/cvoronoi/voronoi"
)

func formatVertex2D(id int32, p [2]float64) string {
	return fmt.Sprintf("V\t%d\t%g\t%g\n", id, p[0], p[1])
}

func formatVertex3D(id int32, p [3]float64) string {
	return fmt.Sprintf("V\t%d\t%g\t%g\t%g\n", id, p[0], p[1], p[2])
}

func formatTriangle(v0, v1, v2 int32) string {
	return fmt.Sprintf("T\t%d\t%d\t%d\n", v0, v1, v2)
}

func formatTetrahedron(v0, v1, v2, v3 int32) string {
	return fmt.Sprintf("T\t%d\t%d\t%d\t%d\n", v0, v1, v2, v3)
}

func formatCell(c voronoi.Cell) string {
	return fmt.Sprintf("C\t%g\t%g\t%g\t%g\t%d\n",
		c.Centroid[0], c.Centroid[1], c.Centroid[2], c.Volume, c.NumFaces)
}

// formatFace classifies f as interior (sid 0, Right names another local
// cell) or boundary (sid 1, Right names a ghost), by comparing Right
// against numCells, the number of real cells in the grid the face came
// from.
func formatFace(f voronoi.Face, numCells int32) string {
	sid := 0
	if f.Right >= numCells {
		sid = 1
	}
	return fmt.Sprintf("F\t%d\t%g\t%g\t%g\t%g\n",
		sid, f.Area, f.Midpoint[0], f.Midpoint[1], f.Midpoint[2])
}
