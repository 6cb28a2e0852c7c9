// Package voronoi builds the 3D Voronoi tessellation dual to a
// delaunay3d.Builder's tetrahedralization: one cell per real (non-ghost,
// non-dummy) generator, with volume, centroid, and the faces shared with
// its neighbors.
//
// The construction follows voronoi_init from the original cVoronoi
// sources: circumcenters of Delaunay tetrahedra are Voronoi vertices, and
// the face dual to a Delaunay edge (g, axis) is the polygon of
// circumcenters of the tetrahedra in the edge's rotation fan. This
// package walks that fan with delaunay3d.Builder.RotateEdge instead of
// re-deriving the pointer chase by hand.
package voronoi

import (
	"errors"
	"fmt"
	"math"

	"github.com/yuyttenhove/cvoronoi/delaunay3d"
)

// ErrIncompleteGhostLayer is wrapped into the error Extract returns when
// at least one cell's edge-rotation fan reaches a tetrahedron that has a
// bootstrap corner among its vertices - the ghost points surrounding the real domain did not
// fully enclose every generator, so one or more of that generator's
// faces could not be computed. The returned Grid still holds every face
// and cell that could be computed.
var ErrIncompleteGhostLayer = errors.New("voronoi: incomplete ghost layer")

// Cell holds the geometric properties of one Voronoi cell.
type Cell struct {
	Generator int32
	Volume    float64
	Centroid  [3]float64
	NumFaces  int
}

// Face is the interface between two neighboring cells: Left is always a
// local cell index; Right is either another local cell index (Right <
// len(Grid.Cells)) or a ghost index representing a cell outside the
// consolidated domain.
type Face struct {
	Left, Right int32
	Area        float64
	Midpoint    [3]float64
}

// Grid is the extracted Voronoi tessellation.
type Grid struct {
	Cells []Cell
	Faces []Face
}

type queueItem struct {
	tet, axis int32
}

// Extract computes the Voronoi grid dual to b. b must have at least one
// real vertex; Consolidate need not have been called, but any vertex
// added after it is treated as a ghost and only contributes faces, never
// a cell of its own.
func Extract(b *delaunay3d.Builder) (*Grid, error) {
	numCells := int32(b.GhostOffset())
	if numCells <= 0 {
		return nil, fmt.Errorf("voronoi: no real vertices to build cells for")
	}
	dummy := b.DummyCount()
	ghostRawOffset := b.RawGhostOffset()

	incidentTet := make(map[int32]int32)
	b.Tetrahedra(func(id int32, v [4]int32) {
		for _, x := range v {
			if _, ok := incidentTet[x]; !ok {
				incidentTet[x] = id
			}
		}
	})

	grid := &Grid{Cells: make([]Cell, numCells)}
	visited := make(map[int32]bool)
	incompleteCells := 0

	for gi := int32(0); gi < numCells; gi++ {
		gen := dummy + gi
		t0, ok := incidentTet[gen]
		if !ok {
			return nil, fmt.Errorf("voronoi: generator %d is not referenced by any tetrahedron", gi)
		}
		genPos := b.RawPosition(gen)

		cell := &grid.Cells[gi]
		cell.Generator = gi
		incomplete := false

		var queue []queueItem
		var visitedList []int32

		v0 := b.TetVertices(t0)
		firstAxis := int32(-1)
		for _, x := range v0 {
			if x != gen {
				firstAxis = x
				break
			}
		}
		visited[gen] = true
		visited[firstAxis] = true
		visitedList = append(visitedList, gen, firstAxis)
		queue = append(queue, queueItem{t0, firstAxis})

		for len(queue) > 0 {
			item := queue[0]
			queue = queue[1:]
			axis := item.axis

			ring, opp := b.RotateEdge(item.tet, gen, axis)

			for idx, o := range opp {
				if visited[o] {
					continue
				}
				visited[o] = true
				visitedList = append(visitedList, o)
				queue = append(queue, queueItem{ring[idx], o})
			}

			faceVerts := make([][3]float64, 0, len(ring))
			complete := true
			for _, rt := range ring {
				c, ok := b.Circumcenter(rt)
				if !ok {
					complete = false
					break
				}
				faceVerts = append(faceVerts, c)
			}
			if !complete {
				// The fan touches a tetrahedron with a bootstrap corner: this
				// generator's ghost ring is incomplete on this side, so
				// the face cannot be computed.
				incomplete = true
				continue
			}

			area, midpoint := polygonCentroidArea(faceVerts)
			for i := 1; i < len(faceVerts)-1; i++ {
				vol, centroid := tetrahedronCentroidVolume(genPos, faceVerts[0], faceVerts[i], faceVerts[i+1])
				v := math.Abs(vol)
				cell.Volume += v
				cell.Centroid[0] += v * centroid[0]
				cell.Centroid[1] += v * centroid[1]
				cell.Centroid[2] += v * centroid[2]
			}
			cell.NumFaces++

			isGhost := axis >= ghostRawOffset
			if isGhost || gen < axis {
				grid.Faces = append(grid.Faces, Face{
					Left:     gi,
					Right:    axis - dummy,
					Area:     area,
					Midpoint: midpoint,
				})
			}
		}

		if cell.Volume > 0 {
			cell.Centroid[0] /= cell.Volume
			cell.Centroid[1] /= cell.Volume
			cell.Centroid[2] /= cell.Volume
		}
		if incomplete {
			incompleteCells++
		}

		for _, x := range visitedList {
			delete(visited, x)
		}
	}

	if incompleteCells > 0 {
		return grid, fmt.Errorf("voronoi: %d of %d cells have faces facing an unenclosed region: %w", incompleteCells, numCells, ErrIncompleteGhostLayer)
	}
	return grid, nil
}
