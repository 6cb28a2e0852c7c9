package delaunay3d

// The methods in this file expose just enough of the builder's internal
// arena to let package voronoi walk the dual grid without reaching into
// unexported fields: raw vertex ids (including the 4 bootstrap corners),
// a tetrahedron's vertex ids, its circumcenter, and the edge-rotation
// primitive also used internally by splitEdge.

// DummyCount returns the number of reserved bootstrap vertex slots (always
// 4 for a 3D builder); raw vertex ids below this are not real points.
func (b *Builder) DummyCount() int32 { return 4 }

// RawVertexCount returns the total number of vertex slots, bootstrap
// corners included.
func (b *Builder) RawVertexCount() int32 { return int32(len(b.verts)) }

// RawPosition returns the floating point position stored for raw vertex
// id (which includes the 4 bootstrap corners at the front).
func (b *Builder) RawPosition(id int32) [3]float64 { return b.verts[id].P }

// RawGhostOffset returns the raw vertex id at which ghost vertices begin.
// Vertices at or above this id (and below RawVertexCount) were added
// after the most recent Consolidate call.
func (b *Builder) RawGhostOffset() int32 {
	if b.ghostOffset == 0 {
		return int32(len(b.verts))
	}
	return b.ghostOffset
}

// TetVertices returns the four raw vertex ids of tetrahedron id.
func (b *Builder) TetVertices(id int32) [4]int32 { return b.tets[id].V }

// IsFreed reports whether tetrahedron id was vacated by a 3->2 flip and
// no longer holds live data.
func (b *Builder) IsFreed(id int32) bool {
	for _, f := range b.free {
		if f == id {
			return true
		}
	}
	return false
}

// Circumcenter returns the circumcenter of tetrahedron id, and false if
// any of its vertices is a bootstrap dummy (ids 0-3), in which case the
// tetrahedron does not correspond to a Voronoi vertex.
func (b *Builder) Circumcenter(id int32) (c [3]float64, ok bool) {
	v := b.tets[id].V
	for _, x := range v {
		if x < 4 {
			return c, false
		}
	}
	center, _ := circumcenter3D(b.verts[v[0]].P, b.verts[v[1]].P, b.verts[v[2]].P, b.verts[v[3]].P)
	return [3]float64{center.X, center.Y, center.Z}, true
}

// RotateEdge exposes the edge-rotation protocol used internally by
// splitEdge: it walks the ring of tetrahedra sharing the directed edge
// (a, b), starting from t0 (which must contain both), and returns the
// ring together with each member's "leading" third vertex.
func (b *Builder) RotateEdge(t0, a, bVert int32) (ring, opp []int32) {
	return b.rotateEdge(t0, a, bVert)
}
