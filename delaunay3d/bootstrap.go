package delaunay3d

import "github.com/yuyttenhove/cvoronoi/predicate"

// bootstrap sets up the four dummy tetrahedra (slots 0-3) and the first
// real tetrahedron (slot 4). As in delaunay2d, the super-tetrahedron's
// corner coordinates only need to enclose the full encoded domain; their
// exact values carry no further meaning.
func (b *Builder) bootstrap() {
	m := int64(1) << 52
	v0 := [3]uint64{uint64(-m), uint64(-m), uint64(-m)}
	v1 := [3]uint64{uint64(5 * m), uint64(-m), uint64(-m)}
	v2 := [3]uint64{uint64(-m), uint64(5 * m), uint64(-m)}
	v3 := [3]uint64{uint64(-m), uint64(-m), uint64(5 * m)}

	b.verts = []Vertex{
		{I: v0}, {I: v1}, {I: v2}, {I: v3},
	}

	// Guarantee positive orientation; swapping two corners if necessary
	// flips the sign back to positive.
	if predicate.Orient3D(b.scratch, v0, v1, v2, v3) < 0 {
		b.verts[1], b.verts[2] = b.verts[2], b.verts[1]
	}

	b.tets = make([]Tetrahedron, 5)
	for i := 0; i < 4; i++ {
		b.tets[i] = Tetrahedron{
			V:      [4]int32{-1, -1, -1, -1},
			Ngb:    [4]int32{4, int32(i), int32(i), int32(i)},
			NgbIdx: [4]int8{int8(i), 0, 0, 0},
		}
	}
	b.tets[4] = Tetrahedron{
		Ngb:    [4]int32{0, 1, 2, 3},
		NgbIdx: [4]int8{0, 0, 0, 0},
	}
	b.setVerts(4, [4]int32{0, 1, 2, 3})

	b.last = 4
}
