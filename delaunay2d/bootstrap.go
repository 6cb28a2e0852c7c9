package delaunay2d

// bootstrap sets up the three dummy triangles (slots 0, 1, 2) and the
// first real triangle (slot 3) from a super-triangle large enough to
// enclose the full [0, 2^52) x [0, 2^52) encoded domain. Since
// rescale.Encoder2D already confines every real point deep inside that
// domain (via the box enlargement cushion), any three points enclosing
// the whole encoded square are a safe choice; the exact values carry no
// further meaning.
func (b *Builder) bootstrap() {
	m := int64(1) << 52
	v0 := [2]uint64{uint64(-m), uint64(-m)}
	v1 := [2]uint64{uint64(3 * m), uint64(-m)}
	v2 := [2]uint64{uint64(-m), uint64(3 * m)}

	b.verts = []Vertex{
		{P: [2]float64{0, 0}, I: v0},
		{P: [2]float64{0, 0}, I: v1},
		{P: [2]float64{0, 0}, I: v2},
	}

	b.tris = make([]Triangle, 4)
	// Dummy triangles: only Ngb[0]/NgbIdx[0] are meaningful, pointing at
	// the real triangle across the super-triangle's boundary edge. Their
	// vertex ids are never read (predicate evaluation always skips
	// triangles at indices < dummyTriangles).
	b.tris[0] = Triangle{V: [3]int32{-1, -1, -1}, Ngb: [3]int32{3, 0, 0}, NgbIdx: [3]int8{0, 0, 0}}
	b.tris[1] = Triangle{V: [3]int32{-1, -1, -1}, Ngb: [3]int32{3, 1, 1}, NgbIdx: [3]int8{1, 0, 0}}
	b.tris[2] = Triangle{V: [3]int32{-1, -1, -1}, Ngb: [3]int32{3, 2, 2}, NgbIdx: [3]int8{2, 0, 0}}
	b.tris[3] = Triangle{Ngb: [3]int32{0, 1, 2}, NgbIdx: [3]int8{0, 0, 0}}
	b.setVerts(3, [3]int32{0, 1, 2})

	b.last = 3
}
