package delaunay2d

import "github.com/yuyttenhove/cvoronoi/predicate"

// drainQueue restores the Delaunay property after one or more insertions
// by repeatedly popping a triangle and testing its edges against the
// in-circle predicate, flipping any that violate it. Flipped triangles
// are re-enqueued, so the cascade continues until no enqueued triangle
// has a violating edge left - mirroring delaunay_check_triangles in the
// original cVoronoi sources.
func (b *Builder) drainQueue() {
	for {
		t, ok := b.dequeue()
		if !ok {
			return
		}
		b.restoreAt(t)
	}
}

// restoreAt checks triangle t's three edges in turn and performs the
// first violating flip it finds. A flip replaces t's contents in place,
// so restoreAt stops after one flip and relies on the flipped triangles
// being re-enqueued for their own turn.
func (b *Builder) restoreAt(t int32) {
	for i := 0; i < 3; i++ {
		if b.flipIfNeeded(t, int8(i)) {
			return
		}
	}
}

// flipIfNeeded tests the edge at local index edgeIdx of triangle t1
// against its neighbor's opposite vertex; if the in-circle predicate is
// violated, performs the 2-2 edge flip and returns true.
func (b *Builder) flipIfNeeded(t1 int32, edgeIdx int8) bool {
	tri1 := b.tris[t1]
	t2 := tri1.Ngb[edgeIdx]
	if t2 < dummyTriangles {
		return false
	}
	idxInT2 := tri1.NgbIdx[edgeIdx]
	tri2 := b.tris[t2]

	apex1 := tri1.V[edgeIdx]
	a := tri1.V[(edgeIdx+1)%3]
	bVert := tri1.V[(edgeIdx+2)%3]
	apex2 := tri2.V[idxInT2]

	if predicate.InCircle2D(b.scratch, b.vertAt(apex1), b.vertAt(a), b.vertAt(bVert), b.vertAt(apex2)) <= 0 {
		return false
	}

	outA1ID, outA1Idx := tri1.Ngb[(edgeIdx+2)%3], tri1.NgbIdx[(edgeIdx+2)%3]
	outB1ID, outB1Idx := tri1.Ngb[(edgeIdx+1)%3], tri1.NgbIdx[(edgeIdx+1)%3]
	outA2ID, outA2Idx := tri2.Ngb[(idxInT2+1)%3], tri2.NgbIdx[(idxInT2+1)%3]
	outB2ID, outB2Idx := tri2.Ngb[(idxInT2+2)%3], tri2.NgbIdx[(idxInT2+2)%3]

	r1, r2 := t1, t2
	b.setVerts(r1, [3]int32{apex1, a, apex2})
	b.setVerts(r2, [3]int32{apex1, apex2, bVert})

	b.link(r1, 1, r2, 2)
	b.link(r1, 0, outA2ID, outA2Idx)
	b.link(r1, 2, outA1ID, outA1Idx)
	b.link(r2, 0, outB2ID, outB2Idx)
	b.link(r2, 1, outB1ID, outB1Idx)

	b.enqueue(r1)
	b.enqueue(r2)
	return true
}
