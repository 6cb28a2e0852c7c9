package delaunay2d

import "github.com/yuyttenhove/cvoronoi/predicate"

func (b *Builder) vertAt(id int32) [2]uint64 { return b.verts[id].I }

// locate walks the mesh from b.last to find the triangle containing p,
// returning the triangle id and, if p falls exactly on one of its edges,
// that edge's local index (-1 otherwise). dup is true if p coincides
// exactly with an existing vertex.
func (b *Builder) locate(p [2]uint64) (tri int32, edge int, dup bool) {
	cur := b.last
	for {
		t := b.tris[cur]
		var orient [3]int
		var negIdx [3]int
		negCount := 0
		zeroIdx := -1
		zeroCount := 0
		for i := 0; i < 3; i++ {
			j, k := (i+1)%3, (i+2)%3
			o := predicate.Orient2D(b.scratch, b.vertAt(t.V[j]), b.vertAt(t.V[k]), p)
			orient[i] = o
			if o < 0 {
				negIdx[negCount] = i
				negCount++
			}
			if o == 0 {
				zeroCount++
				zeroIdx = i
			}
		}
		if negCount > 0 {
			pick := 0
			if negCount > 1 && b.choose() {
				pick = 1
			}
			cur = t.Ngb[negIdx[pick]]
			continue
		}
		if zeroCount >= 2 {
			return 0, 0, true
		}
		if zeroCount == 1 {
			return cur, zeroIdx, false
		}
		return cur, -1, false
	}
}

// AddVertex inserts p into the mesh, returning an id in [0, NumVertices())
// for subsequent Vertex lookups. Points added after Consolidate are ghosts
// and do not affect GhostOffset's reported boundary for earlier vertices.
func (b *Builder) AddVertex(p [2]float64) (int32, error) {
	enc, err := b.enc.Encode(p)
	if err != nil {
		return -1, err
	}
	tri, edge, dup := b.locate(enc)
	if dup {
		return -1, ErrDuplicatePoint
	}

	vid := int32(len(b.verts))
	b.verts = append(b.verts, Vertex{P: p, I: enc})

	if edge < 0 {
		b.splitInterior(tri, vid)
	} else {
		b.splitEdge(tri, edge, vid)
	}

	b.drainQueue()
	b.last = int32(len(b.tris) - 1)
	return vid - 3, nil
}

// link sets the neighbor relationship between two triangle edges on both
// sides at once: aID's edge aIdx becomes bID (recorded at bIdx within
// bID), and vice versa.
func (b *Builder) link(aID int32, aIdx int8, bID int32, bIdx int8) {
	b.tris[aID].Ngb[aIdx] = bID
	b.tris[aID].NgbIdx[aIdx] = bIdx
	b.tris[bID].Ngb[bIdx] = aID
	b.tris[bID].NgbIdx[bIdx] = aIdx
}

// splitInterior implements the 1->3 flip: w falls strictly inside
// triangle ot, which is replaced by three triangles each keeping w as
// their last vertex.
func (b *Builder) splitInterior(ot int32, w int32) {
	old := b.tris[ot]
	v0, v1, v2 := old.V[0], old.V[1], old.V[2]
	n0, n0i := old.Ngb[0], old.NgbIdx[0]
	n1, n1i := old.Ngb[1], old.NgbIdx[1]
	n2, n2i := old.Ngb[2], old.NgbIdx[2]

	ta := ot
	tb := b.newTriangleSlot()
	tc := b.newTriangleSlot()

	b.setVerts(ta, [3]int32{v0, v1, w})
	b.setVerts(tb, [3]int32{v1, v2, w})
	b.setVerts(tc, [3]int32{v2, v0, w})

	b.link(ta, 0, tb, 1)
	b.link(ta, 1, tc, 0)
	b.link(tb, 0, tc, 1)

	b.link(ta, 2, n2, n2i)
	b.link(tb, 2, n0, n0i)
	b.link(tc, 2, n1, n1i)

	b.enqueue(ta)
	b.enqueue(tb)
	b.enqueue(tc)
}

// splitEdge implements the 2->4 flip: w falls exactly on the edge shared
// by triangles ot and its neighbor across local edge e, so both triangles
// are replaced by two new triangles each (four total), all keeping w as
// their last vertex.
func (b *Builder) splitEdge(ot int32, e int, w int32) {
	t := b.tris[ot]
	nt := t.Ngb[e]
	idxInN := int(t.NgbIdx[e])
	n := b.tris[nt]

	apex1 := t.V[e]
	a := t.V[(e+1)%3]
	bVert := t.V[(e+2)%3]
	apex2 := n.V[idxInN]

	tOuterBID, tOuterBIdx := t.Ngb[(e+1)%3], t.NgbIdx[(e+1)%3]
	tOuterAID, tOuterAIdx := t.Ngb[(e+2)%3], t.NgbIdx[(e+2)%3]
	nOuterAID, nOuterAIdx := n.Ngb[(idxInN+1)%3], n.NgbIdx[(idxInN+1)%3]
	nOuterBID, nOuterBIdx := n.Ngb[(idxInN+2)%3], n.NgbIdx[(idxInN+2)%3]

	t1 := ot
	t2 := b.newTriangleSlot()
	t3 := nt
	t4 := b.newTriangleSlot()

	b.setVerts(t1, [3]int32{apex1, a, w})
	b.setVerts(t2, [3]int32{bVert, apex1, w})
	b.setVerts(t3, [3]int32{apex2, bVert, w})
	b.setVerts(t4, [3]int32{a, apex2, w})

	b.link(t1, 0, t4, 1)
	b.link(t1, 1, t2, 0)
	b.link(t2, 1, t3, 0)
	b.link(t3, 1, t4, 0)

	b.link(t1, 2, tOuterAID, tOuterAIdx)
	b.link(t2, 2, tOuterBID, tOuterBIdx)
	b.link(t3, 2, nOuterBID, nOuterBIdx)
	b.link(t4, 2, nOuterAID, nOuterAIdx)

	b.enqueue(t1)
	b.enqueue(t2)
	b.enqueue(t3)
	b.enqueue(t4)
}
