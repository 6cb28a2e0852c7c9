package delaunay3d

import "github.com/yuyttenhove/cvoronoi/predicate"

// locate walks the mesh from b.last to find the tetrahedron containing
// p. kind is 0 for a strictly interior point, 1 if p falls exactly on a
// face (data[0] holds that face's local vertex index), 2 if p falls
// exactly on an edge (data[0], data[1] hold the edge's two endpoint
// vertex ids), or 3 if p coincides with an existing vertex.
func (b *Builder) locate(p [3]uint64) (tet int32, kind int, data [2]int32) {
	cur := b.last
	for {
		t := b.tets[cur]
		negIdx := -1
		zeroCount := 0
		var zeroIdx [4]int
		for i := 0; i < 4; i++ {
			j, k, l := faceVerts(t.V, i)
			o := predicate.Orient3D(b.scratch, b.vertAt(j), b.vertAt(k), b.vertAt(l), p)
			if o < 0 {
				negIdx = i
			}
			if o == 0 {
				zeroIdx[zeroCount] = i
				zeroCount++
			}
		}
		if negIdx >= 0 {
			cur = t.Ngb[negIdx]
			continue
		}
		switch zeroCount {
		case 0:
			return cur, 0, data
		case 1:
			data[0] = int32(zeroIdx[0])
			return cur, 1, data
		case 2:
			i, j := zeroIdx[0], zeroIdx[1]
			k, l := complementPair(i, j)
			data[0] = t.V[k]
			data[1] = t.V[l]
			return cur, 2, data
		default:
			return cur, 3, data
		}
	}
}

func complementPair(i, j int) (int, int) {
	var rest [2]int
	n := 0
	for m := 0; m < 4; m++ {
		if m != i && m != j {
			rest[n] = m
			n++
		}
	}
	return rest[0], rest[1]
}

// AddVertex inserts p into the mesh, returning an id in [0, NumVertices())
// for subsequent Vertex lookups.
func (b *Builder) AddVertex(p [3]float64) (int32, error) {
	enc, err := b.enc.Encode(p)
	if err != nil {
		return -1, err
	}
	tet, kind, data := b.locate(enc)
	if kind == 3 {
		return -1, ErrDuplicatePoint
	}

	vid := int32(len(b.verts))
	b.verts = append(b.verts, Vertex{P: p, I: enc})

	switch kind {
	case 0:
		b.splitInterior(tet, vid)
	case 1:
		b.splitFace(tet, int(data[0]), vid)
	case 2:
		b.splitEdge(tet, data[0], data[1], vid)
	}

	b.drainQueue()
	b.last = int32(len(b.tets) - 1)
	return vid - 4, nil
}

// splitInterior implements the 1->4 flip.
func (b *Builder) splitInterior(ot, w int32) {
	old := b.tets[ot]
	var extID [4]int32
	var extIdx [4]int8
	copy(extID[:], old.Ngb[:])
	copy(extIdx[:], old.NgbIdx[:])

	var slot [4]int32
	slot[0] = ot
	for i := 1; i < 4; i++ {
		slot[i] = b.newSlot()
	}

	for i := 0; i < 4; i++ {
		j, k, l := faceVerts(old.V, i)
		b.setVerts(slot[i], [4]int32{j, k, l, w})
	}

	for i := 0; i < 4; i++ {
		b.link(slot[i], 3, extID[i], extIdx[i])
	}

	b.autoLinkInternal(slot[:])

	for _, s := range slot {
		b.enqueue(s)
	}
}

// splitFace implements the 2->6 flip: w lies exactly on the face opposite
// local vertex faceIdx of ot, shared with a neighbor across that face.
func (b *Builder) splitFace(ot int32, faceIdx int, w int32) {
	oldOt := b.tets[ot]
	nt := oldOt.Ngb[faceIdx]
	idxInN := int(oldOt.NgbIdx[faceIdx])
	oldNt := b.tets[nt]

	var slots []int32

	buildSide := func(reuseSlot int32, parent Tetrahedron, skip int) []int32 {
		var side []int32
		first := true
		for m := 0; m < 4; m++ {
			if m == skip {
				continue
			}
			var s int32
			if first {
				s = reuseSlot
				first = false
			} else {
				s = b.newSlot()
			}
			j, k, l := faceVerts(parent.V, m)
			b.setVerts(s, [4]int32{j, k, l, w})
			b.link(s, 3, parent.Ngb[m], parent.NgbIdx[m])
			side = append(side, s)
			slots = append(slots, s)
		}
		return side
	}

	buildSide(ot, oldOt, faceIdx)
	buildSide(nt, oldNt, idxInN)

	b.autoLinkInternal(slots)

	for _, s := range slots {
		b.enqueue(s)
	}
}

// splitEdge implements the n->2n flip: w lies exactly on the edge (a, b),
// shared by the ring of tetrahedra rotateEdge finds starting from ot.
func (b *Builder) splitEdge(ot, a, bVert, w int32) {
	ring, opp := b.rotateEdge(ot, a, bVert)
	n := len(ring)

	var aSlots, bSlots []int32
	for k := 0; k < n; k++ {
		old := b.tets[ring[k]]
		c := opp[k]
		d := opp[(k+1)%n]

		ai := localIndex(old.V, a)
		bi := localIndex(old.V, bVert)
		extAID, extAIdx := old.Ngb[ai], old.NgbIdx[ai]
		extBID, extBIdx := old.Ngb[bi], old.NgbIdx[bi]

		aSlot := ring[k]
		bSlot := b.newSlot()

		b.setVerts(aSlot, [4]int32{a, w, c, d})
		b.setVerts(bSlot, [4]int32{w, bVert, c, d})

		// A's face opposite w is the original face opposite b; B's face
		// opposite w is the original face opposite a.
		b.link(aSlot, localIndex(b.tets[aSlot].V, w), extBID, extBIdx)
		b.link(bSlot, localIndex(b.tets[bSlot].V, w), extAID, extAIdx)

		aSlots = append(aSlots, aSlot)
		bSlots = append(bSlots, bSlot)
	}

	all := make([]int32, 0, 2*n)
	all = append(all, aSlots...)
	all = append(all, bSlots...)
	b.autoLinkInternal(all)

	for _, s := range all {
		b.enqueue(s)
	}
}
