package delaunay3d

// rotateEdge walks the ring of tetrahedra sharing the directed edge
// (a, b), starting from t0 (which must contain both a and b). It returns
// the ring in rotational order together with, for each ring member, the
// "leading" third vertex opp[k] such that ring[k]'s four vertices are
// exactly {a, b, opp[k], opp[(k+1)%n]}.
//
// This is the edge-rotation protocol used both to gather the fan for an
// n-to-2n split (a new vertex landing exactly on an existing edge) and,
// in package voronoi, to walk the dual face around a Delaunay edge.
func (b *Builder) rotateEdge(t0, a, bVert int32) (ring []int32, opp []int32) {
	cur := t0
	v := b.tets[cur].V
	var c, d int32 = -1, -1
	for _, x := range v {
		if x == a || x == bVert {
			continue
		}
		if c < 0 {
			c = x
		} else {
			d = x
		}
	}

	start := cur
	for {
		ring = append(ring, cur)
		opp = append(opp, c)

		ci := localIndex(b.tets[cur].V, c)
		next := b.tets[cur].Ngb[ci]

		nv := b.tets[next].V
		e := int32(-1)
		for _, x := range nv {
			if x != a && x != bVert && x != d {
				e = x
				break
			}
		}

		cur = next
		c, d = d, e

		if cur == start {
			break
		}
	}
	return ring, opp
}
