package delaunay3d

import (
	"testing"

	"github.com/yuyttenhove/cvoronoi/rescale"
)

func newTestBuilder() *Builder {
	return NewBuilder(rescale.Box3D{Anchor: [3]float64{0, 0, 0}, Side: [3]float64{1, 1, 1}})
}

func TestAddVertexSingle(t *testing.T) {
	b := newTestBuilder()
	id, err := b.AddVertex([3]float64{0.5, 0.5, 0.5})
	if err != nil {
		t.Fatalf("AddVertex: %v", err)
	}
	if id != 0 {
		t.Fatalf("expected first vertex id 0, got %d", id)
	}
	if b.NumVertices() != 1 {
		t.Fatalf("expected 1 vertex, got %d", b.NumVertices())
	}
	if err := b.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
}

func TestAddVertexGridMaintainsDelaunayProperty(t *testing.T) {
	b := newTestBuilder()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				p := [3]float64{
					0.15 + 0.3*float64(i),
					0.15 + 0.3*float64(j),
					0.15 + 0.3*float64(k),
				}
				if _, err := b.AddVertex(p); err != nil {
					t.Fatalf("AddVertex(%v): %v", p, err)
				}
			}
		}
	}
	if got, want := b.NumVertices(), 27; got != want {
		t.Fatalf("NumVertices() = %d, want %d", got, want)
	}
	if err := b.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
}

func TestAddVertexDuplicateRejected(t *testing.T) {
	b := newTestBuilder()
	p := [3]float64{0.3, 0.3, 0.3}
	if _, err := b.AddVertex(p); err != nil {
		t.Fatalf("first AddVertex: %v", err)
	}
	if _, err := b.AddVertex(p); err != ErrDuplicatePoint {
		t.Fatalf("expected ErrDuplicatePoint, got %v", err)
	}
}

func TestTetrahedraCoverAllRealVertices(t *testing.T) {
	b := newTestBuilder()
	n := 0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			p := [3]float64{
				0.1 + 0.25*float64(i),
				0.1 + 0.25*float64(j),
				0.5,
			}
			if _, err := b.AddVertex(p); err != nil {
				t.Fatalf("AddVertex(%v): %v", p, err)
			}
			n++
		}
	}
	seen := make(map[int32]bool)
	b.Tetrahedra(func(id int32, v [4]int32) {
		for _, x := range v {
			if x >= 4 {
				seen[x] = true
			}
		}
	})
	if len(seen) != n {
		t.Fatalf("expected all %d real vertices referenced by a tetrahedron, got %d", n, len(seen))
	}
	if err := b.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
}

// rawInsertNoCascade inserts a caller-supplied exact fixed-point coordinate
// directly, bypassing rescale.Encoder3D, and performs the interior/face/edge
// split the point lands in but does not drain the flip-restoring queue. The
// two degenerate-split tests below use it to construct an on-face and an
// on-edge degeneracy exactly, by integer arithmetic on the bootstrap
// corners' known coordinates, without depending on where a flip cascade
// would otherwise leave the mesh.
func (b *Builder) rawInsertNoCascade(i [3]uint64) int32 {
	tet, kind, data := b.locate(i)
	vid := int32(len(b.verts))
	b.verts = append(b.verts, Vertex{I: i})
	switch kind {
	case 0:
		b.splitInterior(tet, vid)
	case 1:
		b.splitFace(tet, int(data[0]), vid)
	case 2:
		b.splitEdge(tet, data[0], data[1], vid)
	}
	b.queue = b.queue[:0]
	b.last = int32(len(b.tets) - 1)
	return vid
}

func realTetCount(b *Builder) int {
	n := 0
	b.Tetrahedra(func(id int32, v [4]int32) { n++ })
	return n
}

// checkStructuralInvariants verifies neighbor-pointer symmetry (I2) and
// vertex back-link correctness (I4) directly, without requiring a flip
// cascade to have restored the empty-sphere property (I3): the two tests
// below build their mesh by hand and deliberately skip the cascade so the
// split's own bookkeeping can be checked in isolation.
func checkStructuralInvariants(t *testing.T, b *Builder) {
	t.Helper()
	freed := make(map[int32]bool, len(b.free))
	for _, f := range b.free {
		freed[f] = true
	}
	for i := dummyTets; i < len(b.tets); i++ {
		if freed[int32(i)] {
			continue
		}
		tet := b.tets[i]
		for f := 0; f < 4; f++ {
			ngb := tet.Ngb[f]
			idx := tet.NgbIdx[f]
			if ngb < dummyTets {
				continue
			}
			other := b.tets[ngb]
			if other.Ngb[idx] != int32(i) {
				t.Fatalf("tet %d: neighbor backpointer mismatch at face %d", i, f)
			}
			if other.NgbIdx[idx] != int8(f) {
				t.Fatalf("tet %d: neighbor index backpointer mismatch at face %d", i, f)
			}
		}
	}
	for i := 0; i < len(b.verts); i++ {
		v := b.verts[i]
		if int(v.BackTet) >= len(b.tets) || freed[v.BackTet] {
			t.Fatalf("vertex %d: back-link %d out of range", i, v.BackTet)
		}
		back := b.tets[v.BackTet]
		if v.BackSlot < 0 || v.BackSlot >= 4 || back.V[v.BackSlot] != int32(i) {
			t.Fatalf("vertex %d: back-link does not list it at the recorded slot", i)
		}
	}
}

// faceMidpoint returns the exact integer combination weighted 1/4,1/4,1/2 of
// a, b, c - an affine combination (weights sum to 1, all strictly positive)
// that lands exactly on the plane through those three points, strictly
// inside their triangle.
func faceMidpoint(a, b, c [3]uint64) [3]uint64 {
	var out [3]uint64
	for k := 0; k < 3; k++ {
		sum := int64(a[k]) + int64(b[k]) + 2*int64(c[k])
		out[k] = uint64(sum / 4)
	}
	return out
}

// edgeMidpoint returns the exact integer midpoint of a and b.
func edgeMidpoint(a, b [3]uint64) [3]uint64 {
	var out [3]uint64
	for k := 0; k < 3; k++ {
		sum := int64(a[k]) + int64(b[k])
		out[k] = uint64(sum / 2)
	}
	return out
}

// TestSplitFaceOnFaceDegeneracy drives the 2->6 split directly: after one
// interior insertion splits the bootstrap tetrahedron into four (1->4), the
// triangle between vertices 2, 3 and the new apex is shared by exactly two
// of those four tetrahedra. A point built as the exact affine combination
// of those three vertices must locate as kind 1 (on-face) and produce
// exactly six tetrahedra in place of the two it replaces.
func TestSplitFaceOnFaceDegeneracy(t *testing.T) {
	b := newTestBuilder()
	v0, v1, v2, v3 := b.verts[0].I, b.verts[1].I, b.verts[2].I, b.verts[3].I

	var centroid [3]uint64
	for k := 0; k < 3; k++ {
		sum := int64(v0[k]) + int64(v1[k]) + int64(v2[k]) + int64(v3[k])
		centroid[k] = uint64(sum / 4)
	}
	w := b.rawInsertNoCascade(centroid)
	if got := realTetCount(b); got != 4 {
		t.Fatalf("after the 1->4 split: %d real tetrahedra, want 4", got)
	}

	p := faceMidpoint(v2, v3, b.verts[w].I)
	tet, kind, data := b.locate(p)
	if kind != 1 {
		t.Fatalf("point built from the shared-face midpoint should locate on a face, got kind %d", kind)
	}

	vid := int32(len(b.verts))
	b.verts = append(b.verts, Vertex{I: p})
	b.splitFace(tet, int(data[0]), vid)
	b.queue = b.queue[:0]

	if got := realTetCount(b); got != 8 {
		t.Fatalf("after the 2->6 split: %d real tetrahedra, want 8", got)
	}
	checkStructuralInvariants(t, b)
}

// TestSplitEdgeOnEdgeDegeneracy mirrors the above for the n->2n split: the
// edge between vertex 3 and the new apex is shared by three of the four
// tetrahedra from the 1->4 split. A point on that edge must locate as kind
// 2 (on-edge) and produce six tetrahedra in place of the three it replaces.
func TestSplitEdgeOnEdgeDegeneracy(t *testing.T) {
	b := newTestBuilder()
	v0, v1, v2, v3 := b.verts[0].I, b.verts[1].I, b.verts[2].I, b.verts[3].I

	var centroid [3]uint64
	for k := 0; k < 3; k++ {
		sum := int64(v0[k]) + int64(v1[k]) + int64(v2[k]) + int64(v3[k])
		centroid[k] = uint64(sum / 4)
	}
	w := b.rawInsertNoCascade(centroid)

	p := edgeMidpoint(v3, b.verts[w].I)
	tet, kind, data := b.locate(p)
	if kind != 2 {
		t.Fatalf("point built from the shared-edge midpoint should locate on an edge, got kind %d", kind)
	}

	vid := int32(len(b.verts))
	b.verts = append(b.verts, Vertex{I: p})
	b.splitEdge(tet, data[0], data[1], vid)
	b.queue = b.queue[:0]

	if got := realTetCount(b); got != 7 {
		t.Fatalf("after the n->2n split: %d real tetrahedra, want 7", got)
	}
	checkStructuralInvariants(t, b)
}

func TestConsolidateAndSearchRadii(t *testing.T) {
	b := newTestBuilder()
	for i := 0; i < 6; i++ {
		p := [3]float64{0.1 + 0.15*float64(i), 0.5, 0.5}
		if _, err := b.AddVertex(p); err != nil {
			t.Fatalf("AddVertex(%v): %v", p, err)
		}
	}
	b.Consolidate()
	if b.GhostOffset() != b.NumVertices() {
		t.Fatalf("GhostOffset() = %d, want %d right after Consolidate", b.GhostOffset(), b.NumVertices())
	}
	if _, err := b.AddVertex([3]float64{2, 2, 2}); err != nil {
		t.Fatalf("AddVertex ghost: %v", err)
	}
	if b.GhostOffset() == b.NumVertices() {
		t.Fatalf("GhostOffset() should not include the post-consolidation ghost vertex")
	}

	exceeding := b.UpdateSearchRadii(0)
	if exceeding == 0 {
		t.Fatalf("expected at least one vertex with nonzero search radius against threshold 0")
	}
}
