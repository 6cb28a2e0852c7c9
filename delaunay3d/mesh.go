// Package delaunay3d implements incremental 3D Delaunay tetrahedralization.
// A point-location walk (via four orientation tests per tetrahedron)
// locates the tetrahedron, face, or edge a new vertex falls on; that
// feature is split (1->4, 2->6, or n->2n); and a stack-driven flip cascade
// (2->3, 3->2, 4->4) restores the Delaunay in-sphere property.
//
// As in package delaunay2d, construction starts from a bootstrap
// super-tetrahedron plus four "dummy" tetrahedra standing in for the
// outside world; tetrahedron slots 0-3 are always these dummies, slot 4
// is always the first real tetrahedron, and vertex slots 0-3 are always
// the super-tetrahedron's corners.
//
// Unlike the 2D builder, the 3->2 restoring flip frees a slot; freed
// slots are tracked on a freelist and reused by later splits, matching
// the original cVoronoi arena's deferred-free bookkeeping.
package delaunay3d

import (
	"errors"
	"math/rand"

	"github.com/yuyttenhove/cvoronoi/predicate"
	"github.com/yuyttenhove/cvoronoi/rescale"
)

// ErrDuplicatePoint is returned by AddVertex when the new point coincides
// exactly (in the 52-bit fixed-point domain) with an already-inserted
// point.
var ErrDuplicatePoint = errors.New("delaunay3d: duplicate point")

// dummyTets is the number of bootstrap tetrahedron slots (0-3) reserved
// for the sentinels surrounding the super-tetrahedron.
const dummyTets = 4

// Vertex is a single point in the mesh.
type Vertex struct {
	P      [3]float64
	I      [3]uint64
	Radius float64

	// BackTet and BackSlot are the back-link: a tetrahedron known to
	// currently list this vertex, and the slot (0..3) it occupies there.
	// Refreshed every time a tetrahedron carrying this vertex is
	// (re)created.
	BackTet  int32
	BackSlot int8
}

// Tetrahedron is one arena slot: four vertex ids, the neighbor
// tetrahedron across each opposite face, and the index each neighbor
// uses to point back at this tetrahedron.
type Tetrahedron struct {
	V      [4]int32
	Ngb    [4]int32
	NgbIdx [4]int8
}

// Builder incrementally constructs a 3D Delaunay tetrahedralization.
type Builder struct {
	enc *rescale.Encoder3D

	verts []Vertex
	tets  []Tetrahedron
	free  []int32

	ghostOffset int32

	queue []int32
	last  int32

	scratch *predicate.Scratch
	rng     *rand.Rand

	Verbose bool
}

// NewBuilder constructs a Builder bootstrapped with a super-tetrahedron
// that encloses box, enlarged by rescale.Enlargement3D.
func NewBuilder(box rescale.Box3D) *Builder {
	b := &Builder{
		enc:     rescale.NewEncoder3D(box),
		scratch: predicate.NewScratch(),
		rng:     rand.New(rand.NewSource(1)),
	}
	b.bootstrap()
	return b
}

// NumVertices returns the number of real vertices inserted so far,
// excluding the 4 bootstrap corners.
func (b *Builder) NumVertices() int { return len(b.verts) - 4 }

// Vertex returns the real vertex at position i (0-based, excluding the
// bootstrap corners).
func (b *Builder) Vertex(i int) Vertex { return b.verts[i+4] }

// GhostOffset returns the vertex index (0-based, excluding bootstrap
// corners) at which ghost vertices begin.
func (b *Builder) GhostOffset() int {
	if b.ghostOffset == 0 {
		return b.NumVertices()
	}
	return int(b.ghostOffset) - 4
}

// Consolidate marks every vertex inserted so far as real; subsequent
// AddVertex calls produce ghosts.
func (b *Builder) Consolidate() { b.ghostOffset = int32(len(b.verts)) }

// Tetrahedra iterates over every non-dummy, non-freed tetrahedron.
func (b *Builder) Tetrahedra(fn func(id int32, v [4]int32)) {
	freed := make(map[int32]bool, len(b.free))
	for _, f := range b.free {
		freed[f] = true
	}
	for i := dummyTets; i < len(b.tets); i++ {
		if freed[int32(i)] {
			continue
		}
		fn(int32(i), b.tets[i].V)
	}
}

func (b *Builder) vertAt(id int32) [3]uint64 { return b.verts[id].I }

func (b *Builder) newSlot() int32 {
	if n := len(b.free); n > 0 {
		id := b.free[n-1]
		b.free = b.free[:n-1]
		return id
	}
	b.tets = append(b.tets, Tetrahedron{})
	return int32(len(b.tets) - 1)
}

func (b *Builder) freeSlot(id int32) { b.free = append(b.free, id) }

// setVerts writes tet's vertex tuple and refreshes the back-link of each
// vertex it carries to point at tet, matching "simplex init... refreshes
// each vertex's back-link" from the bootstrap/insertion contract. The
// dummy tetrahedra's sentinel -1 "vertices" are skipped.
func (b *Builder) setVerts(tet int32, v [4]int32) {
	b.tets[tet].V = v
	for slot, id := range v {
		if id < 0 {
			continue
		}
		b.verts[id].BackTet = tet
		b.verts[id].BackSlot = int8(slot)
	}
}

func (b *Builder) enqueue(t int32) { b.queue = append(b.queue, t) }

func (b *Builder) dequeue() (int32, bool) {
	if len(b.queue) == 0 {
		return 0, false
	}
	n := len(b.queue) - 1
	t := b.queue[n]
	b.queue = b.queue[:n]
	return t, true
}

func (b *Builder) choose() bool { return b.rng.Intn(2) == 0 }

// SetRand overrides the builder's random source. 3D point location does
// not draw from it: locate steps across the last face that tests
// negative.
func (b *Builder) SetRand(r *rand.Rand) { b.rng = r }

// link sets a neighbor relationship on both sides at once.
func (b *Builder) link(aID int32, aIdx int8, bID int32, bIdx int8) {
	b.tets[aID].Ngb[aIdx] = bID
	b.tets[aID].NgbIdx[aIdx] = bIdx
	b.tets[bID].Ngb[bIdx] = aID
	b.tets[bID].NgbIdx[bIdx] = aIdx
}

func localIndex(v [4]int32, id int32) int8 {
	for i, x := range v {
		if x == id {
			return int8(i)
		}
	}
	return -1
}

func contains(v [4]int32, id int32) bool {
	return localIndex(v, id) >= 0
}

// autoLinkInternal links every pair of tets in slots whose vertex sets
// share exactly three vertices (i.e. a full shared face), overwriting
// whatever link that face held before. This sidesteps hand-derived
// index arithmetic for the new internal faces a split produces: any two
// freshly created tets that happen to share a triangular face belong
// together, and splits never produce a spurious 3-vertex overlap between
// tets that should not be adjacent (each split's vertex construction
// guarantees that).
func (b *Builder) autoLinkInternal(slots []int32) {
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			vi := b.tets[slots[i]].V
			vj := b.tets[slots[j]].V
			var missingI, missingJ int32 = -1, -1
			shared := 0
			for _, x := range vi {
				if contains(vj, x) {
					shared++
				} else {
					missingI = x
				}
			}
			if shared != 3 {
				continue
			}
			for _, x := range vj {
				if !contains(vi, x) {
					missingJ = x
				}
			}
			li := localIndex(vi, missingI)
			lj := localIndex(vj, missingJ)
			b.link(slots[i], li, slots[j], lj)
		}
	}
}

// faceVerts returns, for the face opposite local vertex i of tet t, the
// three remaining vertices in the order that makes
// predicate.Orient3D(that order, V[i]) agree in sign with
// Orient3D(V[0],V[1],V[2],V[3]) - i.e. an even permutation of the full
// vertex order for each omitted index. This fixed parity table is what
// lets every face test in point location and flipping share one sign
// convention: positive always means "same side as the omitted vertex".
func faceVerts(v [4]int32, i int) (j, k, l int32) {
	switch i {
	case 0:
		return v[1], v[3], v[2]
	case 1:
		return v[0], v[2], v[3]
	case 2:
		return v[0], v[3], v[1]
	default:
		return v[0], v[1], v[2]
	}
}
