// Package delaunay2d implements incremental 2D Delaunay triangulation: a
// point-location walk locates the triangle containing each new vertex, the
// vertex splits that triangle (or the two triangles sharing an edge, if it
// falls exactly on one), and a stack-driven flip cascade restores the
// Delaunay property locally.
//
// Construction always begins from a bootstrap super-triangle enclosing the
// caller's bounding box (see package rescale for the enlargement cushion),
// represented internally together with three "dummy" triangles that give
// every boundary edge of the super-triangle a real neighbor to point at.
// Triangle slots 0, 1, 2 are always these dummies; slot 3 is always the
// first real triangle. Vertex slots 0, 1, 2 are always the super-triangle
// corners.
package delaunay2d

import (
	"errors"
	"math/rand"

	"github.com/yuyttenhove/cvoronoi/predicate"
	"github.com/yuyttenhove/cvoronoi/rescale"
)

// ErrDuplicatePoint is returned by AddVertex when the new point coincides
// exactly (in the 52-bit fixed-point domain) with an already-inserted
// point.
var ErrDuplicatePoint = errors.New("delaunay2d: duplicate point")

// dummyTriangles is the number of bootstrap triangle slots (0, 1, 2)
// reserved for the sentinel triangles surrounding the super-triangle.
const dummyTriangles = 3

// Vertex is a single point in the mesh, carrying both its original
// floating-point coordinates and the fixed-point coordinates used by the
// exact predicates.
type Vertex struct {
	P      [2]float64
	I      [2]uint64
	Radius float64

	// BackTri and BackSlot are the back-link: a triangle known to
	// currently list this vertex, and the slot (0..2) it occupies there.
	// Refreshed every time a triangle carrying this vertex is (re)created.
	BackTri  int32
	BackSlot int8
}

// Triangle is one arena slot: three vertex ids in CCW order, the neighbor
// triangle across each opposite edge, and the index each neighbor uses to
// point back at this triangle (so updating a shared edge is O(1) on both
// sides).
type Triangle struct {
	V      [3]int32
	Ngb    [3]int32
	NgbIdx [3]int8
}

// swapNeighbour rewrites the neighbor pointer at position which, keeping
// the reciprocal NgbIdx bookkeeping for whichever triangle now occupies
// that slot consistent with newIdx - the index under which this triangle
// is recorded in the new neighbor's own Ngb array.
func (t *Triangle) swapNeighbour(which int, newNgb int32, newIdx int8) {
	t.Ngb[which] = newNgb
	t.NgbIdx[which] = newIdx
}

// Builder incrementally constructs a 2D Delaunay triangulation.
type Builder struct {
	enc *rescale.Encoder2D

	verts []Vertex
	tris  []Triangle

	ghostOffset int32

	queue []int32

	last int32 // point-location search hint

	scratch *predicate.Scratch
	rng     *rand.Rand

	// Verbose is a plain flag for the caller's own use: nothing in the
	// builder reads it. CheckInvariants runs only when called explicitly;
	// a driver can use this flag to record whether it wants that sweep
	// after every insertion.
	Verbose bool
}

// NewBuilder constructs a Builder bootstrapped with a super-triangle that
// encloses box, enlarged by rescale.Enlargement2D.
func NewBuilder(box rescale.Box2D) *Builder {
	b := &Builder{
		enc:     rescale.NewEncoder2D(box),
		scratch: predicate.NewScratch(),
		rng:     rand.New(rand.NewSource(1)),
	}
	b.bootstrap()
	return b
}

// NumVertices returns the number of real (non-super-triangle) vertices
// inserted so far, excluding the 3 bootstrap corners.
func (b *Builder) NumVertices() int { return len(b.verts) - 3 }

// Vertex returns the real vertex at position i (0-based, excluding the
// bootstrap corners).
func (b *Builder) Vertex(i int) Vertex { return b.verts[i+3] }

// GhostOffset returns the vertex index (0-based, excluding bootstrap
// corners) at which ghost vertices begin, or NumVertices() if
// Consolidate has not been called.
func (b *Builder) GhostOffset() int {
	if b.ghostOffset == 0 {
		return b.NumVertices()
	}
	return int(b.ghostOffset) - 3
}

// Consolidate marks every vertex inserted so far as "real"; any vertex
// added afterwards is a ghost. This matches delaunay_consolidate in the
// original cVoronoi sources: it is a one-way bookkeeping step, not a
// structural change to the mesh.
func (b *Builder) Consolidate() { b.ghostOffset = int32(len(b.verts)) }

// Triangles iterates over every non-dummy triangle, calling fn with its
// three vertex ids (bootstrap-corner ids included; callers that want only
// triangles made of real vertices should filter ids < 3).
func (b *Builder) Triangles(fn func(v0, v1, v2 int32)) {
	for i := dummyTriangles; i < len(b.tris); i++ {
		t := b.tris[i]
		fn(t.V[0], t.V[1], t.V[2])
	}
}

func (b *Builder) newTriangleSlot() int32 {
	b.tris = append(b.tris, Triangle{})
	return int32(len(b.tris) - 1)
}

// setVerts writes tri's vertex tuple and refreshes the back-link of each
// vertex it carries to point at tri, matching "simplex init... refreshes
// each vertex's back-link" from the bootstrap/insertion contract. The
// dummy triangles' sentinel -1 "vertices" are skipped.
func (b *Builder) setVerts(tri int32, v [3]int32) {
	b.tris[tri].V = v
	for slot, id := range v {
		if id < 0 {
			continue
		}
		b.verts[id].BackTri = tri
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

// choose breaks a tie between two equally valid candidates, matching
// delaunay_choose in the original sources: a coin flip. Seeding is a
// caller concern; set Rand to control it.
func (b *Builder) choose() bool { return b.rng.Intn(2) == 0 }

// SetRand overrides the random source locate uses to pick between two
// edges when the new point lies outside more than one edge of the
// current triangle.
func (b *Builder) SetRand(r *rand.Rand) { b.rng = r }
