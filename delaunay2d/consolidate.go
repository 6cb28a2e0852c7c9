package delaunay2d

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/yuyttenhove/cvoronoi/predicate"
)

// UpdateSearchRadii recomputes, for every real vertex, twice the largest
// circumradius among the triangles incident to it - the bookkeeping value
// the original cVoronoi sources use to decide whether another ring of
// ghost points is needed around a generator. A triangle with a bootstrap
// corner counts as having an infinite circumradius, so a vertex that still
// touches the super-triangle gets an infinite radius. It returns the
// number of vertices whose recomputed radius still exceeds threshold.
func (b *Builder) UpdateSearchRadii(threshold float64) int {
	for i := 3; i < len(b.verts); i++ {
		b.verts[i].Radius = 0
	}

	for i := dummyTriangles; i < len(b.tris); i++ {
		t := b.tris[i]
		r := math.Inf(1)
		if t.V[0] >= 3 && t.V[1] >= 3 && t.V[2] >= 3 {
			r = circumradius2D(b.verts[t.V[0]].P, b.verts[t.V[1]].P, b.verts[t.V[2]].P)
		}
		for _, v := range t.V {
			if v < 3 {
				continue
			}
			if got := 2 * r; got > b.verts[v].Radius {
				b.verts[v].Radius = got
			}
		}
	}

	exceeding := 0
	for i := 3; i < len(b.verts); i++ {
		if b.verts[i].Radius > threshold {
			exceeding++
		}
	}
	return exceeding
}

func circumradius2D(a, b, c [2]float64) float64 {
	pa := r2.Vec{X: a[0], Y: a[1]}
	pb := r2.Vec{X: b[0], Y: b[1]}
	pc := r2.Vec{X: c[0], Y: c[1]}

	ab := r2.Norm(pb.Sub(pa))
	bc := r2.Norm(pc.Sub(pb))
	ca := r2.Norm(pa.Sub(pc))
	area2 := math.Abs(pb.Sub(pa).Cross(pc.Sub(pa)))
	if area2 == 0 {
		return math.Inf(1)
	}
	return (ab * bc * ca) / (2 * area2)
}

// ErrInvariant is wrapped by CheckInvariants to report which invariant
// failed and where.
type ErrInvariant struct {
	Triangle int32
	Msg      string
}

func (e *ErrInvariant) Error() string {
	return fmt.Sprintf("delaunay2d: invariant violated at triangle %d: %s", e.Triangle, e.Msg)
}

// CheckInvariants verifies orientation positivity (I1), neighbor-pointer
// symmetry (I2), the empty-circle Delaunay property (I3), and vertex
// back-link correctness (I4) across every real triangle and vertex. It is
// not run implicitly; callers opt in (typically gated behind
// Builder.Verbose) since it walks the whole mesh.
func (b *Builder) CheckInvariants() error {
	for i := dummyTriangles; i < len(b.tris); i++ {
		t := b.tris[i]

		if predicate.Orient2D(b.scratch, b.vertAt(t.V[0]), b.vertAt(t.V[1]), b.vertAt(t.V[2])) <= 0 {
			return &ErrInvariant{int32(i), "triangle is not positively oriented"}
		}

		for e := 0; e < 3; e++ {
			ngb := t.Ngb[e]
			idx := t.NgbIdx[e]
			if ngb < dummyTriangles {
				continue
			}
			other := b.tris[ngb]
			if other.Ngb[idx] != int32(i) {
				return &ErrInvariant{int32(i), fmt.Sprintf("neighbor backpointer mismatch at edge %d", e)}
			}
			if other.NgbIdx[idx] != int8(e) {
				return &ErrInvariant{int32(i), fmt.Sprintf("neighbor index backpointer mismatch at edge %d", e)}
			}

			apex1 := t.V[e]
			a := t.V[(e+1)%3]
			bVert := t.V[(e+2)%3]
			apex2 := other.V[idx]
			if predicate.InCircle2D(b.scratch, b.vertAt(apex1), b.vertAt(a), b.vertAt(bVert), b.vertAt(apex2)) > 0 {
				return &ErrInvariant{int32(i), fmt.Sprintf("empty-circle property violated across edge %d", e)}
			}
		}
	}

	for i := 0; i < len(b.verts); i++ {
		v := b.verts[i]
		if int(v.BackTri) >= len(b.tris) {
			return &ErrInvariant{v.BackTri, fmt.Sprintf("vertex %d back-link points out of range", i)}
		}
		back := b.tris[v.BackTri]
		if v.BackSlot < 0 || v.BackSlot >= 3 || back.V[v.BackSlot] != int32(i) {
			return &ErrInvariant{v.BackTri, fmt.Sprintf("vertex %d back-link does not list it at the recorded slot", i)}
		}
	}
	return nil
}
