package delaunay3d

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/yuyttenhove/cvoronoi/predicate"
)

// UpdateSearchRadii recomputes, for every real vertex, twice the largest
// circumradius among the tetrahedra incident to it, mirroring
// delaunay2d.UpdateSearchRadii for the 3D case: a tetrahedron with a
// bootstrap corner counts as having an infinite circumradius.
func (b *Builder) UpdateSearchRadii(threshold float64) int {
	for i := 4; i < len(b.verts); i++ {
		b.verts[i].Radius = 0
	}

	freed := make(map[int32]bool, len(b.free))
	for _, f := range b.free {
		freed[f] = true
	}

	for i := dummyTets; i < len(b.tets); i++ {
		if freed[int32(i)] {
			continue
		}
		t := b.tets[i]
		r := math.Inf(1)
		if t.V[0] >= 4 && t.V[1] >= 4 && t.V[2] >= 4 && t.V[3] >= 4 {
			_, r = circumcenter3D(b.verts[t.V[0]].P, b.verts[t.V[1]].P, b.verts[t.V[2]].P, b.verts[t.V[3]].P)
		}
		for _, v := range t.V {
			if v < 4 {
				continue
			}
			if got := 2 * r; got > b.verts[v].Radius {
				b.verts[v].Radius = got
			}
		}
	}

	exceeding := 0
	for i := 4; i < len(b.verts); i++ {
		if b.verts[i].Radius > threshold {
			exceeding++
		}
	}
	return exceeding
}

// circumcenter3D returns the center and radius of the sphere through a, b,
// c, d, using the standard vector-triple-product construction.
func circumcenter3D(a, b, c, d [3]float64) (r3.Vec, float64) {
	pa := r3.Vec{X: a[0], Y: a[1], Z: a[2]}
	pb := r3.Vec{X: b[0], Y: b[1], Z: b[2]}
	pc := r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	pd := r3.Vec{X: d[0], Y: d[1], Z: d[2]}

	u := r3.Sub(pb, pa)
	v := r3.Sub(pc, pa)
	w := r3.Sub(pd, pa)

	denom := 2 * r3.Dot(u, r3.Cross(v, w))
	if denom == 0 {
		return pa, math.Inf(1)
	}

	num := r3.Add(
		r3.Add(
			r3.Scale(r3.Dot(u, u), r3.Cross(v, w)),
			r3.Scale(r3.Dot(v, v), r3.Cross(w, u)),
		),
		r3.Scale(r3.Dot(w, w), r3.Cross(u, v)),
	)
	offset := r3.Scale(1/denom, num)
	center := r3.Add(pa, offset)
	return center, r3.Norm(offset)
}

// ErrInvariant is wrapped by CheckInvariants to report which invariant
// failed and where.
type ErrInvariant struct {
	Tetrahedron int32
	Msg         string
}

func (e *ErrInvariant) Error() string {
	return fmt.Sprintf("delaunay3d: invariant violated at tetrahedron %d: %s", e.Tetrahedron, e.Msg)
}

// CheckInvariants verifies orientation positivity (I1), neighbor-pointer
// symmetry (I2), the empty-sphere Delaunay property (I3), and vertex
// back-link correctness (I4) across every real, non-freed tetrahedron and
// vertex.
func (b *Builder) CheckInvariants() error {
	freed := make(map[int32]bool, len(b.free))
	for _, f := range b.free {
		freed[f] = true
	}

	for i := dummyTets; i < len(b.tets); i++ {
		if freed[int32(i)] {
			continue
		}
		t := b.tets[i]

		if predicate.Orient3D(b.scratch, b.vertAt(t.V[0]), b.vertAt(t.V[1]), b.vertAt(t.V[2]), b.vertAt(t.V[3])) <= 0 {
			return &ErrInvariant{int32(i), "tetrahedron is not positively oriented"}
		}

		for f := 0; f < 4; f++ {
			ngb := t.Ngb[f]
			idx := t.NgbIdx[f]
			if ngb < dummyTets {
				continue
			}
			other := b.tets[ngb]
			if other.Ngb[idx] != int32(i) {
				return &ErrInvariant{int32(i), fmt.Sprintf("neighbor backpointer mismatch at face %d", f)}
			}
			if other.NgbIdx[idx] != int8(f) {
				return &ErrInvariant{int32(i), fmt.Sprintf("neighbor index backpointer mismatch at face %d", f)}
			}

			apex1 := t.V[f]
			j, k, l := faceVerts(t.V, f)
			apex2 := other.V[idx]
			if predicate.InSphere3D(b.scratch, b.vertAt(j), b.vertAt(k), b.vertAt(l), b.vertAt(apex1), b.vertAt(apex2)) > 0 {
				return &ErrInvariant{int32(i), fmt.Sprintf("empty-sphere property violated across face %d", f)}
			}
		}
	}

	for i := 0; i < len(b.verts); i++ {
		v := b.verts[i]
		if int(v.BackTet) >= len(b.tets) || freed[v.BackTet] {
			return &ErrInvariant{v.BackTet, fmt.Sprintf("vertex %d back-link points out of range", i)}
		}
		back := b.tets[v.BackTet]
		if v.BackSlot < 0 || v.BackSlot >= 4 || back.V[v.BackSlot] != int32(i) {
			return &ErrInvariant{v.BackTet, fmt.Sprintf("vertex %d back-link does not list it at the recorded slot", i)}
		}
	}
	return nil
}
