package voronoi

import "gonum.org/v1/gonum/spatial/r3"

func vec(p [3]float64) r3.Vec { return r3.Vec{X: p[0], Y: p[1], Z: p[2]} }

func unvec(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// tetrahedronCentroidVolume returns the volume and centroid of the
// tetrahedron (a, b, c, d), fanned from apex a. The sign of the returned
// volume follows the winding of (b, c, d); callers that only need a cell's
// total volume take the absolute value, since the fan triangulation a
// Voronoi face is built from is consistently wound but not guaranteed
// positive.
func tetrahedronCentroidVolume(a, b, c, d [3]float64) (volume float64, centroid [3]float64) {
	pa, pb, pc, pd := vec(a), vec(b), vec(c), vec(d)
	u := r3.Sub(pb, pa)
	v := r3.Sub(pc, pa)
	w := r3.Sub(pd, pa)
	volume = r3.Dot(u, r3.Cross(v, w)) / 6

	sum := r3.Add(r3.Add(pa, pb), r3.Add(pc, pd))
	centroid = unvec(r3.Scale(0.25, sum))
	return volume, centroid
}

// polygonCentroidArea computes the area and area-weighted centroid of a
// planar convex polygon given in winding order, by fanning triangles from
// verts[0] and summing their unsigned areas.
func polygonCentroidArea(verts [][3]float64) (area float64, midpoint [3]float64) {
	if len(verts) < 3 {
		return 0, [3]float64{}
	}
	p0 := vec(verts[0])
	var centroidSum r3.Vec
	for i := 1; i < len(verts)-1; i++ {
		p1 := vec(verts[i])
		p2 := vec(verts[i+1])
		cross := r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
		triArea := 0.5 * r3.Norm(cross)
		if triArea == 0 {
			continue
		}
		triCentroid := r3.Scale(1.0/3.0, r3.Add(r3.Add(p0, p1), p2))
		area += triArea
		centroidSum = r3.Add(centroidSum, r3.Scale(triArea, triCentroid))
	}
	if area == 0 {
		return 0, unvec(p0)
	}
	return area, unvec(r3.Scale(1/area, centroidSum))
}
