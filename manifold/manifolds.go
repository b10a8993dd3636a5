package manifold

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Ready-made constraint oracles. These exist for tests, examples and
// benchmarks; real applications supply their own Constraint/Jacobian pair
// (typically kinematic loop-closure or end-effector constraints).

// Sphere returns the oracle of the unit (dim−1)-sphere in R^dim:
// F(x) = ‖x‖ − 1, a single constraint, so the manifold dimension is dim−1.
// The Jacobian is undefined at the origin; seeds must avoid it.
func Sphere(dim int) (Constraint, Jacobian) {
	f := func(x []float64) []float64 {
		return []float64{floats.Norm(x, 2) - 1}
	}
	j := func(x []float64) *mat.Dense {
		norm := floats.Norm(x, 2)
		row := make([]float64, dim)
		for i, xi := range x {
			row[i] = xi / norm
		}

		return mat.NewDense(1, dim, row)
	}

	return f, j
}

// Torus returns the oracle of a torus in R³ with major radius major and tube
// radius tube: F(x) = (√(x²+y²) − major)² + z² − tube². One constraint, so
// the manifold dimension is 2. Degenerate on the z-axis where √(x²+y²) = 0.
func Torus(major, tube float64) (Constraint, Jacobian) {
	f := func(x []float64) []float64 {
		c := math.Hypot(x[0], x[1])

		return []float64{(c-major)*(c-major) + x[2]*x[2] - tube*tube}
	}
	j := func(x []float64) *mat.Dense {
		c := math.Hypot(x[0], x[1])
		s := 2 * (c - major) / c

		return mat.NewDense(1, 3, []float64{s * x[0], s * x[1], 2 * x[2]})
	}

	return f, j
}

// Linkage returns the oracle of a 4-dimensional manifold in R⁹ built from
// three 3D points p1, p2, p3 (x = p1‖p2‖p3) with five constraints:
//
//	p1 and p2 share x and y coordinates; p1 sits exactly 3 units above p2;
//	p3 orbits p1 at distance 2; p3 lies in the plane perpendicular to p1.
//
// A small articulated-linkage stand-in with a non-trivial curved component.
func Linkage() (Constraint, Jacobian) {
	f := func(x []float64) []float64 {
		p1, p2, p3 := x[0:3], x[3:6], x[6:9]
		d := make([]float64, 3)
		floats.SubTo(d, p1, p3)

		return []float64{
			p1[0] - p2[0],
			p1[1] - p2[1],
			p1[2] - p2[2] - 3,
			floats.Norm(d, 2) - 2,
			(p3[0]-p1[0])*p1[0] + (p3[1]-p1[1])*p1[1] + (p3[2]-p1[2])*p1[2],
		}
	}
	j := func(x []float64) *mat.Dense {
		p1, p3 := x[0:3], x[6:9]
		d := make([]float64, 3)
		floats.SubTo(d, p1, p3)
		norm := floats.Norm(d, 2)

		jac := mat.NewDense(5, 9, nil)
		jac.Set(0, 0, 1)
		jac.Set(0, 3, -1)
		jac.Set(1, 1, 1)
		jac.Set(1, 4, -1)
		jac.Set(2, 2, 1)
		jac.Set(2, 5, -1)
		for i := 0; i < 3; i++ {
			jac.Set(3, i, d[i]/norm)
			jac.Set(3, 6+i, -d[i]/norm)
			jac.Set(4, i, p3[i]-2*p1[i])
			jac.Set(4, 6+i, p1[i])
		}

		return jac
	}

	return f, j
}
