package atlas

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// halfspace is one linear constraint of a chart's validity polytope, in the
// chart's own tangent coordinates. Neighbor links are relational only: a
// halfspace carries the neighbor's ChartID and coefficients, never the chart.
type halfspace struct {
	neighbor ChartID
	u        []float64 // tangent image of the neighbor's anchor
	rhs      float64   // ‖u‖²/2: accept v iff v·u ≤ rhs (closer to us than to them)
}

// Chart is a local linear approximation of the manifold: an on-manifold
// anchor x0, an orthonormal tangent basis Φ (n×k), and a validity polytope
// (the radius ball intersected with neighbor halfspaces) inside which the
// chart is authoritative. Charts are owned exclusively by their Atlas and
// mutate only by radius shrinkage and neighbor-halfspace installation.
type Chart struct {
	id     ChartID
	anchor []float64
	basis  *mat.Dense // n×k, orthonormal null-space basis of J(anchor)
	radius float64

	polytope []halfspace
	measure  float64 // cached Monte-Carlo polytope measure

	owner *Atlas
}

// ID returns the chart's stable identifier within its atlas.
func (c *Chart) ID() ChartID { return c.id }

// Anchor returns a copy of the chart's on-manifold anchor point.
func (c *Chart) Anchor() []float64 { return append([]float64(nil), c.anchor...) }

// Radius returns the current validity radius ρ.
func (c *Chart) Radius() float64 { return c.radius }

// Measure returns the cached Monte-Carlo estimate of the polytope measure.
func (c *Chart) Measure() float64 { return c.measure }

// ToTangent maps an ambient point into the chart's tangent coordinates:
// u = Φᵗ(x − x0). Purely linear; no projection involved.
func (c *Chart) ToTangent(x []float64) []float64 {
	n, k := c.owner.man.AmbientDim(), c.owner.man.Dim()
	diff := make([]float64, n)
	floats.SubTo(diff, x, c.anchor)

	u := make([]float64, k)
	mat.NewVecDense(k, u).MulVec(c.basis.T(), mat.NewVecDense(n, diff))

	return u
}

// FromTangent maps tangent coordinates back to the manifold: x = x0 + Φu,
// re-projected onto F(x)=0 because tangent-space linearity is only a local
// approximation. Returns manifold.ErrProjectionFailed when the correction
// does not converge.
func (c *Chart) FromTangent(u []float64) ([]float64, error) {
	x := c.linear(u)
	if err := c.owner.man.ProjectInPlace(x); err != nil {
		return nil, err
	}

	return x, nil
}

// linear is FromTangent without the projection: the raw chart-plane point.
func (c *Chart) linear(u []float64) []float64 {
	n, k := c.owner.man.AmbientDim(), c.owner.man.Dim()
	x := make([]float64, n)
	mat.NewVecDense(n, x).MulVec(c.basis, mat.NewVecDense(k, u))
	floats.Add(x, c.anchor)

	return x
}

// contains reports whether the ambient point x (with tangent image u) lies
// in the chart's validity region. The polytope test alone is not enough: the
// tangent image of a far-away point can collapse near the origin (antipodal
// points on a sphere map to u ≈ 0), so x must also stay within the deviation
// bound ε of its chart-plane image.
func (c *Chart) contains(x, u []float64) bool {
	return c.inPolytope(u) && Distance(x, c.linear(u)) <= c.owner.epsilon
}

// inPolytope reports whether a tangent point lies where this chart is
// authoritative: inside the radius ball and on this chart's side of every
// neighbor's perpendicular-bisector halfspace.
func (c *Chart) inPolytope(u []float64) bool {
	if floats.Norm(u, 2) > c.radius {
		return false
	}
	for i := range c.polytope {
		if floats.Dot(u, c.polytope[i].u) > c.polytope[i].rhs {
			return false
		}
	}

	return true
}

// addNeighbor installs the halfspace contributed by an overlapping chart:
// points closer (in tangent coordinates) to the neighbor's anchor than to
// this chart's own anchor are ceded to the neighbor, preventing ambiguous
// double coverage. Coincident anchors contribute nothing.
func (c *Chart) addNeighbor(other *Chart) {
	u := c.ToTangent(other.anchor)
	sq := floats.Dot(u, u)
	if sq == 0 {
		return
	}
	c.polytope = append(c.polytope, halfspace{neighbor: other.id, u: u, rhs: sq / 2})
}

// basisRankTolerance separates genuine null-space directions from noise,
// relative to the largest singular value.
const basisRankTolerance = 1e-9

// computeBasis builds the orthonormal tangent basis as the null space of
// J(anchor), taken from the right singular vectors of a full-V SVD.
// A rank-deficient Jacobian at the anchor is a degenerate chart.
func (c *Chart) computeBasis() error {
	n, m := c.owner.man.AmbientDim(), c.owner.man.ConstraintDim()

	var svd mat.SVD
	if ok := svd.Factorize(c.owner.man.J(c.anchor), mat.SVDFullV); !ok {
		return ErrChartDegenerate
	}

	vals := svd.Values(nil)
	if vals[m-1] <= basisRankTolerance*math.Max(1, vals[0]) {
		return ErrChartDegenerate
	}

	var v mat.Dense
	svd.VTo(&v)
	c.basis = mat.DenseCopyOf(v.Slice(0, n, m, n))

	return nil
}

// validate shrinks the radius until boundary points of the chart stay within
// the atlas deviation bound ε and the chart-to-manifold angle bound α. The
// shrink-and-retry loop is bounded by the minimum-radius floor: charts that
// cannot satisfy the bounds above it are degenerate, not retried forever.
func (c *Chart) validate() error {
	for c.radius >= c.owner.minRadius {
		if c.boundaryOK() {
			return nil
		}
		c.radius /= 2
	}

	return ErrChartDegenerate
}

// boundaryOK probes boundary points at the current radius: each axis
// direction (both signs) plus as many random directions again. Every probe
// must project back onto the manifold, land within ε of the chart plane, and
// see a local manifold tangent within α of the chart's own tangent plane.
func (c *Chart) boundaryOK() bool {
	k := c.owner.man.Dim()
	dir := make([]float64, k)

	for probe := 0; probe < 4*k; probe++ {
		switch {
		case probe < 2*k: // deterministic axis probes
			for i := range dir {
				dir[i] = 0
			}
			dir[probe/2] = c.radius
			if probe%2 == 1 {
				dir[probe/2] = -c.radius
			}
		default: // random directions
			c.owner.sphereSample(dir, c.radius)
		}

		if !c.boundaryProbe(dir) {
			return false
		}
	}

	return true
}

// boundaryProbe checks a single boundary point in tangent coordinates.
func (c *Chart) boundaryProbe(u []float64) bool {
	x := c.linear(u)
	y := append([]float64(nil), x...)
	if err := c.owner.man.ProjectInPlace(y); err != nil {
		return false
	}

	// Deviation between the chart plane and the manifold.
	if Distance(x, y) > c.owner.epsilon {
		return false
	}

	// Angle between the chart's tangent plane and the manifold tangent at
	// the projection. Each entry of g = J(y)·Φ, scaled by the row norm, is
	// the sine of the angle between one chart basis direction and the
	// manifold along one normal direction; bounding every entry by sin α is
	// a conservative surrogate for bounding the principal angle between the
	// two tangent subspaces (the largest singular value of the normalized g)
	// and coincides with it exactly when there is a single constraint.
	jac := c.owner.man.J(y)
	m, k := c.owner.man.ConstraintDim(), c.owner.man.Dim()
	var g mat.Dense
	g.Mul(jac, c.basis) // m×k

	for i := 0; i < m; i++ {
		rowNorm := floats.Norm(jac.RawRowView(i), 2)
		if rowNorm == 0 {
			return false
		}
		for l := 0; l < k; l++ {
			if math.Abs(g.At(i, l))/rowNorm > c.owner.sinAlpha {
				return false
			}
		}
	}

	return true
}

// updateMeasure re-estimates the polytope measure by Monte-Carlo integration
// over the radius ball: measure = V_k(ρ) · hit fraction. Sample count scales
// as thoroughness^k. Called after every radius or polytope change.
func (c *Chart) updateMeasure() {
	k := c.owner.man.Dim()
	samples := c.owner.monteCarloSamples()

	u := make([]float64, k)
	hits := 0
	for s := 0; s < samples; s++ {
		c.owner.ballSample(u, c.radius)
		if c.inPolytope(u) {
			hits++
		}
	}

	c.measure = ballMeasure(k, c.radius) * float64(hits) / float64(samples)
}

// ballMeasure returns the volume of the k-ball of radius r:
// π^(k/2)·r^k / Γ(k/2 + 1).
func ballMeasure(k int, r float64) float64 {
	return math.Pow(math.Pi, float64(k)/2) * math.Pow(r, float64(k)) / math.Gamma(float64(k)/2+1)
}
