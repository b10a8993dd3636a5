package atlas

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/atlas/manifold"
	"github.com/katalvlaran/atlas/pdf"
	"gonum.org/v1/gonum/floats"
)

// Atlas owns the complete chart set covering the explored regions of a
// constraint manifold, plus the global numeric parameters and the weighted
// chart-selection index keyed by chart measure.
//
// Concurrency: none. All atlas, chart, traversal and sampler operations
// assume exclusive access with no internal locking; concurrent calls into
// the same atlas must be serialized by the caller. Charts live exactly as
// long as their atlas: the chart set grows monotonically within a session,
// and individual charts only ever shrink in radius.
type Atlas struct {
	man    *manifold.Manifold
	charts []*Chart  // append-only arena; ChartID indexes into it
	index  *pdf.Tree // selection index, weight = chart measure
	rng    *rand.Rand

	delta        float64 // traversal step size
	epsilon      float64 // max chart-to-manifold deviation
	rho          float64 // chart radius cap
	alpha        float64 // max chart-to-manifold angle
	sinAlpha     float64
	exploration  float64 // refinement/exploration balance, [0,1)
	lambda       float64 // traversal slack, > 1
	thoroughness float64 // Monte-Carlo density
	minRadius    float64 // chart radius shrink floor
}

// New builds an empty atlas over man with the documented defaults, then
// applies opts in order. Seed start/goal regions with NewChart before
// sampling or traversing.
func New(man *manifold.Manifold, opts ...Option) (*Atlas, error) {
	if man == nil {
		return nil, ErrNilManifold
	}

	a := &Atlas{
		man:          man,
		index:        pdf.New(),
		rng:          rand.New(rand.NewSource(defaultSeed)),
		delta:        DefaultDelta,
		epsilon:      DefaultEpsilon,
		rho:          DefaultRho,
		alpha:        DefaultAlpha,
		sinAlpha:     math.Sin(DefaultAlpha),
		exploration:  DefaultExploration,
		lambda:       DefaultLambda,
		thoroughness: DefaultThoroughness,
		minRadius:    DefaultMinRadius,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Manifold returns the constraint manifold this atlas covers.
func (a *Atlas) Manifold() *manifold.Manifold { return a.man }

// Delta returns the traversal step size δ.
func (a *Atlas) Delta() float64 { return a.delta }

// Epsilon returns the maximum chart-to-manifold deviation ε.
func (a *Atlas) Epsilon() float64 { return a.epsilon }

// Rho returns the chart validity radius cap ρ.
func (a *Atlas) Rho() float64 { return a.rho }

// Alpha returns the maximum chart-to-manifold angle α.
func (a *Atlas) Alpha() float64 { return a.alpha }

// Exploration returns the refinement/exploration balance.
func (a *Atlas) Exploration() float64 { return a.exploration }

// Lambda returns the traversal slack multiplier λ.
func (a *Atlas) Lambda() float64 { return a.lambda }

// Thoroughness returns the Monte-Carlo measure density.
func (a *Atlas) Thoroughness() float64 { return a.thoroughness }

// ChartCount returns the number of charts currently in the atlas.
func (a *Atlas) ChartCount() int { return len(a.charts) }

// Chart resolves a ChartID to its chart; ok is false for IDs this atlas
// never handed out.
func (a *Atlas) Chart(id ChartID) (*Chart, bool) {
	if id < 0 || int(id) >= len(a.charts) {
		return nil, false
	}

	return a.charts[id], true
}

// NewChart creates, validates and registers a chart anchored at (the
// projection of) anchor. The anchor is corrected onto the manifold first, so
// every registered chart satisfies ‖F(x0)‖ < tolerance. Mutual bisector
// halfspaces are installed against every existing chart whose anchor lies
// within 2ρ, and the measures of all touched charts are refreshed.
//
// Errors:
//   - ErrDimensionMismatch            — wrong anchor length.
//   - manifold.ErrProjectionFailed    — anchor cannot be corrected onto the manifold.
//   - ErrChartDegenerate              — rank-deficient Jacobian at the anchor, or
//     the radius floor was reached before the curvature bounds held.
//
// Complexity: O(chartCount) for the overlap scan (anchors never move and
// session chart counts stay small, so a spatial index would buy nothing
// here), plus the Monte-Carlo cost of the measure refreshes.
func (a *Atlas) NewChart(anchor []float64) (*Chart, error) {
	if len(anchor) != a.man.AmbientDim() {
		return nil, ErrDimensionMismatch
	}

	x0, err := a.man.Project(anchor)
	if err != nil {
		return nil, err
	}

	c := &Chart{
		id:     ChartID(len(a.charts)),
		anchor: x0,
		radius: a.rho,
		owner:  a,
	}
	if err = c.computeBasis(); err != nil {
		return nil, err
	}
	if err = c.validate(); err != nil {
		return nil, err
	}

	// Mutual halfspace installation against overlapping charts.
	for _, other := range a.charts {
		if Distance(other.anchor, x0) <= 2*a.rho {
			c.addNeighbor(other)
			other.addNeighbor(c)
		}
	}

	a.charts = append(a.charts, c)
	c.updateMeasure()
	if _, err = a.index.Add(c.measure); err != nil {
		// Measures are ballMeasure-scaled hit fractions: finite, non-negative.
		panic("atlas: invariant violation: " + err.Error())
	}

	// New halfspaces shrank the neighbors' polytopes; refresh their weights.
	for i := range c.polytope {
		nb := a.charts[c.polytope[i].neighbor]
		nb.updateMeasure()
		if err = a.index.Update(int(nb.id), nb.measure); err != nil {
			panic("atlas: invariant violation: " + err.Error())
		}
	}

	return c, nil
}

// OwningChart finds the chart whose validity region contains x: tangent
// image inside the polytope AND ambient deviation from the chart plane
// within ε, so a chart never claims a point far away in ambient space. The
// hint chart is checked first (the traversal fast path), then the hint's
// recorded neighbors, then all charts by tangent proximity. Returns
// NoChart, false when no chart covers x.
func (a *Atlas) OwningChart(x []float64, hint ChartID) (ChartID, bool) {
	if c, ok := a.Chart(hint); ok {
		if c.contains(x, c.ToTangent(x)) {
			return c.id, true
		}
		for i := range c.polytope {
			nb := a.charts[c.polytope[i].neighbor]
			if nb.contains(x, nb.ToTangent(x)) {
				return nb.id, true
			}
		}
	}

	// Full scan, nearest (in tangent norm) containing chart wins.
	best := NoChart
	bestNorm := math.Inf(1)
	for _, c := range a.charts {
		u := c.ToTangent(x)
		if norm := floats.Norm(u, 2); norm < bestNorm && c.contains(x, u) {
			best = c.id
			bestNorm = norm
		}
	}

	return best, best != NoChart
}

// SampleChart draws a chart: with probability (1 − exploration) weighted by
// measure (refinement), otherwise uniformly over all charts (exploration).
// When every measure is zero the weighted draw degrades to uniform.
func (a *Atlas) SampleChart() (*Chart, error) {
	if len(a.charts) == 0 {
		return nil, ErrNoCharts
	}

	if a.rng.Float64() >= a.exploration {
		id, err := a.index.Sample(a.rng.Float64())
		if err == nil {
			return a.charts[id], nil
		}
		// Zero total measure: fall through to the uniform draw.
	}

	return a.charts[a.rng.Intn(len(a.charts))], nil
}

// dichotomicMaxIterations caps the bisection; each iteration halves the
// interval, so 64 is far beyond float64 resolution.
const dichotomicMaxIterations = 64

// DichotomicSearch bisects, in c's tangent coordinates, the segment between
// uinside (inside c's polytope) and uoutside (outside it), returning an
// interior point within half a step size of the polytope border. Traversal
// uses it to seed a new chart cleanly when it exits the current one.
func (a *Atlas) DichotomicSearch(c *Chart, uinside, uoutside []float64) []float64 {
	lo := append([]float64(nil), uinside...)
	hi := append([]float64(nil), uoutside...)
	mid := make([]float64, len(lo))

	for i := 0; i < dichotomicMaxIterations && floats.Distance(lo, hi, 2) > a.delta/2; i++ {
		floats.AddScaledTo(mid, lo, 1, hi)
		floats.Scale(0.5, mid)
		if c.inPolytope(mid) {
			copy(lo, mid)
		} else {
			copy(hi, mid)
		}
	}

	return lo
}

// minMonteCarloSamples floors the measure sample count: at low thoroughness
// in low dimensions, ⌈thoroughness^k⌉ alone is too sparse to register a
// polytope clipped by a fresh neighbor halfspace.
const minMonteCarloSamples = 100

// monteCarloSamples returns max(⌈thoroughness^k⌉, minMonteCarloSamples), the
// sample count for chart measure estimation.
func (a *Atlas) monteCarloSamples() int {
	n := int(math.Ceil(math.Pow(a.thoroughness, float64(a.man.Dim()))))
	if n < minMonteCarloSamples {
		n = minMonteCarloSamples
	}

	return n
}

// samplingRadius derives a chart's sampling radius from its validity radius
// and the exploration parameter: refinement sampling stays well inside the
// validated polytope (ρ/2), exploration sampling reaches the frontier (ρ).
// Always ≤ the chart radius.
func (a *Atlas) samplingRadius(c *Chart) float64 {
	return c.radius * (1 + a.exploration) / 2
}

// sphereSample fills dir with a uniform point on the (k−1)-sphere of radius r.
func (a *Atlas) sphereSample(dir []float64, r float64) {
	for {
		for i := range dir {
			dir[i] = a.rng.NormFloat64()
		}
		if norm := floats.Norm(dir, 2); norm > 0 {
			floats.Scale(r/norm, dir)

			return
		}
	}
}

// ballSample fills u with a uniform point in the k-ball of radius r.
func (a *Atlas) ballSample(u []float64, r float64) {
	a.sphereSample(u, r)
	floats.Scale(math.Pow(a.rng.Float64(), 1/float64(len(u))), u)
}
