package atlas

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Sampler draws random on-manifold states from the charted regions of an
// atlas, biased between refinement (inside known charts, weighted by
// measure) and exploration (uniform over charts, reaching the frontier).
//
// The sampler shares its atlas's single-threaded contract. It carries its
// own RNG stream so that sampling noise does not perturb the atlas's
// internal (validation/measure) randomness; seed==0 means the fixed default.
type Sampler struct {
	a   *Atlas
	rng *rand.Rand
}

// NewSampler returns a sampler over a. Seed policy: 0 ⇒ fixed default seed.
func NewSampler(a *Atlas, seed int64) *Sampler {
	if seed == 0 {
		seed = defaultSeed
	}

	return &Sampler{a: a, rng: rand.New(rand.NewSource(seed))}
}

// maxSampleAttempts bounds projection retries per draw; beyond it the last
// projection error is surfaced to the caller, who may simply draw again.
const maxSampleAttempts = 25

// SampleUniform draws a random on-manifold state: select a chart (weighted
// by measure or uniformly, per the exploration parameter), draw a uniform
// tangent offset within the chart's sampling radius, map it through the
// chart onto the manifold, and re-own the result — near polytope borders the
// projected point may belong to a different chart, and frontier points get a
// fresh chart.
//
// Errors: ErrNoCharts on an unseeded atlas; otherwise the last projection or
// chart-creation error after the bounded retry budget.
func (s *Sampler) SampleUniform() (*State, error) {
	var err error
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		var c *Chart
		if c, err = s.a.SampleChart(); err != nil {
			return nil, err
		}

		u := make([]float64, s.a.man.Dim())
		s.ballSample(u, s.a.samplingRadius(c))

		var st *State
		if st, err = s.landing(c, u); err == nil {
			return st, nil
		}
	}

	return nil, err
}

// SampleUniformNear draws like SampleUniform but centered at near, with the
// tangent radius truncated to the chart's validity region: min(dist, ρ_s).
func (s *Sampler) SampleUniformNear(near *State, dist float64) (*State, error) {
	if near == nil {
		return nil, ErrNilState
	}
	if len(near.X) != s.a.man.AmbientDim() {
		return nil, ErrDimensionMismatch
	}

	c, err := s.a.resolveChart(near)
	if err != nil {
		return nil, err
	}

	center := c.ToTangent(near.X)
	radius := math.Min(dist, s.a.samplingRadius(c))
	u := make([]float64, len(center))

	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		s.ballSample(u, radius)
		floats.Add(u, center)

		var st *State
		if st, err = s.landing(c, u); err == nil {
			return st, nil
		}
	}

	return nil, err
}

// SampleGaussian is not supported: manifold geometry makes a well-defined
// Gaussian distribution costly, and none is provided.
func (s *Sampler) SampleGaussian(_ *State, _ float64) (*State, error) {
	return nil, ErrGaussianUnsupported
}

// landing maps a tangent draw through chart c onto the manifold and assigns
// the owning chart of the landed point.
func (s *Sampler) landing(c *Chart, u []float64) (*State, error) {
	x, err := c.FromTangent(u)
	if err != nil {
		return nil, err
	}

	id, ok := s.a.OwningChart(x, c.id)
	if !ok {
		nc, err := s.a.NewChart(x)
		if err != nil {
			return nil, err
		}
		id = nc.id
	}

	return &State{X: x, Chart: id}, nil
}

// ballSample fills u with a uniform point in the ball of radius r, using the
// sampler's own stream.
func (s *Sampler) ballSample(u []float64, r float64) {
	for {
		for i := range u {
			u[i] = s.rng.NormFloat64()
		}
		if norm := floats.Norm(u, 2); norm > 0 {
			floats.Scale(r*math.Pow(s.rng.Float64(), 1/float64(len(u)))/norm, u)

			return
		}
	}
}
