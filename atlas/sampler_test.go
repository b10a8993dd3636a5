package atlas_test

import (
	"testing"

	"github.com/katalvlaran/atlas/atlas"
	"github.com/stretchr/testify/require"
)

// TestSampler_Uniform: every draw lands on the manifold and references a
// live chart of the atlas.
func TestSampler_Uniform(t *testing.T) {
	a := sphereAtlas(t)
	_, err := a.NewChart(north)
	require.NoError(t, err)
	_, err = a.NewChart([]float64{0, 1, 0})
	require.NoError(t, err)

	s := atlas.NewSampler(a, 7)
	for i := 0; i < 200; i++ {
		st, err := s.SampleUniform()
		require.NoError(t, err)
		require.True(t, a.Manifold().OnManifold(st.X))

		_, ok := a.Chart(st.Chart)
		require.True(t, ok)
	}
}

// TestSampler_UniformEmpty: drawing from an unseeded atlas is ErrNoCharts.
func TestSampler_UniformEmpty(t *testing.T) {
	a := sphereAtlas(t)
	s := atlas.NewSampler(a, 1)

	_, err := s.SampleUniform()
	require.ErrorIs(t, err, atlas.ErrNoCharts)
}

// TestSampler_UniformNear: draws stay within the requested ambient distance
// of the center, up to the curvature slack of one projection.
func TestSampler_UniformNear(t *testing.T) {
	a := sphereAtlas(t)
	c, err := a.NewChart(north)
	require.NoError(t, err)

	near := atlas.NewState(c.Anchor(), c.ID())
	const dist = 0.02

	s := atlas.NewSampler(a, 3)
	for i := 0; i < 100; i++ {
		st, err := s.SampleUniformNear(near, dist)
		require.NoError(t, err)
		require.True(t, a.Manifold().OnManifold(st.X))
		// Tangent radius is truncated to dist; projection adds O(dist²).
		require.LessOrEqual(t, atlas.Distance(st.X, near.X), dist+1e-3)
	}

	_, err = s.SampleUniformNear(nil, dist)
	require.ErrorIs(t, err, atlas.ErrNilState)

	_, err = s.SampleUniformNear(atlas.NewState([]float64{1, 0}, atlas.NoChart), dist)
	require.ErrorIs(t, err, atlas.ErrDimensionMismatch)
}

// TestSampler_GaussianUnsupported pins the documented refusal.
func TestSampler_GaussianUnsupported(t *testing.T) {
	a := sphereAtlas(t)
	s := atlas.NewSampler(a, 1)

	_, err := s.SampleGaussian(atlas.NewState(north, atlas.NoChart), 0.1)
	require.ErrorIs(t, err, atlas.ErrGaussianUnsupported)
}

// TestSampler_SeedZeroIsDefault: seed 0 selects the fixed default stream, so
// two samplers over identically built atlases draw the same first state.
func TestSampler_SeedZeroIsDefault(t *testing.T) {
	build := func() *atlas.Atlas {
		a := sphereAtlas(t)
		_, err := a.NewChart(north)
		require.NoError(t, err)

		return a
	}

	s0 := atlas.NewSampler(build(), 0)
	s1 := atlas.NewSampler(build(), 1)

	st0, err := s0.SampleUniform()
	require.NoError(t, err)
	st1, err := s1.SampleUniform()
	require.NoError(t, err)
	require.True(t, atlas.EqualStates(st0, st1))
}

// chartFrequencies draws n charts and returns the per-ID selection rates.
func chartFrequencies(t *testing.T, a *atlas.Atlas, n int) map[atlas.ChartID]float64 {
	t.Helper()
	freq := make(map[atlas.ChartID]float64, a.ChartCount())
	for i := 0; i < n; i++ {
		c, err := a.SampleChart()
		require.NoError(t, err)
		freq[c.ID()]++
	}
	for id := range freq {
		freq[id] /= float64(n)
	}

	return freq
}

// TestSampleChart_MeasureBias: with exploration 0 every draw is weighted by
// chart measure, so two overlapping charts (each clipped by the other's
// bisector) are drawn less often than an isolated one, and the empirical
// rates track the measure shares. With exploration near 1 the draw is
// effectively uniform regardless of measure.
func TestSampleChart_MeasureBias(t *testing.T) {
	seed := func(exploration float64) *atlas.Atlas {
		a := sphereAtlas(t, atlas.WithExploration(exploration), atlas.WithSeed(11))
		for _, anchor := range [][]float64{{0, 0, 1}, {0, 0.1, 1}, {1, 0, 0}} {
			_, err := a.NewChart(anchor)
			require.NoError(t, err)
		}

		return a
	}

	const draws = 50_000

	a := seed(0)
	total := 0.0
	for id := atlas.ChartID(0); id < 3; id++ {
		c, ok := a.Chart(id)
		require.True(t, ok)
		total += c.Measure()
	}
	freq := chartFrequencies(t, a, draws)
	for id := atlas.ChartID(0); id < 3; id++ {
		c, _ := a.Chart(id)
		require.InDelta(t, c.Measure()/total, freq[id], 0.02, "chart %d", id)
	}
	// The clipped overlapping charts lose draws to the isolated one.
	require.Greater(t, freq[2], freq[0])
	require.Greater(t, freq[2], freq[1])

	a = seed(0.99)
	freq = chartFrequencies(t, a, draws)
	for id := atlas.ChartID(0); id < 3; id++ {
		require.InDelta(t, 1.0/3, freq[id], 0.03, "chart %d", id)
	}
}
