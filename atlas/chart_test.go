package atlas_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/atlas/atlas"
	"github.com/katalvlaran/atlas/manifold"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// sphereAtlas builds a unit-sphere atlas in R³ with the given options.
func sphereAtlas(t *testing.T, opts ...atlas.Option) *atlas.Atlas {
	t.Helper()
	f, j := manifold.Sphere(3)
	m, err := manifold.New(3, f, j)
	require.NoError(t, err)
	a, err := atlas.New(m, opts...)
	require.NoError(t, err)

	return a
}

// north is the canonical on-manifold seed used across these tests.
var north = []float64{0, 0, 1}

// TestNewChart_AnchorOnManifold: anchors are corrected onto the manifold, so
// the ‖F(x0)‖ < tolerance invariant holds even for off-manifold input.
func TestNewChart_AnchorOnManifold(t *testing.T) {
	a := sphereAtlas(t)

	c, err := a.NewChart([]float64{0, 0, 1.5})
	require.NoError(t, err)
	require.True(t, a.Manifold().OnManifold(c.Anchor()))
	require.InDelta(t, 1.0, floats.Norm(c.Anchor(), 2), 1e-8)
}

// TestChart_TangentRoundTrip: ToTangent inverts FromTangent up to the
// curvature of the manifold, and the anchor maps to the tangent origin.
func TestChart_TangentRoundTrip(t *testing.T) {
	a := sphereAtlas(t)
	c, err := a.NewChart(north)
	require.NoError(t, err)

	origin := c.ToTangent(c.Anchor())
	require.InDelta(t, 0, floats.Norm(origin, 2), 1e-12)

	u := []float64{0.01, -0.005}
	x, err := c.FromTangent(u)
	require.NoError(t, err)
	require.True(t, a.Manifold().OnManifold(x))

	back := c.ToTangent(x)
	require.InDelta(t, u[0], back[0], 1e-4)
	require.InDelta(t, u[1], back[1], 1e-4)
}

// TestNewChart_ShrinksToAngleBound: on the unit sphere a chart of radius ρ
// sees a boundary angle of atan(ρ), so validation must halve an oversized
// cap until atan(ρ) ≤ α. Starting from 0.5 with α = π/16 that is exactly two
// halvings: 0.5 → 0.25 → 0.125.
func TestNewChart_ShrinksToAngleBound(t *testing.T) {
	a := sphereAtlas(t, atlas.WithRho(0.5))

	c, err := a.NewChart(north)
	require.NoError(t, err)
	require.InDelta(t, 0.125, c.Radius(), 1e-12)
	require.LessOrEqual(t, math.Atan(c.Radius()), a.Alpha())
}

// TestNewChart_BoundaryAngleProperty: for any freshly created chart, no
// sampled boundary point shows a chart-to-manifold angle exceeding α.
// On the sphere that angle is the polar angle of the projected boundary
// point relative to the anchor.
func TestNewChart_BoundaryAngleProperty(t *testing.T) {
	a := sphereAtlas(t, atlas.WithRho(0.5))
	c, err := a.NewChart(north)
	require.NoError(t, err)

	anchor := c.Anchor()
	for i := 0; i < 64; i++ {
		theta := 2 * math.Pi * float64(i) / 64
		u := []float64{c.Radius() * math.Cos(theta), c.Radius() * math.Sin(theta)}
		y, err := c.FromTangent(u)
		require.NoError(t, err)

		angle := math.Acos(floats.Dot(anchor, y)) // both unit vectors
		require.LessOrEqual(t, angle, a.Alpha()+1e-9)
	}
}

// TestNewChart_Degenerate: a constraint whose Jacobian vanishes on its own
// zero set (F(x) = z²) cannot support a tangent basis anywhere.
func TestNewChart_Degenerate(t *testing.T) {
	f := func(x []float64) []float64 { return []float64{x[2] * x[2]} }
	j := func(x []float64) *mat.Dense { return mat.NewDense(1, 3, []float64{0, 0, 2 * x[2]}) }
	m, err := manifold.New(3, f, j)
	require.NoError(t, err)
	a, err := atlas.New(m)
	require.NoError(t, err)

	_, err = a.NewChart([]float64{0, 0, 0})
	require.ErrorIs(t, err, atlas.ErrChartDegenerate)
	require.Equal(t, 0, a.ChartCount())
}

// TestNewChart_NeighborHalfspaces: overlapping charts cede territory to each
// other. The bisector keeps each anchor owned by its own chart, and the
// shared polytopes lose measure compared to an isolated chart.
func TestNewChart_NeighborHalfspaces(t *testing.T) {
	a := sphereAtlas(t)

	c0, err := a.NewChart(north)
	require.NoError(t, err)
	isolatedMeasure := c0.Measure()

	// Anchor within 2ρ of c0: mutual halfspaces are installed.
	c1, err := a.NewChart([]float64{0, 0.1, 1})
	require.NoError(t, err)

	// Far away: no interaction with either.
	c2, err := a.NewChart([]float64{1, 0, 0})
	require.NoError(t, err)

	require.Less(t, c0.Measure(), isolatedMeasure)
	require.Less(t, c1.Measure(), c2.Measure())

	// Each anchor stays owned by its own chart despite the overlap.
	id, ok := a.OwningChart(c0.Anchor(), c1.ID())
	require.True(t, ok)
	require.Equal(t, c0.ID(), id)
	id, ok = a.OwningChart(c1.Anchor(), c0.ID())
	require.True(t, ok)
	require.Equal(t, c1.ID(), id)
}

// TestChart_MeasureRefreshDetectsClipping: at default thoroughness on a 2D
// tangent space the raw ⌈3.5²⌉ = 13 draws are too sparse to register a
// bisector cut; the floored sample count makes the refreshed measure drop
// reliably after a neighbor is installed.
func TestChart_MeasureRefreshDetectsClipping(t *testing.T) {
	a := sphereAtlas(t)
	c0, err := a.NewChart(north)
	require.NoError(t, err)
	before := c0.Measure()

	_, err = a.NewChart([]float64{0, 0.1, 1})
	require.NoError(t, err)

	// The bisector removes roughly a fifth of the disk; a drop this large
	// cannot be missed at the floored sample count.
	require.Less(t, c0.Measure(), 0.95*before)
}

// TestChart_MeasureWithinBall: the Monte-Carlo measure never exceeds the
// area of the radius disk (k = 2 on the sphere).
func TestChart_MeasureWithinBall(t *testing.T) {
	a := sphereAtlas(t)
	c, err := a.NewChart(north)
	require.NoError(t, err)

	disk := math.Pi * c.Radius() * c.Radius()
	require.Greater(t, c.Measure(), 0.0)
	require.LessOrEqual(t, c.Measure(), disk+1e-12)
}
