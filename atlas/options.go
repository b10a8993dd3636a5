// Package atlas: functional configuration of the atlas numeric parameters.
// Default* constants are the single source of truth; With* constructors
// validate their domain and panic on nonsensical values (programmer error,
// matching the strict-sentinel policy: user-triggered conditions return
// errors, misconfigured code fails loudly at construction).

package atlas

import (
	"math"
	"math/rand"
)

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultDelta is the step size for traversing the manifold.
	DefaultDelta = 0.02

	// DefaultEpsilon is the maximum permissible distance between a point in
	// a chart's validity region and its projection onto the manifold.
	DefaultEpsilon = 0.1

	// DefaultRho is the cap on a chart's validity radius. Too-large values
	// are shrunk per chart during validation, never globally repaired.
	DefaultRho = 0.1

	// DefaultAlpha is the maximum permissible angle between a chart and the
	// manifold inside the chart's validity region. Domain (0, π/2).
	DefaultAlpha = math.Pi / 16

	// DefaultExploration balances refinement (0: sample inside known charts,
	// weighted by measure) against exploration (→1: sample uniformly over
	// charts, reaching the frontier). Domain [0, 1).
	DefaultExploration = 0.5

	// DefaultLambda bounds traversal: walking from x to y gives up once the
	// accumulated arc length exceeds lambda·d(x,y). Must be > 1.
	DefaultLambda = 2.0

	// DefaultThoroughness tunes Monte-Carlo measure estimation; the sample
	// count is ⌈thoroughness^k⌉ for manifold dimension k. Massive performance
	// impact in higher dimensions.
	DefaultThoroughness = 3.5

	// DefaultMinRadius is the floor under chart radius shrinkage; validation
	// that cannot satisfy the angle bound above this floor reports
	// ErrChartDegenerate instead of looping.
	DefaultMinRadius = 1e-5

	// defaultSeed is the fixed seed used when callers pass seed==0, keeping
	// default runs reproducible.
	defaultSeed int64 = 1
)

const (
	panicDeltaInvalid        = "atlas: WithDelta: delta must be finite and > 0"
	panicEpsilonInvalid      = "atlas: WithEpsilon: epsilon must be finite and > 0"
	panicRhoInvalid          = "atlas: WithRho: rho must be finite and > 0"
	panicAlphaInvalid        = "atlas: WithAlpha: alpha must be in (0, pi/2)"
	panicExplorationInvalid  = "atlas: WithExploration: exploration must be in [0, 1)"
	panicLambdaInvalid       = "atlas: WithLambda: lambda must be finite and > 1"
	panicThoroughnessInvalid = "atlas: WithThoroughness: thoroughness must be >= 1"
	panicMinRadiusInvalid    = "atlas: WithMinRadius: floor must be finite and > 0"
)

// Option mutates atlas configuration during New. Applied in order;
// last-writer-wins.
type Option func(*Atlas)

// WithDelta sets the traversal step size (default 0.02).
func WithDelta(delta float64) Option {
	if !(delta > 0) || math.IsInf(delta, 1) {
		panic(panicDeltaInvalid)
	}

	return func(a *Atlas) { a.delta = delta }
}

// WithEpsilon sets the maximum chart-to-manifold deviation inside a chart's
// validity region (default 0.1).
func WithEpsilon(epsilon float64) Option {
	if !(epsilon > 0) || math.IsInf(epsilon, 1) {
		panic(panicEpsilonInvalid)
	}

	return func(a *Atlas) { a.epsilon = epsilon }
}

// WithRho sets the chart validity radius cap (default 0.1). Individual
// charts shrink below it when curvature demands; none ever exceeds it.
func WithRho(rho float64) Option {
	if !(rho > 0) || math.IsInf(rho, 1) {
		panic(panicRhoInvalid)
	}

	return func(a *Atlas) { a.rho = rho }
}

// WithAlpha sets the maximum chart-to-manifold angle (default π/16).
// Domain (0, π/2); the sine is precomputed for the validation hot path.
func WithAlpha(alpha float64) Option {
	if !(alpha > 0) || alpha >= math.Pi/2 {
		panic(panicAlphaInvalid)
	}

	return func(a *Atlas) {
		a.alpha = alpha
		a.sinAlpha = math.Sin(alpha)
	}
}

// WithExploration sets the refinement/exploration balance (default 0.5).
// Domain [0, 1): 0 is all refinement, approaching 1 is all exploration.
func WithExploration(exploration float64) Option {
	if exploration < 0 || exploration >= 1 || math.IsNaN(exploration) {
		panic(panicExplorationInvalid)
	}

	return func(a *Atlas) { a.exploration = exploration }
}

// WithLambda sets the traversal slack multiplier (default 2). Must be > 1:
// at exactly 1 only straight-line motion would fit inside the budget.
func WithLambda(lambda float64) Option {
	if !(lambda > 1) || math.IsInf(lambda, 1) {
		panic(panicLambdaInvalid)
	}

	return func(a *Atlas) { a.lambda = lambda }
}

// WithThoroughness sets the Monte-Carlo measure density (default 3.5).
func WithThoroughness(thoroughness float64) Option {
	if !(thoroughness >= 1) || math.IsInf(thoroughness, 1) {
		panic(panicThoroughnessInvalid)
	}

	return func(a *Atlas) { a.thoroughness = thoroughness }
}

// WithMinRadius sets the chart radius shrink floor (default 1e-5).
func WithMinRadius(floor float64) Option {
	if !(floor > 0) || math.IsInf(floor, 1) {
		panic(panicMinRadiusInvalid)
	}

	return func(a *Atlas) { a.minRadius = floor }
}

// WithSeed seeds the atlas RNG used by chart validation, measure estimation
// and chart selection. Policy: seed==0 ⇒ fixed default seed, so default runs
// stay reproducible; pass any non-zero seed for an independent stream.
func WithSeed(seed int64) Option {
	return func(a *Atlas) {
		if seed == 0 {
			seed = defaultSeed
		}
		a.rng = rand.New(rand.NewSource(seed))
	}
}
