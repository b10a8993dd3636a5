// Package atlas: sentinel error set.
// All operations return these sentinels (or manifold.ErrProjectionFailed,
// forwarded as-is from the projection operator) and tests match them via
// errors.Is. Numeric and geometric failures are recoverable outcomes reported
// to the caller, never swallowed; panics are reserved for programmer errors
// in option constructors.

package atlas

import "errors"

var (
	// ErrNilManifold indicates a nil *manifold.Manifold was passed to New.
	ErrNilManifold = errors.New("atlas: manifold is nil")

	// ErrNilState indicates a nil *State argument.
	ErrNilState = errors.New("atlas: state is nil")

	// ErrDimensionMismatch indicates a point or tangent vector whose length
	// does not match the ambient or manifold dimension.
	ErrDimensionMismatch = errors.New("atlas: dimension mismatch")

	// ErrUnknownChart indicates a state referencing a chart this atlas does
	// not own — a genuine precondition violation, not a numeric hiccup.
	ErrUnknownChart = errors.New("atlas: state references a chart not owned by this atlas")

	// ErrNoCharts indicates a draw or traversal against an atlas that has no
	// charts yet; seed one with NewChart first.
	ErrNoCharts = errors.New("atlas: atlas has no charts")

	// ErrChartDegenerate indicates chart validation could not shrink the
	// radius enough to satisfy the angle bound before hitting the minimum
	// radius floor. It points at a poorly conditioned constraint region
	// (e.g., a rank-deficient Jacobian nearby), not a transient failure.
	ErrChartDegenerate = errors.New("atlas: chart degenerate below minimum radius")

	// ErrTraversalBudget indicates traversal accumulated more arc length than
	// lambda times the direct endpoint distance (or stalled without progress).
	// A normal negative outcome, reported with the last valid point.
	ErrTraversalBudget = errors.New("atlas: traversal budget exceeded")

	// ErrCollision indicates the external validity predicate rejected a
	// traversal step. A normal negative outcome, reported with the last
	// valid point and its interpolation fraction.
	ErrCollision = errors.New("atlas: validity predicate rejected state")

	// ErrGaussianUnsupported is returned by Sampler.SampleGaussian: manifold
	// geometry makes a well-defined Gaussian costly, so it is not provided.
	ErrGaussianUnsupported = errors.New("atlas: gaussian sampling is not supported")

	// ErrTooFewStates indicates FastInterpolate received fewer than two states.
	ErrTooFewStates = errors.New("atlas: interpolation needs at least two states")
)
