package manifold

import "errors"

var (
	// ErrNilOracle indicates a nil constraint or Jacobian function was passed to New.
	ErrNilOracle = errors.New("manifold: constraint and jacobian functions must be non-nil")

	// ErrBadDimension indicates the ambient dimension does not exceed the
	// constraint count (no tangent directions would remain), or is not positive.
	ErrBadDimension = errors.New("manifold: ambient dimension must exceed constraint count")

	// ErrDimensionMismatch indicates an input point whose length differs from
	// the ambient dimension, or an oracle whose output shape is inconsistent.
	ErrDimensionMismatch = errors.New("manifold: dimension mismatch")

	// ErrProjectionFailed indicates the Newton iteration did not converge:
	// either the iteration cap was reached with ‖F(x)‖ still above tolerance,
	// or the Jacobian went numerically rank-deficient at some iterate.
	// Recoverable: abort the current step or sample and retry elsewhere.
	ErrProjectionFailed = errors.New("manifold: projection did not converge")
)
