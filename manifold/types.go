package manifold

import "gonum.org/v1/gonum/mat"

// Constraint evaluates the violation vector F(x) at an ambient point.
// The input has ambient dimension n; the output has one entry per constraint
// and is the zero vector exactly when x lies on the manifold.
// Must be pure: same input, same output, no retained references.
type Constraint func(x []float64) []float64

// Jacobian evaluates the m×n Jacobian of the constraint function at an
// ambient point, where m is the constraint count and n the ambient dimension.
// Must be pure.
type Jacobian func(x []float64) *mat.Dense

// Defaults for the Newton projection; single source of truth.
const (
	// DefaultProjectionTolerance stops the Newton iteration once ‖F(x)‖ falls below it.
	DefaultProjectionTolerance = 1e-8

	// DefaultProjectionMaxIterations caps the Newton iteration count.
	DefaultProjectionMaxIterations = 200
)

const (
	panicToleranceInvalid  = "manifold: WithTolerance: tol must be finite and > 0"
	panicIterationsInvalid = "manifold: WithMaxIterations: cap must be > 0"
)

// Option mutates projection tuning on a Manifold under construction.
type Option func(*Manifold)

// WithTolerance sets the projection stop tolerance (default 1e-8).
// Panics on non-positive or non-finite values (programmer error).
func WithTolerance(tol float64) Option {
	if !(tol > 0) || tol != tol {
		panic(panicToleranceInvalid)
	}

	return func(m *Manifold) { m.tol = tol }
}

// WithMaxIterations sets the projection iteration cap (default 200).
// Panics on non-positive values (programmer error).
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicIterationsInvalid)
	}

	return func(m *Manifold) { m.maxIter = n }
}

// Manifold binds an ambient dimension to a constraint oracle (F, J) plus the
// projection tuning. It owns no mutable state after construction.
type Manifold struct {
	n int // ambient dimension
	m int // constraint count, len(F(·))
	k int // manifold dimension, n − m

	f   Constraint
	jac Jacobian

	tol     float64
	maxIter int
}

// New binds ambient dimension n to the constraint oracle (f, jac).
// The constraint count is sized by one probe evaluation of f at the origin;
// f must return the same length for every input.
//
// Errors:
//   - ErrNilOracle     — f or jac is nil.
//   - ErrBadDimension  — n ≤ 0, or the probe gives m ≤ 0 or m ≥ n.
func New(n int, f Constraint, jac Jacobian, opts ...Option) (*Manifold, error) {
	if f == nil || jac == nil {
		return nil, ErrNilOracle
	}
	if n <= 0 {
		return nil, ErrBadDimension
	}

	// Probe the constraint count once; the zero vector is as good as any.
	m := len(f(make([]float64, n)))
	if m <= 0 || m >= n {
		return nil, ErrBadDimension
	}

	man := &Manifold{
		n:       n,
		m:       m,
		k:       n - m,
		f:       f,
		jac:     jac,
		tol:     DefaultProjectionTolerance,
		maxIter: DefaultProjectionMaxIterations,
	}
	for _, opt := range opts {
		opt(man)
	}

	return man, nil
}

// AmbientDim returns n, the dimension of the embedding space.
func (m *Manifold) AmbientDim() int { return m.n }

// ConstraintDim returns the number of constraints.
func (m *Manifold) ConstraintDim() int { return m.m }

// Dim returns k = n − m, the dimension of the manifold itself.
func (m *Manifold) Dim() int { return m.k }

// Tolerance returns the projection stop tolerance.
func (m *Manifold) Tolerance() float64 { return m.tol }

// MaxIterations returns the projection iteration cap.
func (m *Manifold) MaxIterations() int { return m.maxIter }

// F evaluates the constraint violation vector at x.
func (m *Manifold) F(x []float64) []float64 { return m.f(x) }

// J evaluates the constraint Jacobian at x.
func (m *Manifold) J(x []float64) *mat.Dense { return m.jac(x) }
