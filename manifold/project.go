package manifold

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Project — Newton correction of an ambient point onto the manifold.
//
// Description:
//
//	Iterates x ← x − J(x)⁺F(x), where J⁺F is obtained from a minimum-norm
//	least-squares solve of the m×n system J(x)·dx = F(x). Stops as soon as
//	‖F(x)‖ < tolerance. The operator converges quadratically from seeds up
//	to roughly one chart radius away from a known on-manifold point.
//
// Contracts:
//   - len(x) must equal AmbientDim.
//   - x is not mutated; a fresh slice is returned.
//
// Errors:
//   - ErrDimensionMismatch — wrong input length.
//   - ErrProjectionFailed  — iteration cap reached, or J rank-deficient at
//     some iterate (the least-squares solve degenerates).
//
// Complexity: O(maxIter · m·n²) time, O(m·n) space.
func (m *Manifold) Project(x []float64) ([]float64, error) {
	out := append([]float64(nil), x...)
	if err := m.ProjectInPlace(out); err != nil {
		return nil, err
	}

	return out, nil
}

// ProjectInPlace is Project without the defensive copy, for hot paths that
// own their buffer. On failure x is left at the last iterate; callers must
// treat it as garbage.
func (m *Manifold) ProjectInPlace(x []float64) error {
	if len(x) != m.n {
		return ErrDimensionMismatch
	}

	fx := m.f(x)
	if len(fx) != m.m {
		return ErrDimensionMismatch
	}

	var dx mat.VecDense
	for iter := 0; iter < m.maxIter; iter++ {
		if floats.Norm(fx, 2) < m.tol {
			return nil
		}

		// Minimum-norm solve of J·dx = F; an error here means the Jacobian
		// is numerically rank-deficient at this iterate.
		if err := dx.SolveVec(m.jac(x), mat.NewVecDense(m.m, fx)); err != nil {
			return ErrProjectionFailed
		}
		for i := 0; i < m.n; i++ {
			x[i] -= dx.AtVec(i)
		}

		fx = m.f(x)
	}

	if floats.Norm(fx, 2) < m.tol {
		return nil
	}

	return ErrProjectionFailed
}

// OnManifold reports whether ‖F(x)‖ is already below the projection tolerance.
func (m *Manifold) OnManifold(x []float64) bool {
	return len(x) == m.n && floats.Norm(m.f(x), 2) < m.tol
}
