// Package manifold defines the constraint-oracle contract for implicitly
// constrained configuration spaces and implements the Newton projection
// operator that corrects ambient points back onto the manifold.
//
// 🚀 What is a constraint manifold?
//
//	Given a smooth constraint function F: Rⁿ → Rᵐ (m < n) and its Jacobian J,
//	the manifold is the k-dimensional zero-set { x ∈ Rⁿ : F(x) = 0 } with
//	k = n − m. F returns the violation of each constraint: the zero vector
//	means x lies exactly on the manifold.
//
// ✨ Key features:
//   - Manifold binds (dimension, F, J) once and validates shapes up front
//   - Project / ProjectInPlace: damped-free Newton iteration
//     x ← x − J(x)⁺F(x) via a minimum-norm least-squares solve
//   - bounded: converges below a tolerance or stops at an iteration cap —
//     failure is reported as ErrProjectionFailed, never an endless loop
//   - ready-made Sphere, Torus and Linkage oracles for tests and demos
//
// ⚙️ Usage:
//
//	f, j := manifold.Sphere(3)
//	m, err := manifold.New(3, f, j)
//	if err != nil { ... }
//	x, err := m.Project([]float64{0.1, 0.2, 1.3}) // pulls onto ‖x‖ = 1
//
// Projection dominates the runtime of everything built on top of it: the
// atlas calls it on nearly every traversal step and every sample.
//
// Concurrency: a Manifold is stateless after construction and safe to share
// as long as the user-supplied F and J are pure, which they must be.
package manifold
