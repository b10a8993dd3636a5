// Package atlas is a numerical scaffold for searching configuration spaces
// that are implicitly constrained to a lower-dimensional manifold — the
// zero-set of a smooth constraint function F(x) = 0.
//
// 🚀 What is it?
//
//	A sampling-based planner cannot enumerate a constraint manifold in closed
//	form. This library maintains an atlas: a growing set of overlapping local
//	linear approximations ("charts") of the manifold, each authoritative
//	inside a bounded tangent-space polytope. On top of the atlas it provides:
//	  • Newton projection of arbitrary ambient points back onto the manifold
//	  • chart-switching traversal between two on-manifold points
//	  • uniform manifold sampling biased between refinement and exploration
//
// ✨ Key properties:
//   - probabilistically complete scaffold, not an exact solver
//   - charts shrink when local curvature breaks the linear approximation,
//     but are never deleted; the chart set only grows within a session
//   - all loops are bounded: Newton caps, traversal budgets, radius floors
//
// Under the hood, everything is organized under three subpackages:
//
//	manifold/ — constraint oracle contract and the Newton projection operator
//	pdf/      — weighted discrete selection index (O(log n) draw and update)
//	atlas/    — charts, polytopes, atlas bookkeeping, traversal, sampling
//
// The consuming search layer (tree/graph planners, nearest-neighbor indices,
// collision predicates) stays external: it asks the sampler for new states
// and asks the traversal engine to connect pairs of states; both consult the
// atlas, which consults charts, which consult the projection operator, which
// consults the user-supplied constraint oracle.
//
//	go get github.com/katalvlaran/atlas/atlas
package atlas
