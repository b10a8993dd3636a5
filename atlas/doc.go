// Package atlas maintains a growing set of overlapping local linear
// approximations ("charts") of an implicitly defined constraint manifold,
// and implements traversal and sampling on top of that chart set.
//
// 🚀 How it works
//
//	A chart is an on-manifold anchor x0 plus an orthonormal tangent basis Φ
//	(the null space of the constraint Jacobian at x0). The chart is
//	authoritative inside a validity polytope in tangent coordinates: the
//	ball of radius ρ intersected with one perpendicular-bisector halfspace
//	per overlapping neighbor, so no two charts claim the same region.
//	Charts shrink (halving ρ) when boundary probes show the manifold bending
//	away faster than the angle bound α or deviation bound ε allow; they are
//	never deleted, and the chart set only grows within a session.
//
// ✨ Operations:
//   - NewChart       — validate, shrink, and register a chart; install mutual
//     halfspaces against every chart anchored within 2ρ
//   - OwningChart    — point → authoritative chart (hint fast path)
//   - SampleChart    — measure-weighted or uniform chart draw (exploration)
//   - FollowManifold — δ-stepping, chart-switching walk between two
//     on-manifold states, validated per step, budgeted by λ·d
//   - Interpolate / FastInterpolate — parameterize a recorded walk
//   - Sampler        — uniform on-manifold state draws (global or near a state)
//
// ⚙️ Usage:
//
//	f, j := manifold.Sphere(3)
//	m, _ := manifold.New(3, f, j)
//	a, _ := atlas.New(m, atlas.WithDelta(0.02), atlas.WithLambda(2))
//
//	start, _ := a.NewChart([]float64{0, 0, 1})
//	goal, _ := a.NewChart([]float64{0, 1, 0})
//	from := atlas.NewState([]float64{0, 0, 1}, start.ID())
//	to := atlas.NewState([]float64{0, 1, 0}, goal.ID())
//
//	tr, err := a.FollowManifold(from, to, &atlas.TraverseOptions{Record: true})
//	// tr.Reached, tr.Length, tr.States ...
//
// Concurrency: NONE. Atlas, charts, traversal and samplers assume exclusive
// single-threaded access; callers must serialize. Every internal loop is
// bounded (Newton caps, traversal budgets, radius floors, retry limits), so
// all operations return.
//
// Errors are strict sentinels (see errors.go) matched with errors.Is;
// projection failures are forwarded as manifold.ErrProjectionFailed.
// Negative planning outcomes (ErrCollision, ErrTraversalBudget) share the
// reporting shape of successes: the Traversal result still carries the last
// valid state and its interpolation fraction.
package atlas
