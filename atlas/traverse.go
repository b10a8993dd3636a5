package atlas

import (
	"gonum.org/v1/gonum/floats"
)

// ValidityFunc is the externally supplied validity/collision predicate,
// invoked once per traversal step on the candidate ambient point. nil means
// every state is valid.
type ValidityFunc func(x []float64) bool

// TraverseOptions configures FollowManifold.
//
// Fields:
//   - Valid         — collision/validity predicate; nil accepts everything.
//   - Interpolating — skip the validity predicate entirely: a pure
//     reachability query, used to test connectivity before paying for
//     full validation, and by Interpolate.
//   - Record        — collect every intermediate state, including a copy of
//     the start and the final state, into Traversal.States. Ownership of
//     the recorded states transfers to the caller.
type TraverseOptions struct {
	Valid         ValidityFunc
	Interpolating bool
	Record        bool
}

// Traversal reports the outcome of FollowManifold. Last is always set — on
// negative outcomes it carries the last valid point reached.
type Traversal struct {
	// Reached is true when traversal snapped onto the target state.
	Reached bool

	// Last is the final valid state visited.
	Last *State

	// Fraction is the interpolation parameter of Last along the motion,
	// computed as though the target were the final state visited.
	Fraction float64

	// Length is the accumulated arc length.
	Length float64

	// States holds every waypoint when TraverseOptions.Record is set.
	States []*State
}

// stallLimit bounds consecutive steps that make no measurable progress
// (degenerate tangent direction, e.g. near-antipodal targets on a sphere).
const stallLimit = 8

// FollowManifold traverses the manifold from `from` toward `to` through a
// sequence of validated δ-steps, switching charts as the walk leaves each
// polytope and lazily creating charts for uncovered frontier points.
//
// Per step: compute the tangent-space direction toward the target in the
// current chart, advance δ along it, re-project onto the manifold via the
// chart, re-own the point (creating a boundary-anchored chart through
// DichotomicSearch when nothing covers it), then consult the validity
// predicate.
//
// Termination:
//   - success — remaining tangent distance to the target falls below δ;
//     the walk snaps onto `to` and Reached is true;
//   - ErrCollision      — the predicate rejected a step;
//   - ErrTraversalBudget — accumulated arc length exceeded λ·d(from,to),
//     or the walk stalled without progress;
//   - manifold.ErrProjectionFailed / ErrChartDegenerate — a step could not
//     be corrected onto the manifold or chart creation degenerated.
//
// All negative outcomes still return a Traversal carrying the last valid
// state and its interpolation fraction; only precondition violations
// (ErrNilState, ErrDimensionMismatch, ErrUnknownChart) return a nil result.
// Always terminates for any on-manifold pair, any δ > 0 and λ > 1.
func (a *Atlas) FollowManifold(from, to *State, opts *TraverseOptions) (*Traversal, error) {
	if from == nil || to == nil {
		return nil, ErrNilState
	}
	n := a.man.AmbientDim()
	if len(from.X) != n || len(to.X) != n {
		return nil, ErrDimensionMismatch
	}

	c, err := a.resolveChart(from)
	if err != nil {
		return nil, err
	}

	var o TraverseOptions
	if opts != nil {
		o = *opts
	}

	x := append([]float64(nil), from.X...)
	direct := Distance(from.X, to.X)
	budget := a.lambda * direct

	tr := &Traversal{}
	if o.Record {
		tr.States = append(tr.States, NewState(x, c.id))
	}

	finish := func(reached bool, last []float64, lastChart ChartID, err error) (*Traversal, error) {
		tr.Reached = reached
		tr.Last = NewState(last, lastChart)
		if remaining := Distance(last, to.X); tr.Length+remaining > 0 {
			tr.Fraction = tr.Length / (tr.Length + remaining)
		} else {
			tr.Fraction = 1
		}

		return tr, err
	}

	if direct < equalTolerance {
		return finish(true, x, c.id, nil)
	}

	// The arc budget alone cannot bound steps that add no length, so cap the
	// iteration count as well; both caps surface as budget exhaustion.
	maxSteps := 4*int(budget/a.delta) + 16
	stalled := 0

	for step := 0; step < maxSteps; step++ {
		u := c.ToTangent(x)
		v := c.ToTangent(to.X)
		dir := make([]float64, len(u))
		floats.SubTo(dir, v, u)
		remaining := floats.Norm(dir, 2)

		if remaining < a.delta {
			if Distance(x, to.X) > 2*a.delta {
				// The target's tangent image is close but the point itself is
				// far: a fold-over, no usable direction in this chart.
				return finish(false, x, c.id, ErrTraversalBudget)
			}
			if !o.Interpolating && o.Valid != nil && !o.Valid(to.X) {
				return finish(false, x, c.id, ErrCollision)
			}
			tr.Length += Distance(x, to.X)
			toChart := c.id
			if id, ok := a.OwningChart(to.X, c.id); ok {
				toChart = id
			}
			if o.Record {
				tr.States = append(tr.States, NewState(to.X, toChart))
			}

			return finish(true, to.X, toChart, nil)
		}

		// One δ-step along the tangent direction, corrected onto the manifold.
		floats.Scale(a.delta/remaining, dir)
		floats.Add(dir, u)
		xNext, stepErr := c.FromTangent(dir)
		if stepErr != nil {
			return finish(false, x, c.id, stepErr)
		}

		if !o.Interpolating && o.Valid != nil && !o.Valid(xNext) {
			return finish(false, x, c.id, ErrCollision)
		}

		ds := Distance(x, xNext)
		tr.Length += ds
		if ds < a.delta*1e-3 {
			if stalled++; stalled >= stallLimit {
				return finish(false, x, c.id, ErrTraversalBudget)
			}
		} else {
			stalled = 0
		}
		if tr.Length > budget {
			return finish(false, xNext, c.id, ErrTraversalBudget)
		}

		// Chart switching: re-own the new point, creating a chart anchored
		// near the exit border when no existing polytope covers it.
		uNext := c.ToTangent(xNext)
		if !c.inPolytope(uNext) {
			if id, ok := a.OwningChart(xNext, c.id); ok {
				c = a.charts[id]
			} else {
				frontier, frontierErr := a.frontierChart(c, u, uNext)
				if frontierErr != nil {
					return finish(false, x, c.id, frontierErr)
				}
				c = frontier
			}
		}

		x = xNext
		if o.Record {
			tr.States = append(tr.States, NewState(x, c.id))
		}
	}

	return finish(false, x, c.id, ErrTraversalBudget)
}

// frontierChart seeds a new chart when traversal exits the current chart
// into uncovered territory: the anchor is the manifold point under the
// polytope border located by DichotomicSearch between the last interior
// point and the exited point.
func (a *Atlas) frontierChart(c *Chart, uinside, uoutside []float64) (*Chart, error) {
	border := uinside
	if c.inPolytope(uinside) {
		border = a.DichotomicSearch(c, uinside, uoutside)
	}
	anchor, err := c.FromTangent(border)
	if err != nil {
		return nil, err
	}

	return a.NewChart(anchor)
}

// resolveChart maps a state to its chart: a set ChartID must belong to this
// atlas (precondition), an unset one is resolved by ownership lookup or, for
// frontier points, a fresh chart.
func (a *Atlas) resolveChart(s *State) (*Chart, error) {
	if s.Chart != NoChart {
		c, ok := a.Chart(s.Chart)
		if !ok {
			return nil, ErrUnknownChart
		}

		return c, nil
	}
	if id, ok := a.OwningChart(s.X, NoChart); ok {
		return a.charts[id], nil
	}

	return a.NewChart(s.X)
}

// Interpolate finds the state at parameter t ∈ [0,1] along the manifold walk
// from `from` toward `to`, where t=1 is the final state FollowManifold
// reaches — which may not be `to` when traversal stops early. Interpolation
// on an atlas is not symmetric.
func (a *Atlas) Interpolate(from, to *State, t float64) (*State, error) {
	tr, err := a.FollowManifold(from, to, &TraverseOptions{Interpolating: true, Record: true})
	if tr == nil {
		return nil, err
	}
	if len(tr.States) < 2 {
		return tr.States[0].Clone(), nil
	}

	return a.FastInterpolate(tr.States, t)
}

// FastInterpolate is Interpolate over an already recorded state list from a
// previous FollowManifold(..., Record) call, skipping the re-traversal. The
// list must contain at least two states; t is clamped to [0,1].
func (a *Atlas) FastInterpolate(states []*State, t float64) (*State, error) {
	if len(states) < 2 {
		return nil, ErrTooFewStates
	}
	if t <= 0 {
		return states[0].Clone(), nil
	}
	if t > 1 {
		t = 1
	}

	total := 0.0
	for i := 1; i < len(states); i++ {
		total += Distance(states[i-1].X, states[i].X)
	}
	if total == 0 {
		return states[0].Clone(), nil
	}

	// Locate the segment containing the target arc length, then blend inside
	// it and correct back onto the manifold.
	target := t * total
	for i := 1; i < len(states); i++ {
		seg := Distance(states[i-1].X, states[i].X)
		if target > seg {
			target -= seg

			continue
		}

		frac := 0.0
		if seg > 0 {
			frac = target / seg
		}
		x := make([]float64, len(states[i-1].X))
		floats.AddScaledTo(x, states[i-1].X, frac, states[i].X)
		floats.AddScaled(x, -frac, states[i-1].X)
		if err := a.man.ProjectInPlace(x); err != nil {
			return nil, err
		}

		chart := states[i-1].Chart
		if id, ok := a.OwningChart(x, chart); ok {
			chart = id
		}

		return NewState(x, chart), nil
	}

	return states[len(states)-1].Clone(), nil
}
