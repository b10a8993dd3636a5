package atlas

import "gonum.org/v1/gonum/floats"

// ChartID is a stable index into the atlas-owned chart arena. Charts are
// never deleted within a session, so an ID handed out once stays valid for
// the lifetime of its atlas; states reference charts only through ChartIDs
// and never own them.
type ChartID int

// NoChart marks a state whose owning chart has not been resolved yet.
const NoChart ChartID = -1

// State is an ambient point plus a non-owning reference to the chart
// currently believed to contain it. A State must not outlive the Atlas the
// ChartID refers into.
type State struct {
	// X is the ambient coordinate vector.
	X []float64

	// Chart identifies the owning chart inside the atlas, or NoChart.
	Chart ChartID
}

// NewState copies x into a fresh State referencing chart c.
func NewState(x []float64, c ChartID) *State {
	return &State{X: append([]float64(nil), x...), Chart: c}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	return NewState(s.X, s.Chart)
}

// equalTolerance bounds the coordinate distance under which two states are
// considered the same point (projection noise, not geometry).
const equalTolerance = 1e-9

// Distance returns the euclidean distance between two ambient points.
func Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// EqualStates reports whether two states coincide within projection noise.
func EqualStates(a, b *State) bool {
	if a == nil || b == nil || len(a.X) != len(b.X) {
		return false
	}

	return floats.Distance(a.X, b.X, 2) < equalTolerance
}
