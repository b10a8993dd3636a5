package pdf

import (
	"errors"
	"math"
)

var (
	// ErrEmpty indicates a draw from a distribution with no elements.
	ErrEmpty = errors.New("pdf: empty distribution")

	// ErrZeroTotal indicates a draw from a distribution whose total weight is zero.
	ErrZeroTotal = errors.New("pdf: total weight is zero")

	// ErrOutOfRange indicates an unknown element key or a sample fraction
	// outside [0,1).
	ErrOutOfRange = errors.New("pdf: index or fraction out of range")

	// ErrBadWeight indicates a negative, NaN or infinite weight.
	ErrBadWeight = errors.New("pdf: weight must be finite and non-negative")
)

// Tree is a cumulative-weight (Fenwick) index over elements 0..Len()-1.
// The zero value is not usable; construct with New.
type Tree struct {
	sums    []float64 // 1-based Fenwick array, len = cap+1
	weights []float64 // raw weights by element key
}

// New returns an empty distribution.
func New() *Tree {
	return &Tree{sums: make([]float64, 1)}
}

// Len returns the number of elements.
func (t *Tree) Len() int { return len(t.weights) }

// Total returns the sum of all weights.
func (t *Tree) Total() float64 { return t.prefix(len(t.weights)) }

// Weight returns the current weight of element id, or 0 for unknown keys.
func (t *Tree) Weight(id int) float64 {
	if id < 0 || id >= len(t.weights) {
		return 0
	}

	return t.weights[id]
}

// Add appends an element with weight w and returns its stable key.
// Keys are assigned densely in insertion order, starting at 0.
//
// Errors: ErrBadWeight for negative or non-finite w.
//
// Complexity: amortized O(log n); O(n) when the backing array doubles.
func (t *Tree) Add(w float64) (int, error) {
	if !validWeight(w) {
		return 0, ErrBadWeight
	}

	id := len(t.weights)
	t.weights = append(t.weights, w)
	if id+1 >= len(t.sums) {
		t.rebuild()

		return id, nil
	}
	t.addAt(id+1, w)

	return id, nil
}

// Update re-weighs element id to w.
//
// Errors: ErrOutOfRange for unknown keys, ErrBadWeight for invalid weights.
//
// Complexity: O(log n).
func (t *Tree) Update(id int, w float64) error {
	if id < 0 || id >= len(t.weights) {
		return ErrOutOfRange
	}
	if !validWeight(w) {
		return ErrBadWeight
	}

	delta := w - t.weights[id]
	t.weights[id] = w
	t.addAt(id+1, delta)

	return nil
}

// Sample maps a uniform fraction u ∈ [0,1) to an element key with
// probability proportional to its weight.
//
// Errors: ErrEmpty, ErrZeroTotal, ErrOutOfRange (u outside [0,1)).
//
// Complexity: O(log n).
func (t *Tree) Sample(u float64) (int, error) {
	n := len(t.weights)
	if n == 0 {
		return 0, ErrEmpty
	}
	if u < 0 || u >= 1 || math.IsNaN(u) {
		return 0, ErrOutOfRange
	}

	total := t.Total()
	if total <= 0 {
		return 0, ErrZeroTotal
	}

	// Descend the implicit tree: find the first key whose cumulative weight
	// exceeds the target mass.
	target := u * total
	idx := 0
	bit := 1
	for bit<<1 < len(t.sums) {
		bit <<= 1
	}
	for ; bit > 0; bit >>= 1 {
		next := idx + bit
		if next < len(t.sums) && t.sums[next] <= target {
			idx = next
			target -= t.sums[next]
		}
	}
	if idx >= n { // floating-point edge at u → 1⁻
		idx = n - 1
	}

	return idx, nil
}

// prefix returns the cumulative weight of elements 0..i-1 (1-based internal index i).
func (t *Tree) prefix(i int) float64 {
	var s float64
	for ; i > 0; i -= i & -i {
		s += t.sums[i]
	}

	return s
}

// addAt adds delta at 1-based internal index i.
func (t *Tree) addAt(i int, delta float64) {
	for ; i < len(t.sums); i += i & -i {
		t.sums[i] += delta
	}
}

// rebuild doubles the backing array and re-inserts all weights.
func (t *Tree) rebuild() {
	size := len(t.sums) * 2
	for size <= len(t.weights) {
		size *= 2
	}
	t.sums = make([]float64, size)
	for id, w := range t.weights {
		t.addAt(id+1, w)
	}
}

// validWeight accepts finite, non-negative weights.
func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 1)
}
