// Package pdf implements a discrete probability distribution over an
// append-only set of integer-keyed elements, with O(log n) weighted draws
// and O(log n) weight updates.
//
// 🚀 What is it for?
//
//	Weighted selection where weights change often: the atlas keeps one entry
//	per chart, keyed by the chart's measure, and re-weighs entries whenever
//	a measure is recomputed. A cumulative-sum (Fenwick) tree gives both the
//	draw and the update in logarithmic time, where a naive prefix scan would
//	pay O(n) per draw and a heap would pay O(n) per re-weigh.
//
// ✨ Key features:
//   - Add appends an element and returns its stable integer key
//   - Update re-weighs an element in O(log n)
//   - Sample maps a uniform fraction u ∈ [0,1) to a key with probability
//     proportional to its weight
//   - keys are never invalidated: the element set only grows
//
// ⚙️ Usage:
//
//	t := pdf.New()
//	a := t.Add(2.0)              // key 0, weight 2
//	b := t.Add(1.0)              // key 1, weight 1
//	_ = t.Update(b, 3.0)         // re-weigh key 1
//	id, err := t.Sample(rng.Float64())
//
// Concurrency: none. A Tree assumes exclusive access, matching the
// single-threaded contract of the atlas that owns it.
package pdf
