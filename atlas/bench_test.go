package atlas_test

import (
	"testing"

	"github.com/katalvlaran/atlas/atlas"
	"github.com/katalvlaran/atlas/manifold"
)

func benchSphereAtlas(b *testing.B, opts ...atlas.Option) *atlas.Atlas {
	b.Helper()
	f, j := manifold.Sphere(3)
	m, err := manifold.New(3, f, j)
	if err != nil {
		b.Fatal(err)
	}
	a, err := atlas.New(m, opts...)
	if err != nil {
		b.Fatal(err)
	}

	return a
}

// BenchmarkNewChart measures chart creation (projection, SVD, validation
// probes, measure estimation) on a fresh atlas each iteration.
func BenchmarkNewChart(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a := benchSphereAtlas(b)
		if _, err := a.NewChart([]float64{0, 0, 1}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFollowManifold_Sphere walks a quarter great circle per iteration,
// rebuilding the atlas so chart growth is part of the measured cost.
func BenchmarkFollowManifold_Sphere(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a := benchSphereAtlas(b)
		start, _ := a.NewChart([]float64{0, 0, 1})
		goal, _ := a.NewChart([]float64{0, 1, 0})
		from := atlas.NewState([]float64{0, 0, 1}, start.ID())
		to := atlas.NewState([]float64{0, 1, 0}, goal.ID())

		tr, err := a.FollowManifold(from, to, nil)
		if err != nil || !tr.Reached {
			b.Fatalf("traversal failed: %v", err)
		}
	}
}

// BenchmarkSampleUniform draws from a warm two-chart atlas.
func BenchmarkSampleUniform(b *testing.B) {
	a := benchSphereAtlas(b)
	if _, err := a.NewChart([]float64{0, 0, 1}); err != nil {
		b.Fatal(err)
	}
	if _, err := a.NewChart([]float64{0, 1, 0}); err != nil {
		b.Fatal(err)
	}
	s := atlas.NewSampler(a, 1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.SampleUniform(); err != nil {
			b.Fatal(err)
		}
	}
}
