package manifold_test

import (
	"fmt"

	"github.com/katalvlaran/atlas/manifold"
	"gonum.org/v1/gonum/floats"
)

// ExampleManifold_Project pulls an off-manifold guess back onto the unit
// sphere. The corrected point satisfies ‖x‖ = 1 to projection tolerance.
func ExampleManifold_Project() {
	f, j := manifold.Sphere(3)
	m, err := manifold.New(3, f, j)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	x, err := m.Project([]float64{0.3, 0.1, 1.4})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("norm=%.6f\n", floats.Norm(x, 2))
	// Output:
	// norm=1.000000
}
