/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package integrate

/*****************************************************************************************************************/

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

/*****************************************************************************************************************/

// fixedOrder is the number of Gauss-Legendre nodes used to evaluate a single subinterval. Adaptive
// subdivision compares the estimate over a whole interval against the sum of estimates over its
// two halves; disagreement beyond tolerance triggers a further split rather than a higher order,
// which keeps every subinterval estimate directly comparable.
const fixedOrder = 12

/*****************************************************************************************************************/

// Result carries an integral estimate alongside the diagnostic the caller needs to decide whether
// to surface a non-convergence warning for the pixel being evaluated.
type Result struct {
	Value     float64
	Converged bool
	Depth     int
}

/*****************************************************************************************************************/

// LineOfSight performs adaptive 1D quadrature of f over the finite symmetric interval [-L, +L],
// the shape every 3D component's line-of-sight integral takes (§4.B). relTol and absTol bound
// the acceptable disagreement between a parent estimate and the sum of its children; maxDepth
// bounds the recursion (the spec's "maximum subdivisions 1000" is interpreted as a depth budget:
// 1000 leaf-level subintervals is reached well before depth 20, since each level doubles the
// subinterval count).
func LineOfSight(f func(s float64) float64, l, relTol, absTol float64, maxDepth int) Result {
	whole := quad.Fixed(f, -l, l, fixedOrder, quad.Legendre{}, 0)

	value, converged, depth := adaptive(f, -l, l, whole, relTol, absTol, maxDepth, 0)

	return Result{Value: value, Converged: converged, Depth: depth}
}

/*****************************************************************************************************************/

func adaptive(f func(s float64) float64, a, b, whole, relTol, absTol float64, maxDepth, depth int) (float64, bool, int) {
	mid := (a + b) / 2

	left := quad.Fixed(f, a, mid, fixedOrder, quad.Legendre{}, 0)
	right := quad.Fixed(f, mid, b, fixedOrder, quad.Legendre{}, 0)

	sum := left + right

	tolerance := math.Max(absTol, relTol*math.Abs(sum))

	if math.Abs(sum-whole) <= tolerance {
		return sum, true, depth
	}

	if depth >= maxDepth {
		return sum, false, depth
	}

	leftValue, leftConverged, leftDepth := adaptive(f, a, mid, left, relTol, absTol, maxDepth, depth+1)
	rightValue, rightConverged, rightDepth := adaptive(f, mid, b, right, relTol, absTol, maxDepth, depth+1)

	maxChildDepth := leftDepth
	if rightDepth > maxChildDepth {
		maxChildDepth = rightDepth
	}

	return leftValue + rightValue, leftConverged && rightConverged, maxChildDepth
}

/*****************************************************************************************************************/

// SubPixel2D splits a unit pixel centered at (x, y) into a k x k grid of sub-samples, evaluates f
// at each sub-sample center, and averages the result (§4.B). k must be >= 1; k = 1 degenerates to
// a single evaluation at the pixel center.
func SubPixel2D(f func(x, y float64) float64, x, y float64, k int) float64 {
	if k < 1 {
		k = 1
	}

	step := 1.0 / float64(k)
	offset := -0.5 + step/2

	sum := 0.0

	for j := 0; j < k; j++ {
		sy := y + offset + float64(j)*step
		for i := 0; i < k; i++ {
			sx := x + offset + float64(i)*step
			sum += f(sx, sy)
		}
	}

	return sum / float64(k*k)
}

/*****************************************************************************************************************/
