/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package component

/*****************************************************************************************************************/

import (
	"math"
	"testing"
)

/*****************************************************************************************************************/

func TestExponential2DTotalFluxApproximatesAnalyticForm(t *testing.T) {
	e := NewExponential2D()

	i0 := 1.0
	h := 5.0

	// mu chosen so IntensityFromMagnitude(zp, mu) == i0 exactly, with zp = 25.
	zp := 25.0
	mu := zp

	if err := e.Setup([]float64{0, 0, mu, h}, 0, 16, 16, zp); err != nil {
		t.Fatalf("Setup returned unexpected error: %v", err)
	}

	sum := 0.0
	for j := 0; j < 32; j++ {
		for i := 0; i < 32; i++ {
			sum += e.GetValue(float64(i+1), float64(j+1))
		}
	}

	want := 2 * math.Pi * i0 * h * h
	relErr := math.Abs(sum-want) / want

	if relErr > 0.01 {
		t.Errorf("sum = %f; want within 1%% of %f (rel err %f)", sum, want, relErr)
	}
}

/*****************************************************************************************************************/

func TestExponential2DCircularIsRotationInvariant(t *testing.T) {
	zp := 25.0

	base := NewExponential2D()
	_ = base.Setup([]float64{0, 0, zp, 5.0}, 0, 16, 16, zp)

	rotated := NewExponential2D()
	_ = rotated.Setup([]float64{45, 0, zp, 5.0}, 0, 16, 16, zp)

	for _, p := range [][2]float64{{20, 16}, {16, 20}, {18, 19}, {12, 11}} {
		a := base.GetValue(p[0], p[1])
		b := rotated.GetValue(p[0], p[1])

		if math.Abs(a-b) > 1e-9 {
			t.Errorf("GetValue(%v) base=%f rotated=%f; circular profile must be PA-invariant", p, a, b)
		}
	}
}

/*****************************************************************************************************************/

func TestExponential2DRejectsNonPositiveScaleLength(t *testing.T) {
	e := NewExponential2D()

	if err := e.Setup([]float64{0, 0, 25.0, 0}, 0, 16, 16, 25.0); err == nil {
		t.Errorf("Setup with h=0 expected error, got nil")
	}
}

/*****************************************************************************************************************/

func TestExponential2DRejectsInvalidEllipticity(t *testing.T) {
	e := NewExponential2D()

	if err := e.Setup([]float64{0, 1.0, 25.0, 5.0}, 0, 16, 16, 25.0); err == nil {
		t.Errorf("Setup with ell=1.0 expected error, got nil")
	}

	if err := e.Setup([]float64{0, -0.1, 25.0, 5.0}, 0, 16, 16, 25.0); err == nil {
		t.Errorf("Setup with ell=-0.1 expected error, got nil")
	}
}

/*****************************************************************************************************************/
