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

func TestGaussian1DPeakMatchesZeroPoint(t *testing.T) {
	g := NewGaussian1D()

	if err := g.Setup([]float64{20.0, 3.0}, 0, 16, 16, 25.0); err != nil {
		t.Fatalf("Setup returned unexpected error: %v", err)
	}

	got := g.GetValue(16, 16)
	want := 100.0

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("GetValue(16, 16) = %f; want %f", got, want)
	}
}

/*****************************************************************************************************************/

func TestGaussian1DOneSigmaOffset(t *testing.T) {
	g := NewGaussian1D()

	if err := g.Setup([]float64{20.0, 3.0}, 0, 16, 16, 25.0); err != nil {
		t.Fatalf("Setup returned unexpected error: %v", err)
	}

	got := g.GetValue(19, 16)
	want := 100.0 * math.Exp(-0.5)

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("GetValue(19, 16) = %f; want %f", got, want)
	}
}

/*****************************************************************************************************************/

func TestGaussian1DIgnoresYCoordinate(t *testing.T) {
	g := NewGaussian1D()
	_ = g.Setup([]float64{20.0, 3.0}, 0, 16, 16, 25.0)

	a := g.GetValue(19, 1)
	b := g.GetValue(19, 31)

	if a != b {
		t.Errorf("GetValue at different y = %f, %f; want equal", a, b)
	}
}

/*****************************************************************************************************************/

func TestGaussian1DRejectsNonPositiveSigma(t *testing.T) {
	g := NewGaussian1D()

	if err := g.Setup([]float64{20.0, 0}, 0, 16, 16, 25.0); err == nil {
		t.Errorf("Setup with sigma=0 expected error, got nil")
	}
}

/*****************************************************************************************************************/

func TestGaussian1DRejectsShortParameterSlice(t *testing.T) {
	g := NewGaussian1D()

	if err := g.Setup([]float64{20.0}, 0, 16, 16, 25.0); err == nil {
		t.Errorf("Setup with too-short parameter slice expected error, got nil")
	}
}

/*****************************************************************************************************************/

func TestGaussian1DParameterMetadata(t *testing.T) {
	g := NewGaussian1D()

	if g.ParameterCount() != 2 {
		t.Errorf("ParameterCount() = %d; want 2", g.ParameterCount())
	}

	if len(g.ParameterLabels()) != g.ParameterCount() {
		t.Errorf("len(ParameterLabels()) = %d; want %d", len(g.ParameterLabels()), g.ParameterCount())
	}

	if g.RequiresIntegration() {
		t.Errorf("RequiresIntegration() = true; want false")
	}
}

/*****************************************************************************************************************/
