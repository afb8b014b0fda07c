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

func TestSersicValueAtEffectiveRadiusMatchesIe(t *testing.T) {
	s := NewSersic()

	zp := 25.0
	muE := zp // IntensityFromMagnitude(zp, muE) == 1

	if err := s.Setup([]float64{0, 0, muE, 5.0, 4.0}, 0, 16, 16, zp); err != nil {
		t.Fatalf("Setup returned unexpected error: %v", err)
	}

	got := s.GetValue(21, 16) // r = r_e = 5

	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("GetValue at r=r_e = %f; want 1.0 (Ie)", got)
	}
}

/*****************************************************************************************************************/

func TestSersicIsSteepNearPeakForLowIndex(t *testing.T) {
	s := NewSersic()
	_ = s.Setup([]float64{0, 0, 25.0, 5.0, 0.5}, 0, 16, 16, 25.0)

	if !s.IsSteepNearPeak() {
		t.Errorf("IsSteepNearPeak() = false for n=0.5; want true")
	}
}

/*****************************************************************************************************************/

func TestSersicIsNotSteepNearPeakForHighIndex(t *testing.T) {
	s := NewSersic()
	_ = s.Setup([]float64{0, 0, 25.0, 5.0, 4.0}, 0, 16, 16, 25.0)

	if s.IsSteepNearPeak() {
		t.Errorf("IsSteepNearPeak() = true for n=4; want false")
	}
}

/*****************************************************************************************************************/

func TestSersicRejectsNonPositiveIndex(t *testing.T) {
	s := NewSersic()

	if err := s.Setup([]float64{0, 0, 25.0, 5.0, 0}, 0, 16, 16, 25.0); err == nil {
		t.Errorf("Setup with n=0 expected error, got nil")
	}
}

/*****************************************************************************************************************/

func TestSersicBnClosedFormAtDeVaucouleurs(t *testing.T) {
	// n=4 (de Vaucouleurs) has a well-known b_n ~= 7.669.
	bn := SersicBn(4.0)

	if math.Abs(bn-7.669) > 0.01 {
		t.Errorf("SersicBn(4.0) = %f; want ~7.669", bn)
	}
}

/*****************************************************************************************************************/

func TestSersicBnLowIndexIsFinitePositive(t *testing.T) {
	bn := SersicBn(0.2)

	if bn <= 0 || math.IsNaN(bn) {
		t.Errorf("SersicBn(0.2) = %f; want a finite positive value", bn)
	}
}

/*****************************************************************************************************************/

func TestSersicBnSeriesContinuousWithClosedFormAtThreshold(t *testing.T) {
	below := sersicBnSeries(0.359)
	above := sersicBnClosedForm(0.36)

	if math.Abs(below-above) > 0.01 {
		t.Errorf("SersicBn near n=0.36 threshold: series(0.359) = %f, closedForm(0.36) = %f; want close agreement", below, above)
	}
}

/*****************************************************************************************************************/

func TestSersicBnIncreasesWithIndex(t *testing.T) {
	low := SersicBn(1.0)
	high := SersicBn(4.0)

	if high <= low {
		t.Errorf("SersicBn(4.0) = %f; want > SersicBn(1.0) = %f", high, low)
	}
}

/*****************************************************************************************************************/
