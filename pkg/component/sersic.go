/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package component

/*****************************************************************************************************************/

import (
	"fmt"
	"math"

	"github.com/observerly/imfit/pkg/matrix"
)

/*****************************************************************************************************************/

// Sersic implements I(r) = Ie * exp(-bn * ((r/re)^(1/n) - 1)) (§4.A). Parameters are position
// angle (degrees), ellipticity, surface-brightness mu_e at the effective radius (mag/arcsec²),
// effective radius re (pixels), and Sérsic index n.
type Sersic struct {
	xc, yc float64
	rot    *matrix.Matrix
	q      float64

	ie    float64
	re    float64
	invRe float64
	invN  float64
	bn    float64
	n     float64
}

/*****************************************************************************************************************/

func NewSersic() *Sersic {
	return &Sersic{}
}

/*****************************************************************************************************************/

func (s *Sersic) Name() string { return "Sersic" }

/*****************************************************************************************************************/

func (s *Sersic) ParameterCount() int { return 5 }

/*****************************************************************************************************************/

func (s *Sersic) ParameterLabels() []string {
	return []string{"PA", "ell", "mu_e", "r_e", "n"}
}

/*****************************************************************************************************************/

func (s *Sersic) RequiresIntegration() bool { return false }

/*****************************************************************************************************************/

// IsSteepNearPeak reports true for n < 1, where the profile develops a central cusp steep enough
// that per-pixel sub-sampling materially changes the result near the center.
func (s *Sersic) IsSteepNearPeak() bool { return s.n < 1 }

/*****************************************************************************************************************/

// CutoffRadius reports r_e / (2n), a radius scaled inversely with n: the smaller n, the wider the
// region around the center that receives sub-pixel integration.
func (s *Sersic) CutoffRadius() float64 {
	if s.n <= 0 {
		return 0
	}

	return s.re / (2 * s.n)
}

/*****************************************************************************************************************/

func (s *Sersic) Setup(params []float64, offset int, xc, yc, zp float64) error {
	if offset+5 > len(params) {
		return fmt.Errorf("%w: Sersic requires 5 parameters starting at offset %d, got %d remaining", ErrParameterOutOfDomain, offset, len(params)-offset)
	}

	pa := params[offset]
	ell := params[offset+1]
	muE := params[offset+2]
	re := params[offset+3]
	n := params[offset+4]

	if re <= 0 {
		return fmt.Errorf("%w: Sersic effective radius r_e must be positive, got %f", ErrParameterOutOfDomain, re)
	}

	if n <= 0 {
		return fmt.Errorf("%w: Sersic index n must be positive, got %f", ErrParameterOutOfDomain, n)
	}

	if ell < 0 || ell >= 1 {
		return fmt.Errorf("%w: Sersic ellipticity must be in [0, 1), got %f", ErrParameterOutOfDomain, ell)
	}

	rot, err := RotationFor(pa)
	if err != nil {
		return fmt.Errorf("%w: Sersic failed to build rotation matrix: %v", ErrParameterOutOfDomain, err)
	}

	s.xc = xc
	s.yc = yc
	s.rot = rot
	s.q = AxisRatio(ell)
	s.ie = IntensityFromMagnitude(zp, muE)
	s.re = re
	s.invRe = 1 / re
	s.n = n
	s.invN = 1 / n
	s.bn = SersicBn(n)

	return nil
}

/*****************************************************************************************************************/

func (s *Sersic) GetValue(x, y float64) float64 {
	dx := x - s.xc
	dy := y - s.yc

	major, minor, err := s.rot.Apply(dx, dy)
	if err != nil {
		return math.NaN()
	}

	r := EllipticalRadius(major, minor, s.q)

	return s.ie * math.Exp(-s.bn*(math.Pow(r*s.invRe, s.invN)-1))
}

/*****************************************************************************************************************/
