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

// Exponential2D implements I(r) = I0 * exp(-r/h), with r the deprojected elliptical radius
// (§4.A). Parameters are position angle (degrees), ellipticity e = 1 - b/a, surface-brightness
// mu (mag/arcsec²), and scale length h (pixels).
type Exponential2D struct {
	xc, yc float64
	rot    *matrix.Matrix
	q      float64

	i0   float64
	h    float64
	invH float64
}

/*****************************************************************************************************************/

func NewExponential2D() *Exponential2D {
	return &Exponential2D{}
}

/*****************************************************************************************************************/

func (e *Exponential2D) Name() string { return "Exponential-2D" }

/*****************************************************************************************************************/

func (e *Exponential2D) ParameterCount() int { return 4 }

/*****************************************************************************************************************/

func (e *Exponential2D) ParameterLabels() []string {
	return []string{"PA", "ell", "mu", "h"}
}

/*****************************************************************************************************************/

func (e *Exponential2D) RequiresIntegration() bool { return false }

/*****************************************************************************************************************/

func (e *Exponential2D) IsSteepNearPeak() bool { return false }

/*****************************************************************************************************************/

func (e *Exponential2D) Setup(params []float64, offset int, xc, yc, zp float64) error {
	if offset+4 > len(params) {
		return fmt.Errorf("%w: Exponential-2D requires 4 parameters starting at offset %d, got %d remaining", ErrParameterOutOfDomain, offset, len(params)-offset)
	}

	pa := params[offset]
	ell := params[offset+1]
	mu := params[offset+2]
	h := params[offset+3]

	if h <= 0 {
		return fmt.Errorf("%w: Exponential-2D scale length h must be positive, got %f", ErrParameterOutOfDomain, h)
	}

	if ell < 0 || ell >= 1 {
		return fmt.Errorf("%w: Exponential-2D ellipticity must be in [0, 1), got %f", ErrParameterOutOfDomain, ell)
	}

	rot, err := RotationFor(pa)
	if err != nil {
		return fmt.Errorf("%w: Exponential-2D failed to build rotation matrix: %v", ErrParameterOutOfDomain, err)
	}

	e.xc = xc
	e.yc = yc
	e.rot = rot
	e.q = AxisRatio(ell)
	e.i0 = IntensityFromMagnitude(zp, mu)
	e.h = h
	e.invH = 1 / h

	return nil
}

/*****************************************************************************************************************/

func (e *Exponential2D) GetValue(x, y float64) float64 {
	dx := x - e.xc
	dy := y - e.yc

	major, minor, err := e.rot.Apply(dx, dy)
	if err != nil {
		return math.NaN()
	}

	r := EllipticalRadius(major, minor, e.q)

	return e.i0 * math.Exp(-r*e.invH)
}

/*****************************************************************************************************************/
