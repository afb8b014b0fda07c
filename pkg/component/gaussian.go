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
)

/*****************************************************************************************************************/

// Gaussian1D implements I(r) = I0 * exp(-r^2 / (2*sigma^2)), r = |x - x0| (§4.A). It ignores the
// y coordinate entirely; callers that want a circular 2D Gaussian compose it with an elliptical
// radius upstream, or use Exponential2D's rotation machinery with a Gaussian falloff instead.
type Gaussian1D struct {
	xc float64

	i0           float64
	sigma        float64
	invTwoSigma2 float64
}

/*****************************************************************************************************************/

// NewGaussian1D constructs an unconfigured Gaussian1D; Setup must be called before GetValue.
func NewGaussian1D() *Gaussian1D {
	return &Gaussian1D{}
}

/*****************************************************************************************************************/

func (g *Gaussian1D) Name() string { return "Gaussian-1D" }

/*****************************************************************************************************************/

func (g *Gaussian1D) ParameterCount() int { return 2 }

/*****************************************************************************************************************/

func (g *Gaussian1D) ParameterLabels() []string { return []string{"mu", "sigma"} }

/*****************************************************************************************************************/

func (g *Gaussian1D) RequiresIntegration() bool { return false }

/*****************************************************************************************************************/

func (g *Gaussian1D) IsSteepNearPeak() bool { return true }

/*****************************************************************************************************************/

// CutoffRadius reports 3 sigma as the radius within which sub-pixel integration is worthwhile.
func (g *Gaussian1D) CutoffRadius() float64 { return 3 * g.sigma }

/*****************************************************************************************************************/

func (g *Gaussian1D) Setup(params []float64, offset int, xc, yc, zp float64) error {
	if offset+2 > len(params) {
		return fmt.Errorf("%w: Gaussian-1D requires 2 parameters starting at offset %d, got %d remaining", ErrParameterOutOfDomain, offset, len(params)-offset)
	}

	mu := params[offset]
	sigma := params[offset+1]

	if sigma <= 0 {
		return fmt.Errorf("%w: Gaussian-1D sigma must be positive, got %f", ErrParameterOutOfDomain, sigma)
	}

	g.xc = xc
	g.i0 = IntensityFromMagnitude(zp, mu)
	g.sigma = sigma
	g.invTwoSigma2 = 1 / (2 * sigma * sigma)

	return nil
}

/*****************************************************************************************************************/

func (g *Gaussian1D) GetValue(x, y float64) float64 {
	r := math.Abs(x - g.xc)

	return g.i0 * math.Exp(-r*r*g.invTwoSigma2)
}

/*****************************************************************************************************************/
