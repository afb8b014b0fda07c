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

	"github.com/observerly/imfit/pkg/integrate"
	"github.com/observerly/imfit/pkg/matrix"
)

/*****************************************************************************************************************/

// minCosInclination floors |cos(i)| in the line-of-sight interval length calculation; an
// edge-on disk (i=90°) makes the literal 8*hz/|cos i| term blow up, but the radial term 8*h
// already bounds the interval at that inclination since Z(s) is constant along the line of
// sight there (see ExponentialDisk3D.GetValue).
const minCosInclination = 1e-3

/*****************************************************************************************************************/

// ExponentialDisk3D integrates I0/(2*hz) * exp(-R(s)/h) * exp(-|Z(s)|/hz) along the line of
// sight through an inclined axisymmetric disk (§4.A). The 1/(2*hz) normalization makes the
// face-on, hz -> 0 limit converge to Exponential2D with the same (I0, h): integrating
// exp(-|Z|/hz) over all Z yields 2*hz, so the normalized integral reduces to exp(-R/h).
type ExponentialDisk3D struct {
	xc, yc float64
	rot    *matrix.Matrix

	i0       float64
	h        float64
	hz       float64
	cosIncl  float64
	sinIncl  float64
	halfLine float64
}

/*****************************************************************************************************************/

func NewExponentialDisk3D() *ExponentialDisk3D {
	return &ExponentialDisk3D{}
}

/*****************************************************************************************************************/

func (d *ExponentialDisk3D) Name() string { return "ExponentialDisk3D" }

/*****************************************************************************************************************/

func (d *ExponentialDisk3D) ParameterCount() int { return 5 }

/*****************************************************************************************************************/

func (d *ExponentialDisk3D) ParameterLabels() []string {
	return []string{"PA", "i", "mu", "h", "h_z"}
}

/*****************************************************************************************************************/

func (d *ExponentialDisk3D) RequiresIntegration() bool { return true }

/*****************************************************************************************************************/

func (d *ExponentialDisk3D) IsSteepNearPeak() bool { return false }

/*****************************************************************************************************************/

func (d *ExponentialDisk3D) Setup(params []float64, offset int, xc, yc, zp float64) error {
	if offset+5 > len(params) {
		return fmt.Errorf("%w: ExponentialDisk3D requires 5 parameters starting at offset %d, got %d remaining", ErrParameterOutOfDomain, offset, len(params)-offset)
	}

	pa := params[offset]
	incl := params[offset+1]
	mu := params[offset+2]
	h := params[offset+3]
	hz := params[offset+4]

	if h <= 0 {
		return fmt.Errorf("%w: ExponentialDisk3D radial scale h must be positive, got %f", ErrParameterOutOfDomain, h)
	}

	if hz <= 0 {
		return fmt.Errorf("%w: ExponentialDisk3D vertical scale h_z must be positive, got %f", ErrParameterOutOfDomain, hz)
	}

	if incl < 0 || incl > 90 {
		return fmt.Errorf("%w: ExponentialDisk3D inclination must be in [0, 90] degrees, got %f", ErrParameterOutOfDomain, incl)
	}

	rot, err := RotationFor(pa)
	if err != nil {
		return fmt.Errorf("%w: ExponentialDisk3D failed to build rotation matrix: %v", ErrParameterOutOfDomain, err)
	}

	inclRad := incl * math.Pi / 180

	d.xc = xc
	d.yc = yc
	d.rot = rot
	d.i0 = IntensityFromMagnitude(zp, mu)
	d.h = h
	d.hz = hz
	d.cosIncl = math.Cos(inclRad)
	d.sinIncl = math.Sin(inclRad)

	cosForLength := math.Abs(d.cosIncl)
	if cosForLength < minCosInclination {
		cosForLength = minCosInclination
	}

	d.halfLine = math.Max(8*hz/cosForLength, 8*h)

	return nil
}

/*****************************************************************************************************************/

func (d *ExponentialDisk3D) GetValue(x, y float64) float64 {
	dx := x - d.xc
	dy := y - d.yc

	major, minor, err := d.rot.Apply(dx, dy)
	if err != nil {
		return math.NaN()
	}

	density := func(s float64) float64 {
		yDisk := minor*d.cosIncl + s*d.sinIncl
		zDisk := -minor*d.sinIncl + s*d.cosIncl

		r := math.Hypot(major, yDisk)

		return math.Exp(-r/d.h) * math.Exp(-math.Abs(zDisk)/d.hz)
	}

	result := integrate.LineOfSight(density, d.halfLine, 1e-6, 1e-8, 1000)

	return d.i0 / (2 * d.hz) * result.Value
}

/*****************************************************************************************************************/

// GetValueWithConvergence behaves like GetValue but also reports whether the underlying
// line-of-sight quadrature converged, so the ModelBuilder can accumulate an
// IntegrationNonConvergence warning count without re-deriving the geometry.
func (d *ExponentialDisk3D) GetValueWithConvergence(x, y float64) (float64, bool) {
	dx := x - d.xc
	dy := y - d.yc

	major, minor, err := d.rot.Apply(dx, dy)
	if err != nil {
		return math.NaN(), true
	}

	density := func(s float64) float64 {
		yDisk := minor*d.cosIncl + s*d.sinIncl
		zDisk := -minor*d.sinIncl + s*d.cosIncl

		r := math.Hypot(major, yDisk)

		return math.Exp(-r/d.h) * math.Exp(-math.Abs(zDisk)/d.hz)
	}

	result := integrate.LineOfSight(density, d.halfLine, 1e-6, 1e-8, 1000)

	return d.i0 / (2 * d.hz) * result.Value, result.Converged
}

/*****************************************************************************************************************/
