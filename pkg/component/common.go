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
	"github.com/observerly/imfit/pkg/projection"
)

/*****************************************************************************************************************/

// ErrParameterOutOfDomain is the sentinel every component wraps when Setup rejects its slice
// (negative scale length, non-positive Sérsic index, inclination outside [0°, 90°], §7). The
// model package re-wraps this as model.ErrParameterOutOfDomain at the SetParameters boundary.
var ErrParameterOutOfDomain = fmt.Errorf("parameter out of domain")

/*****************************************************************************************************************/

// IntensityFromMagnitude converts a surface-brightness parameter mu (mag/arcsec²) to linear
// intensity I0 = 10^(0.4*(ZP - mu)), the canonical conversion every magnitude-parameterized
// component applies once in Setup (§4.A).
func IntensityFromMagnitude(zp, mu float64) float64 {
	return math.Pow(10, 0.4*(zp-mu))
}

/*****************************************************************************************************************/

// RotationFor returns the rotation matrix that maps a sky offset (dx, dy) into major/minor-axis
// coordinates for a component with position angle paDegrees, measured counter-clockwise from the
// +x axis (§4.A). Components call this once in Setup; GetValue applies the cached matrix via
// Matrix.Apply without recomputing sin/cos per pixel.
func RotationFor(paDegrees float64) (*matrix.Matrix, error) {
	return matrix.Rotation2D(-projection.Radians(paDegrees))
}

/*****************************************************************************************************************/

// EllipticalRadius returns the deprojected elliptical radius given major/minor-axis offsets
// (major, minor) and an axis ratio q = b/a in (0, 1]; q = 1 is circular. Used by Exponential-2D
// and Sérsic after the coordinate transform.
func EllipticalRadius(major, minor, q float64) float64 {
	if q <= 0 {
		q = 1e-6
	}

	return math.Hypot(major, minor/q)
}

/*****************************************************************************************************************/

// AxisRatio converts an ellipticity e = 1 - b/a (the parameterization the config file uses) into
// the axis ratio q = b/a that EllipticalRadius expects.
func AxisRatio(ellipticity float64) float64 {
	return 1 - ellipticity
}

/*****************************************************************************************************************/
