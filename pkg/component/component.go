/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package component

/*****************************************************************************************************************/

// Component is the uniform per-pixel evaluation contract every function component implements
// (§3, §4.A). Setup must be called exactly once before any GetValue call that depends on it;
// components carry no cross-pixel state beyond what Setup caches.
type Component interface {
	// Name is the short identifier used for parsing (FUNCTION <name>) and reporting.
	Name() string

	// ParameterCount returns the fixed number of scalar parameters this kind declares.
	ParameterCount() int

	// ParameterLabels returns the ordered parameter labels, one per ParameterCount() slot.
	ParameterLabels() []string

	// RequiresIntegration reports whether GetValue needs 1D line-of-sight quadrature (4.B); only
	// true for 3D components such as ExponentialDisk3D.
	RequiresIntegration() bool

	// IsSteepNearPeak reports whether the ModelBuilder should activate 2D sub-pixel integration
	// within a cutoff radius of this component's center (4.B). The answer may depend on the
	// parameters most recently passed to Setup (e.g. a Sérsic index below 1 is cuspy).
	IsSteepNearPeak() bool

	// Setup loads parameters starting at params[offset], for a component centered at sky
	// coordinate (xc, yc), with the process-wide photometric zero-point zp (§4.A, §9). It
	// computes every per-call-invariant derived quantity (rotation, trig, scale reciprocals)
	// so GetValue can run free of divisions and transcendental calls in the common case.
	Setup(params []float64, offset int, xc, yc, zp float64) error

	// GetValue returns the component's intensity contribution at sky coordinate (x, y), in
	// detector units. Must be a pure function of (x, y) given the last Setup call, so the same
	// component can be reused unmodified at oversampled resolution (4.D).
	GetValue(x, y float64) float64
}

/*****************************************************************************************************************/

// ConvergenceReporter is implemented by components whose GetValue relies on numerical
// integration (currently only ExponentialDisk3D). The ModelBuilder type-asserts for it so it can
// accumulate per-pixel IntegrationNonConvergence warnings without a variant-specific code path
// for every component kind (§7).
type ConvergenceReporter interface {
	GetValueWithConvergence(x, y float64) (float64, bool)
}

/*****************************************************************************************************************/

// CutoffScale reports the effective scale length (in pixels) within which the ModelBuilder should
// consider activating sub-pixel integration for a component that reports IsSteepNearPeak() true.
// Components that never request sub-pixel integration may return 0.
type CutoffScale interface {
	CutoffRadius() float64
}

/*****************************************************************************************************************/
