/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package model

/*****************************************************************************************************************/

import "errors"

/*****************************************************************************************************************/

// Error kinds surfaced by the model package. Callers should use errors.Is against these sentinels
// rather than string-matching; returned errors wrap one of these with fmt.Errorf("%w: ..."), except
// that Configure wraps oversample.ErrOverlappingRegions when two oversampled regions overlap.
var (
	// ErrBadGeometry is returned by Configure when width or height is non-positive.
	ErrBadGeometry = errors.New("bad geometry")

	// ErrBadPSF is returned by Configure when the PSF is non-finite, non-normalizable, or larger
	// than the image in any axis.
	ErrBadPSF = errors.New("bad psf")

	// ErrParameterCountMismatch is returned by SetParameters when the supplied vector's length
	// does not equal the sum of the configured components' parameter counts.
	ErrParameterCountMismatch = errors.New("parameter count mismatch")

	// ErrParameterOutOfDomain is returned when a component's Setup rejects its parameter slice
	// (non-positive scale length, non-positive Sérsic index, inclination outside [0°, 90°]).
	ErrParameterOutOfDomain = errors.New("parameter out of domain")

	// ErrIntegrationNonConvergence is a warning, not a fatal condition: the image is still
	// produced, with affected pixels using the integrator's best estimate.
	ErrIntegrationNonConvergence = errors.New("integration did not converge")

	// ErrConvolutionFailed is fatal for the current evaluation (FFT planning failure).
	ErrConvolutionFailed = errors.New("convolution failed")

	// ErrCancelled is returned when ComputeModelImage observes its cancellation flag before a
	// row; the partial output buffer is marked invalid.
	ErrCancelled = errors.New("computation cancelled")

	// ErrModelNotFinite is returned when the completed image contains a NaN or Inf pixel.
	ErrModelNotFinite = errors.New("model image is not finite")

	// ErrUnknownComponentKind is returned by Configure when a ComponentDescriptor names a kind
	// absent from the dispatch table (§9: "tagged variant... dispatch table keyed by kind").
	ErrUnknownComponentKind = errors.New("unknown function component kind")

	// ErrMissingCenter is returned by Configure when a ComponentDescriptor's parameter list does
	// not carry the X0/Y0 center labels the CORE reconciles at this boundary (§3, §9).
	ErrMissingCenter = errors.New("component descriptor missing X0/Y0 center")
)

/*****************************************************************************************************************/
