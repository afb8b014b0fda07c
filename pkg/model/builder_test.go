/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package model

/*****************************************************************************************************************/

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/observerly/imfit/pkg/component"
	"github.com/observerly/imfit/pkg/integrate"
	"github.com/observerly/imfit/pkg/psf"
)

/*****************************************************************************************************************/

func gaussianDescriptor(x0, y0, mu, sigma float64) ComponentDescriptor {
	return ComponentDescriptor{
		Kind: "Gaussian-1D",
		Params: []ParamSpec{
			{Label: "X0", Value: x0, Lower: x0, Upper: x0},
			{Label: "Y0", Value: y0, Lower: y0, Upper: y0},
			{Label: "mu", Value: mu, Lower: mu, Upper: mu},
			{Label: "sigma", Value: sigma, Lower: sigma, Upper: sigma},
		},
	}
}

/*****************************************************************************************************************/

func sersicDescriptor(x0, y0, muE, re, n float64) ComponentDescriptor {
	return ComponentDescriptor{
		Kind: "Sersic",
		Params: []ParamSpec{
			{Label: "X0", Value: x0},
			{Label: "Y0", Value: y0},
			{Label: "PA", Value: 0},
			{Label: "ell", Value: 0},
			{Label: "mu_e", Value: muE},
			{Label: "r_e", Value: re},
			{Label: "n", Value: n},
		},
	}
}

/*****************************************************************************************************************/

// TestComputeModelImageMatchesGaussianReferenceValues is scenario S1 (§8): a single Gaussian-1D
// on a 32x32 image, ZP = 25.0, peak I0 = 100.0 at x0 = 16. Gaussian-1D reports IsSteepNearPeak, so
// every pixel within its 3-sigma cutoff is the sub-pixel average the Builder computes, not the raw
// analytic value at the pixel center — the expectation below is built from that same average.
func TestComputeModelImageMatchesGaussianReferenceValues(t *testing.T) {
	descriptors := []ComponentDescriptor{gaussianDescriptor(16, 16, 20.0, 3.0)}

	b := NewBuilder(Config{ZeroPoint: 25.0})

	if err := b.Configure(32, 32, descriptors, nil, nil); err != nil {
		t.Fatalf("Configure returned unexpected error: %v", err)
	}

	if err := b.SetParameters(InitialParameterVector(descriptors)); err != nil {
		t.Fatalf("SetParameters returned unexpected error: %v", err)
	}

	if err := b.ComputeModelImage(context.Background()); err != nil {
		t.Fatalf("ComputeModelImage returned unexpected error: %v", err)
	}

	img := b.GetImage()

	reference := component.NewGaussian1D()
	if err := reference.Setup(InitialParameterVector(descriptors), 0, 16, 16, 25.0); err != nil {
		t.Fatalf("reference Setup returned unexpected error: %v", err)
	}

	// Pixel center (15, 15) (0-indexed) maps to sky coordinate (16, 16), the peak.
	peak, _ := img.At(15, 15)
	wantPeak := integrate.SubPixel2D(reference.GetValue, 16, 16, DefaultSubPixelSamples)
	if math.Abs(peak-wantPeak) > 1e-9 {
		t.Errorf("peak value = %f; want %f", peak, wantPeak)
	}

	// Pixel center (18, 15) (0-indexed) maps to sky coordinate (19, 16).
	off, _ := img.At(18, 15)
	wantOff := integrate.SubPixel2D(reference.GetValue, 19, 16, DefaultSubPixelSamples)
	if math.Abs(off-wantOff) > 1e-9 {
		t.Errorf("value at x=19 = %f; want %f", off, wantOff)
	}
}

/*****************************************************************************************************************/

// TestComputeModelImageRejectsWrongParameterCount exercises ErrParameterCountMismatch.
func TestComputeModelImageRejectsWrongParameterCount(t *testing.T) {
	b := NewBuilder(Config{})

	if err := b.Configure(16, 16, []ComponentDescriptor{gaussianDescriptor(8, 8, 20.0, 2.0)}, nil, nil); err != nil {
		t.Fatalf("Configure returned unexpected error: %v", err)
	}

	if err := b.SetParameters([]float64{1, 2, 3}); !errors.Is(err, ErrParameterCountMismatch) {
		t.Errorf("SetParameters with wrong-length vector: err = %v; want ErrParameterCountMismatch", err)
	}
}

/*****************************************************************************************************************/

// TestConfigureRejectsNonPositiveGeometry exercises ErrBadGeometry.
func TestConfigureRejectsNonPositiveGeometry(t *testing.T) {
	b := NewBuilder(Config{})

	if err := b.Configure(0, 16, nil, nil, nil); !errors.Is(err, ErrBadGeometry) {
		t.Errorf("Configure with width=0: err = %v; want ErrBadGeometry", err)
	}
}

/*****************************************************************************************************************/

// TestConfigureRejectsUnknownComponentKind exercises ErrUnknownComponentKind.
func TestConfigureRejectsUnknownComponentKind(t *testing.T) {
	b := NewBuilder(Config{})

	descriptor := ComponentDescriptor{
		Kind: "NotAKind",
		Params: []ParamSpec{
			{Label: "X0", Value: 8},
			{Label: "Y0", Value: 8},
		},
	}

	if err := b.Configure(16, 16, []ComponentDescriptor{descriptor}, nil, nil); !errors.Is(err, ErrUnknownComponentKind) {
		t.Errorf("Configure with unknown kind: err = %v; want ErrUnknownComponentKind", err)
	}
}

/*****************************************************************************************************************/

// TestComputeModelImageAdditivity is the additivity invariant (§8.1) and scenario S6: the
// pre-convolution sum of a Gaussian and a Sersic model equals the model of the two summed.
func TestComputeModelImageAdditivity(t *testing.T) {
	g := gaussianDescriptor(16, 16, 20.0, 3.0)
	s := sersicDescriptor(16, 16, 22.0, 4.0, 2.0)

	compute := func(descriptors []ComponentDescriptor) []float64 {
		b := NewBuilder(Config{ZeroPoint: 25.0})

		if err := b.Configure(32, 32, descriptors, nil, nil); err != nil {
			t.Fatalf("Configure returned unexpected error: %v", err)
		}

		if err := b.SetParameters(InitialParameterVector(descriptors)); err != nil {
			t.Fatalf("SetParameters returned unexpected error: %v", err)
		}

		if err := b.ComputeModelImage(context.Background()); err != nil {
			t.Fatalf("ComputeModelImage returned unexpected error: %v", err)
		}

		img := b.GetImage()

		return img.Value
	}

	gOnly := compute([]ComponentDescriptor{g})
	sOnly := compute([]ComponentDescriptor{s})
	both := compute([]ComponentDescriptor{g, s})

	maxDiff := 0.0

	for i := range both {
		diff := math.Abs(both[i] - (gOnly[i] + sOnly[i]))
		if diff > maxDiff {
			maxDiff = diff
		}
	}

	if maxDiff > 1e-12 {
		t.Errorf("max |model(G+S) - (model(G) + model(S))| = %e; want <= 1e-12", maxDiff)
	}
}

/*****************************************************************************************************************/

// TestComputeModelImageDeterministicAcrossThreadCounts is the determinism invariant (§8.6): the
// observable image is identical regardless of thread count.
func TestComputeModelImageDeterministicAcrossThreadCounts(t *testing.T) {
	descriptors := []ComponentDescriptor{
		gaussianDescriptor(16, 16, 20.0, 3.0),
		sersicDescriptor(20, 10, 22.0, 4.0, 1.5),
	}

	run := func(threads int) []float64 {
		b := NewBuilder(Config{ZeroPoint: 25.0, Threads: threads})

		if err := b.Configure(32, 32, descriptors, nil, nil); err != nil {
			t.Fatalf("Configure returned unexpected error: %v", err)
		}

		if err := b.SetParameters(InitialParameterVector(descriptors)); err != nil {
			t.Fatalf("SetParameters returned unexpected error: %v", err)
		}

		if err := b.ComputeModelImage(context.Background()); err != nil {
			t.Fatalf("ComputeModelImage returned unexpected error: %v", err)
		}

		return b.GetImage().Value
	}

	single := run(1)
	multi := run(8)

	if len(single) != len(multi) {
		t.Fatalf("len(single) = %d, len(multi) = %d; want equal", len(single), len(multi))
	}

	for i := range single {
		if single[i] != multi[i] {
			t.Fatalf("pixel %d differs across thread counts: 1 thread = %v, 8 threads = %v", i, single[i], multi[i])
		}
	}
}

/*****************************************************************************************************************/

// TestComputeModelImageCancellationMarksBufferInvalid exercises the cooperative cancellation
// contract (§5, §7).
func TestComputeModelImageCancellationMarksBufferInvalid(t *testing.T) {
	descriptors := []ComponentDescriptor{gaussianDescriptor(16, 16, 20.0, 3.0)}

	b := NewBuilder(Config{Threads: 1})

	if err := b.Configure(32, 32, descriptors, nil, nil); err != nil {
		t.Fatalf("Configure returned unexpected error: %v", err)
	}

	if err := b.SetParameters(InitialParameterVector(descriptors)); err != nil {
		t.Fatalf("SetParameters returned unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.ComputeModelImage(ctx); !errors.Is(err, ErrCancelled) {
		t.Errorf("ComputeModelImage with a pre-cancelled context: err = %v; want ErrCancelled", err)
	}

	if b.GetImage().Valid {
		t.Errorf("GetImage().Valid = true after cancellation; want false")
	}
}

/*****************************************************************************************************************/

func gaussianKernel9x9(sigma float64) *psf.Kernel {
	value := make([]float64, 9*9)

	for j := 0; j < 9; j++ {
		dy := float64(j - 4)
		for i := 0; i < 9; i++ {
			dx := float64(i - 4)
			r2 := dx*dx + dy*dy
			value[j*9+i] = math.Exp(-r2 / (2 * sigma * sigma))
		}
	}

	k, err := psf.NewFromSlice(value, 9, 9)
	if err != nil {
		panic(err)
	}

	return k
}

/*****************************************************************************************************************/

// TestComputeModelImageConvolutionPreservesTotalFlux is the flux conservation invariant (§8.2),
// exercised through the full Configure/SetParameters/ComputeModelImage path with a global PSF.
// The source is a compact n = 0.5 Sersic at the image center, so no flux reaches the image edge
// where zero-padded convolution would carry it outside the cropped output.
func TestComputeModelImageConvolutionPreservesTotalFlux(t *testing.T) {
	descriptors := []ComponentDescriptor{sersicDescriptor(32, 32, 20.0, 3.0, 0.5)}

	k := gaussianKernel9x9(2.0)

	b := NewBuilder(Config{})

	if err := b.Configure(64, 64, descriptors, k, nil); err != nil {
		t.Fatalf("Configure returned unexpected error: %v", err)
	}

	if err := b.SetParameters(InitialParameterVector(descriptors)); err != nil {
		t.Fatalf("SetParameters returned unexpected error: %v", err)
	}

	if err := b.ComputeModelImage(context.Background()); err != nil {
		t.Fatalf("ComputeModelImage returned unexpected error: %v", err)
	}

	img := b.GetImage()

	// Compare against the unconvolved scratch total via a second, PSF-free builder.
	unconvolved := NewBuilder(Config{})
	if err := unconvolved.Configure(64, 64, descriptors, nil, nil); err != nil {
		t.Fatalf("Configure returned unexpected error: %v", err)
	}
	if err := unconvolved.SetParameters(InitialParameterVector(descriptors)); err != nil {
		t.Fatalf("SetParameters returned unexpected error: %v", err)
	}
	if err := unconvolved.ComputeModelImage(context.Background()); err != nil {
		t.Fatalf("ComputeModelImage returned unexpected error: %v", err)
	}

	inSum := unconvolved.GetImage().Sum()
	outSum := img.Sum()

	relErr := math.Abs(outSum-inSum) / inSum
	if relErr > 1e-10 {
		t.Errorf("flux not conserved across convolution: in=%f out=%f relErr=%e; want <= 1e-10", inSum, outSum, relErr)
	}
}

/*****************************************************************************************************************/
