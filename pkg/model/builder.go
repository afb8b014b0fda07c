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
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/observerly/imfit/pkg/component"
	"github.com/observerly/imfit/pkg/convolve"
	"github.com/observerly/imfit/pkg/geometry"
	"github.com/observerly/imfit/pkg/image"
	"github.com/observerly/imfit/pkg/integrate"
	"github.com/observerly/imfit/pkg/oversample"
	"github.com/observerly/imfit/pkg/psf"
)

/*****************************************************************************************************************/

// DefaultZeroPoint is the process-wide photometric zero-point applied when a Config doesn't set
// one explicitly (§6: "ZP ... default 25.0").
const DefaultZeroPoint = 25.0

/*****************************************************************************************************************/

// DefaultSubPixelSamples is the k x k sub-sampling grid used near a steep component peak when a
// Config doesn't override it (§4.B: "default k=5").
const DefaultSubPixelSamples = 5

/*****************************************************************************************************************/

// Config carries the process-wide, construction-time settings every Builder is fixed to for its
// lifetime (§5, §6, §9: "Global state (ZP): immutable after Configure").
type Config struct {
	// ZeroPoint is the photometric zero-point ZP passed to every component's Setup.
	ZeroPoint float64

	// Threads is the worker-pool size for the row-parallel pixel loop (§5). Zero means
	// runtime.GOMAXPROCS(0).
	Threads int

	// SubPixelSamples is k in the k x k sub-pixel averaging grid (§4.B). Zero means
	// DefaultSubPixelSamples.
	SubPixelSamples int
}

/*****************************************************************************************************************/

func (c Config) withDefaults() Config {
	if c.ZeroPoint == 0 {
		c.ZeroPoint = DefaultZeroPoint
	}

	if c.Threads <= 0 {
		c.Threads = runtime.GOMAXPROCS(0)
	}

	if c.SubPixelSamples <= 0 {
		c.SubPixelSamples = DefaultSubPixelSamples
	}

	return c
}

/*****************************************************************************************************************/

// Warnings carries non-fatal diagnostics accumulated during the most recent ComputeModelImage
// call (§7: "Non-convergence is logged per-pixel count and surfaced as a model-level warning").
type Warnings struct {
	NonConvergentPixels int
}

/*****************************************************************************************************************/

// Builder is the ModelBuilder of §4.E: it owns the component list, the scratch and output image
// buffers, the optional global Convolver, and any configured oversampled regions, and assembles
// them into a synthesized model image.
type Builder struct {
	cfg Config

	cols, rows int

	components  []component.Component
	centers     [][2]float64
	offsets     []int
	labels      []string
	totalParams int

	psfKernel *psf.Kernel
	convolver *convolve.Convolver

	regions []oversample.Region

	scratch *image.Buffer
	output  *image.Buffer

	warnings Warnings
}

/*****************************************************************************************************************/

// NewBuilder constructs an unconfigured Builder; Configure must be called before SetParameters or
// ComputeModelImage.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg.withDefaults()}
}

/*****************************************************************************************************************/

// Configure sets the output geometry, the fixed component list (from its parsed descriptors), the
// optional global PSF, and any oversampled regions (§4.E). It may fail with ErrBadGeometry,
// ErrBadPSF, ErrUnknownComponentKind, or ErrMissingCenter.
func (b *Builder) Configure(
	width, height int,
	descriptors []ComponentDescriptor,
	psfKernel *psf.Kernel,
	regions []oversample.Region,
) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got (%d, %d)", ErrBadGeometry, width, height)
	}

	components := make([]component.Component, 0, len(descriptors))
	centers := make([][2]float64, 0, len(descriptors))
	offsets := make([]int, 0, len(descriptors))
	labels := make([]string, 0, len(descriptors)*4)

	offset := 0

	for i, d := range descriptors {
		factory, ok := componentFactories[d.Kind]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownComponentKind, d.Kind)
		}

		xc, yc, err := d.center()
		if err != nil {
			return err
		}

		comp := factory()

		own := d.ownParams()
		if len(own) != comp.ParameterCount() {
			return fmt.Errorf(
				"%w: function %d (%s) declares %d parameters, config supplies %d",
				ErrParameterCountMismatch, i, d.Kind, comp.ParameterCount(), len(own),
			)
		}

		components = append(components, comp)
		centers = append(centers, [2]float64{xc, yc})
		offsets = append(offsets, offset)

		for _, label := range comp.ParameterLabels() {
			labels = append(labels, fmt.Sprintf("%s[%d].%s", comp.Name(), i, label))
		}

		offset += comp.ParameterCount()
	}

	if err := oversample.ValidateNonOverlapping(regions); err != nil {
		return fmt.Errorf("model: configure: %w", err)
	}

	var convolver *convolve.Convolver

	if psfKernel != nil {
		if !psfKernel.FitsWithin(width, height) {
			return fmt.Errorf("%w: psf (%d, %d) is larger than the image (%d, %d)", ErrBadPSF, psfKernel.Columns, psfKernel.Rows, width, height)
		}

		c, err := convolve.New(width, height, psfKernel)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConvolutionFailed, err)
		}

		convolver = c
	}

	scratch, err := image.New(width, height)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadGeometry, err)
	}

	output, err := image.New(width, height)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadGeometry, err)
	}

	b.cols, b.rows = width, height
	b.components = components
	b.centers = centers
	b.offsets = offsets
	b.labels = labels
	b.totalParams = offset
	b.psfKernel = psfKernel
	b.convolver = convolver
	b.regions = regions
	b.scratch = scratch
	b.output = output
	b.warnings = Warnings{}

	return nil
}

/*****************************************************************************************************************/

// SetParameters distributes the flat ParameterVector to each configured component's Setup
// (§4.E). It fails with ErrParameterCountMismatch if the vector's length does not match the sum
// of the configured components' parameter counts, or with ErrParameterOutOfDomain if any
// component rejects its slice.
func (b *Builder) SetParameters(vector []float64) error {
	if len(vector) != b.totalParams {
		return fmt.Errorf("%w: got %d, want %d", ErrParameterCountMismatch, len(vector), b.totalParams)
	}

	for idx, comp := range b.components {
		xc, yc := b.centers[idx][0], b.centers[idx][1]

		if err := comp.Setup(vector, b.offsets[idx], xc, yc, b.cfg.ZeroPoint); err != nil {
			if errors.Is(err, component.ErrParameterOutOfDomain) {
				return fmt.Errorf("%w: component %d (%s): %v", ErrParameterOutOfDomain, idx, comp.Name(), err)
			}

			return err
		}
	}

	return nil
}

/*****************************************************************************************************************/

// ParameterCount returns the total number of fittable scalar parameters across every configured
// component (excluding the fixed X0/Y0 centers).
func (b *Builder) ParameterCount() int {
	return b.totalParams
}

/*****************************************************************************************************************/

// ParameterLabels returns one label per ParameterCount() slot, qualified by component kind and
// index for reporting (§6: "the optimizer also asks for parameter count and labels").
func (b *Builder) ParameterLabels() []string {
	return b.labels
}

/*****************************************************************************************************************/

// Warnings reports the non-fatal diagnostics accumulated during the most recent
// ComputeModelImage call.
func (b *Builder) Warnings() Warnings {
	return b.warnings
}

/*****************************************************************************************************************/

// WarningsError wraps ErrIntegrationNonConvergence with the current non-convergent pixel count,
// or returns nil if every pixel's integration converged (§7: non-convergence is a warning, not a
// fatal condition — ComputeModelImage still returns nil on its own error path when this is the
// only diagnostic raised).
func (b *Builder) WarningsError() error {
	if b.warnings.NonConvergentPixels == 0 {
		return nil
	}

	return fmt.Errorf("%w: %d pixel(s)", ErrIntegrationNonConvergence, b.warnings.NonConvergentPixels)
}

/*****************************************************************************************************************/

// evaluatePixel sums every configured component's contribution at sky coordinate (x, y),
// dispatching to line-of-sight quadrature for 3D components and to sub-pixel 2D integration near
// a steep component peak (§4.B, §4.E step 2). It reports whether every integration it performed
// converged.
func (b *Builder) evaluatePixel(x, y float64) (float64, bool) {
	sum := 0.0
	converged := true

	for idx, comp := range b.components {
		if comp.RequiresIntegration() {
			if reporter, ok := comp.(component.ConvergenceReporter); ok {
				v, ok := reporter.GetValueWithConvergence(x, y)
				sum += v

				if !ok {
					converged = false
				}

				continue
			}
		}

		if comp.IsSteepNearPeak() {
			if cutoff, ok := comp.(component.CutoffScale); ok {
				radius := cutoff.CutoffRadius()

				if radius > 0 {
					xc, yc := b.centers[idx][0], b.centers[idx][1]

					if geometry.DistanceBetweenTwoCartesianPoints(x, y, xc, yc) <= radius {
						sum += integrate.SubPixel2D(comp.GetValue, x, y, b.cfg.SubPixelSamples)
						continue
					}
				}
			}
		}

		sum += comp.GetValue(x, y)
	}

	return sum, converged
}

/*****************************************************************************************************************/

// ComputeModelImage produces the final model image (§4.E): it zeros the scratch buffer, fills it
// row-parallel over a fixed worker pool (§5), stitches in any oversampled regions, and either
// convolves the result with the global PSF or copies it through unchanged. ctx provides
// cooperative cancellation, checked before each row of a stripe; a cancelled evaluation returns
// ErrCancelled with the scratch and output buffers marked invalid. A completed image containing a non-finite
// pixel returns ErrModelNotFinite, though the buffer is still populated for inspection.
func (b *Builder) ComputeModelImage(ctx context.Context) error {
	if b.scratch == nil {
		return fmt.Errorf("%w: Configure must be called before ComputeModelImage", ErrBadGeometry)
	}

	b.scratch.Zero()

	threads := b.cfg.Threads
	if threads > b.rows {
		threads = b.rows
	}
	if threads < 1 {
		threads = 1
	}

	rowsPerStripe := (b.rows + threads - 1) / threads

	var nonConvergent int64

	g, gctx := errgroup.WithContext(ctx)

	for t := 0; t < threads; t++ {
		startRow := t * rowsPerStripe
		endRow := startRow + rowsPerStripe

		if endRow > b.rows {
			endRow = b.rows
		}

		if startRow >= endRow {
			continue
		}

		g.Go(func() error {
			for j := startRow; j < endRow; j++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				y := float64(j + 1)

				for i := 0; i < b.cols; i++ {
					x := float64(i + 1)

					v, converged := b.evaluatePixel(x, y)

					if !converged {
						atomic.AddInt64(&nonConvergent, 1)
					}

					if err := b.scratch.Set(i, j, v); err != nil {
						return err
					}
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			b.scratch.Valid = false
			b.output.Valid = false
			return fmt.Errorf("%w: %v", ErrCancelled, err)
		}

		return err
	}

	for _, r := range b.regions {
		patch, err := r.Process(b.components)
		if err != nil {
			return fmt.Errorf("model: oversampled region: %w", err)
		}

		if err := r.Blit(b.scratch, patch); err != nil {
			return fmt.Errorf("model: oversampled region: %w", err)
		}
	}

	if b.convolver != nil {
		if err := b.convolver.Convolve(b.scratch, b.output); err != nil {
			return fmt.Errorf("%w: %v", ErrConvolutionFailed, err)
		}
	} else {
		if err := b.output.CopyFrom(b.scratch); err != nil {
			return fmt.Errorf("%w: %v", ErrBadGeometry, err)
		}
	}

	b.warnings = Warnings{NonConvergentPixels: int(nonConvergent)}

	if finite, count, first := b.output.CheckFinite(); !finite {
		b.output.Valid = false
		return fmt.Errorf("%w: %d non-finite pixel(s), first at linear index %d", ErrModelNotFinite, count, first)
	}

	return nil
}

/*****************************************************************************************************************/

// GetImage returns a read-only value copy of the last computed model image (§4.E, §6). Callers
// that have not yet called ComputeModelImage receive a zeroed buffer of the configured geometry.
func (b *Builder) GetImage() image.Buffer {
	cp := *b.output
	cp.Value = append([]float64(nil), b.output.Value...)

	return cp
}

/*****************************************************************************************************************/
