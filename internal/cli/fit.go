/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package cli

/*****************************************************************************************************************/

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/observerly/sidera/pkg/humanize"

	fitsio "github.com/observerly/imfit/internal/io"
	"github.com/observerly/imfit/pkg/config"
	"github.com/observerly/imfit/pkg/ledger"
	"github.com/observerly/imfit/pkg/model"
	"github.com/observerly/imfit/pkg/preview"
	"github.com/observerly/imfit/pkg/psf"
)

/*****************************************************************************************************************/

var (
	ConfigFileLocation  string
	DataFileLocation    string
	PSFFileLocation     string
	PreviewFileLocation string
	LedgerFileLocation  string
	ZeroPoint           float64
	Threads             int
)

/*****************************************************************************************************************/

var FitCommand = &cobra.Command{
	Use:   "fit",
	Short: "fit",
	Long:  "fit synthesizes a model image from a flat-text component config and writes a PNG preview of the result",
	Run: func(cmd *cobra.Command, args []string) {
		params := RunFitParams{
			ConfigFileLocation:  ConfigFileLocation,
			DataFileLocation:    DataFileLocation,
			PSFFileLocation:     PSFFileLocation,
			PreviewFileLocation: PreviewFileLocation,
			LedgerFileLocation:  LedgerFileLocation,
			ZeroPoint:           ZeroPoint,
			Threads:             Threads,
		}

		if err := RunFit(params); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	},
}

/*****************************************************************************************************************/

func init() {
	// Add the config flag to the fit command for reading the component config from some input location:
	// example usage: --config ./model.imfit
	FitCommand.Flags().StringVarP(
		&ConfigFileLocation,
		"config",
		"c",
		"",
		"The flat-text component config file location on the filesystem",
	)
	FitCommand.MarkFlagRequired("config")

	// Add the data flag to the fit command for sizing the output image off an existing FITS frame:
	// example usage: --data ./observation.fits
	FitCommand.Flags().StringVarP(
		&DataFileLocation,
		"data",
		"d",
		"",
		"A FITS data frame to size the synthesized model image against",
	)
	FitCommand.MarkFlagRequired("data")

	// Add the psf flag to the fit command for optionally convolving the model with a PSF:
	// example usage: --psf ./star.fits
	FitCommand.Flags().StringVarP(
		&PSFFileLocation,
		"psf",
		"p",
		"",
		"An optional FITS point-spread function to convolve the synthesized model with",
	)

	// Add the preview flag to the fit command for writing a PNG sanity-check of the result:
	// example usage: --preview ./model.png
	FitCommand.Flags().StringVarP(
		&PreviewFileLocation,
		"preview",
		"",
		"",
		"An optional PNG output location for a greyscale preview of the synthesized model",
	)

	// Add the ledger flag to the fit command for recording the run in a sqlite fit-run ledger:
	// example usage: --ledger ./imfit.db
	FitCommand.Flags().StringVarP(
		&LedgerFileLocation,
		"ledger",
		"",
		"",
		"An optional sqlite database location to record this run in",
	)

	// Add the zero-point flag to the fit command for setting the photometric zero-point:
	// example usage: --zero-point 25.0
	FitCommand.Flags().Float64VarP(
		&ZeroPoint,
		"zero-point",
		"",
		model.DefaultZeroPoint,
		"The photometric zero-point applied to every component's magnitude parameters",
	)

	// Add the threads flag to the fit command for sizing the row-parallel worker pool:
	// example usage: --threads 4
	FitCommand.Flags().IntVarP(
		&Threads,
		"threads",
		"",
		0,
		"The row-parallel worker pool size; 0 uses runtime.GOMAXPROCS(0)",
	)
}

/*****************************************************************************************************************/

// summarizeComponents prints one line per configured component, rendering its position angle (a
// degrees-valued quantity, same unit family as the RA/Dec sidera/pkg/humanize otherwise formats)
// as a sexagesimal DMS string for a quick-glance report.
func summarizeComponents(descriptors []model.ComponentDescriptor) {
	for i, d := range descriptors {
		pa, hasPA := 0.0, false

		for _, p := range d.Params {
			if p.Label == "PA" {
				pa, hasPA = p.Value, true
			}
		}

		if hasPA {
			fmt.Printf("Function %d: %s, PA = %s\n", i, d.Kind, humanize.FormatDecimalToDMS(pa, "%s%dd%d'%.2f\""))
		} else {
			fmt.Printf("Function %d: %s\n", i, d.Kind)
		}
	}
}

/*****************************************************************************************************************/

// RunFitParams carries everything RunFit needs from either the cobra flags above or a direct
// caller.
type RunFitParams struct {
	ConfigFileLocation  string
	DataFileLocation    string
	PSFFileLocation     string
	PreviewFileLocation string
	LedgerFileLocation  string
	ZeroPoint           float64
	Threads             int
}

/*****************************************************************************************************************/

// RunFit parses a component config, sizes a model image against an existing FITS frame, optionally
// convolves it with a FITS PSF, synthesizes the model, and writes a PNG preview and a ledger
// entry, wiring pkg/config, pkg/model, pkg/psf, pkg/preview, pkg/ledger, and internal/io together
// exactly as the CLI front end §2.3 [EXPANSION] describes.
func RunFit(params RunFitParams) error {
	start := time.Now()

	configFile, err := os.Open(params.ConfigFileLocation)
	if err != nil {
		return fmt.Errorf("failed to open config file: %v", err)
	}
	defer configFile.Close()

	descriptors, err := config.Parse(configFile)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}

	summarizeComponents(descriptors)

	dataFile, err := os.Open(params.DataFileLocation)
	if err != nil {
		return fmt.Errorf("failed to open data file: %v", err)
	}
	defer dataFile.Close()

	_, cols, rows, err := fitsio.LoadDataImage(dataFile)
	if err != nil {
		return fmt.Errorf("failed to load data image: %v", err)
	}

	fmt.Printf("Image Dimensions: %d x %d\n", cols, rows)

	var kernel *psf.Kernel

	if params.PSFFileLocation != "" {
		psfFile, err := os.Open(params.PSFFileLocation)
		if err != nil {
			return fmt.Errorf("failed to open psf file: %v", err)
		}
		defer psfFile.Close()

		value, pCols, pRows, err := fitsio.LoadPSF(psfFile)
		if err != nil {
			return fmt.Errorf("failed to load psf: %v", err)
		}

		kernel, err = psf.NewFromSlice(value, pCols, pRows)
		if err != nil {
			return fmt.Errorf("failed to build psf kernel: %v", err)
		}
	}

	builder := model.NewBuilder(model.Config{ZeroPoint: params.ZeroPoint, Threads: params.Threads})

	if err := builder.Configure(cols, rows, descriptors, kernel, nil); err != nil {
		return fmt.Errorf("failed to configure model builder: %v", err)
	}

	if err := builder.SetParameters(model.InitialParameterVector(descriptors)); err != nil {
		return fmt.Errorf("failed to set model parameters: %v", err)
	}

	if err := builder.ComputeModelImage(context.Background()); err != nil {
		return fmt.Errorf("failed to compute model image: %v", err)
	}

	if warnings := builder.Warnings(); warnings.NonConvergentPixels > 0 {
		fmt.Printf("Warning: %d pixel(s) did not converge\n", warnings.NonConvergentPixels)
	}

	image := builder.GetImage()

	if params.PreviewFileLocation != "" {
		previewFile, err := os.Create(params.PreviewFileLocation)
		if err != nil {
			return fmt.Errorf("failed to create preview file: %v", err)
		}
		defer previewFile.Close()

		if err := preview.Render(image, previewFile); err != nil {
			return fmt.Errorf("failed to render preview: %v", err)
		}

		fmt.Println("Preview written to:", params.PreviewFileLocation)
	}

	if params.LedgerFileLocation != "" {
		l, err := ledger.Open(params.LedgerFileLocation)
		if err != nil {
			return fmt.Errorf("failed to open ledger: %v", err)
		}
		defer l.Close()

		run, err := l.Record(ledger.FitRun{
			ConfigPath:           params.ConfigFileLocation,
			Width:                cols,
			Height:               rows,
			ComponentCount:       len(descriptors),
			ParameterCount:       builder.ParameterCount(),
			ZeroPoint:            params.ZeroPoint,
			Threads:              params.Threads,
			ConvolutionApplied:   kernel != nil,
			DurationMilliseconds: time.Since(start).Milliseconds(),
			NonConvergentPixels:  builder.Warnings().NonConvergentPixels,
		})
		if err != nil {
			return fmt.Errorf("failed to record ledger entry: %v", err)
		}

		fmt.Println("Ledger entry recorded:", run.ID)
	}

	fmt.Println("Elapsed:", time.Since(start))

	return nil
}

/*****************************************************************************************************************/
