/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package model

/*****************************************************************************************************************/

import (
	"fmt"

	"github.com/observerly/imfit/pkg/component"
)

/*****************************************************************************************************************/

// ParamSpec is a single parsed `<label> <value> [<lower> <upper>]` line from a flat-text config
// block (§6). Lower/Upper are carried through untouched for the external optimizer; the CORE
// itself never reads them (§3).
type ParamSpec struct {
	Label string
	Value float64
	Lower float64
	Upper float64
}

/*****************************************************************************************************************/

// ComponentDescriptor is the parsed, not-yet-numeric representation of one `FUNCTION <name>`
// config block (§3 [EXPANSION]): a component kind name plus its ordered parameters, including
// the reserved "X0"/"Y0" center labels that Configure reconciles into the fixed (xc, yc) every
// Setup call receives.
type ComponentDescriptor struct {
	Kind   string
	Params []ParamSpec
}

/*****************************************************************************************************************/

// componentFactories is the "tagged variant... dispatch table keyed by kind" §9 calls for: no
// inheritance hierarchy, just a name -> constructor lookup consulted once at Configure.
var componentFactories = map[string]func() component.Component{
	"Gaussian-1D":       func() component.Component { return component.NewGaussian1D() },
	"Exponential-2D":    func() component.Component { return component.NewExponential2D() },
	"Sersic":            func() component.Component { return component.NewSersic() },
	"ExponentialDisk3D": func() component.Component { return component.NewExponentialDisk3D() },
}

/*****************************************************************************************************************/

// center extracts the reserved X0/Y0 parameters from a descriptor's parameter list.
func (d ComponentDescriptor) center() (xc, yc float64, err error) {
	var haveX, haveY bool

	for _, p := range d.Params {
		switch p.Label {
		case "X0":
			xc, haveX = p.Value, true
		case "Y0":
			yc, haveY = p.Value, true
		}
	}

	if !haveX || !haveY {
		return 0, 0, fmt.Errorf("%w: function %q", ErrMissingCenter, d.Kind)
	}

	return xc, yc, nil
}

/*****************************************************************************************************************/

// ownParams returns the descriptor's parameters in order, excluding the reserved X0/Y0 center
// labels — the slice a component's own ParameterLabels() lines up against.
func (d ComponentDescriptor) ownParams() []ParamSpec {
	own := make([]ParamSpec, 0, len(d.Params))

	for _, p := range d.Params {
		if p.Label == "X0" || p.Label == "Y0" {
			continue
		}

		own = append(own, p)
	}

	return own
}

/*****************************************************************************************************************/

// InitialParameterVector flattens a set of parsed descriptors into the flat ParameterVector a
// freshly configured Builder expects from SetParameters — the starting point an external
// optimizer iterates from. X0/Y0 are fixed geometry reconciled at Configure and are not part of
// the fittable vector (§3, §6).
func InitialParameterVector(descriptors []ComponentDescriptor) []float64 {
	vector := make([]float64, 0, len(descriptors)*4)

	for _, d := range descriptors {
		for _, p := range d.ownParams() {
			vector = append(vector, p.Value)
		}
	}

	return vector
}

/*****************************************************************************************************************/
