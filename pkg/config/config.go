/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package config

/*****************************************************************************************************************/

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/observerly/imfit/pkg/model"
)

/*****************************************************************************************************************/

// ErrInvalidConfig is the sentinel every parse failure from this package wraps (§6).
var ErrInvalidConfig = fmt.Errorf("invalid config")

/*****************************************************************************************************************/

// Parse reads a flat-text config in the imfit convention (§6): one component per block, a header
// line "FUNCTION <name>" followed by parameter lines "<label> <value> [<lower> <upper>]". Every
// block must declare X0 and Y0 among its parameter lines (in any position) — the reserved center
// labels model.Configure reconciles into the fixed (xc, yc) each component's Setup receives.
// Blank lines and lines beginning with '#' are ignored.
func Parse(r io.Reader) ([]model.ComponentDescriptor, error) {
	scanner := bufio.NewScanner(r)

	var (
		descriptors []model.ComponentDescriptor
		current     *model.ComponentDescriptor
		lineNo      int
	)

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)

		if strings.EqualFold(fields[0], "FUNCTION") {
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: line %d: FUNCTION requires exactly one name, got %q", ErrInvalidConfig, lineNo, line)
			}

			if current != nil {
				descriptors = append(descriptors, *current)
			}

			current = &model.ComponentDescriptor{Kind: fields[1]}

			continue
		}

		if current == nil {
			return nil, fmt.Errorf("%w: line %d: parameter line %q before any FUNCTION header", ErrInvalidConfig, lineNo, line)
		}

		param, err := parseParamLine(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidConfig, lineNo, err)
		}

		current.Params = append(current.Params, param)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if current != nil {
		descriptors = append(descriptors, *current)
	}

	if len(descriptors) == 0 {
		return nil, fmt.Errorf("%w: no FUNCTION blocks found", ErrInvalidConfig)
	}

	return descriptors, nil
}

/*****************************************************************************************************************/

// parseParamLine parses a single "<label> <value> [<lower> <upper>]" line. Bounds are optional;
// when omitted both default to the value itself (a fixed parameter, from the optimizer's
// perspective) since the CORE never reads them either way (§3).
func parseParamLine(fields []string) (model.ParamSpec, error) {
	if len(fields) != 2 && len(fields) != 4 {
		return model.ParamSpec{}, fmt.Errorf("expected \"<label> <value>\" or \"<label> <value> <lower> <upper>\", got %d fields", len(fields))
	}

	value, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return model.ParamSpec{}, fmt.Errorf("invalid value %q for label %q: %v", fields[1], fields[0], err)
	}

	spec := model.ParamSpec{Label: fields[0], Value: value, Lower: value, Upper: value}

	if len(fields) == 4 {
		lower, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return model.ParamSpec{}, fmt.Errorf("invalid lower bound %q for label %q: %v", fields[2], fields[0], err)
		}

		upper, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return model.ParamSpec{}, fmt.Errorf("invalid upper bound %q for label %q: %v", fields[3], fields[0], err)
		}

		spec.Lower, spec.Upper = lower, upper
	}

	return spec, nil
}

/*****************************************************************************************************************/
