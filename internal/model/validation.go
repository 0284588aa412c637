package model

import (
	"errors"
	"fmt"
)

var (
	errDefinitionIDMissing = errors.New("model: definition id is required")
	errInputsMissing       = errors.New("model: definition requires at least one input")
	errOutputsMissing      = errors.New("model: definition requires at least one output")
	errCalculateMissing    = errors.New("model: output requires a calculate function")
)

// Check performs the minimal structural checks needed to evaluate a
// definition. The catalog validator reports a much richer set of problems;
// Check only guards the compute path against definitions that cannot run.
func (d Definition) Check() error {
	if d.ID == "" {
		return errDefinitionIDMissing
	}
	if len(d.Inputs) == 0 {
		return fmt.Errorf("%w: %s", errInputsMissing, d.ID)
	}
	if len(d.Outputs) == 0 {
		return fmt.Errorf("%w: %s", errOutputsMissing, d.ID)
	}
	for i, out := range d.Outputs {
		if out.Calculate == nil {
			return fmt.Errorf("%w: %s output %d (%q)", errCalculateMissing, d.ID, i, out.Label)
		}
	}
	return nil
}
