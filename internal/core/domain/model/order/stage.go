package order

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Stage represents one department in an order's production sequence.
// Every routing step and every production run belongs to exactly one stage.
type Stage int

const (
	// UnknownStage represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	UnknownStage Stage = iota

	// Cutting converts fabric into sized pattern pieces via lays and bundles.
	Cutting

	// Printing decorates pieces using one of the supported print methods.
	Printing

	// Sewing assembles pieces into garments.
	Sewing

	// Finishing performs trimming, pressing and final QC; completing a
	// finishing run yields finished units.
	Finishing

	// Packing allocates finished units into cartons.
	Packing
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		UnknownStage: "Unknown",
		Cutting:      "Cutting",
		Printing:     "Printing",
		Sewing:       "Sewing",
		Finishing:    "Finishing",
		Packing:      "Packing",
	}
}

func getValidStageStrings() map[Stage]string {
	//nolint:exhaustive // UnknownStage is intentionally excluded as it's invalid
	return map[Stage]string{
		Cutting:   "Cutting",
		Printing:  "Printing",
		Sewing:    "Sewing",
		Finishing: "Finishing",
		Packing:   "Packing",
	}
}

// StageFromString parses a stage name as used by external callers
// (e.g. "Printing"). Returns an error for unknown names.
func StageFromString(s string) (Stage, error) {
	for stage, name := range getValidStageStrings() {
		if name == s {
			return stage, nil
		}
	}
	return UnknownStage, errs.NewValueIsInvalidErrorWithCause("stage",
		fmt.Errorf("%q is not a valid stage", s))
}

// Validate checks if the Stage value is one of the five production stages.
func (s Stage) Validate() error {
	if _, ok := getValidStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the human-readable name of the stage.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
