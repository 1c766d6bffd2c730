package run

import (
	"fmt"

	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
)

// Method identifies the print method of a printing run. Runs on other stages
// carry NoMethod; only printing runs branch into method-specific records.
type Method int

const (
	// NoMethod is the legitimate absence of a method (non-printing stages).
	NoMethod Method = iota

	// Silkscreen pushes ink through a prepared mesh screen.
	Silkscreen

	// Sublimation transfers dye from printed paper under heat.
	Sublimation

	// DTF prints on film that is powdered, cured and heat-pressed.
	DTF

	// Embroidery stitches the design directly with thread.
	Embroidery
)

func getMethodStrings() map[Method]string {
	return map[Method]string{
		NoMethod:    "",
		Silkscreen:  "SILKSCREEN",
		Sublimation: "SUBLIMATION",
		DTF:         "DTF",
		Embroidery:  "EMBROIDERY",
	}
}

// MethodFromString parses a wire-format method name (e.g. "SILKSCREEN").
// The empty string maps to NoMethod.
func MethodFromString(s string) (Method, error) {
	for method, name := range getMethodStrings() {
		if name == s {
			return method, nil
		}
	}
	return NoMethod, errs.NewValueIsInvalidErrorWithCause("method",
		fmt.Errorf("%q is not a valid method", s))
}

// String returns the wire-format name of the method, empty for NoMethod.
func (m Method) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return ""
}

// RequiresRecord reports whether runs with this method own a MethodRecord.
// Exactly the four print methods do.
func (m Method) RequiresRecord() bool {
	switch m {
	case Silkscreen, Sublimation, DTF, Embroidery:
		return true
	default:
		return false
	}
}

// ValidForStage checks the method against the run's stage: printing runs must
// carry one of the four print methods, all other stages must carry NoMethod.
func (m Method) ValidForStage(stage order.Stage) error {
	if stage == order.Printing {
		if !m.RequiresRecord() {
			return errs.NewValueIsInvalidErrorWithCause("method",
				fmt.Errorf("printing runs require a print method, got %q", m.String()))
		}
		return nil
	}

	if m != NoMethod {
		return errs.NewValueIsInvalidErrorWithCause("method",
			fmt.Errorf("%s runs do not take a method, got %q", stage, m.String()))
	}
	return nil
}
