package packing

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Status represents the lifecycle state of a carton.
// A carton accepts content while Open and becomes immutable once Closed.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Open means the carton accepts content rows.
	Open

	// Closed means measurements are finalized and the carton is immutable.
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Open:          "OPEN",
		Closed:        "CLOSED",
	}
}

// StatusFromString parses a wire-format status name.
func StatusFromString(s string) (Status, error) {
	switch s {
	case "OPEN":
		return Open, nil
	case "CLOSED":
		return Closed, nil
	default:
		return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", s))
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Open && s != Closed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
