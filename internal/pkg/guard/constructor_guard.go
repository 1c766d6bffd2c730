// Package guard provides the constructor-guard pattern for commands and queries.
// A ConstructorGuard embedded in a struct distinguishes instances built through
// their designated constructor from zero values, so handlers can reject
// improperly constructed inputs before touching any state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object was
// not built through its constructor and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value is
// invalid, so any struct embedding a guard fails validation unless it went
// through its constructor.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed object. For a zero-value
// guard it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
