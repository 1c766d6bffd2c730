package kernel

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures aggregates and entities are only created through
// their designated constructor functions. The guard keeps an internal flag
// that is only set when the object went through a `New*` or `Restore*`
// constructor, so a zero-value struct fails validation. Embedding a guard in
// domain structs lets repositories detect improperly built instances before
// they reach the database.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard marking the enclosing object
// as properly constructed. Called in the constructors of domain objects.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed object. For a zero-value
// guard it returns the given validation error, or ErrDefaultConstructorGuard
// when none was supplied.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
