// Package errs provides standardized error types for the production application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error categories of the production core:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: caller mistakes,
//     rejected before any mutation
//   - ObjectNotFoundError: a referenced object does not exist
//   - ConflictError: a race for an exclusive resource was lost (machine occupancy,
//     finished-unit allocation); surfaced immediately, never retried or queued
//   - InvalidTransitionError: a state machine transition not permitted from the
//     current state; non-fatal, no mutation performed
//   - QuantityExceededError: a conservation invariant would be violated; the whole
//     transaction is rolled back and the event logged for operator investigation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict) for errors.Is classification
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
package errs
