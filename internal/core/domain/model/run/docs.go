// Package run provides the production run aggregate and its ledger.
// A run executes one routing step of an order on one machine and records
// everything that happened while it ran.
//
// The package includes:
//   - Run: The aggregate root binding order, routing step, machine and method
//   - Status: A state machine over Created, InProgress, Paused, Done, Cancelled
//   - Method: The print method vocabulary with per-stage validity rules
//   - MethodRecord: Method-specific process parameters plus process log entries
//   - Output, Reject, MaterialLog: Immutable append-only ledger rows
//
// Key business rules:
//   - A run's method must match its routing stage
//   - Ledger rows are append-only; corrections are compensating rows
//   - Good plus reject totals never exceed the run's target quantity
//   - The reconciliation view is derived from the ledger, never stored
//   - Completing a run raises a RunCompleted domain event exactly once
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package run
