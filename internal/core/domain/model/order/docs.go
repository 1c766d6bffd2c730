// Package order contains the order aggregate as seen by the production core.
// Orders and their line items are created by an external collaborator and are
// read-only here; only routing steps advance as production runs progress.
//
// The package includes:
//   - Order: aggregate root with workspace scope, line items and routing steps
//   - RoutingStep: one stage occurrence in the order's production sequence
//   - Stage: enumeration of the five production stages
package order
