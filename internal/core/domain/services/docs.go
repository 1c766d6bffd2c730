// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the production system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - BundleGenerator: Partitions cut lay outputs into exactly-covering bundles
//   - MethodRegistry: Manages method-specific run records and their process logs
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
