// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"production/internal/core/domain/model/run"
	"production/internal/core/ports"
)

// EventPublisher dispatches domain events raised by aggregates after the
// surrounding transaction has committed.
type EventPublisher interface {
	Publish(ctx context.Context, events []run.DomainEvent)
}

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest interface covering the repositories it
// actually touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RunRepoFactory provides access to the run repository within a transaction.
	RunRepoFactory interface {
		RunRepository() ports.RunRepository
	}

	// MachineRepoFactory provides access to the machine repository within a transaction.
	MachineRepoFactory interface {
		MachineRepository() ports.MachineRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CuttingRepoFactory provides access to the cutting repository within a transaction.
	CuttingRepoFactory interface {
		CuttingRepository() ports.CuttingRepository
	}

	// PackingRepoFactory provides access to the packing repository within a transaction.
	PackingRepoFactory interface {
		PackingRepository() ports.PackingRepository
	}

	// RunUoW manages transactions for run-only operations (ledger appends,
	// process-log appends).
	RunUoW interface {
		TxManager
		RunRepoFactory
	}

	// RunUoWFactory creates new run unit of work instances.
	RunUoWFactory interface {
		Create() RunUoW
	}

	// CreateRunUoW manages transactions for run creation, which reads the
	// order's routing to validate stage and step.
	CreateRunUoW interface {
		TxManager
		RunRepoFactory
		OrderRepoFactory
	}

	// CreateRunUoWFactory creates new run-creation unit of work instances.
	CreateRunUoWFactory interface {
		Create() CreateRunUoW
	}

	// RunMachineUoW manages transactions that touch a run together with its
	// machine lock (start, pause, cancel).
	RunMachineUoW interface {
		TxManager
		RunRepoFactory
		MachineRepoFactory
	}

	// RunMachineUoWFactory creates new run-and-machine unit of work instances.
	RunMachineUoWFactory interface {
		Create() RunMachineUoW
	}

	// StartRunUoW manages the start transaction: acquiring the machine lock,
	// activating the order's routing step and moving the run commit together.
	StartRunUoW interface {
		TxManager
		RunRepoFactory
		MachineRepoFactory
		OrderRepoFactory
	}

	// StartRunUoWFactory creates new start unit of work instances.
	StartRunUoWFactory interface {
		Create() StartRunUoW
	}

	// CompleteRunUoW manages the completion transaction: the run, its machine
	// lock and the order's routing step commit together.
	CompleteRunUoW interface {
		TxManager
		RunRepoFactory
		MachineRepoFactory
		OrderRepoFactory
	}

	// CompleteRunUoWFactory creates new completion unit of work instances.
	CompleteRunUoWFactory interface {
		Create() CompleteRunUoW
	}

	// CuttingUoW manages transactions for lay creation and bundle generation.
	CuttingUoW interface {
		TxManager
		CuttingRepoFactory
		OrderRepoFactory
	}

	// CuttingUoWFactory creates new cutting unit of work instances.
	CuttingUoWFactory interface {
		Create() CuttingUoW
	}

	// PackingUoW manages transactions for carton operations.
	PackingUoW interface {
		TxManager
		PackingRepoFactory
	}

	// PackingUoWFactory creates new packing unit of work instances.
	PackingUoWFactory interface {
		Create() PackingUoW
	}
)
