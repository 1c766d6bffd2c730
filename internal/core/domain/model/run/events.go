package run

import (
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// DomainEvent is raised by the Run aggregate and published after the
// surrounding transaction commits.
type DomainEvent interface {
	EventName() string
	AggregateID() kernel.UUID
}

// RunCompleted is raised exactly once, when a run transitions to Done.
// Downstream reactions (finished unit generation for finishing runs,
// notifications) subscribe to it instead of being called inline.
type RunCompleted struct {
	RunID       kernel.UUID
	OrderID     kernel.UUID
	StepID      kernel.UUID
	Stage       order.Stage
	TotalGood   int
	TotalReject int
}

// EventName returns the event's wire name.
func (e RunCompleted) EventName() string { return "run.completed" }

// AggregateID returns the id of the run that completed.
func (e RunCompleted) AggregateID() kernel.UUID { return e.RunID }
