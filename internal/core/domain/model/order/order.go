package order

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// a constructor function.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrRoutingStepNotFound is returned when a referenced routing step does not
	// belong to the order.
	ErrRoutingStepNotFound = errors.New("routing step not found")
)

// LineItem is one sellable position of an order (sku, size, quantity).
// Line items are created by the external order intake and are read-only here.
type LineItem struct {
	SKU      string
	SizeCode string
	Qty      int
}

// Order represents a manufacturing order as seen by the production core.
// Orders are created by an external collaborator; this core reads them and
// advances their routing steps, but never creates, prices or deletes them.
//
// Order invariants:
//   - Must have a valid unique identifier and workspace scope
//   - Routing steps are ordered by sequence and unique per occurrence
//   - Steps can only be advanced through Activate/Complete as runs progress
type Order struct {
	id           kernel.UUID
	workspaceID  kernel.UUID
	lineItems    []LineItem
	routingSteps []*RoutingStep

	guard kernel.ConstructorGuard
}

// NewOrder creates an order snapshot with its routing sequence.
// Steps must already be ordered by sequence; at least one step is required
// since an order without a route cannot produce anything.
func NewOrder(id, workspaceID kernel.UUID, lineItems []LineItem, steps []*RoutingStep) (*Order, error) {
	o := &Order{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setWorkspaceID(workspaceID),
		o.setRoutingSteps(steps),
	); err != nil {
		return nil, err
	}

	o.lineItems = lineItems
	return o, nil
}

// RestoreOrder reconstructs an order from persistent storage.
func RestoreOrder(id, workspaceID kernel.UUID, lineItems []LineItem, steps []*RoutingStep) (*Order, error) {
	return NewOrder(id, workspaceID, lineItems, steps)
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// WorkspaceID returns the tenant scope the order belongs to.
func (o *Order) WorkspaceID() kernel.UUID {
	return o.workspaceID
}

// LineItems returns the order's sellable positions.
func (o *Order) LineItems() []LineItem {
	return o.lineItems
}

// RoutingSteps returns the order's production route in sequence order.
func (o *Order) RoutingSteps() []*RoutingStep {
	return o.routingSteps
}

// FindStep returns the routing step with the given ID.
// Returns ErrRoutingStepNotFound if the step does not belong to this order.
func (o *Order) FindStep(stepID kernel.UUID) (*RoutingStep, error) {
	for _, step := range o.routingSteps {
		if step.ID().IsEqual(stepID) {
			return step, nil
		}
	}
	return nil, ErrRoutingStepNotFound
}

// FindStepForStage returns the first not-yet-completed routing step for the
// given stage. Returns ErrRoutingStepNotFound when the route has no open
// occurrence of that stage.
func (o *Order) FindStepForStage(stage Stage) (*RoutingStep, error) {
	for _, step := range o.routingSteps {
		if step.Stage() == stage && step.Status() != StepCompleted {
			return step, nil
		}
	}
	return nil, ErrRoutingStepNotFound
}

// TargetQty returns the total ordered quantity across all line items.
// Used as the default production target when a run does not override it.
func (o *Order) TargetQty() int {
	total := 0
	for _, item := range o.lineItems {
		total += item.Qty
	}
	return total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setWorkspaceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.workspaceID = id
	return nil
}

func (o *Order) setRoutingSteps(steps []*RoutingStep) error {
	if len(steps) == 0 {
		return errs.NewValueIsRequiredError("routing steps")
	}

	for _, step := range steps {
		if err := step.Validate(); err != nil {
			return err
		}
	}

	o.routingSteps = steps
	return nil
}
