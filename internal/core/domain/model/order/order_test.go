package order_test

import (
	"testing"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSteps(t *testing.T, stages ...order.Stage) []*order.RoutingStep {
	t.Helper()
	steps := make([]*order.RoutingStep, 0, len(stages))
	for i, stage := range stages {
		step, err := order.NewRoutingStep(kernel.NewUUID(), stage, i+1)
		require.NoError(t, err)
		steps = append(steps, step)
	}
	return steps
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	validWorkspace := kernel.NewUUID()
	items := []order.LineItem{{SKU: "TEE-001", SizeCode: "M", Qty: 120}}

	t.Run("should create valid order with route", func(t *testing.T) {
		steps := buildSteps(t, order.Cutting, order.Printing, order.Sewing)

		o, err := order.NewOrder(validID, validWorkspace, items, steps)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.Len(t, o.RoutingSteps(), 3)
		assert.Equal(t, 120, o.TargetQty())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID
		steps := buildSteps(t, order.Cutting)

		o, err := order.NewOrder(invalidID, validWorkspace, items, steps)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail without routing steps", func(t *testing.T) {
		o, err := order.NewOrder(validID, validWorkspace, items, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "routing steps")
	})
}

func TestOrder_FindStepForStage(t *testing.T) {
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		[]order.LineItem{{SKU: "TEE-001", SizeCode: "M", Qty: 50}},
		buildSteps(t, order.Cutting, order.Printing, order.Packing),
	)
	require.NoError(t, err)

	t.Run("finds open occurrence", func(t *testing.T) {
		step, findErr := o.FindStepForStage(order.Printing)

		require.NoError(t, findErr)
		assert.Equal(t, order.Printing, step.Stage())
	})

	t.Run("skips completed occurrences", func(t *testing.T) {
		step, findErr := o.FindStepForStage(order.Cutting)
		require.NoError(t, findErr)
		require.NoError(t, step.Complete())

		_, findErr = o.FindStepForStage(order.Cutting)
		require.ErrorIs(t, findErr, order.ErrRoutingStepNotFound)
	})

	t.Run("unknown stage occurrence", func(t *testing.T) {
		_, findErr := o.FindStepForStage(order.Sewing)

		require.ErrorIs(t, findErr, order.ErrRoutingStepNotFound)
	})
}

func TestRoutingStep_Transitions(t *testing.T) {
	t.Run("planned step activates and completes", func(t *testing.T) {
		step, err := order.NewRoutingStep(kernel.NewUUID(), order.Sewing, 1)
		require.NoError(t, err)
		assert.Equal(t, order.StepPlanned, step.Status())

		require.NoError(t, step.Activate())
		assert.Equal(t, order.StepActive, step.Status())

		require.NoError(t, step.Complete())
		assert.Equal(t, order.StepCompleted, step.Status())
	})

	t.Run("completed step cannot be activated again", func(t *testing.T) {
		step, err := order.NewRoutingStep(kernel.NewUUID(), order.Sewing, 1)
		require.NoError(t, err)
		require.NoError(t, step.Complete())

		require.Error(t, step.Activate())
		require.Error(t, step.Complete())
	})

	t.Run("restore validates status vocabulary", func(t *testing.T) {
		_, err := order.RestoreRoutingStep(kernel.NewUUID(), order.Sewing, 1, "SHIPPED")

		require.Error(t, err)
	})
}

func TestStage(t *testing.T) {
	t.Run("valid stages round-trip through strings", func(t *testing.T) {
		for _, name := range []string{"Cutting", "Printing", "Sewing", "Finishing", "Packing"} {
			stage, err := order.StageFromString(name)
			require.NoError(t, err)
			assert.Equal(t, name, stage.String())
		}
	})

	t.Run("unknown stage is invalid", func(t *testing.T) {
		require.Error(t, order.UnknownStage.Validate())
		assert.Equal(t, "Unknown", order.UnknownStage.String())

		_, err := order.StageFromString("Shipping")
		require.Error(t, err)
	})
}
