package commands_test

import (
	"context"
	"errors"
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/run"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateRunRunRepository struct{ mock.Mock }

func (m *MockCreateRunRunRepository) Add(ctx context.Context, r *run.Run) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCreateRunRunRepository) Update(ctx context.Context, r *run.Run) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCreateRunRunRepository) Get(ctx context.Context, id kernel.UUID) (*run.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*run.Run), args.Error(1)
}

func (m *MockCreateRunRunRepository) ExistsActiveForStep(
	ctx context.Context, stepID kernel.UUID,
) (bool, error) {
	args := m.Called(ctx, stepID)
	return args.Bool(0), args.Error(1)
}

type MockCreateRunOrderRepository struct{ mock.Mock }

func (m *MockCreateRunOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockCreateRunOrderRepository) UpdateStep(
	ctx context.Context, orderID kernel.UUID, step *order.RoutingStep,
) error {
	args := m.Called(ctx, orderID, step)
	return args.Error(0)
}

type MockCreateRunUoW struct{ mock.Mock }

func (m *MockCreateRunUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreateRunUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreateRunUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreateRunUoW) RunRepository() ports.RunRepository {
	args := m.Called()
	return args.Get(0).(ports.RunRepository)
}

func (m *MockCreateRunUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockCreateRunUoWFactory struct{ mock.Mock }

func (m *MockCreateRunUoWFactory) Create() commands.CreateRunUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateRunUoW)
}

func buildTestOrder(t *testing.T, orderID kernel.UUID) *order.Order {
	t.Helper()

	printing, err := order.NewRoutingStep(kernel.NewUUID(), order.Printing, 1)
	require.NoError(t, err)
	sewing, err := order.NewRoutingStep(kernel.NewUUID(), order.Sewing, 2)
	require.NoError(t, err)

	lineItems := []order.LineItem{{SKU: "TS-BLK", SizeCode: "M", Qty: 100}}

	o, err := order.NewOrder(orderID, kernel.NewUUID(), lineItems, []*order.RoutingStep{printing, sewing})
	require.NoError(t, err)
	return o
}

func TestCreateRunCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	machineID := kernel.NewUUID()
	testOrder := buildTestOrder(t, orderID)

	cmd, err := commands.NewCreateRunCommand(
		kernel.NewUUID(), orderID, &machineID, nil, "PRINTING", "SILKSCREEN", 100)
	require.NoError(t, err)

	orderRepo := new(MockCreateRunOrderRepository)
	runRepo := new(MockCreateRunRunRepository)
	uow := new(MockCreateRunUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RunRepository").Return(runRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		runRepo.On("ExistsActiveForStep", ctx, mock.AnythingOfType("kernel.UUID")).
			Return(false, nil).Once(),
		runRepo.On("Add", ctx, mock.AnythingOfType("*run.Run")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateRunUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRunCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	runRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateRunCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateRunCommand{} // not constructed properly

	factory := new(MockCreateRunUoWFactory)
	handler := commands.NewCreateRunCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateRunCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateRunCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateRunCommand(
		kernel.NewUUID(), orderID, nil, nil, "PRINTING", "SILKSCREEN", 100)
	require.NoError(t, err)

	orderRepo := new(MockCreateRunOrderRepository)
	runRepo := new(MockCreateRunRunRepository)
	uow := new(MockCreateRunUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RunRepository").Return(runRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateRunUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRunCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrOrderNotFound)
}

func TestCreateRunCommandHandler_Handle_NoStepForStage(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	testOrder := buildTestOrder(t, orderID)

	// The order routes through printing and sewing only.
	cmd, err := commands.NewCreateRunCommand(
		kernel.NewUUID(), orderID, nil, nil, "CUTTING", "", 100)
	require.NoError(t, err)

	orderRepo := new(MockCreateRunOrderRepository)
	runRepo := new(MockCreateRunRunRepository)
	uow := new(MockCreateRunUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RunRepository").Return(runRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateRunUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRunCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	runRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateRunCommandHandler_Handle_StepAlreadyHasActiveRun(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	testOrder := buildTestOrder(t, orderID)

	cmd, err := commands.NewCreateRunCommand(
		kernel.NewUUID(), orderID, nil, nil, "PRINTING", "SILKSCREEN", 100)
	require.NoError(t, err)

	orderRepo := new(MockCreateRunOrderRepository)
	runRepo := new(MockCreateRunRunRepository)
	uow := new(MockCreateRunUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RunRepository").Return(runRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		runRepo.On("ExistsActiveForStep", ctx, mock.AnythingOfType("kernel.UUID")).
			Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateRunUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRunCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.Contains(t, err.Error(), "active run")
	runRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateRunCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateRunCommand(
		kernel.NewUUID(), kernel.NewUUID(), nil, nil, "SEWING", "", 50)
	require.NoError(t, err)

	uow := new(MockCreateRunUoW)
	factory := new(MockCreateRunUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateRunCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}
