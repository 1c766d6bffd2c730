package commands_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/packing"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

type MockPackingRepository struct{ mock.Mock }

func (m *MockPackingRepository) AddCarton(ctx context.Context, c *packing.Carton) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockPackingRepository) UpdateCarton(ctx context.Context, c *packing.Carton) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockPackingRepository) GetCarton(ctx context.Context, id kernel.UUID) (*packing.Carton, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packing.Carton), args.Error(1)
}

func (m *MockPackingRepository) AddFinishedUnits(ctx context.Context, units []*packing.FinishedUnit) error {
	args := m.Called(ctx, units)
	return args.Error(0)
}

func (m *MockPackingRepository) GetFinishedUnit(ctx context.Context, id kernel.UUID) (*packing.FinishedUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packing.FinishedUnit), args.Error(1)
}

func (m *MockPackingRepository) AllocateFinishedUnit(ctx context.Context, unitID kernel.UUID) error {
	args := m.Called(ctx, unitID)
	return args.Error(0)
}

type MockPackingUoW struct{ mock.Mock }

func (m *MockPackingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackingUoW) PackingRepository() ports.PackingRepository {
	args := m.Called()
	return args.Get(0).(ports.PackingRepository)
}

type MockPackingUoWFactory struct{ mock.Mock }

func (m *MockPackingUoWFactory) Create() commands.PackingUoW {
	args := m.Called()
	return args.Get(0).(commands.PackingUoW)
}

func buildOpenCarton(t *testing.T) *packing.Carton {
	t.Helper()

	dims, err := kernel.NewDimensions(
		decimal.NewFromInt(40), decimal.NewFromInt(30), decimal.NewFromInt(25))
	require.NoError(t, err)

	carton, err := packing.NewCarton(
		kernel.NewUUID(), kernel.NewUUID(), dims, decimal.NewFromFloat(0.2))
	require.NoError(t, err)
	return carton
}

func buildUnpackedUnit(t *testing.T) *packing.FinishedUnit {
	t.Helper()

	unit, err := packing.NewFinishedUnit(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"TS-BLK", "M", decimal.NewFromFloat(0.25), decimal.NewFromInt(1500))
	require.NoError(t, err)
	return unit
}

func TestAddCartonContentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	carton := buildOpenCarton(t)
	unit := buildUnpackedUnit(t)

	cmd, err := commands.NewAddCartonContentCommand(carton.ID(), unit.ID(), 3)
	require.NoError(t, err)

	packingRepo := new(MockPackingRepository)
	uow := new(MockPackingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackingRepository").Return(packingRepo).Once(),
		packingRepo.On("GetCarton", ctx, carton.ID()).Return(carton, nil).Once(),
		packingRepo.On("GetFinishedUnit", ctx, unit.ID()).Return(unit, nil).Once(),
		packingRepo.On("AllocateFinishedUnit", ctx, unit.ID()).Return(nil).Once(),
		packingRepo.On("UpdateCarton", ctx, carton).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddCartonContentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, carton.Contents(), 1)
	assert.Equal(t, unit.ID(), carton.Contents()[0].FinishedUnitID())
	assert.Equal(t, 3, carton.Contents()[0].Qty())
	packingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddCartonContentCommandHandler_Handle_UnitAlreadyPacked(t *testing.T) {
	ctx := t.Context()

	carton := buildOpenCarton(t)
	unit := buildUnpackedUnit(t)

	cmd, err := commands.NewAddCartonContentCommand(carton.ID(), unit.ID(), 1)
	require.NoError(t, err)

	conflict := errs.NewConflictErrorWithCause(
		"finished unit", unit.ID(), packing.ErrUnitIsAlreadyPacked)

	packingRepo := new(MockPackingRepository)
	uow := new(MockPackingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackingRepository").Return(packingRepo).Once(),
		packingRepo.On("GetCarton", ctx, carton.ID()).Return(carton, nil).Once(),
		packingRepo.On("GetFinishedUnit", ctx, unit.ID()).Return(unit, nil).Once(),
		packingRepo.On("AllocateFinishedUnit", ctx, unit.ID()).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddCartonContentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	packingRepo.AssertNotCalled(t, "UpdateCarton", mock.Anything, mock.Anything)
}

func TestAddCartonContentCommandHandler_Handle_CartonNotFound(t *testing.T) {
	ctx := t.Context()

	cartonID := kernel.NewUUID()
	cmd, err := commands.NewAddCartonContentCommand(cartonID, kernel.NewUUID(), 1)
	require.NoError(t, err)

	packingRepo := new(MockPackingRepository)
	uow := new(MockPackingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackingRepository").Return(packingRepo).Once(),
		packingRepo.On("GetCarton", ctx, cartonID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddCartonContentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCartonNotFound)
}
