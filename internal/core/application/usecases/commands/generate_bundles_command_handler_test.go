package commands_test

import (
	"context"
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/cutting"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCuttingRepository struct{ mock.Mock }

func (m *MockCuttingRepository) AddLay(ctx context.Context, lay *cutting.CutLay) error {
	args := m.Called(ctx, lay)
	return args.Error(0)
}

func (m *MockCuttingRepository) GetLay(ctx context.Context, id kernel.UUID) (*cutting.CutLay, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cutting.CutLay), args.Error(1)
}

func (m *MockCuttingRepository) AddBundles(ctx context.Context, bundles []*cutting.Bundle) error {
	args := m.Called(ctx, bundles)
	return args.Error(0)
}

func (m *MockCuttingRepository) GetBundlesByLay(
	ctx context.Context, layID kernel.UUID,
) ([]*cutting.Bundle, error) {
	args := m.Called(ctx, layID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cutting.Bundle), args.Error(1)
}

type MockCuttingUoW struct{ mock.Mock }

func (m *MockCuttingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCuttingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCuttingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCuttingUoW) CuttingRepository() ports.CuttingRepository {
	args := m.Called()
	return args.Get(0).(ports.CuttingRepository)
}

func (m *MockCuttingUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockCuttingUoWFactory struct{ mock.Mock }

func (m *MockCuttingUoWFactory) Create() commands.CuttingUoW {
	args := m.Called()
	return args.Get(0).(commands.CuttingUoW)
}

func buildTestLay(t *testing.T) *cutting.CutLay {
	t.Helper()

	output, err := cutting.NewCutOutput("M", 40)
	require.NoError(t, err)

	lay, err := cutting.NewCutLay(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"MRK-TS-01", decimal.NewFromInt(160), decimal.NewFromFloat(8.5),
		20, 2, "KG",
		decimal.NewFromFloat(12.5), decimal.NewFromFloat(0.4), decimal.NewFromFloat(0.1),
		[]cutting.CutOutput{output}, time.Now(),
	)
	require.NoError(t, err)
	return lay
}

func buildStoredBundle(t *testing.T, layID kernel.UUID) *cutting.Bundle {
	t.Helper()

	b, err := cutting.NewBundle(
		kernel.NewUUID(), kernel.NewUUID(), layID, "M", 20, 1, "BDL-M-001")
	require.NoError(t, err)
	return b
}

func TestGenerateBundlesCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	lay := buildTestLay(t)

	cmd, err := commands.NewGenerateBundlesCommand(lay.ID(), 20)
	require.NoError(t, err)

	cuttingRepo := new(MockCuttingRepository)
	uow := new(MockCuttingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CuttingRepository").Return(cuttingRepo).Once(),
		cuttingRepo.On("GetLay", ctx, lay.ID()).Return(lay, nil).Once(),
		cuttingRepo.On("GetBundlesByLay", ctx, lay.ID()).Return(nil, nil).Once(),
		cuttingRepo.On("AddBundles", ctx, mock.AnythingOfType("[]*cutting.Bundle")).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCuttingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewGenerateBundlesCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	cuttingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestGenerateBundlesCommandHandler_Handle_LayAlreadyBundled(t *testing.T) {
	ctx := t.Context()

	lay := buildTestLay(t)
	stored := buildStoredBundle(t, lay.ID())

	cmd, err := commands.NewGenerateBundlesCommand(lay.ID(), 20)
	require.NoError(t, err)

	cuttingRepo := new(MockCuttingRepository)
	uow := new(MockCuttingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CuttingRepository").Return(cuttingRepo).Once(),
		cuttingRepo.On("GetLay", ctx, lay.ID()).Return(lay, nil).Once(),
		cuttingRepo.On("GetBundlesByLay", ctx, lay.ID()).
			Return([]*cutting.Bundle{stored}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCuttingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewGenerateBundlesCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	cuttingRepo.AssertNotCalled(t, "AddBundles", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestGenerateBundlesCommandHandler_Handle_LayNotFound(t *testing.T) {
	ctx := t.Context()

	layID := kernel.NewUUID()
	cmd, err := commands.NewGenerateBundlesCommand(layID, 20)
	require.NoError(t, err)

	cuttingRepo := new(MockCuttingRepository)
	uow := new(MockCuttingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CuttingRepository").Return(cuttingRepo).Once(),
		cuttingRepo.On("GetLay", ctx, layID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCuttingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewGenerateBundlesCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrLayNotFound)
}
