package queries_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/runrepo"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/run"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the repository tracker.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

type ReconcileRunQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *runrepo.GormRunRepository
	handler    queries.ReconcileRunQueryHandler
}

func (suite *ReconcileRunQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&runrepo.RunDTO{},
		&runrepo.OutputDTO{},
		&runrepo.RejectDTO{},
		&runrepo.MaterialLogDTO{},
		&runrepo.MethodRecordDTO{},
		&runrepo.ProcessLogEntryDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewReconcileRunQueryHandler(db)
}

func (suite *ReconcileRunQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ReconcileRunQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE runs CASCADE").Error
	suite.Require().NoError(err)

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = runrepo.NewGormRunRepository(suite.db, tracker)
}

func (suite *ReconcileRunQueryHandlerTestSuite) TestHandle_RunWithLedgerRows_SumsBothSources() {
	ctx := context.Background()

	testRun := suite.seedRunWithLedger()

	query, err := queries.NewReconcileRunQuery(testRun.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(testRun.ID(), view.RunID)
	suite.Equal(run.InProgress.String(), view.Status)
	suite.Equal(100, view.TargetQty)
	suite.Equal(70, view.TotalGood)
	// 4 from output rows plus 6 from the standalone reject row.
	suite.Equal(10, view.TotalReject)
	suite.InDelta(0.875, view.Yield, 0.0001)
}

func (suite *ReconcileRunQueryHandlerTestSuite) TestHandle_RunWithoutRows_ZeroYield() {
	ctx := context.Background()

	testRun := suite.seedCreatedRun()

	query, err := queries.NewReconcileRunQuery(testRun.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(0, view.TotalGood)
	suite.Equal(0, view.TotalReject)
	suite.Zero(view.Yield)
}

func (suite *ReconcileRunQueryHandlerTestSuite) TestHandle_NonExistentRun_ReturnsNotFoundError() {
	ctx := context.Background()

	query, err := queries.NewReconcileRunQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(ctx, query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReconcileRunQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.ReconcileRunQuery{})
	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewReconcileRunQuery constructor")
}

// seedCreatedRun persists a fresh sewing run.
func (suite *ReconcileRunQueryHandlerTestSuite) seedCreatedRun() *run.Run {
	machineID := kernel.NewUUID()
	testRun, err := run.NewRun(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		order.Sewing, run.NoMethod, &machineID, nil, 100)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), testRun))
	return testRun
}

// seedRunWithLedger persists an in-progress run with 70 good and 4 reject
// pieces on output rows plus a 6-piece reject row.
func (suite *ReconcileRunQueryHandlerTestSuite) seedRunWithLedger() *run.Run {
	testRun := suite.seedCreatedRun()

	startedAt := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)
	suite.Require().NoError(testRun.Start(startedAt))

	firstOutput, err := run.NewOutput(kernel.NewUUID(), nil, 30, 1, "", startedAt.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(testRun.RecordOutput(firstOutput))

	secondOutput, err := run.NewOutput(kernel.NewUUID(), nil, 40, 3, "", startedAt.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(testRun.RecordOutput(secondOutput))

	cost := decimal.NewFromFloat(2.10)
	reject, err := run.NewReject(
		kernel.NewUUID(), nil, run.ReasonFabricDefect, 6, &cost, startedAt.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(testRun.RecordReject(reject))

	suite.Require().NoError(suite.repository.Update(context.Background(), testRun))
	return testRun
}

func TestReconcileRunQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcileRunQueryHandlerTestSuite))
}
