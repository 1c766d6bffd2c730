package queries_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/machinerepo"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/machine"
	"production/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListMachinesQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *machinerepo.GormMachineRepository
	handler    queries.ListMachinesQueryHandler
}

func (suite *ListMachinesQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&machinerepo.MachineDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewListMachinesQueryHandler(db)
}

func (suite *ListMachinesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListMachinesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE machines").Error
	suite.Require().NoError(err)

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = machinerepo.NewGormMachineRepository(suite.db, tracker)
}

func (suite *ListMachinesQueryHandlerTestSuite) TestHandle_EmptyWorkspace_ReturnsEmptySlice() {
	query, err := queries.NewListMachinesQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListMachinesQueryHandlerTestSuite) TestHandle_WithMachines_ReturnsWorkspaceMachinesOrdered() {
	ctx := context.Background()
	workspaceID := kernel.NewUUID()

	press := suite.seedMachine(workspaceID, "Press 2", "PRINT-A", order.Printing)
	cutter := suite.seedMachine(workspaceID, "Cutter 1", "CUT-A", order.Cutting)
	suite.seedMachine(kernel.NewUUID(), "Other Tenant Press", "PRINT-A", order.Printing)

	// Occupy the press so the listing shows its holder.
	holdingRunID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Acquire(ctx, press.ID(), holdingRunID))

	query, err := queries.NewListMachinesQuery(workspaceID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(cutter.ID(), result[0].ID)
	suite.Equal("Cutter 1", result[0].Name)
	suite.Equal("CUT-A", result[0].Workcenter)
	suite.Equal(order.Cutting.String(), result[0].Stage)
	suite.Nil(result[0].LockedByRunID)

	suite.Equal(press.ID(), result[1].ID)
	suite.Equal("Press 2", result[1].Name)
	suite.Require().NotNil(result[1].LockedByRunID)
	suite.True(holdingRunID.IsEqual(*result[1].LockedByRunID))
}

func (suite *ListMachinesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.ListMachinesQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewListMachinesQuery constructor")
}

// seedMachine persists a machine in the given workspace.
func (suite *ListMachinesQueryHandlerTestSuite) seedMachine(
	workspaceID kernel.UUID, name, workcenter string, stage order.Stage,
) *machine.Machine {
	testMachine, err := machine.NewMachine(kernel.NewUUID(), workspaceID, name, workcenter, stage)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), testMachine))
	return testMachine
}

func TestListMachinesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListMachinesQueryHandlerTestSuite))
}
