package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "cvneat/internal/adapters/out/postgres"
	"cvneat/internal/adapters/out/postgres/claimlogrepo"
	"cvneat/internal/adapters/out/postgres/courierrepo"
	"cvneat/internal/adapters/out/postgres/orderrepo"
	"cvneat/internal/core/domain/model/courier"
	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/domain/model/order"
	"cvneat/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies the GORM unit of work against a real
// PostgreSQL database: transaction lifecycle, rollback isolation, and the
// cross-repository atomicity the claim protocol needs.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&courierrepo.CourierDTO{},
		&claimlogrepo.ClaimAttemptDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, couriers, claim_attempts").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.CourierRepository())
	suite.NotNil(uow1.ClaimLogRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	// A second Begin must not open a nested transaction.
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.Commit(ctx))

	// Commit without an open transaction fails.
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.buildReadyOrder()
	testCourier, err := courier.RestoreCourier(kernel.NewUUID(), "Amine", true, 0, 0)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.CourierRepository().Add(ctx, testCourier))
	suite.Require().NoError(uow.ClaimLogRepository().Add(ctx, ports.ClaimAttempt{
		OrderID:   testOrder.ID(),
		CourierID: testCourier.ID(),
		Won:       false,
		At:        time.Now().UTC(),
	}))
	suite.Require().NoError(uow.Commit(ctx))

	check := suite.factory.Create()
	persisted, err := check.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), persisted.ID())

	attempts, err := check.ClaimLogRepository().GetByOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Len(attempts, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.buildReadyOrder()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.ClaimLogRepository().Add(ctx, ports.ClaimAttempt{
		OrderID:   testOrder.ID(),
		CourierID: kernel.NewUUID(),
		Won:       true,
		At:        time.Now().UTC(),
	}))
	suite.Require().NoError(uow.Rollback(ctx))

	check := suite.factory.Create()
	_, err := check.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err)

	attempts, err := check.ClaimLogRepository().GetByOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Empty(attempts)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestClaimFlow_AuditAndAssignmentCommitTogether() {
	ctx := context.Background()

	setup := suite.factory.Create()
	testOrder := suite.buildReadyOrder()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setup.Commit(ctx))

	courierID := kernel.NewUUID()
	claimedAt := time.Now().UTC()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	won, err := uow.OrderRepository().TryClaim(ctx, testOrder.ID(), courierID, claimedAt)
	suite.Require().NoError(err)
	suite.True(won)

	suite.Require().NoError(uow.ClaimLogRepository().Add(ctx, ports.ClaimAttempt{
		OrderID:   testOrder.ID(),
		CourierID: courierID,
		Won:       true,
		At:        claimedAt,
	}))
	suite.Require().NoError(uow.Commit(ctx))

	check := suite.factory.Create()
	persisted, err := check.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.EnRoute, persisted.Status())
	suite.Require().NotNil(persisted.Courier())
	suite.Equal(courierID, *persisted.Courier())

	attempts, err := check.ClaimLogRepository().GetByOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(attempts, 1)
	suite.True(attempts[0].Won)
}

func (suite *UnitOfWorkIntegrationTestSuite) buildReadyOrder() *order.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)

	point, err := kernel.NewGeoPoint(43.9188, 3.7146)
	suite.Require().NoError(err)

	line, err := order.NewItemLine("Agneau korma", 13.00, 1)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"3 rue des Jardins, Laroque",
		point,
		[]order.ItemLine{line},
		3.20,
		true,
		now,
	)
	suite.Require().NoError(err)

	suite.Require().NoError(testOrder.StartPreparation(15, now))
	suite.Require().NoError(testOrder.MarkReady(now))
	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
