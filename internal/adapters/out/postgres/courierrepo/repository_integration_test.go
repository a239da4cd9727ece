package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"cvneat/internal/adapters/out/postgres/courierrepo"
	"cvneat/internal/core/domain/model/courier"
	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// CourierRepositoryIntegrationTestSuite provides integration tests for
// CourierRepository using PostgreSQL containers.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsAllFields() {
	ctx := context.Background()

	original, err := courier.RestoreCourier(kernel.NewUUID(), "Karim", true, 12, 41.60)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal("Karim", retrieved.Name())
	suite.True(retrieved.IsAvailable())
	suite.Equal(12, retrieved.TotalDeliveries())
	suite.InDelta(41.60, retrieved.TotalEarnings(), 1e-9)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NonExistentCourier_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsAvailabilityFlip() {
	ctx := context.Background()

	testCourier := suite.addCourier("Sofia", true)

	// Going off shift writes available=false, a zero value GORM would
	// otherwise skip.
	testCourier.SetAvailability(false)
	suite.tracker.On("TrackAggregate", testCourier.ID(), testCourier).Once()
	suite.Require().NoError(suite.repository.Update(ctx, testCourier))

	retrieved, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.False(retrieved.IsAvailable())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsDeliveryStatistics() {
	ctx := context.Background()

	testCourier := suite.addCourier("Nadia", true)

	suite.Require().NoError(testCourier.RecordDelivery(3.20))
	suite.Require().NoError(testCourier.RecordDelivery(4.75))
	suite.tracker.On("TrackAggregate", testCourier.ID(), testCourier).Once()
	suite.Require().NoError(suite.repository.Update(ctx, testCourier))

	retrieved, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.Equal(2, retrieved.TotalDeliveries())
	suite.InDelta(7.95, retrieved.TotalEarnings(), 1e-9)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_NonExistentCourier_ReturnsError() {
	ctx := context.Background()

	missing, err := courier.NewCourier(kernel.NewUUID(), "Ghost")
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, missing)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAllAvailable_FiltersAndSortsByName() {
	ctx := context.Background()

	suite.addCourier("Zoe", true)
	suite.addCourier("Ali", true)
	suite.addCourier("Marc", false)

	available, err := suite.repository.GetAllAvailable(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(available, 2)
	suite.Equal("Ali", available[0].Name())
	suite.Equal("Zoe", available[1].Name())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) addCourier(name string, available bool) *courier.Courier {
	testCourier, err := courier.RestoreCourier(kernel.NewUUID(), name, available, 0, 0)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testCourier.ID(), testCourier).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), testCourier))
	return testCourier
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
