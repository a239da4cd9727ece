package cmd

import (
	"fmt"
	"log/slog"

	"cvneat/internal/adapters/out/postgres"
	"cvneat/internal/core/application/usecases/commands"
	"cvneat/internal/core/application/usecases/queries"
	"cvneat/internal/core/domain/model/kernel"
	"cvneat/internal/core/domain/services"
	"cvneat/internal/core/ports"
	"cvneat/internal/jobs"
	"cvneat/internal/pkg/clock"

	"gorm.io/gorm"
)

// servedZone is one commune the calculator knows. The table is fixed at
// deployment: zone matching is by commune name in the address, and the set of
// known communes changes with a release, not at runtime. Too-far communes
// stay in the table so their addresses are refused for distance rather than
// reported as unknown.
type servedZone struct {
	name   string
	lat    float64
	lng    float64
	tooFar bool
}

var servedZones = []servedZone{
	{name: "ganges", lat: 43.9342, lng: 3.7098},
	{name: "laroque", lat: 43.9188, lng: 3.7146},
	{name: "pegairolles", lat: 43.9178, lng: 3.7428},
	{name: "saint-bauzille", lat: 43.9033, lng: 3.7067},
	{name: "sumene", lat: 43.8994, lng: 3.7194},
	{name: "montoulieu", lat: 43.9200, lng: 3.6800},
	{name: "moules", lat: 43.9400, lng: 3.7200},

	{name: "saint-esteve", lat: 43.8581, lng: 3.8331, tooFar: true},
	{name: "perpignan", lat: 43.8700, lng: 3.8400, tooFar: true},
	{name: "canet", lat: 43.8500, lng: 3.8200, tooFar: true},
}

// CompositionRoot wires adapters into application handlers. It is the only
// place that knows concrete implementations; everything else depends on ports.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	zones      *services.DeliveryZoneCalculator
	publisher  ports.EventPublisher
	clock      clock.Clock
	logger     *slog.Logger
	config     Config
}

// NewCompositionRoot builds the object graph from configuration and the
// already-open database connection and event publisher.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	zones, err := buildZoneCalculator(config)
	if err != nil {
		return nil, fmt.Errorf("failed to build delivery zone calculator: %w", err)
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		zones:      zones,
		publisher:  publisher,
		clock:      clock.NewSystem(),
		logger:     logger,
		config:     config,
	}, nil
}

func buildZoneCalculator(config Config) (*services.DeliveryZoneCalculator, error) {
	restaurant, err := kernel.NewGeoPoint(config.RestaurantLat, config.RestaurantLng)
	if err != nil {
		return nil, err
	}

	zones := make([]services.Zone, 0, len(servedZones))
	for _, zone := range servedZones {
		center, zoneErr := kernel.NewGeoPoint(zone.lat, zone.lng)
		if zoneErr != nil {
			return nil, zoneErr
		}
		zones = append(zones, services.Zone{Name: zone.name, Center: center, TooFar: zone.tooFar})
	}

	policy := services.FeePolicy{
		BaseFee:     config.DeliveryBaseFee,
		FeePerKM:    config.DeliveryFeePerKM,
		MaxFee:      config.MaxDeliveryFee,
		MaxRadiusKM: config.MaxDeliveryRadiusKM,
	}

	return services.NewDeliveryZoneCalculator(restaurant, zones, policy)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.zones, c.clock)
}

func (c *CompositionRoot) CreateStartPreparationCommandHandler() commands.StartPreparationCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartPreparationCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateMarkReadyCommandHandler() commands.MarkReadyCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkReadyCommandHandler(f, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.ClaimUoWFactory = FuncClaimUoWFactory(func() commands.ClaimUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateExpireOrdersCommandHandler() commands.ExpireOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireOrdersCommandHandler(f, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateUpdateCourierPositionCommandHandler() commands.UpdateCourierPositionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCourierPositionCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB, c.clock)
}

// CreateJobManager wires the expiration sweeper on the configured interval.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	schedule := fmt.Sprintf("@every %s", c.config.SweepInterval)
	return jobs.NewJobManager(
		c.CreateExpireOrdersCommandHandler(),
		schedule,
		c.config.OrderExpiration,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncClaimUoWFactory func() commands.ClaimUoW

func (f FuncClaimUoWFactory) Create() commands.ClaimUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
