package main

import (
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cvneat/cmd"
	httpadapter "cvneat/internal/adapters/in/http"
	"cvneat/internal/adapters/out/kafka"
	"cvneat/internal/adapters/out/postgres/claimlogrepo"
	"cvneat/internal/adapters/out/postgres/courierrepo"
	"cvneat/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config := getConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := mustOpenDB(config)
	publisher, err := kafka.NewOrderEventPublisher(
		[]string{config.KafkaHost}, config.KafkaOrderEventsTopic)
	if err != nil {
		log.Fatalf("Failed to create kafka publisher: %v", err)
	}
	defer publisher.Close()

	root, err := cmd.NewCompositionRoot(config, db, publisher, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, config.HTTPPort)
}

func getConfig() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:   envString("HTTP_PORT", "8080"),
		DBHost:     envString("DB_HOST", "localhost"),
		DBPort:     envString("DB_PORT", "5432"),
		DBUser:     envString("DB_USER", "postgres"),
		DBPassword: envString("DB_PASSWORD", "postgres"),
		DBName:     envString("DB_NAME", "cvneat"),
		DBSslMode:  envString("DB_SSLMODE", "disable"),

		KafkaHost:             envString("KAFKA_HOST", "localhost:9092"),
		KafkaOrderEventsTopic: envString("KAFKA_ORDER_EVENTS_TOPIC", "order-events"),

		RestaurantLat:       envFloat("RESTAURANT_LAT", 43.9342),
		RestaurantLng:       envFloat("RESTAURANT_LNG", 3.7098),
		MaxDeliveryRadiusKM: envFloat("MAX_DELIVERY_RADIUS_KM", 10),
		DeliveryBaseFee:     envFloat("DELIVERY_BASE_FEE", 2.50),
		DeliveryFeePerKM:    envFloat("DELIVERY_FEE_PER_KM", 0.80),
		MaxDeliveryFee:      envFloat("MAX_DELIVERY_FEE", 10),

		OrderExpiration: time.Duration(envInt("ORDER_EXPIRATION_MINUTES", 30)) * time.Minute,
		SweepInterval:   time.Duration(envInt("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
	}
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func mustOpenDB(config cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&courierrepo.CourierDTO{},
		&claimlogrepo.ClaimAttemptDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Validator = httpadapter.NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateStartPreparationCommandHandler(),
		root.CreateMarkReadyCommandHandler(),
		root.CreateClaimOrderCommandHandler(),
		root.CreateCompleteDeliveryCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateUpdateCourierPositionCommandHandler(),
		root.CreateCreateCourierCommandHandler(),
		root.CreateSetCourierAvailabilityCommandHandler(),
		root.CreateGetAvailableOrdersQueryHandler(),
		root.CreateGetOrderTrackingQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil &&
			!errors.Is(err, nethttp.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if err := e.Close(); err != nil {
		e.Logger.Error(err)
	}
}
