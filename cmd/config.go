package cmd

import "time"

// Config carries every runtime setting the application reads from the
// environment. Parsing happens in cmd/app; everything here is already typed.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost             string
	KafkaOrderEventsTopic string

	// RestaurantLat/Lng anchor every distance computation; the fee policy
	// below caps what a delivery can cost and how far it can go.
	RestaurantLat       float64
	RestaurantLng       float64
	MaxDeliveryRadiusKM float64
	DeliveryBaseFee     float64
	DeliveryFeePerKM    float64
	MaxDeliveryFee      float64

	// OrderExpiration is how long a ready order may wait unclaimed before the
	// sweeper cancels it. SweepInterval is how often the sweeper looks.
	OrderExpiration time.Duration
	SweepInterval   time.Duration
}
