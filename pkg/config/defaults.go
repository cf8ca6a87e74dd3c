package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
	DefaultMaxRequestSize  = 64 * 1024 // 64KB, bookings are tiny payloads

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	// Booking rules carried over from the product requirements: the campsite
	// is bookable up to a month ahead, for at most 3 days, reserved at least
	// one day before arrival.
	DefaultHorizonDays    = 31
	DefaultMaxStayDays    = 3
	DefaultMinAdvanceDays = 1
	DefaultMaxAdvanceDays = 31

	DefaultKafkaTopic = "campsite.reservations"
)
