package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"campsite/pkg/logger"
)

type Config struct {
	Port     string
	LogLevel string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	MaxRequestSize  int

	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Booking rules. HorizonDays is the length of the rolling ledger window;
	// the advance-booking window and stay length are validated against these.
	HorizonDays    int
	MaxStayDays    int
	MinAdvanceDays int
	MaxAdvanceDays int

	// Kafka is optional: with no brokers configured, reservation events are
	// dropped instead of published.
	KafkaBrokers []string
	KafkaTopic   string

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
		RequestTimeout:  getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize:  getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		HorizonDays:    getEnvNum(EnvHorizonDays, DefaultHorizonDays),
		MaxStayDays:    getEnvNum(EnvMaxStayDays, DefaultMaxStayDays),
		MinAdvanceDays: getEnvNum(EnvMinAdvanceDays, DefaultMinAdvanceDays),
		MaxAdvanceDays: getEnvNum(EnvMaxAdvanceDays, DefaultMaxAdvanceDays),

		KafkaBrokers: getEnvList(EnvKafkaBrokers),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),
	}

	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    logger.FormatJSON,
		AddSource: true,
		Service:   serviceName,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	for name, d := range map[string]time.Duration{
		"ReadTimeout":     cfg.ReadTimeout,
		"WriteTimeout":    cfg.WriteTimeout,
		"IdleTimeout":     cfg.IdleTimeout,
		"ShutdownTimeout": cfg.ShutdownTimeout,
		"RequestTimeout":  cfg.RequestTimeout,
		"RateLimitWindow": cfg.RateLimitWindow,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}

	if cfg.HorizonDays <= 0 {
		errs = append(errs, fmt.Sprintf("HorizonDays must be positive, got: %d", cfg.HorizonDays))
	}
	if cfg.MaxStayDays <= 0 {
		errs = append(errs, fmt.Sprintf("MaxStayDays must be positive, got: %d", cfg.MaxStayDays))
	}
	if cfg.MinAdvanceDays < 0 {
		errs = append(errs, fmt.Sprintf("MinAdvanceDays cannot be negative, got: %d", cfg.MinAdvanceDays))
	}
	if cfg.MaxAdvanceDays < cfg.MinAdvanceDays {
		errs = append(errs, fmt.Sprintf("MaxAdvanceDays (%d) must be >= MinAdvanceDays (%d)", cfg.MaxAdvanceDays, cfg.MinAdvanceDays))
	}
	if cfg.MaxAdvanceDays > cfg.HorizonDays {
		errs = append(errs, fmt.Sprintf("MaxAdvanceDays (%d) cannot exceed HorizonDays (%d), the ledger fails closed outside its horizon", cfg.MaxAdvanceDays, cfg.HorizonDays))
	}

	if len(errs) > 0 {
		msg := "Configuration validation failed:\n"
		for i, e := range errs {
			msg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"horizon_days", cfg.HorizonDays,
		"max_stay_days", cfg.MaxStayDays,
		"min_advance_days", cfg.MinAdvanceDays,
		"max_advance_days", cfg.MaxAdvanceDays,
		"kafka_enabled", len(cfg.KafkaBrokers) > 0,
		"kafka_topic", cfg.KafkaTopic,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
