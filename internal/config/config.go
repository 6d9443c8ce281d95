package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Tracker loop configuration.
	PositionInterval time.Duration
	LogInterval      time.Duration
	LogCapacity      int
	StationsFile     string
	RandomSeed       uint64

	// Kafka snapshot publishing.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	positionInterval, err := parsePositiveDuration("POSITION_INTERVAL", "1s")
	if err != nil {
		return nil, err
	}

	logInterval, err := parsePositiveDuration("LOG_INTERVAL", "6s")
	if err != nil {
		return nil, err
	}

	logCapacity, err := parseLogCapacity()
	if err != nil {
		return nil, err
	}

	seed, err := parseRandomSeed()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		PositionInterval: positionInterval,
		LogInterval:      logInterval,
		LogCapacity:      logCapacity,
		StationsFile:     os.Getenv("STATIONS_FILE"),
		RandomSeed:       seed,

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "courier-positions"),
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseLogCapacity() (int, error) {
	s := os.Getenv("LOG_CAPACITY")
	if s == "" {
		return 5, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 100 {
		return 0, errors.New("invalid LOG_CAPACITY: must be 1-100")
	}
	return n, nil
}

// parseRandomSeed returns 0 when unset, meaning a time-based seed.
func parseRandomSeed() (uint64, error) {
	s := os.Getenv("RANDOM_SEED")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.New("invalid RANDOM_SEED")
	}
	return n, nil
}
