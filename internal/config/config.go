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

	// Dataset sources: local paths or http(s) URLs.
	GeometrySource string
	ElectionSource string
	FetchTimeout   time.Duration

	// GeoJSON property names for the county sub-codes and display name.
	GeoStateProperty  string
	GeoCountyProperty string
	GeoNameProperty   string

	DefaultYear int

	// Kafka layer sink configuration.
	KafkaEnabled    bool
	KafkaBrokers    []string
	KafkaLayerTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "30s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	defaultYear, err := strconv.Atoi(sharedcfg.EnvOrDefault("DEFAULT_YEAR", "2020"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_YEAR: %w", err)
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GeometrySource: sharedcfg.EnvOrDefault("GEOMETRY_SOURCE", "data/usa_counties.geojson"),
		ElectionSource: sharedcfg.EnvOrDefault("ELECTION_SOURCE", "data/election_results.csv"),
		FetchTimeout:   fetchTimeout,

		GeoStateProperty:  sharedcfg.EnvOrDefault("GEO_STATE_PROPERTY", "STATE"),
		GeoCountyProperty: sharedcfg.EnvOrDefault("GEO_COUNTY_PROPERTY", "COUNTY"),
		GeoNameProperty:   sharedcfg.EnvOrDefault("GEO_NAME_PROPERTY", "NAME"),

		DefaultYear: defaultYear,

		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    brokers,
		KafkaLayerTopic: sharedcfg.EnvOrDefault("KAFKA_LAYER_TOPIC", "county-election-layer"),
	}

	if cfg.GeometrySource == "" {
		return nil, errors.New("GEOMETRY_SOURCE is required")
	}
	if cfg.ElectionSource == "" {
		return nil, errors.New("ELECTION_SOURCE is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaLayerTopic == "" {
		return nil, errors.New("KAFKA_LAYER_TOPIC is required when Kafka is enabled")
	}

	return cfg, nil
}
