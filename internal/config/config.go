package config

import (
	"fmt"

	pkgconfig "github.com/barkeep-app/search/pkg/config"
	"github.com/barkeep-app/search/pkg/validator"
)

// Config holds all configuration for the cocktail search service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Stage qualifies every index name (e.g. "cocktails-prod"). It has no
	// default: a missing stage must fail startup, not write into a shared
	// index.
	Stage string `env:"STAGE" validate:"required"`

	// HTTP server
	HTTPPort int `env:"SEARCH_HTTP_PORT" envDefault:"8010" validate:"gte=1,lte=65535"`

	// Elasticsearch
	ElasticNode   string `env:"ELASTIC_NODE" envDefault:"http://localhost:9200" validate:"url"`
	ElasticAPIKey string `env:"ELASTIC_API_KEY"`

	// Search engine selection
	SearchEngine string `env:"SEARCH_ENGINE" envDefault:"elasticsearch" validate:"oneof=elasticsearch memory"`

	// MongoDB
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"barkeep" validate:"required"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Reindex tuning
	ReindexBatchSize int `env:"REINDEX_BATCH_SIZE" envDefault:"10" validate:"gte=1"`
	ReindexPauseMs   int `env:"REINDEX_PAUSE_MS" envDefault:"1000" validate:"gte=0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load search config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("validate search config: %w", err)
	}
	return nil
}
