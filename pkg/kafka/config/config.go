package kafka_config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Config holds the event producer settings.
type Config struct {
	Brokers []string

	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerWriteTimeout time.Duration
	ProducerRequireAcks  int    // -1 all in-sync replicas, 0 none, 1 leader
	ProducerCompression  string // one of supportedCompressions
	ProducerAsync        bool

	EnableMiddleware bool
}

// Load reads the producer settings from the environment and validates them.
func Load() (*Config, error) {
	env := envReader{lookup: os.Getenv}

	cfg := &Config{
		Brokers:              splitBrokers(env.asString(EnvKafkaBrokers, DefaultKafkaBrokers)),
		ProducerMaxAttempts:  env.asInt(EnvKafkaProducerMaxAttempts, DefaultProducerMaxAttempts),
		ProducerBatchTimeout: env.asDuration(EnvKafkaProducerBatchTimeout, DefaultProducerBatchTimeout),
		ProducerWriteTimeout: env.asDuration(EnvKafkaProducerWriteTimeout, DefaultProducerWriteTimeout),
		ProducerRequireAcks:  env.asInt(EnvKafkaProducerRequireAcks, DefaultProducerRequireAcks),
		ProducerCompression:  strings.ToLower(env.asString(EnvKafkaProducerCompression, DefaultProducerCompression)),
		ProducerAsync:        env.asBool(EnvKafkaProducerAsync, DefaultProducerAsync),
		EnableMiddleware:     env.asBool(EnvKafkaEnableMiddleware, DefaultEnableMiddleware),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var errs []error

	if len(cfg.Brokers) == 0 {
		errs = append(errs, errors.New("at least one broker is required"))
	}
	if slices.Contains(cfg.Brokers, "") {
		errs = append(errs, errors.New("broker addresses cannot be empty"))
	}
	if cfg.ProducerMaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("producer max attempts must be positive, got %d", cfg.ProducerMaxAttempts))
	}
	if cfg.ProducerBatchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("producer batch timeout must be positive, got %s", cfg.ProducerBatchTimeout))
	}
	if cfg.ProducerWriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("producer write timeout must be positive, got %s", cfg.ProducerWriteTimeout))
	}
	if !slices.Contains(supportedCompressions, cfg.ProducerCompression) {
		errs = append(errs, fmt.Errorf("producer compression must be one of %v, got %q", supportedCompressions, cfg.ProducerCompression))
	}
	if cfg.ProducerRequireAcks < -1 || cfg.ProducerRequireAcks > 1 {
		errs = append(errs, fmt.Errorf("producer require acks must be -1, 0 or 1, got %d", cfg.ProducerRequireAcks))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid kafka configuration: %w", errors.Join(errs...))
	}
	return nil
}

func (cfg *Config) LogConfiguration(logFunc func(msg string, args ...any)) {
	if logFunc == nil {
		return
	}

	logFunc("Kafka producer configuration loaded",
		"brokers", cfg.Brokers,
		"max_attempts", cfg.ProducerMaxAttempts,
		"batch_timeout", cfg.ProducerBatchTimeout,
		"write_timeout", cfg.ProducerWriteTimeout,
		"require_acks", cfg.ProducerRequireAcks,
		"compression", cfg.ProducerCompression,
		"async", cfg.ProducerAsync,
		"middleware", cfg.EnableMiddleware,
	)
}

func splitBrokers(value string) []string {
	brokers := strings.Split(value, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}

// envReader falls back to the default when a key is unset or unparsable.
type envReader struct {
	lookup func(string) string
}

func (e envReader) asString(key, def string) string {
	if v := e.lookup(key); v != "" {
		return v
	}
	return def
}

func (e envReader) asInt(key string, def int) int {
	if v, err := strconv.Atoi(e.lookup(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) asBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(e.lookup(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) asDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(e.lookup(key)); err == nil {
		return v
	}
	return def
}
