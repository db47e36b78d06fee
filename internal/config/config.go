package config

import (
	"os"
	"strconv"
	"strings"

	"gostream/adapters/bitgen"
	"gostream/internal"
	"gostream/internal/errors"
	"gostream/internal/source"
)

// Config represents the complete application configuration
type Config struct {
	Stream  StreamConfig
	Workers WorkerConfig
	Log     LogConfig
}

// StreamConfig selects the generator family and splitting policy
type StreamConfig struct {
	Family       string
	Policy       string
	Perservative bool
	// Seed is nil when PRNG_SEED is unset; sources then seed themselves
	// non-deterministically and report the seed they used.
	Seed *uint64
}

// WorkerConfig holds parallel execution settings
type WorkerConfig struct {
	Count       int
	Concurrency int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	streamConfig, err := loadStreamConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load stream configuration")
	}
	config.Stream = *streamConfig

	config.Workers = *loadWorkerConfig()
	config.Log = LogConfig{Level: internal.ParseLogLevel(os.Getenv("LOG_LEVEL"))}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// SourceOptions converts the stream settings into source.Open options
func (c *Config) SourceOptions() source.Options {
	return source.Options{
		Family:       c.Stream.Family,
		Policy:       c.Stream.Policy,
		Perservative: c.Stream.Perservative,
		Seed:         c.Stream.Seed,
	}
}

func loadStreamConfig() (*StreamConfig, error) {
	cfg := &StreamConfig{
		Family:       strings.ToLower(getEnvOrDefault("PRNG_FAMILY", bitgen.NameXoshiro256StarStar)),
		Policy:       strings.ToLower(getEnvOrDefault("PRNG_POLICY", source.PolicySplitting)),
		Perservative: getEnvBoolOrDefault("PRNG_PERSERVATIVE", true),
	}

	if value := os.Getenv("PRNG_SEED"); value != "" {
		seed, err := ParseSeed(value)
		if err != nil {
			return nil, err
		}
		cfg.Seed = &seed
	}

	return cfg, nil
}

func loadWorkerConfig() *WorkerConfig {
	count := getEnvIntOrDefault("PRNG_WORKERS", 4)
	return &WorkerConfig{
		Count:       count,
		Concurrency: getEnvIntOrDefault("PRNG_CONCURRENCY", count),
	}
}

func validateConfig(config *Config) error {
	desc, ok := bitgen.Lookup(config.Stream.Family)
	if !ok {
		return errors.ConfigInvalid("unknown PRNG_FAMILY " + strconv.Quote(config.Stream.Family) +
			"; known families: " + strings.Join(bitgen.Names(), ", "))
	}
	switch config.Stream.Policy {
	case source.PolicySpacing:
	case source.PolicySplitting:
		if !desc.Jumpable {
			return errors.ConfigInvalid(desc.Name + " cannot jump ahead and cannot be used with PRNG_POLICY=splitting")
		}
	default:
		return errors.ConfigInvalid("PRNG_POLICY must be spacing or splitting")
	}
	if config.Workers.Count <= 0 {
		return errors.ConfigInvalid("PRNG_WORKERS must be positive")
	}
	if config.Workers.Concurrency <= 0 {
		return errors.ConfigInvalid("PRNG_CONCURRENCY must be positive")
	}
	return nil
}

// ParseSeed accepts decimal or 0x-prefixed hexadecimal seeds
func ParseSeed(value string) (uint64, error) {
	seed, err := strconv.ParseUint(strings.TrimSpace(value), 0, 64)
	if err != nil {
		return 0, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "invalid seed %q", value))
	}
	return seed, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
