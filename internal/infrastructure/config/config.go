package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the difficulty service.
type Config struct {
	GRPCPort       string
	HTTPPort       string
	Environment    string
	LogLevel       string
	LogFormat      string
	ClassifierPath string
	RegressorPath  string
	OTLPEndpoint   string
	EagerLoad      bool
	GRPCReflection bool
	RateLimitRPS   int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	eagerLoad, err := getEnvBool("AUTOJUDGE_EAGER_LOAD", false)
	if err != nil {
		return nil, err
	}

	reflection, err := getEnvBool("GRPC_REFLECTION", false)
	if err != nil {
		return nil, err
	}

	rps, err := getEnvInt("RATE_LIMIT_RPS", 50)
	if err != nil {
		return nil, err
	}
	if rps < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %d", rps)
	}

	return &Config{
		GRPCPort:       getEnv("GRPC_PORT", "8090"),
		HTTPPort:       getEnv("HTTP_PORT", "9090"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		ClassifierPath: getEnv("AUTOJUDGE_CLASSIFIER_PATH", "models/difficulty_classifier.json"),
		RegressorPath:  getEnv("AUTOJUDGE_REGRESSOR_PATH", "models/difficulty_regressor.json"),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		EagerLoad:      eagerLoad,
		GRPCReflection: reflection,
		RateLimitRPS:   rps,
	}, nil
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
