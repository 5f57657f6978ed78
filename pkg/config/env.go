package config

import (
	"os"
	"strings"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// GetEnv returns the value of an environment variable or a default value if not set.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvironment returns the current environment (development, staging, production)
// from STOCKVERIFY_SERVER_ENVIRONMENT, normalized to lower case.
// Defaults to development if not set.
func GetEnvironment() string {
	env := GetEnv("STOCKVERIFY_SERVER_ENVIRONMENT", EnvDevelopment)
	return strings.ToLower(env)
}

// IsDevelopment reports whether env names the development environment.
func IsDevelopment(env string) bool {
	return env == EnvDevelopment
}

// IsProduction reports whether env names the production environment.
func IsProduction(env string) bool {
	return env == EnvProduction
}

// IsProductionLike reports whether env must satisfy production configuration
// requirements (staging or production).
func IsProductionLike(env string) bool {
	return env == EnvStaging || env == EnvProduction
}
