package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverOracle   = "oracle"
	DBDriverGorm     = "gorm"
	DBDriverMemory   = "memory"

	// PricingModePerType values gold/usd/euro with their own multipliers.
	// PricingModeUniform applies a flat multiplier to everything. Both are
	// placeholder policies; the mode must be chosen explicitly so neither
	// wins by accident.
	PricingModePerType = "per-type"
	PricingModeUniform = "uniform"
)

type Config struct {
	DBDriver           string
	DBDSN              string
	ServerHost         string
	ServerPort         string
	LogLevel           string
	PricingMode        string
	UniformGrowthRate  string
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	driver := getEnvOrDefault("DB_DRIVER", DBDriverPostgres)
	switch driver {
	case DBDriverPostgres, DBDriverOracle, DBDriverGorm, DBDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" && driver != DBDriverMemory {
		return nil, fmt.Errorf("DB_DSN environment variable is required for the %s driver", driver)
	}

	pricingMode := getEnvOrDefault("PRICING_MODE", PricingModePerType)
	if pricingMode != PricingModePerType && pricingMode != PricingModeUniform {
		return nil, fmt.Errorf("unsupported PRICING_MODE: %s", pricingMode)
	}

	var corsOrigins []string
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		corsOrigins = strings.Split(raw, ",")
	}

	return &Config{
		DBDriver:           driver,
		DBDSN:              dsn,
		ServerHost:         getEnvOrDefault("SERVER_HOST", "localhost"),
		ServerPort:         getEnvOrDefault("SERVER_PORT", "8080"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		PricingMode:        pricingMode,
		UniformGrowthRate:  getEnvOrDefault("UNIFORM_GROWTH_RATE", "1.05"),
		CORSAllowedOrigins: corsOrigins,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
