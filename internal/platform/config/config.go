package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	FrontendDir     string
	Environment     string
	CORSOrigin      string
	SeedAdminName   string
	SeedAdminEmail  string
	SeedAdminPass   string
	AllowSelfSignup bool
	RunMigrations   bool
	RunSeed         bool
	MaxBodyBytes    int64
}

func Load() Config {
	return Config{
		Addr:            getEnv("APP_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		FrontendDir:     getEnv("FRONTEND_DIR", "frontend/dist"),
		Environment:     getEnv("APP_ENV", "development"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://localhost:4200"),
		SeedAdminName:   getEnv("SEED_ADMIN_NAME", "Administrator"),
		SeedAdminEmail:  getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPass:   getEnv("SEED_ADMIN_PASSWORD", ""),
		AllowSelfSignup: getEnvBool("ALLOW_SELF_SIGNUP", false),
		RunMigrations:   getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:         getEnvBool("RUN_SEED", true),
		MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
