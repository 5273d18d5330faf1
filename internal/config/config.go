package config

import (
	"os"

	"github.com/joho/godotenv"
)

// ProjectDeletePolicy controls what happens to a project's tasks when the
// project is deleted.
type ProjectDeletePolicy string

const (
	// ProjectDeleteCascade removes the project's tasks and their assignments.
	ProjectDeleteCascade ProjectDeletePolicy = "cascade"
	// ProjectDeleteRestrict refuses to delete a project that still has tasks.
	ProjectDeleteRestrict ProjectDeletePolicy = "restrict"
)

type Config struct {
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSSLMode           string
	RedisHost           string
	RedisPort           string
	SessionSecret       string
	GinMode             string
	ServerAddr          string
	ProjectDeletePolicy ProjectDeletePolicy
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "portal"),
		DBPassword:          getEnv("DB_PASSWORD", "portal"),
		DBName:              getEnv("DB_NAME", "hr_portal"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		RedisHost:           getEnv("REDIS_HOST", "localhost"),
		RedisPort:           getEnv("REDIS_PORT", "6379"),
		SessionSecret:       getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		ServerAddr:          getEnv("SERVER_ADDR", ":8080"),
		ProjectDeletePolicy: parseDeletePolicy(getEnv("PROJECT_DELETE_POLICY", "cascade")),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseDeletePolicy(value string) ProjectDeletePolicy {
	if value == string(ProjectDeleteRestrict) {
		return ProjectDeleteRestrict
	}
	return ProjectDeleteCascade
}
