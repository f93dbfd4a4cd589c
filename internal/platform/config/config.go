package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	StorageDriver  string
	StorageTimeout time.Duration
	BcryptCost     int
	LogLevel       string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string
	DBMigrate  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env files.
func FromEnv() *Config {
	cfg := &Config{
		APIPort:        getEnv("API_PORT", "4000"),
		JWTKey:         []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:         time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		StorageTimeout: getEnvAsDuration("STORAGE_TIMEOUT", 5*time.Second),
		BcryptCost:     getEnvAsInt("BCRYPT_COST", 10),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "user"),
		DBPassword:     getEnv("DB_PASSWORD", "password"),
		DBName:         getEnv("DB_NAME", "workouts_db"),
		DBSslMode:      getEnv("DB_SSLMODE", "disable"),
		DBMigrate:      getEnvAsBool("DB_MIGRATE", true),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode
	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	return fallback
}
