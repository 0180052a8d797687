package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Booking  BookingConfig
	LogLevel string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type HTTPConfig struct {
	Port string
}

type AuthConfig struct {
	JWTSecret string
}

type BookingConfig struct {
	// AutoConfirm 為 true 時訂位直接成立為 CONFIRMED，不經過付款確認
	AutoConfirm bool
	// AvailabilityWorker 是否在本行程內啟動庫存快取的消費者
	AvailabilityWorker bool
}

var AppConfig *Config

// LoadConfig 先讀取 .env（若存在），再由環境變數組出設定
func LoadConfig() *Config {
	_ = godotenv.Load()

	AppConfig = &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		HTTP: HTTPConfig{
			Port: getEnv("HTTP_PORT", "8080"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "change-me"),
		},
		Booking: BookingConfig{
			AutoConfirm:        getEnvBool("BOOKING_AUTO_CONFIRM", false),
			AvailabilityWorker: getEnvBool("AVAILABILITY_WORKER_ENABLED", true),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:        "localhost",
		Port:        "5433", // 測試 DB 用 5433 port
		User:        "postgres",
		Password:    "postgres",
		DBName:      "test_db",
		SSLMode:     "disable",
		AutoMigrate: true,
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		HTTP:     HTTPConfig{Port: "0"},
		Auth:     AuthConfig{JWTSecret: "test-secret"},
		LogLevel: "debug",
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        getEnv("DB_PORT", "5432"),
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "postgres"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		AutoMigrate: getEnvBool("MIGRATIONS_AUTO", true),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
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
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
