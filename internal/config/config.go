package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	// Cart persistence
	CartStorage    string
	CartFilePath   string
	CartSQLitePath string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// Logistics provider
	ShippingBaseURL    string
	ShippingToken      string
	ShippingProvinceID int

	AMQPURL      string
	AMQPExchange string

	CORSOrigins []string

	// InternalKey lets trusted services bypass the public rate limits.
	InternalKey string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    getEnv("APP_PORT", "8080"),
		AppEnv:     os.Getenv("APP_ENV"),
		JWTSecret:  os.Getenv("JWT_SECRET"),

		CartStorage:    getEnv("CART_STORAGE", StoragePostgres),
		CartFilePath:   getEnv("CART_FILE_PATH", "./data/cart-storage.json"),
		CartSQLitePath: getEnv("CART_SQLITE_PATH", "./data/cart.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),

		ShippingBaseURL:    getEnv("SHIPPING_BASE_URL", "https://online-gateway.ghn.vn/shiip/public-api"),
		ShippingToken:      os.Getenv("SHIPPING_TOKEN"),
		ShippingProvinceID: getEnvInt("SHIPPING_PROVINCE_ID", 202),

		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "orders"),

		CORSOrigins: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		InternalKey: os.Getenv("INTERNAL_SERVICE_KEY"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
