package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("CART_STORAGE", "redis")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("SHIPPING_TOKEN", "ghn-token")
		t.Setenv("SHIPPING_PROVINCE_ID", "201")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, StorageRedis, cfg.CartStorage)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.Equal(t, "ghn-token", cfg.ShippingToken)
		assert.Equal(t, 201, cfg.ShippingProvinceID)
	})

	t.Run("Defaults for optional keys", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("APP_PORT", "")
		t.Setenv("CART_STORAGE", "")
		t.Setenv("REDIS_DB", "not-a-number")
		t.Setenv("AMQP_EXCHANGE", "")

		cfg := LoadConfig()

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, StoragePostgres, cfg.CartStorage)
		assert.Equal(t, 0, cfg.RedisDB)
		assert.Equal(t, "orders", cfg.AMQPExchange)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	})
}
