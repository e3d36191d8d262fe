package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"foodorder-be/internal/address"
	"foodorder-be/internal/auth"
	"foodorder-be/internal/cart"
	"foodorder-be/internal/config"
	"foodorder-be/internal/location"
	"foodorder-be/internal/middleware"
	"foodorder-be/internal/order"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("router-secret")

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := cart.NewStore(ctx, cart.NewMemoryPersistence())
	h := handlers{
		cart:     cart.NewHandler(store),
		location: location.NewHandler(location.NewClient("http://127.0.0.1:0", "token", 202)),
		address:  address.NewHandler(address.NewService(address.NewRepository(database))),
		order:    order.NewHandler(order.NewService(order.NewRepository(database), store, nil)),
	}

	return setupRouter(h, middleware.NewRateLimiter(ctx, ""), testSecret), mock
}

func bearer(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := auth.SignToken(userID, role, time.Hour, testSecret)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestSetupRouter(t *testing.T) {
	router, mock := newTestRouter(t)

	t.Run("Health Check", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "OK")
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("Metrics", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "http_requests_total")
	})

	t.Run("Cart requires auth", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Invalid token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Cart round trip", func(t *testing.T) {
		token := bearer(t, 5, "USER")

		req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
			strings.NewReader(`{"productId":1,"productName":"Phở","addOns":[],"quantity":1,"price":40000,"totalPrice":40000}`))
		req.Header.Set("Authorization", token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", token)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Data []cart.LineItem `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, int64(5), body.Data[0].UserID)
	})

	t.Run("Admin routes require admin role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/admin/cart", nil)
		req.Header.Set("Authorization", bearer(t, 5, "USER"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)

		req = httptest.NewRequest(http.MethodDelete, "/api/admin/cart", nil)
		req.Header.Set("Authorization", bearer(t, 1, "ADMIN"))
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Addresses wired to repository", func(t *testing.T) {
		mock.ExpectQuery("SELECT DISTINCT address FROM orders").
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"address"}).AddRow("12 Lê Lợi"))

		req := httptest.NewRequest(http.MethodGet, "/api/location/addresses/user", nil)
		req.Header.Set("Authorization", bearer(t, 5, "USER"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "12 Lê Lợi")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Addresses require auth", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/location/addresses/user", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Wards is public and validates input", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/location/wards?district_id=abc", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Location lookups are not rate limited", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/location/wards", nil))
			require.Equal(t, http.StatusBadRequest, rr.Code, "request %d", i)
		}
	})

	t.Run("Submit with empty cart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"address":"x"}`))
		req.Header.Set("Authorization", bearer(t, 99, "USER"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestBuildCartPersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		p, closeFn, err := buildCartPersistence(ctx, &config.Config{CartStorage: config.StorageMemory}, nil)
		require.NoError(t, err)
		assert.IsType(t, &cart.MemoryPersistence{}, p)
		assert.NoError(t, closeFn())
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cart.json")
		p, closeFn, err := buildCartPersistence(ctx, &config.Config{CartStorage: config.StorageFile, CartFilePath: path}, nil)
		require.NoError(t, err)
		assert.IsType(t, &cart.FilePersistence{}, p)
		assert.NoError(t, closeFn())
	})

	t.Run("SQLite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cart.db")
		p, closeFn, err := buildCartPersistence(ctx, &config.Config{CartStorage: config.StorageSQLite, CartSQLitePath: path}, nil)
		require.NoError(t, err)
		assert.IsType(t, &cart.AsyncPersistence{}, p)

		state, err := p.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, state.CartItems)
		assert.NoError(t, closeFn())
	})

	t.Run("Unknown", func(t *testing.T) {
		_, _, err := buildCartPersistence(ctx, &config.Config{CartStorage: "tape"}, nil)
		assert.Error(t, err)
	})
}
