package address

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_DistinctByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := int64(7)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"address"}).
			AddRow("12 Lê Lợi, Quận 1").
			AddRow("88 Nguyễn Huệ, Quận 1")

		mock.ExpectQuery("SELECT DISTINCT address FROM orders WHERE user_id = \\$1 AND address <> '' ORDER BY address").
			WithArgs(userID).
			WillReturnRows(rows)

		res, err := repo.DistinctByUser(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, []Address{"12 Lê Lợi, Quận 1", "88 Nguyễn Huệ, Quận 1"}, res)
	})

	t.Run("NoOrders", func(t *testing.T) {
		mock.ExpectQuery("SELECT DISTINCT address FROM orders").
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"address"}))

		res, err := repo.DistinctByUser(context.Background(), userID)
		assert.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery("SELECT DISTINCT address FROM orders").
			WithArgs(userID).
			WillReturnError(errors.New("db error"))

		res, err := repo.DistinctByUser(context.Background(), userID)
		assert.Error(t, err)
		assert.Nil(t, res)
	})

	t.Run("RowError", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"address"}).
			AddRow("a").
			RowError(0, errors.New("row error"))

		mock.ExpectQuery("SELECT DISTINCT address FROM orders").
			WithArgs(userID).
			WillReturnRows(rows)

		res, err := repo.DistinctByUser(context.Background(), userID)
		assert.Error(t, err)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
