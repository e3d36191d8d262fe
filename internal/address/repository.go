package address

import (
	"context"
	"database/sql"

	"foodorder-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	DistinctByUser(ctx context.Context, userID int64) ([]Address, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// DistinctByUser returns every non-empty address the user placed an order to,
// each once, sorted.
func (r *repository) DistinctByUser(
	ctx context.Context,
	userID int64,
) ([]Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "DistinctByUser"),
		zap.Int64("user_id", userID),
	)

	const q = `
		SELECT DISTINCT address
		FROM orders
		WHERE user_id = $1 AND address <> ''
		ORDER BY address
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]Address, 0)
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		list = append(list, a)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("addresses fetched", zap.Int("count", len(list)))
	return list, nil
}
