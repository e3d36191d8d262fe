package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"foodorder-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, order *Order) error
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx inserts the order and its items atomically and fills in the
// generated ids.
func (r *repository) CreateOrderTx(ctx context.Context, order *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "CreateOrderTx"),
		zap.Int64("user_id", order.UserID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	// 1. Insert order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			code, user_id, address, phone, note,
			total, status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`,
		order.Code,
		order.UserID,
		order.Address,
		order.Phone,
		order.Note,
		order.Total,
		order.Status,
		order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		log.Error("insert order failed", zap.Error(err))
		return err
	}

	// 2. Insert order items
	for i := range order.Items {
		item := &order.Items[i]

		addOns, err := json.Marshal(item.AddOns)
		if err != nil {
			return fmt.Errorf("encode add-ons: %w", err)
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, product_name, add_ons,
				quantity, price, total_price
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id
		`,
			order.ID,
			item.ProductID,
			item.ProductName,
			string(addOns),
			item.Quantity,
			item.Price,
			item.TotalPrice,
		).Scan(&item.ID)
		if err != nil {
			log.Error("insert order item failed", zap.Int64("product_id", item.ProductID), zap.Error(err))
			return err
		}
		item.OrderID = order.ID
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return err
	}

	log.Info("order persisted", zap.Int64("order_id", order.ID), zap.Int("items", len(order.Items)))
	return nil
}

// ListByUser returns the user's orders newest first, items included.
func (r *repository) ListByUser(ctx context.Context, userID int64) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "ListByUser"),
		zap.Int64("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, user_id, address, phone, note, total, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		log.Error("query orders failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	byID := make(map[int64]*Order)
	ids := make([]int64, 0)

	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.Code, &o.UserID, &o.Address, &o.Phone, &o.Note,
			&o.Total, &o.Status, &o.CreatedAt,
		); err != nil {
			log.Error("scan order failed", zap.Error(err))
			return nil, err
		}
		o.Items = []OrderItem{}
		orders = append(orders, &o)
		byID[o.ID] = &o
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, add_ons, quantity, price, total_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		log.Error("query order items failed", zap.Error(err))
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			it     OrderItem
			addOns []byte
		)
		if err := itemRows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &addOns,
			&it.Quantity, &it.Price, &it.TotalPrice,
		); err != nil {
			log.Error("scan order item failed", zap.Error(err))
			return nil, err
		}
		if len(addOns) > 0 {
			if err := json.Unmarshal(addOns, &it.AddOns); err != nil {
				return nil, fmt.Errorf("decode add-ons of item %d: %w", it.ID, err)
			}
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
