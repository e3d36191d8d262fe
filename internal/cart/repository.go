package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodorder-be/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// SQLPersistence stores the snapshot as one row of the kv_store table.
type SQLPersistence struct {
	db      *sql.DB
	dialect string
	key     string
}

func NewSQLPersistence(db *sql.DB, dialect string) *SQLPersistence {
	return &SQLPersistence{db: db, dialect: dialect, key: StorageKey}
}

// EnsureSchema creates kv_store when it does not exist. Postgres deployments get
// it from migrations; sqlite files are created on first start.
func (r *SQLPersistence) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("ensure kv_store: %w", err)
	}
	return nil
}

func (r *SQLPersistence) Load(ctx context.Context) (State, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Load"),
		zap.String("dialect", r.dialect),
	)

	var value string
	err := r.db.QueryRowContext(ctx,
		r.rebind(`SELECT value FROM kv_store WHERE key = ?`),
		r.key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no cart snapshot stored yet")
		return State{CartItems: []LineItem{}}, nil
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return State{}, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}

	return Decode([]byte(value))
}

func (r *SQLPersistence) Save(ctx context.Context, state State) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Save"),
		zap.String("dialect", r.dialect),
	)

	data, err := Encode(state)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, r.rebind(`
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`), r.key, string(data))
	if err != nil {
		log.Error("upsert failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}

	log.Debug("cart snapshot saved", zap.Int("items", len(state.CartItems)))
	return nil
}

// rebind rewrites ? placeholders into the dialect's bindvar style.
func (r *SQLPersistence) rebind(query string) string {
	bind := sqlx.QUESTION
	if r.dialect == DialectPostgres {
		bind = sqlx.DOLLAR
	}
	return sqlx.Rebind(bind, query)
}
