// =============================================================================
// Cart Parser - Storage Module
// =============================================================================
//
// This module persists successfully parsed carts to PostgreSQL.
//
// TABLES:
//   carts      - one row per processed file (source path, total, item count)
//   cart_items - one row per line item, ordered by position within its cart
//
// A cart and all of its items are written in a single transaction.
//
// =============================================================================

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

// CartWriter persists parsed carts.
type CartWriter interface {
	WriteCart(ctx context.Context, source string, result *types.ParseResult) error
	Close() error
}

// itemColumns is the number of bound values per cart_items row.
const itemColumns = 6

// insertBatchSize bounds the rows sent in one INSERT statement.
const insertBatchSize = 50

// PostgresWriter persists parsed carts to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS carts (
			id          SERIAL PRIMARY KEY,
			source      TEXT          NOT NULL,
			total       NUMERIC(14,4) NOT NULL DEFAULT 0,
			item_count  INTEGER       NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS cart_items (
			id          TEXT          PRIMARY KEY,
			cart_id     INTEGER       NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
			position    INTEGER       NOT NULL,
			name        TEXT          NOT NULL,
			price       NUMERIC(14,4) NOT NULL,
			quantity    NUMERIC(14,4) NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_carts_source     ON carts(source);
		CREATE INDEX IF NOT EXISTS idx_cart_items_cart  ON cart_items(cart_id);
	`)
	return err
}

// WriteCart inserts the cart and all of its items in one transaction.
func (pw *PostgresWriter) WriteCart(ctx context.Context, source string, result *types.ParseResult) error {
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	var cartID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO carts (source, total, item_count) VALUES ($1, $2, $3) RETURNING id`,
		source, result.Total, len(result.Items),
	).Scan(&cartID)
	if err != nil {
		return fmt.Errorf("postgres: insert cart: %w", err)
	}

	for start := 0; start < len(result.Items); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(result.Items) {
			end = len(result.Items)
		}
		query, args := buildItemInsert(cartID, start, result.Items[start:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// buildItemInsert returns a multi-row INSERT for batch. offset is the
// position of the first item of batch within the cart.
func buildItemInsert(cartID int64, offset int, batch []types.LineItem) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*itemColumns)

	for idx, item := range batch {
		base := idx * itemColumns
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			item.ID, cartID, offset+idx+1, item.Name, item.Price, item.Quantity)
	}

	query := fmt.Sprintf(
		"INSERT INTO cart_items (id, cart_id, position, name, price, quantity) VALUES %s",
		strings.Join(valueStrings, ","))

	return query, valueArgs
}

// Close closes the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
