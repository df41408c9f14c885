// Package repository provides a PostgreSQL implementation of the
// persistence slot used by the account store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds every query issued by PostgresSlotRepository.
const DefaultTimeout = 5 * time.Second

// PostgresSlotRepository stores slot values in the slots table.
type PostgresSlotRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
	// Timeout bounds each Get and Set call.
	Timeout time.Duration
}

// NewPostgresSlotRepository creates a PostgresSlotRepository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance with the slots table created.
func NewPostgresSlotRepository(db *sql.DB) *PostgresSlotRepository {
	return &PostgresSlotRepository{DB: db, Timeout: DefaultTimeout}
}

// Get returns the value stored under key. A missing row means the key is absent.
func (r *PostgresSlotRepository) Get(key string) ([]byte, bool, error) {
	ctx, cancel := r.context()
	defer cancel()
	return r.GetContext(ctx, key)
}

// GetContext is Get with a caller-supplied context.
func (r *PostgresSlotRepository) GetContext(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.DB.QueryRowContext(ctx, `
		SELECT value FROM slots WHERE key = $1
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slot: %w", err)
	}
	return value, true, nil
}

// Set overwrites the value stored under key.
func (r *PostgresSlotRepository) Set(key string, value []byte) error {
	ctx, cancel := r.context()
	defer cancel()
	return r.SetContext(ctx, key, value)
}

// SetContext is Set with a caller-supplied context.
func (r *PostgresSlotRepository) SetContext(ctx context.Context, key string, value []byte) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("set slot: %w", err)
	}
	return nil
}

func (r *PostgresSlotRepository) context() (context.Context, context.CancelFunc) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}
