package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Get(ctx context.Context, key string) (string, error) {
	var payload string
	query := `SELECT payload FROM cart_slots WHERE slot_key = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &payload, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", cart.ErrSlotNotFound
		}
		return "", err
	}
	return payload, nil
}

func (r *PGRepository) Set(ctx context.Context, key, value string) error {
	query := `
        INSERT INTO cart_slots (slot_key, payload, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (slot_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
    `
	_, err := r.DB.ExecContext(ctx, query, key, value)
	return err
}

func (r *PGRepository) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM cart_slots WHERE slot_key = $1`
	_, err := r.DB.ExecContext(ctx, query, key)
	return err
}
