package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderStore struct {
	db *pgxpool.Pool
}

func NewOrderStore(db *pgxpool.Pool) *OrderStore {
	return &OrderStore{db: db}
}

const orderColumns = `id, user_id, items, total, status, created_at, updated_at`

func (s *OrderStore) Create(ctx context.Context, o *models.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("could not encode order items: %w", err)
	}

	err = s.db.QueryRow(ctx, `
        INSERT INTO orders (id, user_id, items, total, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at
    `, o.ID, o.UserID, items, o.Total, o.Status).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not create order: %w", err)
	}
	return nil
}

// Get returns nil, nil when the order does not exist.
func (s *OrderStore) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row := s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get order %s: %w", id, err)
	}
	return o, nil
}

// List returns all orders newest first.
func (s *OrderStore) List(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("could not list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// SetStatus returns nil, nil when the order does not exist.
func (s *OrderStore) SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	row := s.db.QueryRow(ctx, `
        UPDATE orders SET status = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING `+orderColumns, id, status)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not update order %s: %w", id, err)
	}
	return o, nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	o := &models.Order{}
	var items []byte
	err := row.Scan(&o.ID, &o.UserID, &items, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("could not decode order items: %w", err)
	}
	return o, nil
}
