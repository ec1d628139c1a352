package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/jackc/pgx/v5"
)

type InventoryRepository struct {
	DB *db.Postgres
}

type MovementInput struct {
	ProductID int64
	Kind      domain.MovementKind
	Quantity  int
	Reason    string
	Reference string
	UserID    *int64
	Notes     string
}

// RecordMovement applies one stock change and its audit row atomically.
// The product row is locked for the duration so concurrent movements
// serialize instead of racing on the read-modify-write.
func (r InventoryRepository) RecordMovement(ctx context.Context, in MovementInput) (*domain.InventoryMovement, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var before int
	err = tx.QueryRow(ctx, `SELECT stock FROM products WHERE id=$1 FOR UPDATE`, in.ProductID).Scan(&before)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var after int
	switch in.Kind {
	case domain.MovementIn:
		after = before + in.Quantity
	case domain.MovementOut:
		after = before - in.Quantity
		if after < 0 {
			return nil, ErrInsufficientStock
		}
	case domain.MovementAdjust:
		after = in.Quantity
	default:
		return nil, fmt.Errorf("unknown movement kind %q", in.Kind)
	}

	if _, err := tx.Exec(ctx, `UPDATE products SET stock=$1, updated_at=now() WHERE id=$2`, after, in.ProductID); err != nil {
		return nil, err
	}

	var m domain.InventoryMovement
	err = tx.QueryRow(ctx, `
		INSERT INTO inventory_movements (product_id, kind, quantity, stock_before, stock_after, reason, reference, user_id, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, product_id, kind, quantity, stock_before, stock_after, reason, reference, user_id, moved_at, notes
	`, in.ProductID, in.Kind, in.Quantity, before, after, in.Reason, in.Reference, in.UserID, in.Notes).Scan(
		&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.StockBefore, &m.StockAfter,
		&m.Reason, &m.Reference, &m.UserID, &m.MovedAt, &m.Notes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &m, nil
}

// History returns the most recent movements for a product.
func (r InventoryRepository) History(ctx context.Context, productID int64, limit int) ([]domain.InventoryMovement, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, product_id, kind, quantity, stock_before, stock_after, reason, reference, user_id, moved_at, notes
		FROM inventory_movements
		WHERE product_id=$1
		ORDER BY moved_at DESC, id DESC
		LIMIT $2
	`, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryMovement
	for rows.Next() {
		var m domain.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.StockBefore, &m.StockAfter,
			&m.Reason, &m.Reference, &m.UserID, &m.MovedAt, &m.Notes); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
