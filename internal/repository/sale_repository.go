package repository

import (
	"context"
	"errors"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/jackc/pgx/v5"
)

type SaleRepository struct {
	DB *db.Postgres
}

const saleColumns = `id, date, total, subtotal, tax, discount_total, amount_paid, change, user_id, client_id, receipt_kind, status, payment_method, notes`

// Create inserts the sale header and its line items in one transaction.
// Sale rows are immutable afterwards except for cancellation.
func (r SaleRepository) Create(ctx context.Context, s domain.Sale) (*domain.Sale, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO sales (id, date, total, subtotal, tax, discount_total, amount_paid, change,
		                   user_id, client_id, receipt_kind, status, payment_method, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`, s.ID, s.Date, s.Total, s.Subtotal, s.Tax, s.DiscountTotal, s.AmountPaid, s.Change,
		s.UserID, s.ClientID, s.ReceiptKind, s.Status, s.PaymentMethod, s.Notes)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	for i := range s.Items {
		it := &s.Items[i]
		it.SaleID = s.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price, discount, tax, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id
		`, it.SaleID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Discount, it.Tax, it.Subtotal).Scan(&it.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r SaleRepository) Get(ctx context.Context, id string) (*domain.Sale, error) {
	var s domain.Sale
	err := r.DB.Pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id=$1`, id).Scan(
		&s.ID, &s.Date, &s.Total, &s.Subtotal, &s.Tax, &s.DiscountTotal, &s.AmountPaid, &s.Change,
		&s.UserID, &s.ClientID, &s.ReceiptKind, &s.Status, &s.PaymentMethod, &s.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, discount, tax, subtotal
		FROM sale_items
		WHERE sale_id=$1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.UnitPrice, &it.Discount, &it.Tax, &it.Subtotal); err != nil {
			return nil, err
		}
		s.Items = append(s.Items, it)
	}
	return &s, rows.Err()
}

func (r SaleRepository) List(ctx context.Context, limit int) ([]domain.Sale, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+saleColumns+` FROM sales ORDER BY date DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Sale
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.Total, &s.Subtotal, &s.Tax, &s.DiscountTotal,
			&s.AmountPaid, &s.Change, &s.UserID, &s.ClientID, &s.ReceiptKind, &s.Status,
			&s.PaymentMethod, &s.Notes); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// Cancel flips the status; the header totals stay untouched.
func (r SaleRepository) Cancel(ctx context.Context, id, reason string) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE sales SET status=$1, notes=CASE WHEN $2 = '' THEN notes ELSE $2 END
		WHERE id=$3 AND status <> $1
	`, domain.SaleCancelled, reason, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
