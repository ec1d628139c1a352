package repository

import (
	"context"
	"errors"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	DB *db.Postgres
}

const productColumns = `id, name, description, price, cost, stock, min_stock, category_id, supplier_id, sku, barcode, unit, tax_rate, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Cost, &p.Stock, &p.MinStock,
		&p.CategoryID, &p.SupplierID, &p.SKU, &p.Barcode, &p.Unit, &p.TaxRate, &p.Active,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r ProductRepository) List(ctx context.Context, filter ListFilter, search string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	switch {
	case search != "":
		query += `
			WHERE name ILIKE $1 OR description ILIKE $1 OR sku ILIKE $1 OR barcode ILIKE $1`
		args = append(args, "%"+search+"%")
	case filter == FilterActive:
		query += ` WHERE active`
	case filter == FilterInactive:
		query += ` WHERE NOT active`
	}
	query += ` ORDER BY name`

	rows, err := r.DB.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r ProductRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)
	return scanProduct(row)
}

// Save inserts when p.ID is zero, otherwise updates. A duplicate SKU
// surfaces as ErrDuplicate.
func (r ProductRepository) Save(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var row pgx.Row
	if p.ID == 0 {
		row = r.DB.Pool.QueryRow(ctx, `
			INSERT INTO products (name, description, price, cost, stock, min_stock, category_id, supplier_id, sku, barcode, unit, tax_rate, active, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13, now())
			RETURNING `+productColumns,
			p.Name, p.Description, p.Price, p.Cost, p.Stock, p.MinStock, p.CategoryID, p.SupplierID,
			p.SKU, p.Barcode, p.Unit, p.TaxRate, p.Active)
	} else {
		row = r.DB.Pool.QueryRow(ctx, `
			UPDATE products
			SET name=$1, description=$2, price=$3, cost=$4, min_stock=$5, category_id=$6,
			    supplier_id=$7, sku=$8, barcode=$9, unit=$10, tax_rate=$11, active=$12, updated_at=now()
			WHERE id=$13
			RETURNING `+productColumns,
			p.Name, p.Description, p.Price, p.Cost, p.MinStock, p.CategoryID, p.SupplierID,
			p.SKU, p.Barcode, p.Unit, p.TaxRate, p.Active, p.ID)
	}
	saved, err := scanProduct(row)
	if err != nil && db.IsUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	return saved, err
}

// CountSaleLines returns how many sale lines reference the product.
func (r ProductRepository) CountSaleLines(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM sale_items WHERE product_id=$1`, id).Scan(&n)
	return n, err
}

func (r ProductRepository) Deactivate(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `UPDATE products SET active=FALSE, updated_at=now() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r ProductRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LowStockProduct is a row from the threshold scan used by stock alerts.
type LowStockProduct struct {
	ID       int64
	Name     string
	Stock    int
	MinStock int
}

// LowStock returns active products at or below their reorder threshold, or
// at or below the absolute floor regardless of threshold.
func (r ProductRepository) LowStock(ctx context.Context, floor int) ([]LowStockProduct, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, stock, min_stock
		FROM products
		WHERE active AND (stock <= min_stock AND min_stock > 0 OR stock <= $1)
		ORDER BY stock ASC
	`, floor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LowStockProduct
	for rows.Next() {
		var p LowStockProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock, &p.MinStock); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
