package repository

import (
	"context"
	"errors"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/jackc/pgx/v5"
)

type SupplierRepository struct {
	DB *db.Postgres
}

const supplierColumns = `id, name, contact_name, contact_title, phone, email, website, category, status, address, tax_id, business_type, payment_terms, credit_limit, notes, rating, created_at, updated_at`

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.ContactName, &s.ContactTitle, &s.Phone, &s.Email,
		&s.Website, &s.Category, &s.Status, &s.Address, &s.TaxID, &s.BusinessType,
		&s.PaymentTerms, &s.CreditLimit, &s.Notes, &s.Rating, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List filters by free-text search and/or exact status.
func (r SupplierRepository) List(ctx context.Context, search string, status domain.SupplierStatus) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE TRUE`
	var args []any
	if search != "" {
		args = append(args, "%"+search+"%")
		query += ` AND (name ILIKE $1 OR contact_name ILIKE $1 OR email ILIKE $1 OR category ILIKE $1)`
	}
	if status != "" {
		args = append(args, status)
		if len(args) == 1 {
			query += ` AND status = $1`
		} else {
			query += ` AND status = $2`
		}
	}
	query += ` ORDER BY name`

	rows, err := r.DB.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

func (r SupplierRepository) Get(ctx context.Context, id int64) (*domain.Supplier, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id=$1`, id)
	return scanSupplier(row)
}

func (r SupplierRepository) Save(ctx context.Context, s domain.Supplier) (*domain.Supplier, error) {
	var row pgx.Row
	if s.ID == 0 {
		row = r.DB.Pool.QueryRow(ctx, `
			INSERT INTO suppliers (name, contact_name, contact_title, phone, email, website, category, status,
			                       address, tax_id, business_type, payment_terms, credit_limit, notes, rating, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15, now())
			RETURNING `+supplierColumns,
			s.Name, s.ContactName, s.ContactTitle, s.Phone, s.Email, s.Website, s.Category, s.Status,
			s.Address, s.TaxID, s.BusinessType, s.PaymentTerms, s.CreditLimit, s.Notes, s.Rating)
	} else {
		row = r.DB.Pool.QueryRow(ctx, `
			UPDATE suppliers
			SET name=$1, contact_name=$2, contact_title=$3, phone=$4, email=$5, website=$6,
			    category=$7, status=$8, address=$9, tax_id=$10, business_type=$11,
			    payment_terms=$12, credit_limit=$13, notes=$14, rating=$15, updated_at=now()
			WHERE id=$16
			RETURNING `+supplierColumns,
			s.Name, s.ContactName, s.ContactTitle, s.Phone, s.Email, s.Website, s.Category, s.Status,
			s.Address, s.TaxID, s.BusinessType, s.PaymentTerms, s.CreditLimit, s.Notes, s.Rating, s.ID)
	}
	return scanSupplier(row)
}

// Categories returns the distinct non-empty category values in use.
// Supplier categories are free text, not a reference table.
func (r SupplierRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT DISTINCT category FROM suppliers WHERE category <> '' ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CountProducts returns how many products reference the supplier.
func (r SupplierRepository) CountProducts(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE supplier_id=$1`, id).Scan(&n)
	return n, err
}

// Deactivate marks the supplier inactive instead of removing it.
func (r SupplierRepository) Deactivate(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `UPDATE suppliers SET status=$1, updated_at=now() WHERE id=$2`,
		domain.SupplierInactive, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r SupplierRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `DELETE FROM suppliers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCascade detaches dependent products before removing the supplier.
func (r SupplierRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE products SET supplier_id=NULL WHERE supplier_id=$1`, id); err != nil {
		return err
	}
	ct, err := tx.Exec(ctx, `DELETE FROM suppliers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

// SupplierStats feeds the suppliers overview panel.
type SupplierStats struct {
	Total         int64
	Active        int64
	CategoryCount int64
	TopRatedName  string
	TopRating     int
}

func (r SupplierRepository) Stats(ctx context.Context) (SupplierStats, error) {
	var st SupplierStats
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'Active'),
		       COUNT(DISTINCT category) FILTER (WHERE category <> '')
		FROM suppliers
	`).Scan(&st.Total, &st.Active, &st.CategoryCount)
	if err != nil {
		return st, err
	}
	err = r.DB.Pool.QueryRow(ctx, `
		SELECT name, rating FROM suppliers ORDER BY rating DESC, name ASC LIMIT 1
	`).Scan(&st.TopRatedName, &st.TopRating)
	if errors.Is(err, pgx.ErrNoRows) {
		return st, nil
	}
	return st, err
}
