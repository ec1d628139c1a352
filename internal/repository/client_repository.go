package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ClientRepository struct {
	DB *db.Postgres
}

// ListFilter selects which records a listing returns.
type ListFilter string

const (
	FilterAll      ListFilter = "all"
	FilterActive   ListFilter = "active"
	FilterInactive ListFilter = "inactive"
)

const clientColumns = `id, first_name, last_name, national_id, phone, email, address, registered_at, active, tier, credit_limit, notes`

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.NationalID, &c.Phone, &c.Email,
		&c.Address, &c.RegisteredAt, &c.Active, &c.Tier, &c.CreditLimit, &c.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r ClientRepository) List(ctx context.Context, filter ListFilter, search string) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	var args []any
	switch {
	case search != "":
		query += `
			WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR national_id ILIKE $1
			   OR phone ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+search+"%")
	case filter == FilterActive:
		query += ` WHERE active`
	case filter == FilterInactive:
		query += ` WHERE NOT active`
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.DB.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r ClientRepository) Get(ctx context.Context, id int64) (*domain.Client, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=$1`, id)
	return scanClient(row)
}

// normalizeNationalID maps an absent, empty or whitespace-only national id
// to NULL. The column is unique, and '' = '' collides while NULLs do not,
// so clients registered without an id must never store the empty string.
func normalizeNationalID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save inserts when c.ID is zero, otherwise updates the existing row.
// A duplicate national id surfaces as ErrDuplicate.
func (r ClientRepository) Save(ctx context.Context, c domain.Client) (*domain.Client, error) {
	c.NationalID = normalizeNationalID(c.NationalID)
	var row pgx.Row
	if c.ID == 0 {
		row = r.DB.Pool.QueryRow(ctx, `
			INSERT INTO clients (first_name, last_name, national_id, phone, email, address, active, tier, credit_limit, notes)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			RETURNING `+clientColumns,
			c.FirstName, c.LastName, c.NationalID, c.Phone, c.Email, c.Address, c.Active, c.Tier, c.CreditLimit, c.Notes)
	} else {
		row = r.DB.Pool.QueryRow(ctx, `
			UPDATE clients
			SET first_name=$1, last_name=$2, national_id=$3, phone=$4, email=$5, address=$6,
			    active=$7, tier=$8, credit_limit=$9, notes=$10
			WHERE id=$11
			RETURNING `+clientColumns,
			c.FirstName, c.LastName, c.NationalID, c.Phone, c.Email, c.Address, c.Active, c.Tier, c.CreditLimit, c.Notes, c.ID)
	}
	saved, err := scanClient(row)
	if err != nil && db.IsUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	return saved, err
}

// CountSales returns the number of sales referencing the client.
func (r ClientRepository) CountSales(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE client_id=$1`, id).Scan(&n)
	return n, err
}

// Deactivate flips active=false, leaving dependent sales intact.
func (r ClientRepository) Deactivate(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `UPDATE clients SET active=FALSE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the client row; it fails on dependent sales unless
// DeleteCascade is used instead.
func (r ClientRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCascade removes the client together with its sales and their items,
// in one transaction.
func (r ClientRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM sale_items
		WHERE sale_id IN (SELECT id FROM sales WHERE client_id=$1)
	`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sales WHERE client_id=$1`, id); err != nil {
		return err
	}
	ct, err := tx.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}
